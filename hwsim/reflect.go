// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
//
type Updater interface {
	Update(*Circuit)
}

type pinField struct {
	index int
	pin   string
	input bool
	bus   int // bus width, 0 for a single pin
}

// MakePart wraps an Updater into a custom part.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pins are int fields, buses are arrays of int. Once mounted, these fields
// hold the pin numbers allocated by the circuit.
//
// Untagged fields are copied from t into every mounted instance, so t can
// carry configuration. t may also be a nil pointer.
//
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	sp := &PartSpec{Name: typ.Name()}
	var fields []pinField
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pf := pinField{index: i, pin: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pf.pin = tv[1]
		}
		switch tv[0] {
		case "in":
			pf.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		var names []string
		switch ft := f.Type; {
		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Int:
			pf.bus = ft.Len()
			for j := 0; j < pf.bus; j++ {
				names = append(names, BusPinName(pf.pin, j))
			}
		case ft.Kind() == reflect.Int:
			names = append(names, pf.pin)
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft.Kind(), f.Name, typ.Name()))
		}
		if pf.input {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
		fields = append(fields, pf)
	}

	var tmpl reflect.Value
	if v := reflect.ValueOf(t); v.Kind() == reflect.Ptr && !v.IsNil() {
		tmpl = v.Elem()
	} else if v.Kind() == reflect.Struct {
		tmpl = v
	}
	sp.Mount = mountPart(typ, tmpl, fields)
	return sp
}

func mountPart(typ reflect.Type, tmpl reflect.Value, fields []pinField) MountFn {
	return func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		if tmpl.IsValid() {
			e.Set(tmpl)
		}
		for _, pf := range fields {
			fv := e.Field(pf.index)
			if pf.bus == 0 {
				fv.SetInt(int64(s.Pin(pf.pin)))
				continue
			}
			for i := 0; i < pf.bus; i++ {
				fv.Index(i).SetInt(int64(s.Pin(BusPinName(pf.pin, i))))
			}
		}
		return []Component{v.Interface().(Updater).Update}
	}
}
