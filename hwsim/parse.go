// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Connection connects a pin of a part (PP) to a pin in its container (CP).
//
type Connection struct {
	PP string
	CP string
}

// BusPinName returns the name of the i-th pin of the given bus.
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

// ParseIOSpec parses the pin specification string and returns individual pin
// names in a slice, also expanding bus declarations to individual pin names.
// For example:
//
//	ParseIOSpec("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
// The constant pin names true, false and clk are reserved.
//
func ParseIOSpec(spec string) ([]string, error) {
	var out []string
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		name, size := item, -1
		if i := strings.IndexRune(item, '['); i >= 0 {
			if !strings.HasSuffix(item, "]") {
				return nil, parseError(spec, "missing close bracket in "+item)
			}
			n, err := strconv.Atoi(item[i+1 : len(item)-1])
			if err != nil || n <= 0 {
				return nil, parseError(spec, "invalid bus size in "+item)
			}
			name, size = item[:i], n
		}
		if !validName(name) {
			return nil, parseError(spec, "invalid pin name "+strconv.Quote(name))
		}
		if isConstant(name) {
			return nil, parseError(spec, "reserved pin name "+name)
		}
		if size < 0 {
			out = append(out, name)
			continue
		}
		for i := 0; i < size; i++ {
			out = append(out, BusPinName(name, i))
		}
	}
	return out, nil
}

// ParseConnections parses a connection configuration like "a=x, b=y[3],
// out[0..3]=bus[4..7]" into a slice of Connections. Bus ranges are expanded
// on both sides. A range can be connected to a single pin (for example
// "in[0..7]=false"), otherwise pin counts must match.
//
// Connections to a whole bus ("in=x") are expanded by PartSpec.NewPart.
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	if strings.TrimSpace(c) == "" {
		return nil, nil
	}
	for _, item := range strings.Split(c, ",") {
		kv := strings.Split(item, "=")
		if len(kv) != 2 {
			return nil, parseError(c, "expected pin=pin in "+strconv.Quote(strings.TrimSpace(item)))
		}
		k, v := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		ks, err := expandRange(k)
		if err != nil {
			return nil, parseError(c, err.Error())
		}
		vs, err := expandRange(v)
		if err != nil {
			return nil, parseError(c, err.Error())
		}
		switch {
		case len(ks) == len(vs):
			for i := range ks {
				conns = append(conns, Connection{ks[i], vs[i]})
			}
		case len(vs) == 1:
			for _, k := range ks {
				conns = append(conns, Connection{k, vs[0]})
			}
		default:
			return nil, parseError(c, "pin count mismatch in "+k+"="+v)
		}
	}
	return conns, nil
}

// expandRange expands name[i..j] into individual pin names. Plain names and
// single bus pins are returned as is.
//
func expandRange(name string) ([]string, error) {
	i := strings.IndexRune(name, '[')
	if i < 0 {
		if !validName(name) {
			return nil, errors.New("invalid pin name " + strconv.Quote(name))
		}
		return []string{name}, nil
	}
	bus := name[:i]
	if !validName(bus) {
		return nil, errors.New("invalid bus name " + strconv.Quote(bus))
	}
	if !strings.HasSuffix(name, "]") {
		return nil, errors.New("no terminating ] in " + name)
	}
	n := name[i+1 : len(name)-1]
	j := strings.Index(n, "..")
	if j < 0 {
		idx, err := strconv.Atoi(n)
		if err != nil || idx < 0 {
			return nil, errors.New("invalid bus index in " + name)
		}
		return []string{BusPinName(bus, idx)}, nil
	}
	start, err := strconv.Atoi(n[:j])
	if err != nil {
		return nil, errors.Wrap(err, "bus range start in "+name)
	}
	end, err := strconv.Atoi(n[j+2:])
	if err != nil {
		return nil, errors.Wrap(err, "bus range end in "+name)
	}
	if start < 0 || end < start {
		return nil, errors.New("invalid bus range in " + name)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(bus, i))
	}
	return r, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}

func parseError(in string, msg string) error {
	return errors.Errorf("in %q: %s", in, msg)
}
