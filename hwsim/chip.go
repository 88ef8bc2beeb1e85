// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"sort"

	"github.com/pkg/errors"
)

type chip struct {
	PartSpec        // PartSpec for this chip
	parts    []Part // sub parts
}

func (c *chip) mount(s *Socket) []Component {
	var updaters []Component

	for _, p := range c.parts {
		// make a sub-socket
		sub := newSocket(s.c)
		for _, conn := range p.Conns {
			sub.m[conn.PP] = s.PinOrNew(conn.CP)
		}
		// ground unconnected inputs, give unconnected outputs a private pin.
		for _, in := range p.Inputs {
			if _, ok := sub.m[in]; !ok {
				sub.m[in] = cstFalse
			}
		}
		for _, out := range p.Outputs {
			if _, ok := sub.m[out]; !ok {
				sub.m[out] = s.c.allocPin()
			}
		}
		updaters = append(updaters, p.Mount(sub)...)
	}
	return updaters
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip.
//
// An Xor gate could be created like this:
//
//	xor, err := Chip("XOR", "a, b", "out",
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	)
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips:
//
//	xnor, err := Chip("XNOR", "a, b", "out",
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	)
//
// Chip checks that every internal wire read by a part is driven by exactly
// one part output (or is a chip input or constant), and that every chip
// output is driven.
//
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" inputs")
	}
	outs, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" outputs")
	}

	isIn := make(map[string]bool, len(ins))
	for _, i := range ins {
		isIn[i] = true
	}
	isOut := make(map[string]bool, len(outs))
	for _, o := range outs {
		if isIn[o] {
			return nil, errors.New(name + ": pin " + o + " is both an input and an output")
		}
		isOut[o] = true
	}

	driven := make(map[string]string) // wire -> driving part pin
	read := make(map[string]string)   // wire -> first reading part pin

	for _, p := range parts {
		if p.PartSpec == nil {
			return nil, errors.New(name + ": nil part")
		}
		seen := make(map[string]bool, len(p.Conns))
		for _, c := range p.Conns {
			pn := p.Name + "." + c.PP
			if seen[c.PP] {
				return nil, errors.New(pn + ": pin connected more than once")
			}
			seen[c.PP] = true
			switch {
			case p.isOutput(c.PP):
				switch {
				case c.CP == False || c.CP == True:
					return nil, errors.New(pn + ":" + c.CP + ": output pin connected to constant " + c.CP + " input")
				case c.CP == Clk:
					return nil, errors.New(pn + ":" + c.CP + ": output pin connected to clock signal")
				case isIn[c.CP]:
					return nil, errors.New(pn + ":" + c.CP + ": chip input pin used as output")
				case driven[c.CP] != "":
					return nil, errors.New(pn + ":" + c.CP + ": output pin already used as output by " + driven[c.CP])
				}
				driven[c.CP] = pn
			case p.isInput(c.PP):
				if _, ok := read[c.CP]; !ok {
					read[c.CP] = pn
				}
			default:
				return nil, errors.New("invalid pin name " + c.PP + " for part " + p.Name)
			}
		}
	}

	// sorted for stable error messages.
	wires := make([]string, 0, len(read))
	for w := range read {
		wires = append(wires, w)
	}
	sort.Strings(wires)
	for _, w := range wires {
		if driven[w] == "" && !isIn[w] && !isConstant(w) {
			return nil, errors.New("pin " + w + " not connected to any output (read by " + read[w] + ")")
		}
	}
	for _, o := range outs {
		if driven[o] == "" {
			return nil, errors.New(name + ": output pin " + o + " not driven by any part")
		}
	}

	c := &chip{
		PartSpec: PartSpec{
			Name:    name,
			Inputs:  ins,
			Outputs: outs,
		},
		parts: parts,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}
