package hwsim_test

import (
	"testing"

	hw "github.com/db47h/hwverify/hwsim"
	hl "github.com/db47h/hwverify/hwlib"
)

func TestChip_errors(t *testing.T) {
	data := []struct {
		name  string
		in    string
		out   string
		parts hw.Parts
		err   string
	}{
		{"true_out", "a, b", "out", hw.Parts{
			hl.Nand("a=a, b=b, out=true"),
			hl.Nand("a=a, b=b, out=out"),
		}, "NAND.out:true: output pin connected to constant true input"},
		{"false_out", "a, b", "out", hw.Parts{
			hl.Nand("a=a, b=b, out=false"),
			hl.Nand("a=a, b=b, out=out"),
		}, "NAND.out:false: output pin connected to constant false input"},
		{"clk_out", "a, b", "out", hw.Parts{
			hl.Nand("a=a, b=b, out=clk"),
		}, "NAND.out:clk: output pin connected to clock signal"},
		{"input_out", "a, b", "out", hw.Parts{
			hl.Nand("a=a, b=b, out=a"),
			hl.Nand("a=a, b=b, out=out"),
		}, "NAND.out:a: chip input pin used as output"},
		{"multi_out", "a, b", "out", hw.Parts{
			hl.Nand("a=a, b=b, out=x"),
			hl.Nand("a=a, b=b, out=x"),
			hl.Not("in=x, out=out"),
		}, "NAND.out:x: output pin already used as output by NAND.out"},
		{"no_output", "a, b", "out", hw.Parts{
			hl.Nand("a=a, b=wx, out=out"),
		}, "pin wx not connected to any output (read by NAND.b)"},
		{"undriven", "a, b", "out", hw.Parts{}, "undriven: output pin out not driven by any part"},
		{"unknown_pin", "a, b", "out", hw.Parts{
			hl.Nand("a=a, typo=b, out=out"),
		}, "invalid pin name typo for part NAND"},
		{"twice", "a, b", "out", hw.Parts{
			hl.Nand("a=a, a=b, out=out"),
		}, "NAND.a: pin connected more than once"},
		{"in_out", "a, b", "a", hw.Parts{}, "in_out: pin a is both an input and an output"},
		{"unconnected_in", "a, b", "out", hw.Parts{
			hl.Nand("a=b, b=b, out=out"),
		}, ""},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := hw.Chip(d.name, d.in, d.out, d.parts...)
			if err == nil && d.err != "" || err != nil && err.Error() != d.err {
				t.Errorf("Got error %q, expected %q", err, d.err)
			}
		})
	}
}

func TestChip_omitted_pins(t *testing.T) {
	var a, b, c, tr, f, o0, o1 int
	dummy := (&hw.PartSpec{
		Name:    "dummy",
		Inputs:  []string{"a", "b", "c", "t", "f"},
		Outputs: []string{"o0", "o1"},
		Mount: func(s *hw.Socket) []hw.Component {
			a, b, c, tr, f, o0, o1 = s.Pin("a"), s.Pin("b"), s.Pin("c"), s.Pin("t"), s.Pin("f"), s.Pin("o0"), s.Pin("o1")
			return nil
		}}).NewPart
	wrapper, err := hw.Chip("wrapper", "wa, wb", "wo0", dummy("a=wa, c=clk, t=true, f=false, o0=wo0"))
	if err != nil {
		t.Fatal(err)
	}

	circ, err := hw.NewCircuit(0, 0, wrapper(""))
	if err != nil {
		t.Fatal(err)
	}
	defer circ.Dispose()

	if a != 0 || b != 0 || f != 0 { // 0 = cstFalse
		t.Errorf("a = %v, b = %v, f = %v, all must be 0", a, b, f)
	}
	if tr != 1 { // 1 = cstTrue
		t.Errorf("t = %v, must be 1", tr)
	}
	if c != 2 { // 2 = cstClk
		t.Errorf("c = %v, must be 2", c)
	}
	if o0 < 3 || o1 < 3 || o0 == o1 { // 3 = cstCount
		t.Errorf("o0 = %v, o1 = %v, both must be distinct and >= 3", o0, o1)
	}
}

func TestChip_bus(t *testing.T) {
	var out int64
	swap, err := hw.Chip("SWAP", "in[8]", "out[8]",
		hl.NotN(4)("in[0..3]=in[4..7], out[0..3]=n[0..3]"),
		hl.NotN(4)("in=n, out[0..3]=out[0..3]"),
		hl.NotN(4)("in[0..3]=in[0..3], out=m"),
		hl.NotN(4)("in=m, out[0..3]=out[4..7]"),
	)
	if err != nil {
		t.Fatal(err)
	}
	c, err := hw.NewCircuit(0, testTPC,
		hl.InputN(8, func() int64 { return 0x3c })("out=x"),
		swap("in=x, out=y"),
		hl.OutputN(8, func(v int64) { out = v })("in=y"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	c.TickTock()
	if out != 0xc3 {
		t.Fatalf("out = %#x, want 0xc3", out)
	}
}
