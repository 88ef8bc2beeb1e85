// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits and a
// behavioral DUT model for testing the verification harness.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/hwverify/hwlib"
	"github.com/db47h/hwverify/hwsim"
)

// maximum input count for exhaustive comparison.
const maxExhaustive = 16

func connString(pins []string, prefix string) string {
	var b strings.Builder
	for _, n := range pins {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(prefix)
		b.WriteString(n)
	}
	return b.String()
}

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface. Parts with up to 16
// inputs are compared over all input combinations, others over random inputs.
//
func ComparePart(t *testing.T, tpc uint, part1 hwsim.NewPartFn, part2 hwsim.NewPartFn) {
	t.Helper()

	ps1, ps2 := part1(""), part2("")

	// compare specs
	if len(ps1.Inputs) != len(ps2.Inputs) {
		t.Fatal("len(ps1.Inputs) != len(ps2.Inputs)")
	}
	if len(ps1.Outputs) != len(ps2.Outputs) {
		t.Fatal("len(ps1.Outputs) != len(ps2.Outputs)")
	}
	for i := range ps1.Inputs {
		if ps1.Inputs[i] != ps2.Inputs[i] {
			t.Fatalf("ps1.Inputs[i] = %q != ps2.Inputs[i] = %q", ps1.Inputs[i], ps2.Inputs[i])
		}
	}
	for i := range ps1.Outputs {
		if ps1.Outputs[i] != ps2.Outputs[i] {
			t.Fatalf("ps1.Outputs[i] = %q != ps2.Outputs[i] = %q", ps1.Outputs[i], ps2.Outputs[i])
		}
	}

	inputs := make([]bool, len(ps1.Inputs))
	outputs := make([][2]bool, len(ps1.Outputs))

	ins := connString(ps1.Inputs, "")
	var parts hwsim.Parts
	for i, n := range ps1.Inputs {
		k := i
		parts = append(parts, hwlib.Input(func() bool { return inputs[k] })("out="+n))
	}
	for k, prefix := range []string{"p1_", "p2_"} {
		part := part1
		if k == 1 {
			part = part2
		}
		conns := ins
		if outs := connString(ps1.Outputs, prefix); outs != "" {
			if conns != "" {
				conns += ","
			}
			conns += outs
		}
		parts = append(parts, part(conns))
		for i, o := range ps1.Outputs {
			n, k := i, k
			parts = append(parts, hwlib.Output(func(b bool) { outputs[n][k] = b })("in="+prefix+o))
		}
	}

	c, err := hwsim.NewCircuit(0, tpc, parts...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	errString := func(oname string, ex, got bool) string {
		var b strings.Builder
		for i, n := range ps1.Inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", n, inputs[i])
		}
		return fmt.Sprintf("\nExpected %s => %s=%v\nGot %v", b.String(), oname, ex, got)
	}

	check := func() {
		c.TickTock()
		c.TickTock()
		for o, out := range outputs {
			if out[0] != out[1] {
				t.Fatal(errString(ps1.Outputs[o], out[0], out[1]))
			}
		}
	}

	start := time.Now()

	if len(inputs) <= maxExhaustive {
		for i := 0; i < 1<<uint(len(inputs)); i++ {
			for bit := range inputs {
				inputs[bit] = i&(1<<uint(bit)) != 0
			}
			check()
		}
	} else {
		rand.Seed(time.Now().UnixNano())
		// all 0, all 1, then random
		check()
		for in := range inputs {
			inputs[in] = true
		}
		check()
		for i := 0; i < 1<<12; i++ {
			for in := range inputs {
				inputs[in] = randBool()
			}
			check()
		}
	}

	elapsed := time.Since(start)
	ticks := c.Steps() / c.SPC()
	t.Logf("%d components. %d steps in %v. %d clock ticks => %.2f Hz", c.Size(), c.Steps(), elapsed, ticks, float64(ticks)/(float64(elapsed)/float64(time.Second)))
}
