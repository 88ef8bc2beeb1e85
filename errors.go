// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwverify

import (
	"fmt"
)

// A SequencingFault reports an invalid use of a Sequencer or Runner: double
// start, reset out of order, negative phase counts, sampling before reset.
// It indicates a bug in the harness, not in the DUT.
//
type SequencingFault struct {
	Op     string
	Reason string
}

func (f *SequencingFault) Error() string {
	return "sequencing fault in " + f.Op + ": " + f.Reason
}

func fault(op, reason string) error {
	return &SequencingFault{Op: op, Reason: reason}
}

// A Mismatch reports a DUT output that differs from the golden model.
//
type Mismatch struct {
	Result
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("vector #%d failed at phase %d: %v, %v: expected %08b, got %08b",
		m.Index, m.Phase, m.Vector, GoldenTerms(m.Vector), m.Expected, m.Actual)
}

// A RangeFault reports a directed stimulus component outside of [0, 255].
//
type RangeFault struct {
	Index     int    // position in the directed list
	Component string // "A" or "B"
	Value     int
}

func (f *RangeFault) Error() string {
	return fmt.Sprintf("vector #%d: %s=%d out of range [0, 255]", f.Index, f.Component, f.Value)
}
