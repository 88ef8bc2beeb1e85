// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"github.com/db47h/hwverify"
)

// Model is a behavioral DUT computing F over its inputs with a fixed latency
// in clock cycles. It implements hwverify.DUT and records how it was driven.
//
// With Latency 0, Out reflects the current inputs immediately. With Latency
// n > 0, the value computed at a rising edge shows on Out after n edges.
// While rst_n is low, the pipeline is filled with zeros. While ena is low,
// the pipeline holds.
//
type Model struct {
	F       func(a, b uint8) uint8
	Latency int
	// Fault, if not nil, is applied to every computed value.
	Fault func(a, b, v uint8) uint8

	a, b   uint8
	rstN   bool
	ena    bool
	stages []uint8

	// Cycles counts calls to Clock.
	Cycles int
	// ResetCycles counts clock cycles run with rst_n low.
	ResetCycles int
	// Reads counts calls to Out.
	Reads int
	// EnableSet is true once SetEnable(true) has been called.
	EnableSet bool
}

// NewModel returns a Model of the golden function with the given latency.
//
func NewModel(latency int) *Model {
	return &Model{F: hwverify.Expected, Latency: latency}
}

// StuckAt makes output bit stuck at value v.
//
func (m *Model) StuckAt(bit uint, v bool) *Model {
	m.Fault = func(_, _, out uint8) uint8 {
		if v {
			return out | 1<<bit
		}
		return out &^ (1 << bit)
	}
	return m
}

// FailOn makes the model output the complement of the expected value for the
// given input vector.
//
func (m *Model) FailOn(a, b uint8) *Model {
	m.Fault = func(va, vb, out uint8) uint8 {
		if va == a && vb == b {
			return ^out
		}
		return out
	}
	return m
}

func (m *Model) compute() uint8 {
	if !m.rstN {
		return 0
	}
	v := m.F(m.a, m.b)
	if m.Fault != nil {
		v = m.Fault(m.a, m.b, v)
	}
	return v
}

// SetA implements hwverify.DUT.
func (m *Model) SetA(v uint8) { m.a = v }

// SetB implements hwverify.DUT.
func (m *Model) SetB(v uint8) { m.b = v }

// SetEnable implements hwverify.DUT.
func (m *Model) SetEnable(on bool) {
	m.ena = on
	if on {
		m.EnableSet = true
	}
}

// SetResetN implements hwverify.DUT.
func (m *Model) SetResetN(v bool) { m.rstN = v }

// Clock implements hwverify.DUT.
func (m *Model) Clock() {
	m.Cycles++
	if !m.rstN {
		m.ResetCycles++
	}
	if m.Latency == 0 || !m.ena && m.rstN {
		return
	}
	if m.stages == nil {
		m.stages = make([]uint8, m.Latency)
	}
	copy(m.stages[1:], m.stages)
	m.stages[0] = m.compute()
}

// Out implements hwverify.DUT.
func (m *Model) Out() uint8 {
	m.Reads++
	if m.Latency == 0 {
		return m.compute()
	}
	if m.stages == nil {
		return 0
	}
	return m.stages[m.Latency-1]
}
