// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwverify

import (
	"strconv"
	"time"
)

// Reset protocol and clock defaults.
//
const (
	DefaultPeriod    = 10 * time.Microsecond
	DefaultResetLow  = 10
	DefaultResetHigh = 5
)

type seqState int

const (
	stateIdle seqState = iota
	stateStarted
	stateResetting
	stateReady
	stateStopped
)

// A Sequencer owns the time base of a DUT: it runs the DUT clock, applies
// the reset protocol and advances time by whole clock phases.
//
// A Sequencer must be driven by a single goroutine. The clock goroutine
// started by Start only runs the DUT clock while that goroutine is suspended
// in Advance.
//
type Sequencer struct {
	dut    DUT
	period time.Duration
	state  seqState
	phase  uint64

	req chan int    // phases to run
	ack chan uint64 // phase count once done
}

// NewSequencer returns a new Sequencer for dut. The clock is not running
// until Start is called.
//
func NewSequencer(dut DUT) *Sequencer {
	return &Sequencer{dut: dut}
}

// Start starts a free-running clock of the given (simulated) period. It must
// be called exactly once, before any other operation.
//
func (s *Sequencer) Start(period time.Duration) error {
	if s.state != stateIdle {
		return fault("start", "clock already started")
	}
	if period <= 0 {
		return fault("start", "invalid clock period "+period.String())
	}
	s.period = period
	s.req = make(chan int)
	s.ack = make(chan uint64)
	s.state = stateStarted
	go clock(s.dut, s.req, s.ack)
	return nil
}

func clock(dut DUT, req <-chan int, ack chan<- uint64) {
	var phase uint64
	for n := range req {
		for ; n > 0; n-- {
			dut.Clock()
			phase++
		}
		ack <- phase
	}
}

// Reset applies the reset protocol: enable asserted, inputs zeroed, rst_n
// held low for low phases, then high for high phases. It must be called once,
// after Start and before any stimulus is applied.
//
func (s *Sequencer) Reset(low, high int) error {
	switch s.state {
	case stateIdle:
		return fault("reset", "clock not started")
	case stateStopped:
		return fault("reset", "clock stopped")
	case stateResetting, stateReady:
		return fault("reset", "reset already applied")
	}
	if low < 1 {
		return fault("reset", "reset must be held low for at least one phase, got "+strconv.Itoa(low))
	}
	if high < 0 {
		return fault("reset", "negative settle phase count "+strconv.Itoa(high))
	}
	s.state = stateResetting
	s.dut.SetEnable(true)
	s.dut.SetA(0)
	s.dut.SetB(0)
	s.dut.SetResetN(false)
	if err := s.Advance(low); err != nil {
		return err
	}
	s.dut.SetResetN(true)
	if err := s.Advance(high); err != nil {
		return err
	}
	s.state = stateReady
	return nil
}

// Advance suspends the caller until exactly n clock phases (rising edges)
// have elapsed. Advance(0) returns immediately.
//
func (s *Sequencer) Advance(n int) error {
	switch s.state {
	case stateIdle:
		return fault("advance", "clock not started")
	case stateStopped:
		return fault("advance", "clock stopped")
	}
	if n < 0 {
		return fault("advance", "negative phase count "+strconv.Itoa(n))
	}
	if n == 0 {
		return nil
	}
	s.req <- n
	s.phase = <-s.ack
	return nil
}

// Stop stops the clock goroutine. Any further operation on s fails.
// Stop may be called more than once.
//
func (s *Sequencer) Stop() {
	if s.req != nil && s.state != stateStopped {
		close(s.req)
	}
	s.state = stateStopped
}

// Ready returns true once the reset protocol has completed and the clock is
// still running.
//
func (s *Sequencer) Ready() bool { return s.state == stateReady }

// Phase returns the number of clock phases elapsed since Start.
//
func (s *Sequencer) Phase() uint64 { return s.phase }

// Period returns the clock period.
//
func (s *Sequencer) Period() time.Duration { return s.period }

// SimTime returns the simulated time elapsed since Start.
//
func (s *Sequencer) SimTime() time.Duration { return time.Duration(s.phase) * s.period }

// DUT returns the device driven by s.
//
func (s *Sequencer) DUT() DUT { return s.dut }
