// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwverify

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// A Case is a named verification run: a stimulus strategy and the number of
// settle phases to wait before sampling each vector.
//
type Case struct {
	Name    string
	Settle  int
	Vectors func() (Sequence, error)
}

// ExhaustiveCase returns a case sweeping the whole input space.
//
func ExhaustiveCase(settle int) Case {
	return Case{
		Name:    "exhaustive",
		Settle:  settle,
		Vectors: func() (Sequence, error) { return Exhaustive(), nil },
	}
}

// DirectedCase returns a case running the given directed vectors.
//
func DirectedCase(name string, settle int, pairs ...[2]int) Case {
	return Case{
		Name:    name,
		Settle:  settle,
		Vectors: func() (Sequence, error) { return Directed(pairs...) },
	}
}

// CornerVectors returns the all-zeros / all-ones input combinations.
//
func CornerVectors() [][2]int {
	return [][2]int{{0, 0}, {0, 255}, {255, 0}, {255, 255}}
}

// CheckerVectors returns alternating bit patterns on A and B.
//
func CheckerVectors() [][2]int {
	return [][2]int{
		{0b11001100, 0b10101010},
		{0b10101010, 0b11001100},
		{0b01010101, 0b10101010},
		{0b10101010, 0b01010101},
		{0b00001111, 0b11110000},
		{0b11110000, 0b00001111},
	}
}

// WalkingVectors returns a walking one on A with B all ones, on B with A all
// ones, then on both.
//
func WalkingVectors() [][2]int {
	var vs [][2]int
	for i := 0; i < 8; i++ {
		vs = append(vs, [2]int{1 << uint(i), 0xff})
	}
	for i := 0; i < 8; i++ {
		vs = append(vs, [2]int{0xff, 1 << uint(i)})
	}
	for i := 0; i < 8; i++ {
		vs = append(vs, [2]int{1 << uint(i), 1 << uint(i)})
	}
	return vs
}

// DefaultCases returns the built-in cases: exhaustive, corners, checker and
// walking.
//
func DefaultCases(settle int) []Case {
	return []Case{
		ExhaustiveCase(settle),
		DirectedCase("corners", settle, CornerVectors()...),
		DirectedCase("checker", settle, CheckerVectors()...),
		DirectedCase("walking", settle, WalkingVectors()...),
	}
}

// CaseResult is the outcome of a Case.
//
type CaseResult struct {
	Name   string
	Report Report
	Err    error
}

// A Suite runs a list of cases, each one against a fresh DUT and Sequencer.
//
type Suite struct {
	Cases     []Case
	Period    time.Duration
	ResetLow  int
	ResetHigh int
	// Options for the Runner of every case.
	Options []Option
	// Log, if not nil, receives start/reset/summary lines for every case.
	Log *log.Logger
}

// NewSuite returns a Suite for the given cases using the default clock period
// and reset protocol.
//
func NewSuite(cases ...Case) *Suite {
	return &Suite{
		Cases:     cases,
		Period:    DefaultPeriod,
		ResetLow:  DefaultResetLow,
		ResetHigh: DefaultResetHigh,
	}
}

// Select keeps only the cases with the given names, in the given order.
//
func (s *Suite) Select(names ...string) error {
	var cs []Case
	for _, n := range names {
		i := slices.IndexFunc(s.Cases, func(c Case) bool { return c.Name == n })
		if i < 0 {
			return errors.New("unknown case " + n)
		}
		cs = append(cs, s.Cases[i])
	}
	s.Cases = cs
	return nil
}

// Names returns the names of the cases in s.
//
func (s *Suite) Names() []string {
	names := make([]string, len(s.Cases))
	for i := range s.Cases {
		names[i] = s.Cases[i].Name
	}
	return names
}

func (s *Suite) logf(format string, args ...interface{}) {
	if s.Log != nil {
		s.Log.Printf(format, args...)
	}
}

// RunCase runs a single case against dut: the stimulus sequence is built
// first, so that invalid directed vectors are rejected before any port is
// driven, then the clock is started, the reset protocol applied and every
// vector checked.
//
func (s *Suite) RunCase(c Case, dut DUT) (Report, error) {
	vs, err := c.Vectors()
	if err != nil {
		return Report{}, err
	}

	s.logf("%s: start, clock period %v", c.Name, s.Period)
	seq := NewSequencer(dut)
	if err = seq.Start(s.Period); err != nil {
		return Report{}, err
	}
	defer seq.Stop()

	s.logf("%s: reset", c.Name)
	if err = seq.Reset(s.ResetLow, s.ResetHigh); err != nil {
		return Report{}, err
	}

	s.logf("%s: checking %d vectors, %d settle phases", c.Name, vs.Len(), c.Settle)
	rep, err := NewRunner(seq, s.Options...).Run(vs, c.Settle)
	if err != nil {
		return rep, err
	}
	s.logf("%s: all %d vectors passed in %v simulated", c.Name, rep.Vectors, seq.SimTime())
	return rep, nil
}

// Run runs every case in order. newDUT is called once per case; if the
// returned DUT implements io.Closer, it is closed once the case completes.
// Run stops at the first failing case and returns the results so far along
// with the case error.
//
func (s *Suite) Run(newDUT func() (DUT, error)) ([]CaseResult, error) {
	var results []CaseResult
	for _, c := range s.Cases {
		dut, err := newDUT()
		if err != nil {
			return results, errors.Wrap(err, "case "+c.Name+": create DUT")
		}
		rep, err := s.RunCase(c, dut)
		if cl, ok := dut.(io.Closer); ok {
			if cerr := cl.Close(); cerr != nil && err == nil {
				err = errors.Wrap(cerr, "close DUT")
			}
		}
		results = append(results, CaseResult{Name: c.Name, Report: rep, Err: err})
		if err != nil {
			return results, errors.Wrap(err, "case "+c.Name)
		}
	}
	s.logf("%d cases passed: %s", len(results), strings.Join(s.Names(), ", "))
	return results, nil
}
