// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwverify

import (
	"fmt"
	"log"
	"strconv"

	"github.com/pkg/errors"
)

// Result is the outcome of one verification step.
//
type Result struct {
	Index    int // position in the sequence
	Vector   Vector
	Expected uint8
	Actual   uint8
	Phase    uint64 // clock phase at which Actual was sampled
}

// Pass returns true if the DUT output matched the golden model on all 8 bits.
//
func (r Result) Pass() bool { return r.Expected == r.Actual }

func (r Result) String() string {
	status := "ok"
	if !r.Pass() {
		status = "FAIL"
	}
	return fmt.Sprintf("#%d %v, %v, Expected Output=%08b, Got=%08b: %s",
		r.Index, r.Vector, GoldenTerms(r.Vector), r.Expected, r.Actual, status)
}

// Report aggregates the results of a run.
//
type Report struct {
	Vectors  int // vectors checked
	Passed   int
	Failures []Result
}

// OK returns true if every checked vector passed.
//
func (r Report) OK() bool { return len(r.Failures) == 0 }

// An Option configures a Runner.
//
type Option func(*Runner)

// WithLogger sets the logger used for progress and diagnostics. By default a
// Runner does not log.
//
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// Verbose enables logging of every checked vector.
//
func Verbose() Option {
	return func(r *Runner) { r.verbose = true }
}

// ProgressEvery logs a progress line every n vectors. n <= 0 disables it.
//
func ProgressEvery(n int) Option {
	return func(r *Runner) { r.progress = n }
}

// KeepGoing makes Run check every vector of a sequence instead of stopping at
// the first mismatch.
//
func KeepGoing() Option {
	return func(r *Runner) { r.keepGoing = true }
}

// A Runner applies stimulus vectors to the DUT of a Sequencer and checks the
// sampled outputs against the golden model.
//
type Runner struct {
	seq       *Sequencer
	log       *log.Logger
	verbose   bool
	keepGoing bool
	progress  int
}

// NewRunner returns a new Runner driving the DUT of seq.
//
func NewRunner(seq *Sequencer, opts ...Option) *Runner {
	r := &Runner{seq: seq}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.log != nil {
		r.log.Printf(format, args...)
	}
}

// Check drives v onto the DUT inputs, advances the clock by settle phases,
// samples the output and compares it with the golden model. index is the
// position of v in its sequence and is only used for reporting.
//
// settle must be at least 1: sampling in the same phase the inputs were
// driven reads stale state.
//
// A DUT output mismatch is reported as a *Mismatch error along with the
// result.
//
func (r *Runner) Check(index int, v Vector, settle int) (Result, error) {
	if !r.seq.Ready() {
		return Result{}, fault("check", "sequencer not reset")
	}
	if settle < 1 {
		return Result{}, fault("check", "settle phases must be at least 1, got "+strconv.Itoa(settle))
	}
	dut := r.seq.DUT()
	dut.SetA(v.A)
	dut.SetB(v.B)
	if err := r.seq.Advance(settle); err != nil {
		return Result{}, err
	}
	res := Result{
		Index:    index,
		Vector:   v,
		Expected: Expected(v.A, v.B),
		Actual:   dut.Out(),
		Phase:    r.seq.Phase(),
	}
	if r.verbose {
		r.logf("%v", res)
	}
	if !res.Pass() {
		return res, &Mismatch{res}
	}
	return res, nil
}

// Run checks every vector of s in order, waiting settle phases before
// sampling each one. Vector i is fully checked before vector i+1 is driven.
//
// Run stops at the first mismatch and returns it as a *Mismatch. With the
// KeepGoing option, it checks all vectors and returns the first mismatch
// wrapped with the failure count. Sequencing faults always stop the run.
//
func (r *Runner) Run(s Sequence, settle int) (Report, error) {
	var (
		rep   Report
		first error
	)
	total := s.Len()
	for i := 0; ; i++ {
		v, ok := s.Next()
		if !ok {
			break
		}
		res, err := r.Check(i, v, settle)
		if err != nil {
			m, ok := err.(*Mismatch)
			if !ok {
				return rep, err
			}
			rep.Vectors++
			rep.Failures = append(rep.Failures, res)
			r.logf("%v", m)
			if !r.keepGoing {
				return rep, m
			}
			if first == nil {
				first = m
			}
			continue
		}
		rep.Vectors++
		rep.Passed++
		if r.progress > 0 && rep.Vectors%r.progress == 0 {
			r.logf("%d/%d vectors checked, phase %d", rep.Vectors, total, r.seq.Phase())
		}
	}
	if first != nil {
		return rep, errors.Wrapf(first, "%d of %d vectors failed", len(rep.Failures), rep.Vectors)
	}
	r.logf("all %d vectors passed", rep.Vectors)
	return rep, nil
}
