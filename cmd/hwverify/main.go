// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command hwverify runs the verification harness against the reference device.
//
// Exit status is 0 when all vectors pass, 1 on an output mismatch and 2 on any
// other error (configuration, out of range vectors or sequencing faults).
//
// Every flag can also be set through the environment, e.g. HWVERIFY_MODE=suite.
//
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/db47h/hwverify"
	"github.com/db47h/hwverify/internal/config"
	"github.com/db47h/hwverify/refdut"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// exit codes
const (
	exitOK       = 0
	exitMismatch = 1
	exitFault    = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func newLogger(w io.Writer) *log.Logger {
	flags := 0
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		flags = log.Ltime | log.Lmicroseconds
	}
	return log.New(w, "hwverify: ", flags)
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("hwverify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, err := config.Load(fs, args)
	if err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		log.New(stderr, "hwverify: ", 0).Print(err)
		return exitFault
	}
	l := newLogger(stderr)

	s, err := newSuite(&cfg, l)
	if err != nil {
		l.Print(err)
		return exitFault
	}
	_, err = s.Run(deviceFactory(&cfg))
	return exitCode(l, err)
}

func newSuite(cfg *config.Config, l *log.Logger) (*hwverify.Suite, error) {
	var cases []hwverify.Case
	switch cfg.Mode {
	case config.ModeExhaustive:
		if err := hwverify.CheckIdentity(); err != nil {
			return nil, err
		}
		cases = append(cases, hwverify.ExhaustiveCase(cfg.Settle))
	case config.ModeDirected:
		pairs, err := hwverify.ParsePairs(cfg.Vectors)
		if err != nil {
			return nil, err
		}
		cases = append(cases, hwverify.DirectedCase("directed", cfg.Settle, pairs...))
	case config.ModeSuite:
		cases = hwverify.DefaultCases(cfg.Settle)
	}

	s := hwverify.NewSuite(cases...)
	if names := cfg.CaseNames(); cfg.Mode == config.ModeSuite && names != nil {
		if err := s.Select(names...); err != nil {
			return nil, err
		}
	}
	s.Period = cfg.Period
	s.ResetLow = cfg.ResetLow
	s.ResetHigh = cfg.ResetHigh
	s.Log = l
	s.Options = []hwverify.Option{hwverify.WithLogger(l), hwverify.ProgressEvery(cfg.Progress)}
	if cfg.Verbose {
		s.Options = append(s.Options, hwverify.Verbose())
	}
	if cfg.KeepGoing {
		s.Options = append(s.Options, hwverify.KeepGoing())
	}
	return s, nil
}

func deviceFactory(cfg *config.Config) func() (hwverify.DUT, error) {
	return func() (hwverify.DUT, error) {
		opts := []refdut.Option{
			refdut.StepsPerCycle(cfg.StepsPerCycle),
			refdut.Workers(cfg.Workers),
		}
		if cfg.Combinational {
			opts = append(opts, refdut.Combinational())
		}
		stuck, err := cfg.StuckBits()
		if err != nil {
			return nil, err
		}
		for _, f := range stuck {
			opts = append(opts, refdut.StuckAt(f.Bit, f.Value))
		}
		d, err := refdut.New(opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

func exitCode(l *log.Logger, err error) int {
	if err == nil {
		return exitOK
	}
	l.Printf("FAIL: %v", err)
	if _, ok := errors.Cause(err).(*hwverify.Mismatch); ok {
		return exitMismatch
	}
	return exitFault
}
