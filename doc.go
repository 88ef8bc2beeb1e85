// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwverify is a clock-synchronous verification harness for 8-bit
devices under test.

A Sequencer owns the simulated clock of a DUT. It starts a free-running clock,
applies the active-low reset protocol and advances time by whole clock phases
(rising edges). A Runner drives stimulus vectors onto the DUT inputs, waits a
configurable number of settle phases, samples the output and compares it with
the golden model

	Out = (A & B) | (^A & B)

which reduces to Out = B. The first mismatch aborts the run unless the Runner
is configured to keep going.

Typical use:

	seq := hwverify.NewSequencer(dut)
	if err := seq.Start(hwverify.DefaultPeriod); err != nil {
		return err
	}
	defer seq.Stop()
	if err := seq.Reset(hwverify.DefaultResetLow, hwverify.DefaultResetHigh); err != nil {
		return err
	}
	rep, err := hwverify.NewRunner(seq).Run(hwverify.Exhaustive(), 2)

*/
package hwverify
