// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwverify

// DUT is the device under test as seen by the harness.
//
// The clock and reset ports are driven exclusively by a Sequencer, A and B
// by a Runner. Implementations need not be safe for concurrent use: the
// harness never calls two methods at the same time.
//
type DUT interface {
	// SetA drives the first input bus (ui_in).
	SetA(v uint8)
	// SetB drives the second input bus (uio_in).
	SetB(v uint8)
	// SetEnable drives the enable input (ena).
	SetEnable(on bool)
	// SetResetN drives the active-low reset input (rst_n).
	SetResetN(v bool)
	// Clock runs the DUT for one full clock cycle, ending on a rising edge.
	Clock()
	// Out samples the output bus (uo_out).
	Out() uint8
}
