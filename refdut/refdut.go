// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package refdut provides a reference device under test built from hwlib
// gates: an 8-bit block computing (A & B) | (^A & B), optionally registered,
// with a Tiny Tapeout style pinout (ui_in, uio_in, uo_out, ena, rst_n, clk).
//
package refdut

import (
	"strconv"

	"github.com/db47h/hwverify/hwlib"
	"github.com/db47h/hwverify/hwsim"
	"github.com/pkg/errors"
)

// Settle phases needed by each flavor of the device.
//
const (
	CombinationalSettle = 1
	RegisteredSettle    = 2
)

type stuck struct {
	bit int
	v   bool
}

type config struct {
	combinational bool
	spc           uint
	workers       int
	stuck         []stuck
}

// An Option configures a Device.
//
type Option func(*config) error

// Combinational builds a device without output register: the output follows
// the inputs after the gate delays and ignores ena and rst_n.
//
func Combinational() Option {
	return func(c *config) error {
		c.combinational = true
		return nil
	}
}

// StepsPerCycle sets the number of simulation steps per clock cycle.
//
func StepsPerCycle(n uint) Option {
	return func(c *config) error {
		c.spc = n
		return nil
	}
}

// Workers sets the number of goroutines updating the circuit.
//
func Workers(n int) Option {
	return func(c *config) error {
		c.workers = n
		return nil
	}
}

// StuckAt injects a stuck-at fault on output bit.
//
func StuckAt(bit int, v bool) Option {
	return func(c *config) error {
		if bit < 0 || bit > 7 {
			return errors.Errorf("stuck-at bit %d out of range [0, 7]", bit)
		}
		c.stuck = append(c.stuck, stuck{bit, v})
		return nil
	}
}

// Logic returns the combinational core of the device:
//
//	Inputs: a[8], b[8]
//	Outputs: out[8]
//	Function: out = (a & b) | (^a & b)
//
func Logic() (hwsim.NewPartFn, error) {
	return hwsim.Chip("AB_LOGIC", "a[8], b[8]", "out[8]",
		hwlib.NotN(8)("in=a, out=notA"),
		hwlib.AndN(8)("a=a, b=b, out=aAndB"),
		hwlib.AndN(8)("a=notA, b=b, out=notAAndB"),
		hwlib.OrN(8)("a=aAndB, b=notAAndB, out=out"),
	)
}

// Register returns an 8-bit register with enable and synchronous active-low
// reset:
//
//	Inputs: in[8], ena, rst_n
//	Outputs: out[8]
//	Function: out(t) = rst_n(t-1) ? (ena(t-1) ? in(t-1) : out(t-1)) : 0
//
func Register() (hwsim.NewPartFn, error) {
	parts := hwsim.Parts{
		hwlib.MuxN(8)("a=out, b=in, sel=ena, out=next"),
	}
	for i := 0; i < 8; i++ {
		n := strconv.Itoa(i)
		parts = append(parts, hwlib.And("a=next["+n+"], b=rst_n, out=d["+n+"]"))
	}
	parts = append(parts, hwlib.DFFN(8)("in=d, out=out"))
	return hwsim.Chip("REG8", "in[8], ena, rst_n", "out[8]", parts...)
}

// Device is a reference DUT simulated with hwsim. It implements hwverify.DUT.
//
type Device struct {
	c      *hwsim.Circuit
	a, b   uint8
	ena    bool
	rstN   bool
	out    uint8
	settle int
}

// New builds a new Device. The default is a registered device simulated with
// 16 steps per clock cycle by a single worker goroutine.
//
// Callers must call Close once the device is no longer needed.
//
func New(opts ...Option) (*Device, error) {
	cfg := config{spc: 16, workers: 1}
	for _, o := range opts {
		if err := o(&cfg); err != nil {
			return nil, err
		}
	}

	logic, err := Logic()
	if err != nil {
		return nil, errors.Wrap(err, "build logic")
	}

	out := newOutputStage(cfg.stuck)
	d := &Device{settle: RegisteredSettle}
	parts := hwsim.Parts{
		hwlib.InputN(8, func() int64 { return int64(d.a) })("out=ui_in"),
		hwlib.InputN(8, func() int64 { return int64(d.b) })("out=uio_in"),
		logic("a=ui_in, b=uio_in, out=f"),
	}
	if cfg.combinational {
		d.settle = CombinationalSettle
		parts = append(parts, out("in=f, uo_out=uo_out"))
	} else {
		reg, err := Register()
		if err != nil {
			return nil, errors.Wrap(err, "build register")
		}
		parts = append(parts,
			hwlib.Input(func() bool { return d.ena })("out=ena"),
			hwlib.Input(func() bool { return d.rstN })("out=rst_n"),
			reg("in=f, ena=ena, rst_n=rst_n, out=q"),
		)
		parts = append(parts, out("in=q, uo_out=uo_out"))
	}
	parts = append(parts, hwlib.OutputN(8, func(v int64) { d.out = uint8(v) })("in=uo_out"))

	d.c, err = hwsim.NewCircuit(cfg.workers, cfg.spc, parts...)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// outputStage drives the uo_out pins from in, forcing the bits set in Mask to
// their value in Force.
type outputStage struct {
	In    [8]int `hw:"in"`
	Out   [8]int `hw:"out,uo_out"`
	Mask  uint8
	Force uint8
}

func (o *outputStage) Update(c *hwsim.Circuit) {
	for i, p := range o.In {
		v := c.Get(p)
		if bit := uint8(1) << uint(i); o.Mask&bit != 0 {
			v = o.Force&bit != 0
		}
		c.Set(o.Out[i], v)
	}
}

func newOutputStage(faults []stuck) hwsim.NewPartFn {
	var o outputStage
	for _, f := range faults {
		bit := uint8(1) << uint(f.bit)
		o.Mask |= bit
		if f.v {
			o.Force |= bit
		} else {
			o.Force &^= bit
		}
	}
	return hwsim.MakePart(&o).NewPart
}

// SetA implements hwverify.DUT.
func (d *Device) SetA(v uint8) { d.a = v }

// SetB implements hwverify.DUT.
func (d *Device) SetB(v uint8) { d.b = v }

// SetEnable implements hwverify.DUT.
func (d *Device) SetEnable(on bool) { d.ena = on }

// SetResetN implements hwverify.DUT.
func (d *Device) SetResetN(v bool) { d.rstN = v }

// Clock implements hwverify.DUT. It runs the circuit for one whole clock
// cycle.
func (d *Device) Clock() { d.c.TickTock() }

// Out implements hwverify.DUT.
func (d *Device) Out() uint8 { return d.out }

// Settle returns the number of settle phases the device needs between driving
// its inputs and sampling its output.
//
func (d *Device) Settle() int { return d.settle }

// Steps returns the number of simulation steps run so far.
//
func (d *Device) Steps() uint { return d.c.Steps() }

// Close releases the resources of the simulated circuit.
//
func (d *Device) Close() error {
	d.c.Dispose()
	return nil
}
