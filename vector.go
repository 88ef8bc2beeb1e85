// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwverify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Vector is a stimulus pair applied to the A and B inputs of the DUT for
// one verification step.
//
type Vector struct {
	A, B uint8
}

func (v Vector) String() string {
	return fmt.Sprintf("A=%08b, B=%08b", v.A, v.B)
}

// A Sequence is a lazy, finite sequence of stimulus vectors. A Sequence is
// consumed once; generators return a fresh Sequence on every call.
//
type Sequence interface {
	// Next returns the next vector. ok is false once the sequence is exhausted.
	Next() (v Vector, ok bool)
	// Len returns the total number of vectors in the sequence.
	Len() int
}

const exhaustiveLen = 256 * 256

type exhaustive struct {
	i int
}

func (e *exhaustive) Next() (Vector, bool) {
	if e.i >= exhaustiveLen {
		return Vector{}, false
	}
	v := Vector{A: uint8(e.i >> 8), B: uint8(e.i)}
	e.i++
	return v, true
}

func (e *exhaustive) Len() int { return exhaustiveLen }

// Exhaustive returns a sequence of all 65536 (A, B) pairs in row-major
// order: A is the outer loop, B the inner one.
//
func Exhaustive() Sequence {
	return &exhaustive{}
}

type directed struct {
	vs []Vector
	i  int
}

func (d *directed) Next() (Vector, bool) {
	if d.i >= len(d.vs) {
		return Vector{}, false
	}
	v := d.vs[d.i]
	d.i++
	return v, true
}

func (d *directed) Len() int { return len(d.vs) }

// Directed returns a sequence over the given (A, B) pairs, in order and
// without deduplication. Every component must be in [0, 255], otherwise
// Directed returns a *RangeFault for the first offending pair. Values are
// never truncated.
//
func Directed(pairs ...[2]int) (Sequence, error) {
	vs := make([]Vector, len(pairs))
	for i, p := range pairs {
		for c, x := range p {
			if x < 0 || x > 255 {
				return nil, &RangeFault{Index: i, Component: "AB"[c : c+1], Value: x}
			}
		}
		vs[i] = Vector{A: uint8(p[0]), B: uint8(p[1])}
	}
	return &directed{vs: vs}, nil
}

// ParsePairs parses a comma separated list of a:b pairs. Values use Go
// integer literal syntax: 204, 0xcc, 0b11001100 and 0o314 all denote the
// same value. Range checking is left to Directed, so that 11001100 (decimal)
// is reported as a RangeFault rather than silently truncated.
//
func ParsePairs(s string) ([][2]int, error) {
	var out [][2]int
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	for i, item := range strings.Split(s, ",") {
		ab := strings.Split(strings.TrimSpace(item), ":")
		if len(ab) != 2 {
			return nil, errors.Errorf("vector #%d: expected a:b, got %q", i, strings.TrimSpace(item))
		}
		var p [2]int
		for c := range ab {
			n, err := strconv.ParseInt(strings.TrimSpace(ab[c]), 0, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "vector #%d", i)
			}
			p[c] = int(n)
		}
		out = append(out, p)
	}
	return out, nil
}
