package hwverify_test

import (
	"testing"

	"github.com/db47h/hwverify"
	"github.com/pkg/errors"
)

func TestExhaustive(t *testing.T) {
	var seen [256 * 256]bool
	s := hwverify.Exhaustive()
	if s.Len() != 65536 {
		t.Fatalf("Len() = %d, want 65536", s.Len())
	}
	n := 0
	for {
		v, ok := s.Next()
		if !ok {
			break
		}
		// row-major: A outer, B inner
		if exp := (hwverify.Vector{A: uint8(n >> 8), B: uint8(n)}); v != exp {
			t.Fatalf("vector #%d = %v, want %v", n, v, exp)
		}
		i := int(v.A)<<8 | int(v.B)
		if seen[i] {
			t.Fatalf("duplicate vector %v", v)
		}
		seen[i] = true
		n++
	}
	if n != 65536 {
		t.Fatalf("got %d vectors, want 65536", n)
	}
	if _, ok := s.Next(); ok {
		t.Fatal("exhausted sequence returned a vector")
	}

	// generators return fresh sequences
	s1 := hwverify.Exhaustive()
	s1.Next()
	s1.Next()
	if v, _ := hwverify.Exhaustive().Next(); v != (hwverify.Vector{}) {
		t.Fatalf("fresh sequence starts at %v", v)
	}
}

func TestDirected(t *testing.T) {
	pairs := [][2]int{{204, 170}, {0, 255}, {204, 170}, {255, 0}}
	s, err := hwverify.Directed(pairs...)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != len(pairs) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(pairs))
	}
	// the sequence must not alias the caller's list
	pairs[0] = [2]int{1, 1}
	exp := []hwverify.Vector{{A: 204, B: 170}, {A: 0, B: 255}, {A: 204, B: 170}, {A: 255, B: 0}}
	for i, e := range exp {
		v, ok := s.Next()
		if !ok || v != e {
			t.Fatalf("vector #%d = %v (%v), want %v", i, v, ok, e)
		}
	}
	if _, ok := s.Next(); ok {
		t.Fatal("exhausted sequence returned a vector")
	}
}

func TestDirected_range(t *testing.T) {
	td := []struct {
		name  string
		pairs [][2]int
		index int
		comp  string
		value int
	}{
		{"a_high", [][2]int{{256, 0}}, 0, "A", 256},
		{"b_negative", [][2]int{{0, 0}, {0, -1}}, 1, "B", -1},
		{"binary_as_decimal", [][2]int{{0, 0}, {1, 1}, {11001100, 10101010}}, 2, "A", 11001100},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := hwverify.Directed(d.pairs...)
			rf, ok := errors.Cause(err).(*hwverify.RangeFault)
			if !ok {
				t.Fatalf("expected *RangeFault, got %v", err)
			}
			if rf.Index != d.index || rf.Component != d.comp || rf.Value != d.value {
				t.Fatalf("got %+v, want index %d, %s=%d", rf, d.index, d.comp, d.value)
			}
		})
	}
}

func TestParsePairs(t *testing.T) {
	ps, err := hwverify.ParsePairs("204:170, 0b11001100:0xaa,0o314:0, 11001100:0")
	if err != nil {
		t.Fatal(err)
	}
	exp := [][2]int{{204, 170}, {204, 170}, {204, 0}, {11001100, 0}}
	if len(ps) != len(exp) {
		t.Fatalf("got %v, want %v", ps, exp)
	}
	for i := range exp {
		if ps[i] != exp[i] {
			t.Fatalf("pair #%d = %v, want %v", i, ps[i], exp[i])
		}
	}

	for _, s := range []string{"1:2:3", "x:1", "12"} {
		if _, err := hwverify.ParsePairs(s); err == nil {
			t.Errorf("ParsePairs(%q): expected error", s)
		}
	}
}
