// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwverify

import (
	"fmt"

	"github.com/pkg/errors"
)

// Terms holds the intermediate terms of the golden model for a vector.
//
type Terms struct {
	NotA     uint8 // ^A
	AAndB    uint8 // A & B
	NotAAndB uint8 // ^A & B
	Out      uint8 // (A & B) | (^A & B)
}

// GoldenTerms computes the golden model for v.
//
func GoldenTerms(v Vector) Terms {
	notA := ^v.A
	t := Terms{
		NotA:     notA,
		AAndB:    v.A & v.B,
		NotAAndB: notA & v.B,
	}
	t.Out = t.AAndB | t.NotAAndB
	return t
}

func (t Terms) String() string {
	return fmt.Sprintf("¬A=%08b, A∧B=%08b, ¬A∧B=%08b", t.NotA, t.AAndB, t.NotAAndB)
}

// Expected returns the expected DUT output for inputs a and b:
//
//	(a & b) | (^a & b)
//
func Expected(a, b uint8) uint8 {
	return (a & b) | (^a & b)
}

// CheckIdentity checks that the golden model reduces to Out = B over the whole
// input space. The output of a correct DUT therefore never depends on A.
//
func CheckIdentity() error {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			if e := Expected(uint8(a), uint8(b)); e != uint8(b) {
				return errors.Errorf("golden model does not reduce to B for A=%08b, B=%08b: got %08b", a, b, e)
			}
		}
	}
	return nil
}
