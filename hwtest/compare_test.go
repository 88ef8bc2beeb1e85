package hwtest_test

import (
	"testing"

	hl "github.com/db47h/hwverify/hwlib"
	hw "github.com/db47h/hwverify/hwsim"
	"github.com/db47h/hwverify/hwtest"
)

func TestComparePart(t *testing.T) {
	or, err := hw.Chip("custom_or", "a,b", "out",
		hl.Nand("a=a, b=a, out=notA"),
		hl.Nand("a=b, b=b, out=notB"),
		hl.Nand("a=notA, b=notB, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 4, hl.Or, or)
}

func TestComparePart_random(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping random comparison in short mode")
	}
	// 18 inputs: too many for an exhaustive run.
	and9, err := hw.Chip("AND9", "a[9], b[9]", "out[9]",
		hl.NotN(9)("in=a, out=notA"),
		hl.NotN(9)("in=b, out=notB"),
		hl.GateN("NOR", 9, func(a, b bool) bool { return !(a || b) })("a=notA, b=notB, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 4, hl.AndN(9), and9)
}
