package hwsim_test

import (
	"reflect"
	"testing"

	hl "github.com/db47h/hwverify/hwlib"
	"github.com/db47h/hwverify/hwsim"
	"github.com/db47h/hwverify/hwtest"
)

type testMux struct {
	A   [4]int `hw:"in"`
	B   [4]int `hw:"in"`
	S   int    `hw:"in,sel"`
	Out [4]int `hw:"out"`
}

func (m *testMux) Update(c *hwsim.Circuit) {
	src := m.A
	if c.Get(m.S) {
		src = m.B
	}
	for i, p := range src {
		c.Set(m.Out[i], c.Get(p))
	}
}

func Test_MakePart(t *testing.T) {
	spec := hwsim.MakePart((*testMux)(nil))
	if spec.Name != "testMux" {
		t.Fatalf("Name = %q", spec.Name)
	}
	exp := []string{"a[0]", "a[1]", "a[2]", "a[3]", "b[0]", "b[1]", "b[2]", "b[3]", "sel"}
	if !reflect.DeepEqual(spec.Inputs, exp) {
		t.Fatalf("Inputs = %v, expected %v", spec.Inputs, exp)
	}
	hwtest.ComparePart(t, testTPC, hl.MuxN(4), spec.NewPart)
}

// xorMask flips the input bits set in Mask.
type xorMask struct {
	In   [4]int `hw:"in"`
	Out  [4]int `hw:"out"`
	Mask uint8
}

func (x *xorMask) Update(c *hwsim.Circuit) {
	for i := range x.In {
		c.Set(x.Out[i], c.Get(x.In[i]) != (x.Mask&(1<<uint(i)) != 0))
	}
}

func Test_MakePart_template(t *testing.T) {
	var in, out int64 = 0x3, 0
	c, err := hwsim.NewCircuit(1, testTPC,
		hl.InputN(4, func() int64 { return in })("out=x"),
		hwsim.MakePart(&xorMask{Mask: 0x5}).NewPart("in=x, out=y"),
		hl.OutputN(4, func(v int64) { out = v })("in=y"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	c.TickTock()
	if out != 0x6 {
		t.Fatalf("out = %04b, expected 0110", out)
	}
}

func Test_MakePart_panics(t *testing.T) {
	for _, u := range []hwsim.Updater{badTagPart{}, badTypePart{}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%T: expected panic", u)
				}
			}()
			hwsim.MakePart(u)
		}()
	}
}

type badTagPart struct {
	In int `hw:"inout"`
}

func (badTagPart) Update(*hwsim.Circuit) {}

type badTypePart struct {
	In string `hw:"in"`
}

func (badTypePart) Update(*hwsim.Circuit) {}
