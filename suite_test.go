package hwverify_test

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/db47h/hwverify"
	"github.com/db47h/hwverify/hwtest"
	"github.com/pkg/errors"
)

func TestSuite_default_cases(t *testing.T) {
	var buf bytes.Buffer
	s := hwverify.NewSuite(hwverify.DefaultCases(2)...)
	s.Log = log.New(&buf, "", 0)

	var duts []*hwtest.Model
	res, err := s.Run(func() (hwverify.DUT, error) {
		m := hwtest.NewModel(2)
		duts = append(duts, m)
		return m, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	names := []string{"exhaustive", "corners", "checker", "walking"}
	if len(res) != len(names) || len(duts) != len(names) {
		t.Fatalf("got %d results for %d DUTs, want %d", len(res), len(duts), len(names))
	}
	for i, r := range res {
		if r.Name != names[i] || r.Err != nil || !r.Report.OK() {
			t.Fatalf("case #%d: unexpected result %+v", i, r)
		}
	}
	if res[0].Report.Vectors != 65536 || res[3].Report.Vectors != 24 {
		t.Fatalf("unexpected vector counts %d, %d", res[0].Report.Vectors, res[3].Report.Vectors)
	}
	// every case runs its own reset on its own DUT
	for i, m := range duts {
		if m.ResetCycles != hwverify.DefaultResetLow {
			t.Fatalf("DUT #%d: %d reset cycles", i, m.ResetCycles)
		}
	}
	if !strings.Contains(buf.String(), "corners: all 4 vectors passed") {
		t.Fatalf("unexpected log:\n%s", buf.String())
	}
}

func TestSuite_range_fault(t *testing.T) {
	m := hwtest.NewModel(1)
	s := hwverify.NewSuite(hwverify.DirectedCase("binary", 1, [2]int{11001100, 10101010}))
	res, err := s.Run(func() (hwverify.DUT, error) { return m, nil })
	if _, ok := errors.Cause(err).(*hwverify.RangeFault); !ok {
		t.Fatalf("expected *RangeFault, got %v", err)
	}
	if len(res) != 1 || res[0].Err == nil {
		t.Fatalf("unexpected results %+v", res)
	}
	// rejected before driving any port
	if m.Cycles != 0 || m.EnableSet {
		t.Fatalf("DUT driven: %d cycles, enable %v", m.Cycles, m.EnableSet)
	}
}

func TestSuite_stops_on_failure(t *testing.T) {
	s := hwverify.NewSuite(hwverify.DefaultCases(1)...)
	if err := s.Select("corners", "checker"); err != nil {
		t.Fatal(err)
	}
	res, err := s.Run(func() (hwverify.DUT, error) { return hwtest.NewModel(1).StuckAt(7, false), nil })
	mm, ok := errors.Cause(err).(*hwverify.Mismatch)
	if !ok {
		t.Fatalf("expected *Mismatch, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "case corners: ") {
		t.Fatalf("unexpected error %q", err)
	}
	if mm.Index != 1 || mm.Actual != 0b01111111 {
		t.Fatalf("unexpected mismatch %v", mm)
	}
	if len(res) != 1 {
		t.Fatalf("%d cases run, want 1", len(res))
	}
}

func TestSuite_select(t *testing.T) {
	s := hwverify.NewSuite(hwverify.DefaultCases(1)...)
	if err := s.Select("checker", "corners"); err != nil {
		t.Fatal(err)
	}
	if names := strings.Join(s.Names(), ","); names != "checker,corners" {
		t.Fatalf("Names() = %q", names)
	}
	if err := s.Select("nope"); err == nil {
		t.Fatal("expected error for unknown case")
	}
}
