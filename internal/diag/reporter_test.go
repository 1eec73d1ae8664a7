package diag

import (
	"testing"
)

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	r := &BagReporter{Bag: bag}

	b := ReportError(r, SemaArityMismatch, sp(10, 14), "sub expects 2 arguments, got 1").
		WithNote(sp(0, 3), "sub declared here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevError || len(d.Notes) != 1 || d.Notes[0].Msg != "sub declared here" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(&BagReporter{Bag: bag})

	r.Report(SynUnexpectedToken, SevError, sp(1, 2), "x", nil, nil)
	r.Report(SynUnexpectedToken, SevError, sp(1, 2), "different text, same defect", nil, nil)
	r.Report(SynUnexpectedToken, SevError, sp(2, 3), "x", nil, nil)

	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestMultiAndCountingReporter(t *testing.T) {
	a, b := NewBag(0), NewBag(0)
	counter := &CountingReporter{Next: MultiReporter{&BagReporter{Bag: a}, &BagReporter{Bag: b}}}

	counter.Report(SemaTypeMismatch, SevError, sp(0, 1), "e", nil, nil)
	counter.Report(SemaDuplicateImport, SevWarning, sp(0, 1), "w", nil, nil)

	if counter.Errors != 1 {
		t.Fatalf("Errors = %d", counter.Errors)
	}
	if a.Len() != 2 || b.Len() != 2 {
		t.Fatalf("fan-out lens %d %d", a.Len(), b.Len())
	}
}
