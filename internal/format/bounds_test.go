package format

import (
	"errors"
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(6, 7); !ok || p != 42 {
		t.Fatalf("MulOverflowSafe(6,7)=%d,%v want 42,true", p, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt, 2); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 2); ok {
		t.Fatalf("negative operands must be rejected")
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if got, _ := Slice(data, 1, 3); cap(got) != 3 {
		t.Fatalf("Slice must cap the view, got cap %d", cap(got))
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if !Has(data, 5, 0) {
		t.Fatalf("empty range at end should be in bounds")
	}
	if Has(data, 6, 0) {
		t.Fatalf("empty range past end should be out of bounds")
	}
}

func TestTable(t *testing.T) {
	data := make([]byte, 32)
	tbl, err := Table(data, "tbl", 8, 3, 8)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if Records(tbl, 8) != 3 || len(Record(tbl, 2, 8)) != 8 {
		t.Fatalf("unexpected table shape: len=%d", len(tbl))
	}

	_, err = Table(data, "tbl", 8, 4, 8)
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RangeError, got %v", err)
	}
	if re.Offset != 8 || re.Length != 32 || re.BufLen != 32 || re.What != "tbl" {
		t.Fatalf("unexpected RangeError: %+v", re)
	}
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("RangeError must unwrap to ErrOutOfBounds")
	}

	if _, err := Table(data, "tbl", 0, math.MaxUint32, EntryV6Size); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("huge count must be out of bounds, got %v", err)
	}
}

func TestPeekVersion(t *testing.T) {
	if _, err := PeekVersion([]byte{6, 0, 0}); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	v, err := PeekVersion([]byte{6, 0, 0, 0})
	if err != nil || v != Version6 {
		t.Fatalf("PeekVersion = %d, %v", v, err)
	}
}

func TestTableEmptyIsNotChecked(t *testing.T) {
	tbl, err := Table(make([]byte, 4), "tbl", 0xFFFFFFFF, 0, EntryV2Size)
	if err != nil || Records(tbl, EntryV2Size) != 0 {
		t.Fatalf("empty table: %d records, %v", Records(tbl, EntryV2Size), err)
	}
}
