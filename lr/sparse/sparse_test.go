package sparse

import (
	"testing"
)

func TestMatrixSetGet(t *testing.T) {
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected 4711 at (2,3), have %d", v)
	}
	if v := M.Value(9, 9); v != -1 {
		t.Errorf("expected null value at (9,9), have %d", v)
	}
	M.Set(2, 3, 42)
	if M.ValueCount() != 1 || M.Value(2, 3) != 42 {
		t.Errorf("expected value at (2,3) to be overwritten")
	}
}

func TestMatrixOrder(t *testing.T) {
	M := NewIntMatrix(5, 5, DefaultNullValue)
	M.Set(4, 0, 1).Set(0, 4, 2).Set(2, 2, 3).Set(0, 0, 4).Set(2, 1, 5)
	var order []int32
	M.Each(func(i, j int, v int32) {
		order = append(order, v)
	})
	expected := []int32{4, 2, 5, 3, 1}
	for k, v := range expected {
		if order[k] != v {
			t.Fatalf("expected values in row/column order %v, have %v", expected, order)
		}
	}
	if M.Value(1, 1) != M.NullValue() {
		t.Errorf("expected null value at (1,1)")
	}
}

func TestMatrixRange(t *testing.T) {
	M := NewIntMatrix(2, 3, -1)
	if M.M() != 2 || M.N() != 3 {
		t.Errorf("unexpected dimensions %d x %d", M.M(), M.N())
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Set out of range to panic")
		}
	}()
	M.Set(2, 0, 1)
}
