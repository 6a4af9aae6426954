package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	result := NewVector3(5, 7, 9).Sub(NewVector3(1, 2, 3))

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Scale(t *testing.T) {
	result := NewVector3(1, -2, 3).Scale(2)

	expected := NewVector3(2, -4, 6)
	if result != expected {
		t.Errorf("Scale failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Normalize(t *testing.T) {
	normalized := NewVector3(3, 4, 0).Normalize()

	if math.Abs(normalized.Length()-1.0) > 1e-10 {
		t.Errorf("Normalize failed: expected length 1, got %v", normalized.Length())
	}

	zero := Vector3{}.Normalize()
	if zero != (Vector3{}) {
		t.Errorf("Normalize of zero failed: expected zero vector, got %v", zero)
	}
}

func TestVector3Cross(t *testing.T) {
	result := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0))

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	result := NewVector3(1, 2, 3).Dot(NewVector3(4, 5, 6))

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestAverage(t *testing.T) {
	result := Average(NewVector3(0, 0, 0), NewVector3(1, 2, 4))

	expected := NewVector3(0.5, 1, 2)
	if result != expected {
		t.Errorf("Average failed: expected %v, got %v", expected, result)
	}
}

func TestApproxEqual(t *testing.T) {
	a := NewVector3(1, 1, 1)
	if !a.ApproxEqual(NewVector3(1.00005, 0.99995, 1), 1e-4) {
		t.Error("ApproxEqual failed: expected points within tolerance to be equal")
	}
	if a.ApproxEqual(NewVector3(1.0002, 1, 1), 1e-4) {
		t.Error("ApproxEqual failed: expected points outside tolerance to differ")
	}
}

func TestBoundingBox(t *testing.T) {
	box := NewBoundingBox()
	if !box.Empty() {
		t.Fatal("new bounding box should be empty")
	}

	box.Extend(NewVector3(-1, 0, 2))
	box.Extend(NewVector3(3, 4, 2))

	if size := box.Size(); size != NewVector3(4, 4, 0) {
		t.Errorf("Size failed: expected (4, 4, 0), got %v", size)
	}
	if center := box.Center(); center != NewVector3(1, 2, 2) {
		t.Errorf("Center failed: expected (1, 2, 2), got %v", center)
	}
	if math.Abs(box.Diagonal()-math.Sqrt(32)) > 1e-10 {
		t.Errorf("Diagonal failed: expected %v, got %v", math.Sqrt(32), box.Diagonal())
	}
}
