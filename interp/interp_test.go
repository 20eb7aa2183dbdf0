package interp

import (
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// =============================================================================
// Construction Tests
// =============================================================================

func TestNew_Valid(t *testing.T) {
	curve, err := New([]Point{{0, 1}, {0.5, 1.2}, {1, 2}})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if got := curve.Interpolate(0); got != 1 {
		t.Errorf("Interpolate(0) = %v, want 1", got)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{
			name:   "empty",
			points: nil,
		},
		{
			name:   "duplicate x",
			points: []Point{{0, 1}, {0, 2}},
		},
		{
			name:   "unsorted",
			points: []Point{{0, 1}, {1, 2}, {0.5, 1.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.points); err == nil {
				t.Errorf("New(%v) expected error, got nil", tt.points)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	points := []Point{{0, 1}, {1, 2}}
	curve, err := New(points)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	points[1].Y = 100

	if got := curve.Interpolate(1); got != 2 {
		t.Errorf("Interpolate(1) = %v after mutating input, want 2", got)
	}
}

// =============================================================================
// Interpolation Tests
// =============================================================================

func TestInterpolate(t *testing.T) {
	curve, err := New([]Point{{0, 1}, {0.5, 1}, {1, 2}})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"first point", 0, 1},
		{"middle point", 0.5, 1},
		{"last point", 1, 2},
		{"between flat segment", 0.25, 1},
		{"between rising segment", 0.75, 1.5},
		{"clamp below domain", -10, 1},
		{"clamp above domain", 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := curve.Interpolate(tt.x); !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("Interpolate(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestInterpolate_Flat(t *testing.T) {
	curve := Flat(1.5)

	for _, x := range []float64{-1, 0, 0.5, 1, 100} {
		if got := curve.Interpolate(x); got != 1.5 {
			t.Errorf("Flat(1.5).Interpolate(%v) = %v, want 1.5", x, got)
		}
	}
}

func TestInterpolate_ZeroCurve(t *testing.T) {
	var curve LinearInterp
	if got := curve.Interpolate(0.5); got != 0 {
		t.Errorf("zero curve Interpolate(0.5) = %v, want 0", got)
	}
}

func TestEmpty(t *testing.T) {
	var zero LinearInterp
	if !zero.Empty() {
		t.Error("zero curve Empty() = false, want true")
	}
	if Flat(1).Empty() {
		t.Error("Flat(1).Empty() = true, want false")
	}
}

func TestInterpolate_SinglePoint(t *testing.T) {
	curve, err := New([]Point{{0.5, 3}})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	for _, x := range []float64{0, 0.5, 1} {
		if got := curve.Interpolate(x); got != 3 {
			t.Errorf("Interpolate(%v) = %v, want 3", x, got)
		}
	}
}

func TestInterpolate_Deterministic(t *testing.T) {
	curve, err := New([]Point{{0, 0.8}, {0.3, 1.0}, {0.7, 1.3}, {1, 2.1}})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	for x := -0.2; x <= 1.2; x += 0.01 {
		first := curve.Interpolate(x)
		second := curve.Interpolate(x)
		if first != second {
			t.Fatalf("Interpolate(%v) not deterministic: %v != %v", x, first, second)
		}
	}
}
