package testutil

import "testing"

func TestRequireNearlyEqual(t *testing.T) {
	RequireNearlyEqual(t, 1.0+1e-12, 1.0, 1e-9)
}

func TestRequireSliceNearlyEqual(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.0 + 1e-12, 3.0}
	RequireSliceNearlyEqual(t, a, b, 1e-9)
}

func TestRequireFinite(t *testing.T) {
	RequireFinite(t, []float64{0, -1.5, 2.25})
}
