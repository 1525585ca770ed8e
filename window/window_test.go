package window

import (
	"math"
	"testing"
)

func TestGenerateGolden(t *testing.T) {
	// Half-taper window: cosine lobes over the outer quarter on each side,
	// flat in between.
	halfTaper := []float64{
		0.0, 0.6112604669781572, 1, 1,
		1, 1, 0.6112604669781572, 0.0,
	}
	hann := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}

	got, err := Tukey{Alpha: 0.5}.Generate(8)
	if err != nil {
		t.Fatal(err)
	}

	checkGolden(t, got, halfTaper, 1e-10)

	got, err = Tukey{Alpha: 1}.Generate(8)
	if err != nil {
		t.Fatal(err)
	}

	checkGolden(t, got, hann, 1e-10)
}

func TestGenerateRectangularLimit(t *testing.T) {
	w, err := Tukey{Alpha: 0}.Generate(33)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range w {
		if v != 1 {
			t.Fatalf("w[%d] = %v, want 1 for alpha 0", i, v)
		}
	}
}

func TestGenerateHannLimit(t *testing.T) {
	w, err := Tukey{Alpha: 1}.Generate(64)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range w {
		x := float64(i) / 63
		want := 0.5 - 0.5*math.Cos(2*math.Pi*x)
		if !almostEqual(v, want, 1e-12) {
			t.Fatalf("w[%d] = %v, want hann %v", i, v, want)
		}
	}
}

func TestGenerateSymmetryAndBounds(t *testing.T) {
	for _, alpha := range []float64{0.1, 0.3, 0.5, 0.9} {
		w, err := Tukey{Alpha: alpha}.Generate(65)
		if err != nil {
			t.Fatal(err)
		}

		for i, v := range w {
			if v < 0 || v > 1 {
				t.Fatalf("alpha=%v w[%d]=%v out of [0,1]", alpha, i, v)
			}

			if !almostEqual(v, w[len(w)-1-i], 1e-12) {
				t.Fatalf("alpha=%v asymmetric at %d: %v vs %v", alpha, i, v, w[len(w)-1-i])
			}
		}

		if w[32] != 1 {
			t.Fatalf("alpha=%v center = %v, want 1", alpha, w[32])
		}
	}
}

func TestGeneratePlateauWidth(t *testing.T) {
	w, err := Tukey{Alpha: 0.4}.Generate(101)
	if err != nil {
		t.Fatal(err)
	}

	ones := 0
	for _, v := range w {
		if v == 1 {
			ones++
		}
	}

	// Plateau covers the central (1-alpha) fraction: 60 intervals plus the
	// boundary samples.
	if ones < 59 || ones > 63 {
		t.Fatalf("plateau samples = %d, want about 61", ones)
	}
}

func TestApplyReturnsFreshSlice(t *testing.T) {
	signal := []float64{2, 2, 2, 2}

	out, err := Tukey{Alpha: 1}.Apply(signal)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 1.5, 1.5, 0}
	checkGolden(t, out, want, 1e-12)

	for i, v := range signal {
		if v != 2 {
			t.Fatalf("signal[%d] = %v, input must stay untouched", i, v)
		}
	}
}

func TestApplyInPlaceMatchesApply(t *testing.T) {
	signal := []float64{1, -2, 3, -4, 5, -6, 7, -8}
	w := Tukey{Alpha: 0.5}

	out, err := w.Apply(signal)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.ApplyInPlace(signal); err != nil {
		t.Fatal(err)
	}

	checkGolden(t, signal, out, 1e-15)
}

func TestCompareAlphas(t *testing.T) {
	m, err := CompareAlphas(16, []float64{0, 0.5, 1})
	if err != nil {
		t.Fatal(err)
	}

	if len(m) != 3 {
		t.Fatalf("len = %d, want 3", len(m))
	}

	for alpha, coeffs := range m {
		if len(coeffs) != 16 {
			t.Fatalf("alpha=%v len=%d, want 16", alpha, len(coeffs))
		}
	}

	for i, v := range m[0] {
		if v != 1 {
			t.Fatalf("rectangular coeff[%d] = %v, want 1", i, v)
		}
	}

	empty, err := CompareAlphas(16, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(empty) != 0 {
		t.Fatalf("len = %d, want 0 for empty alpha list", len(empty))
	}
}

func TestValidation(t *testing.T) {
	if err := (Tukey{Alpha: -0.1}).Validate(); err == nil {
		t.Fatal("expected alpha validation error")
	}

	if err := (Tukey{Alpha: 1.5}).Validate(); err == nil {
		t.Fatal("expected alpha validation error")
	}

	if _, err := (Tukey{Alpha: 0.5}).Generate(0); err == nil {
		t.Fatal("expected size validation error")
	}

	if _, err := (Tukey{Alpha: 0.5}).Generate(-4); err == nil {
		t.Fatal("expected size validation error")
	}

	if _, err := (Tukey{Alpha: 2}).Apply([]float64{1, 2}); err == nil {
		t.Fatal("expected alpha validation error from Apply")
	}

	if err := (Tukey{Alpha: 2}).ApplyInPlace([]float64{1, 2}); err == nil {
		t.Fatal("expected alpha validation error from ApplyInPlace")
	}

	if _, err := CompareAlphas(0, []float64{0.5}); err == nil {
		t.Fatal("expected size validation error from CompareAlphas")
	}

	if _, err := CompareAlphas(8, []float64{0.5, 7}); err == nil {
		t.Fatal("expected alpha validation error from CompareAlphas")
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len mismatch got=%d want=%d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got=%.16f want=%.16f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
