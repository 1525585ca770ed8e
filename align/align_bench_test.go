package align

import (
	"testing"

	"github.com/cwbudde/algo-shpb/internal/testutil"
)

func BenchmarkEvaluate(b *testing.B) {
	incident, transmitted, reflected := testutil.EquilibriumPulses(1e-3, 0.9, 1001, 4096, 1200)

	a, err := NewAligner(testConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := a.Evaluate(incident, transmitted, reflected, 10, -5); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAlign(b *testing.B) {
	incident, transmitted, reflected := testutil.EquilibriumPulses(1e-3, 0.9, 501, 1024, 200)
	tShifted := testutil.Shift(transmitted, 12)
	rShifted := testutil.Shift(reflected, -8)

	cfg := testConfig()
	cfg.TransmittedBounds = Bounds{Min: -20, Max: 20}
	cfg.ReflectedBounds = Bounds{Min: -20, Max: 20}
	cfg.Population = 16
	cfg.Generations = 10

	a, err := NewAligner(cfg)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Align(incident, tShifted, rShifted); err != nil {
			b.Fatal(err)
		}
	}
}
