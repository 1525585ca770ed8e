package align

import (
	"fmt"
	"math"
)

func ExampleAligner_Evaluate() {
	incident := make([]float64, 2048)
	for i := 0; i < 600; i++ {
		incident[400+i] = 1e-3 * math.Sin(math.Pi*float64(i)/599)
	}

	transmitted := make([]float64, len(incident))
	reflected := make([]float64, len(incident))
	for i := range incident {
		transmitted[i] = 0.9 * incident[i]
		reflected[i] = transmitted[i] - incident[i]
	}

	a, _ := NewAligner(Config{
		WaveSpeed:      5000,
		SpecimenLength: 0.01,
		SampleInterval: 1e-7,
	})

	f, _ := a.Evaluate(incident, transmitted, reflected, 0, 0)
	fmt.Printf("corr %.2f rate %.2f\n", f.Correlation, f.StrainRate)
	// Output:
	// corr 1.00 rate 1.00
}
