package kolsky

import (
	"fmt"
	"math"
)

func ExampleCalculator_Calculate() {
	n := 2048
	time := make([]float64, n)
	incident := make([]float64, n)
	transmitted := make([]float64, n)
	reflected := make([]float64, n)

	for i := range time {
		time[i] = float64(i) * 1e-7
	}
	for i := 0; i < 1001; i++ {
		incident[400+i] = 0.002 * math.Sin(math.Pi*float64(i)/1000)
	}
	for i := range incident {
		transmitted[i] = 0.5 * incident[i]
		reflected[i] = transmitted[i] - incident[i]
	}

	c, _ := NewCalculator(Config{
		Bar:      Bar{Area: 2e-4, WaveSpeed: 5000, ElasticModulus: 200e9},
		Specimen: Specimen{Area: 1e-4, Length: 0.01},
	})

	res, _ := c.Calculate(incident, transmitted, reflected, time)

	peak := 0.0
	for _, v := range res.StressOne {
		if v > peak {
			peak = v
		}
	}

	fmt.Printf("peak stress %.2f MPa\n", peak/1e6)
	// Output:
	// peak stress 400.00 MPa
}

func ExampleEquilibriumMetrics() {
	n := 2048
	time := make([]float64, n)
	incident := make([]float64, n)
	transmitted := make([]float64, n)
	reflected := make([]float64, n)

	for i := range time {
		time[i] = float64(i) * 1e-7
	}
	for i := 0; i < 1001; i++ {
		incident[400+i] = 0.002 * math.Sin(math.Pi*float64(i)/1000)
	}
	for i := range incident {
		transmitted[i] = 0.5 * incident[i]
		reflected[i] = transmitted[i] - incident[i]
	}

	c, _ := NewCalculator(Config{
		Bar:      Bar{Area: 2e-4, WaveSpeed: 5000, ElasticModulus: 200e9},
		Specimen: Specimen{Area: 1e-4, Length: 0.01},
	})

	res, _ := c.Calculate(incident, transmitted, reflected, time)
	eq, _ := EquilibriumMetrics(res)

	fmt.Printf("FBC %.2f DSUF %.2f\n", eq.Overall.FBC, eq.Overall.DSUF)
	// Output:
	// FBC 1.00 DSUF 1.00
}
