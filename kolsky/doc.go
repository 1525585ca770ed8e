// Package kolsky converts aligned strain pulses into stress-strain
// histories by classical Kolsky bar analysis.
//
// Two independent derivation paths run side by side. The 1-wave path
// assumes force equilibrium at the specimen: stress follows from the
// transmitted pulse alone and strain rate from the reflected pulse alone.
// The 3-wave path combines all three pulses without the equilibrium
// assumption. For a specimen in equilibrium the paths coincide, so their
// disagreement is a direct quality measure of the test; EquilibriumMetrics
// condenses it into four bounded scores over the active pulse and its
// loading, plateau and unloading phases.
//
// The sign convention is compression positive throughout: incident and
// transmitted strains are positive during loading and the reflected strain
// is negative.
//
// # Usage
//
//	c, err := kolsky.NewCalculator(kolsky.Config{
//		Bar:      kolsky.Bar{Area: 2.85e-4, WaveSpeed: 5000, ElasticModulus: 200e9},
//		Specimen: kolsky.Specimen{Area: 1.13e-4, Length: 0.01},
//	})
//	res, err := c.Calculate(incident, transmitted, reflected, time)
//	eq, err := kolsky.EquilibriumMetrics(res)
package kolsky
