package kolsky

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Gauge holds the bridge parameters of one strain gauge channel, calibrated
// by shunting a known resistor across the gauge.
type Gauge struct {
	Resistance    float64 // gauge resistance in ohm
	Factor        float64 // gauge factor
	CalResistance float64 // shunt calibration resistor in ohm
	CalVoltage    float64 // bridge output recorded during calibration in volt
}

// Validate checks that every parameter is positive.
func (g Gauge) Validate() error {
	if g.Resistance <= 0 {
		return fmt.Errorf("kolsky: gauge resistance must be > 0: %f", g.Resistance)
	}

	if g.Factor <= 0 {
		return fmt.Errorf("kolsky: gauge factor must be > 0: %f", g.Factor)
	}

	if g.CalResistance <= 0 {
		return fmt.Errorf("kolsky: calibration resistance must be > 0: %f", g.CalResistance)
	}

	if g.CalVoltage <= 0 {
		return fmt.Errorf("kolsky: calibration voltage must be > 0: %f", g.CalVoltage)
	}

	return nil
}

// StrainPerVolt returns the voltage-to-strain slope of the channel.
// Shunting CalResistance across the gauge mimics the apparent strain
// R/(GF*(R+Rcal)); dividing by the bridge output recorded during that
// calibration gives the slope.
func (g Gauge) StrainPerVolt() float64 {
	return g.Resistance / (g.Factor * (g.Resistance + g.CalResistance) * g.CalVoltage)
}

// Strain converts a recorded voltage series into strain.
func (g Gauge) Strain(voltage []float64) []float64 {
	out := append([]float64(nil), voltage...)
	floats.Scale(g.StrainPerVolt(), out)

	return out
}
