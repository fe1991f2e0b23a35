package sim

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-kalman1d"
)

// Car is a model of a car driving along a line.
// Its position moves by the control input in each step
// and is measured directly by a noisy position sensor.
type Car struct{}

// NewCar creates a model of a car and returns it
func NewCar() *Car {
	return &Car{}
}

// Propagate propagates car position x to the next step given control input u and process noise w.
func (c *Car) Propagate(x, u, w float64) float64 {
	return x + u + w
}

// Observe measures car position x perturbed by measurement noise v.
func (c *Car) Observe(x, v float64) float64 {
	return x + v
}

// Config is simulation configuration
type Config struct {
	// Steps is number of simulation steps
	Steps int
	// Control is control input applied in each step
	Control float64
	// Init is initial car position; it's also the initial filter estimate
	Init float64
	// InitVar is initial filter variance
	InitVar float64
	// ProcessNoise is process noise variance
	ProcessNoise float64
	// MeasurementNoise is measurement noise variance
	MeasurementNoise float64
	// Seed seeds the simulation noise; zero seeds from the wall clock.
	// Process noise is seeded with Seed and measurement noise with Seed+1,
	// which wraps to 1 for the largest seed.
	Seed uint64
}

// DefaultConfig returns default simulation configuration:
// the car tries to move 3m forward each step in heavy wind with a very noisy sensor.
func DefaultConfig() *Config {
	return &Config{
		Steps:            100000,
		Control:          3.0,
		Init:             5.0,
		InitVar:          0.75,
		ProcessNoise:     10.0,
		MeasurementNoise: 10.0,
	}
}

// Validate validates the configuration.
// It returns error if the number of steps is not positive,
// if any of the values is not finite or if any of the variances is negative.
func (c *Config) Validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps: %d", filter.ErrInvalidConfig, c.Steps)
	}

	for _, f := range []struct {
		name string
		val  float64
	}{
		{name: "control", val: c.Control},
		{name: "init", val: c.Init},
		{name: "init variance", val: c.InitVar},
		{name: "process noise", val: c.ProcessNoise},
		{name: "measurement noise", val: c.MeasurementNoise},
	} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("%w: %s: %v", filter.ErrNonFinite, f.name, f.val)
		}
	}

	if c.InitVar < 0 || c.ProcessNoise < 0 || c.MeasurementNoise <= 0 {
		return fmt.Errorf("%w: variances: init=%v process=%v measurement=%v",
			filter.ErrInvalidConfig, c.InitVar, c.ProcessNoise, c.MeasurementNoise)
	}

	return nil
}
