package filter

import "errors"

var (
	// ErrInvalidConfig is returned when a filter or smoother is given invalid parameters
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrDegenerateCorrection is returned when a correction can not be computed
	ErrDegenerateCorrection = errors.New("degenerate correction")
	// ErrNonFinite is returned when a value is required to be finite but is not
	ErrNonFinite = errors.New("non-finite value")
)

// Filter is a one dimensional dynamical system filter.
type Filter interface {
	// Predict advances the filter state by control input u
	Predict(u float64) Estimate
	// Correct corrects the filter state using measurement z
	Correct(z float64) (Estimate, error)
}

// Propagator propagates internal state of the system to the next step
type Propagator interface {
	// Propagate propagates state x to the next step given input u and process noise w
	Propagate(x, u, w float64) float64
}

// Observer observes external state (output) of the system
type Observer interface {
	// Observe observes state x with measurement noise v
	Observe(x, v float64) float64
}

// Model is a model of a one dimensional dynamical system
type Model interface {
	// Propagator is system propagator
	Propagator
	// Observer is system observer
	Observer
}

// InitCond is initial state condition of the filter
type InitCond interface {
	// Val returns initial filter state
	Val() float64
	// Var returns initial state variance
	Var() float64
}

// Estimate is dynamical system filter estimate
type Estimate interface {
	// Val returns estimate value
	Val() float64
	// Var returns estimate variance
	Var() float64
}

// Noise is dynamical system noise
type Noise interface {
	// Mean returns noise mean
	Mean() float64
	// Var returns noise variance
	Var() float64
	// Sample returns a sample of the noise
	Sample() float64
	// Reset resets the noise
	Reset() error
}

// Smoother is a fixed interval filter smoother
type Smoother interface {
	// Smooth returns smoothed estimates of filtered estimates est given control inputs u
	Smooth(est []Estimate, u []float64) ([]Estimate, error)
}
