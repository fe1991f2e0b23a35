package kalman

import filter "github.com/milosgajdos/go-kalman1d"

// Kalman is Kalman Filter
type Kalman interface {
	// filter.Filter is dynamical system filter
	filter.Filter
	// Var returns Kalman filter state variance
	Var() float64
	// Gain returns Kalman filter gain
	Gain() float64
}
