package kf

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-kalman1d"
	"github.com/milosgajdos/go-kalman1d/estimate"
)

// KF is one dimensional Kalman Filter.
// Both state transition and observation are identity: the tracked quantity
// moves by the control input each step and is measured directly.
//
// KF is not safe for concurrent use.
type KF struct {
	// x is the state estimate
	x float64
	// p is the state variance
	p float64
	// q is state noise a.k.a. process noise variance
	q float64
	// r is output noise a.k.a. measurement noise variance
	r float64
	// k is Kalman gain of the last correction
	k float64
	// inn is innovation of the last correction
	inn float64
}

// New creates new KF and returns it.
// It accepts the following parameters:
//   - init:   initial condition of the filter
//   - q:      process noise variance
//   - r:      measurement noise variance
//
// It returns error if either of the following conditions is met:
//   - init is nil, its value is NaN or its variance is negative or NaN
//   - q is negative or not finite
//   - r is not positive or not finite
func New(init filter.InitCond, q, r float64) (*KF, error) {
	if init == nil {
		return nil, fmt.Errorf("%w: nil initial condition", filter.ErrInvalidConfig)
	}

	x, p := init.Val(), init.Var()
	if math.IsNaN(x) {
		return nil, fmt.Errorf("%w: initial state: %v", filter.ErrInvalidConfig, x)
	}

	if math.IsNaN(p) || p < 0 {
		return nil, fmt.Errorf("%w: initial variance: %v", filter.ErrInvalidConfig, p)
	}

	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return nil, fmt.Errorf("%w: process noise: %v", filter.ErrInvalidConfig, q)
	}

	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return nil, fmt.Errorf("%w: measurement noise: %v", filter.ErrInvalidConfig, r)
	}

	return &KF{
		x: x,
		p: p,
		q: q,
		r: r,
	}, nil
}

// NewWithNoise creates new KF whose process and measurement noise variances
// are read from the noise sources z and wn.
// Nil z means there is no process noise. Nil wn is an error.
func NewWithNoise(init filter.InitCond, z, wn filter.Noise) (*KF, error) {
	if wn == nil {
		return nil, fmt.Errorf("%w: nil measurement noise", filter.ErrInvalidConfig)
	}

	var q float64
	if z != nil {
		q = z.Var()
	}

	return New(init, q, wn.Var())
}

// Predict advances the state estimate by control input u and adds process noise to its variance.
// It returns the predicted estimate.
func (k *KF) Predict(u float64) filter.Estimate {
	k.x = k.x + u
	k.p = k.p + k.q

	return k.Belief()
}

// Correct fuses measurement z with the current estimate weighting each by the inverse of its variance.
// It returns the corrected estimate.
//
// If the current variance is zero the estimate is already certain: the state is left
// unchanged and an error wrapping filter.ErrDegenerateCorrection is returned.
// Infinite variance means there is no prior knowledge and the measurement is taken as is.
// NaN and infinite measurements are not rejected: they propagate into the estimate.
//
// The estimate is computed in gain form with both variances scaled by the larger of them
// so that large finite variances do not overflow. The corrected variance never exceeds
// either the prior variance or the measurement noise variance.
func (k *KF) Correct(z float64) (filter.Estimate, error) {
	if k.p == 0 || k.r+k.p == 0 {
		return k.Belief(), fmt.Errorf("%w: zero variance", filter.ErrDegenerateCorrection)
	}

	k.inn = z - k.x

	if math.IsInf(k.p, 1) {
		k.k = 1.0
		k.x = z
		k.p = k.r

		return k.Belief(), nil
	}

	prev := k.p

	scale := math.Max(prev, k.r)
	ps, rs := prev/scale, k.r/scale

	k.k = ps / (ps + rs)
	k.x = k.x + k.k*(z-k.x)

	// rounding of the harmonic sum may land one ulp above the smaller input
	k.p = 1.0 / (1.0/k.r + 1.0/prev)
	k.p = math.Min(k.p, math.Min(prev, k.r))

	return k.Belief(), nil
}

// Run runs one step of KF for given control input u and measurement z.
// It predicts the next state and corrects it using z.
func (k *KF) Run(u, z float64) (filter.Estimate, error) {
	k.Predict(u)

	return k.Correct(z)
}

// Estimate returns the current state estimate
func (k *KF) Estimate() float64 {
	return k.x
}

// Variance returns the current state variance
func (k *KF) Variance() float64 {
	return k.p
}

// Var returns KF variance. It's the same as Variance.
func (k *KF) Var() float64 {
	return k.p
}

// Belief returns a snapshot of the current estimate
func (k *KF) Belief() filter.Estimate {
	// p is never negative or NaN: New validates it and neither Predict nor Correct can make it so
	b, _ := estimate.NewBaseWithVar(k.x, k.p)

	return b
}

// Gain returns Kalman gain of the last correction
func (k *KF) Gain() float64 {
	return k.k
}

// Innovation returns measurement residual of the last correction
func (k *KF) Innovation() float64 {
	return k.inn
}

// ProcessNoise returns process noise variance
func (k *KF) ProcessNoise() float64 {
	return k.q
}

// MeasurementNoise returns measurement noise variance
func (k *KF) MeasurementNoise() float64 {
	return k.r
}

// String implements the Stringer interface.
func (k *KF) String() string {
	return fmt.Sprintf("KF{X=%v P=%v Q=%v R=%v}", k.x, k.p, k.q, k.r)
}
