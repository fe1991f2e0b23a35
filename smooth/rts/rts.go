package rts

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-kalman1d"
	"github.com/milosgajdos/go-kalman1d/estimate"
)

// RTS is Rauch-Tung-Striebel smoother
type RTS struct {
	// q is state noise a.k.a. process noise variance
	q float64
}

// New creates new RTS and returns it.
// q is the process noise variance of the filter whose estimates are smoothed.
// It returns error if q is negative or not finite.
func New(q float64) (*RTS, error) {
	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return nil, fmt.Errorf("%w: process noise: %v", filter.ErrInvalidConfig, q)
	}

	return &RTS{
		q: q,
	}, nil
}

// Smooth implements Rauch-Tung-Striebel smoothing algorithm.
// est are the corrected filter estimates of one run and u[k] is the control input
// of the prediction which preceded est[k]. If u is nil zero control is assumed.
// It returns error if est is empty or if u and est differ in length.
func (s *RTS) Smooth(est []filter.Estimate, u []float64) ([]filter.Estimate, error) {
	if len(est) == 0 {
		return nil, fmt.Errorf("invalid estimates size: %d", len(est))
	}

	if u != nil && len(u) != len(est) {
		return nil, fmt.Errorf("invalid input size: %d != %d", len(u), len(est))
	}

	sx := make([]filter.Estimate, len(est))

	// the last filtered estimate is already smoothed
	last := est[len(est)-1]
	e, err := estimate.NewBaseWithVar(last.Val(), last.Var())
	if err != nil {
		return nil, err
	}
	sx[len(est)-1] = e

	for i := len(est) - 2; i >= 0; i-- {
		var uNext float64
		if u != nil {
			uNext = u[i+1]
		}

		xk, pk := est[i].Val(), est[i].Var()

		// predicted state and variance of the next step
		xk1 := xk + uNext
		pk1 := pk + s.q

		// smoothing gain
		var c float64
		if pk1 != 0 {
			c = pk / pk1
		}

		x := xk + c*(e.Val()-xk1)
		p := pk + c*c*(e.Var()-pk1)
		// rounding must not push the variance below zero
		if p < 0 {
			p = 0
		}

		e, err = estimate.NewBaseWithVar(x, p)
		if err != nil {
			return nil, fmt.Errorf("smoothing step %d failed: %w", i, err)
		}
		sx[i] = e
	}

	return sx, nil
}
