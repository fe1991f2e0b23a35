package estimate

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-kalman1d"
)

// Base is base estimate
type Base struct {
	// val is estimated value
	val float64
	// variance is estimated variance
	variance float64
}

// NewBase returns base estimate given val with zero variance
func NewBase(val float64) (*Base, error) {
	return &Base{
		val: val,
	}, nil
}

// NewBaseWithVar returns base estimate given val and its variance.
// It returns error if variance is either negative or NaN.
func NewBaseWithVar(val, variance float64) (*Base, error) {
	if math.IsNaN(variance) || variance < 0 {
		return nil, fmt.Errorf("%w: estimate variance: %v", filter.ErrInvalidConfig, variance)
	}

	return &Base{
		val:      val,
		variance: variance,
	}, nil
}

// Val returns estimated value
func (b *Base) Val() float64 {
	return b.val
}

// Var returns estimated variance
func (b *Base) Var() float64 {
	return b.variance
}

// StdDev returns standard deviation of the estimate
func (b *Base) StdDev() float64 {
	return math.Sqrt(b.variance)
}

// String implements the Stringer interface.
func (b *Base) String() string {
	return fmt.Sprintf("Base{Val=%v Var=%v}", b.val, b.variance)
}
