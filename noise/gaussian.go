package noise

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"

	filter "github.com/milosgajdos/go-kalman1d"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian is gaussian noise
type Gaussian struct {
	// dist is a univariate normal distribution
	dist distuv.Normal
	// mean is Gaussian mean
	mean float64
	// variance is Gaussian variance
	variance float64
	// seed is the source seed; zero means seed from clock
	seed uint64
}

// NewGaussian creates new Gaussian noise with given mean and variance.
// The noise is seeded from the wall clock.
// It returns error if it fails to create Gaussian.
func NewGaussian(mean, variance float64) (*Gaussian, error) {
	return NewGaussianWithSeed(mean, variance, 0)
}

// NewGaussianWithSeed creates new Gaussian noise with given mean and variance
// whose samples are drawn from a source seeded with seed.
// Zero seed seeds the source from the wall clock.
// It returns error if either mean or variance are not finite or if variance is negative.
func NewGaussianWithSeed(mean, variance float64, seed uint64) (*Gaussian, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, fmt.Errorf("%w: gaussian mean: %v", filter.ErrNonFinite, mean)
	}

	if math.IsNaN(variance) || math.IsInf(variance, 0) || variance < 0 {
		return nil, fmt.Errorf("%w: gaussian variance: %v", filter.ErrInvalidConfig, variance)
	}

	g := &Gaussian{
		mean:     mean,
		variance: variance,
		seed:     seed,
	}
	g.dist = g.newDist()

	return g, nil
}

// Sample generates a sample from Gaussian noise and returns it.
func (g *Gaussian) Sample() float64 {
	return g.dist.Rand()
}

// Var returns variance of Gaussian noise.
func (g *Gaussian) Var() float64 {
	return g.variance
}

// Mean returns Gaussian mean.
func (g *Gaussian) Mean() float64 {
	return g.mean
}

// Reset resets Gaussian noise.
// Seeded noise replays its sample sequence from the start,
// otherwise the noise is reseeded from the wall clock.
func (g *Gaussian) Reset() error {
	g.dist = g.newDist()

	return nil
}

func (g *Gaussian) newDist() distuv.Normal {
	seed := g.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return distuv.Normal{
		Mu:    g.mean,
		Sigma: math.Sqrt(g.variance),
		Src:   rand.NewSource(seed),
	}
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{Mean=%v Var=%v}", g.mean, g.variance)
}
