package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTrajectoryPlot(t *testing.T) {
	assert := assert.New(t)

	c := DefaultConfig()
	c.Steps = 50
	c.Seed = 1

	res, err := Run(c)
	assert.NoError(err)

	plt, err := NewTrajectoryPlot(res)
	assert.NotNil(plt)
	assert.NoError(err)

	plt, err = NewTrajectoryPlot(nil)
	assert.Nil(plt)
	assert.Error(err)
}

func TestNewBeliefPlot(t *testing.T) {
	assert := assert.New(t)

	plt, err := NewBeliefPlot(7.48, 5.18)
	assert.NotNil(plt)
	assert.NoError(err)
	assert.InDelta(7.48-4*math.Sqrt(5.18), plt.X.Min, 1e-9)
	assert.InDelta(7.48+4*math.Sqrt(5.18), plt.X.Max, 1e-9)

	for _, test := range []struct {
		mean     float64
		variance float64
	}{
		{mean: 0, variance: 0},
		{mean: 0, variance: -1},
		{mean: 0, variance: math.Inf(1)},
		{mean: math.NaN(), variance: 1},
	} {
		plt, err = NewBeliefPlot(test.mean, test.variance)
		assert.Nil(plt)
		assert.Error(err)
	}
}
