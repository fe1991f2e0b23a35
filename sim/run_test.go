package sim

import (
	"errors"
	"math"
	"os"
	"testing"

	filter "github.com/milosgajdos/go-kalman1d"
	"github.com/milosgajdos/go-kalman1d/smooth/rts"
	"github.com/stretchr/testify/assert"
)

var (
	c *Config
)

func setup() {
	c = DefaultConfig()
	c.Steps = 20000
	c.Seed = 42
}

func TestMain(m *testing.M) {
	// set up tests
	setup()
	// run the tests
	retCode := m.Run()
	// call with result of m.Run()
	os.Exit(retCode)
}

func TestRunInvalid(t *testing.T) {
	assert := assert.New(t)

	res, err := Run(nil)
	assert.Nil(res)
	assert.Error(err)

	bad := *c
	bad.Steps = -1
	res, err = Run(&bad)
	assert.Nil(res)
	assert.True(errors.Is(err, filter.ErrInvalidConfig))
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	small := *c
	small.Steps = 10

	res, err := Run(&small)
	assert.NoError(err)
	assert.NotNil(res)
	assert.Equal(small.Steps, res.Steps())

	traj := res.Trajectory()
	rows, cols := traj.Dims()
	assert.Equal(small.Steps, rows)
	assert.Equal(numCols, cols)

	est := res.Estimates()
	u := res.Controls()
	assert.Len(est, small.Steps)
	assert.Len(u, small.Steps)

	for i := 0; i < rows; i++ {
		assert.Equal(float64(i), traj.At(i, StepCol))
		assert.Equal(small.Init+float64(i+1)*small.Control, traj.At(i, NaiveCol))
		assert.Equal(est[i].Val(), traj.At(i, FilterCol))
		assert.Equal(est[i].Var(), traj.At(i, VarianceCol))
		assert.Equal(small.Control, u[i])
	}

	// trajectory is a copy
	traj.Set(0, TruthCol, 1e6)
	assert.NotEqual(1e6, res.Trajectory().At(0, TruthCol))
}

func TestRunDeterministic(t *testing.T) {
	assert := assert.New(t)

	small := *c
	small.Steps = 100

	res1, err := Run(&small)
	assert.NoError(err)
	res2, err := Run(&small)
	assert.NoError(err)

	assert.Equal(res1.Trajectory().RawMatrix().Data, res2.Trajectory().RawMatrix().Data)
}

func TestRunMaxSeed(t *testing.T) {
	assert := assert.New(t)

	small := *c
	small.Steps = 100
	small.Seed = math.MaxUint64

	res1, err := Run(&small)
	assert.NoError(err)
	res2, err := Run(&small)
	assert.NoError(err)

	assert.Equal(res1.Trajectory().RawMatrix().Data, res2.Trajectory().RawMatrix().Data)
}

func TestRunNoNoise(t *testing.T) {
	assert := assert.New(t)

	cfg := *c
	cfg.Steps = 50
	cfg.InitVar = 0
	cfg.ProcessNoise = 0

	// zero variance from the start: the filter never corrects and tracks the truth exactly
	res, err := Run(&cfg)
	assert.NoError(err)
	assert.Equal(0.0, res.FilterError())
	assert.Equal(0.0, res.NaiveError())
}

func TestRunConvergence(t *testing.T) {
	assert := assert.New(t)

	res, err := Run(c)
	assert.NoError(err)

	kfErr := res.FilterError()
	assert.True(kfErr < res.MeasurementError(), "filter: %v, measurement: %v", kfErr, res.MeasurementError())
	assert.True(kfErr < res.NaiveError(), "filter: %v, naive: %v", kfErr, res.NaiveError())

	// the variance converges to the steady state of P^2 + qP - qr = 0 after correction
	traj := res.Trajectory()
	last := traj.At(c.Steps-1, VarianceCol)
	assert.InDelta(6.180339887498949, last, 1e-6)
}

func TestSmoothedError(t *testing.T) {
	assert := assert.New(t)

	res, err := Run(c)
	assert.NoError(err)

	s, err := rts.New(c.ProcessNoise)
	assert.NoError(err)

	sx, err := s.Smooth(res.Estimates(), res.Controls())
	assert.NoError(err)

	smErr, err := res.SmoothedError(sx)
	assert.NoError(err)
	assert.True(smErr < res.FilterError(), "smoothed: %v, filter: %v", smErr, res.FilterError())

	_, err = res.SmoothedError(sx[1:])
	assert.Error(err)
}
