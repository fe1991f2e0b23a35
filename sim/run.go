package sim

import (
	"errors"
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-kalman1d"
	"github.com/milosgajdos/go-kalman1d/estimate"
	"github.com/milosgajdos/go-kalman1d/kalman/kf"
	"github.com/milosgajdos/go-kalman1d/noise"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Trajectory matrix columns
const (
	StepCol = iota
	TruthCol
	MeasurementCol
	NaiveCol
	FilterCol
	VarianceCol
	numCols
)

// Result is simulation result
type Result struct {
	// traj stores one row per simulation step
	traj *mat.Dense
	// est stores corrected filter estimates
	est []filter.Estimate
	// u stores control inputs
	u []float64
}

// Run simulates a car driving along a line for c.Steps steps and tracks its position with KF.
// In each step the naive estimate moves by the control input, the true position moves by
// the control input perturbed by process noise and it is then measured with measurement noise.
// KF predicts the position from the control input and corrects it using the measurement.
// It returns error if the configuration is invalid or if the filter fails.
func Run(c *Config) (*Result, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil config", filter.ErrInvalidConfig)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	seed := func(off uint64) uint64 {
		if c.Seed == 0 {
			return 0
		}
		// zero would mean clock seeding: wrap to the offset instead
		if s := c.Seed + off; s != 0 {
			return s
		}
		return off
	}

	stateNoise, err := noise.NewGaussianWithSeed(0, c.ProcessNoise, seed(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create state noise: %w", err)
	}

	measNoise, err := noise.NewGaussianWithSeed(0, c.MeasurementNoise, seed(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create measurement noise: %w", err)
	}

	initCond, err := estimate.NewBaseWithVar(c.Init, c.InitVar)
	if err != nil {
		return nil, err
	}

	f, err := kf.NewWithNoise(initCond, stateNoise, measNoise)
	if err != nil {
		return nil, fmt.Errorf("failed to create KF: %w", err)
	}

	car := NewCar()

	res := &Result{
		traj: mat.NewDense(c.Steps, numCols, nil),
		est:  make([]filter.Estimate, c.Steps),
		u:    make([]float64, c.Steps),
	}

	x, naive := c.Init, c.Init
	for i := 0; i < c.Steps; i++ {
		u := c.Control

		naive = naive + u
		x = car.Propagate(x, u, stateNoise.Sample())
		z := car.Observe(x, measNoise.Sample())

		est, err := f.Run(u, z)
		// zero variance: the filter keeps its certain estimate
		if err != nil && !errors.Is(err, filter.ErrDegenerateCorrection) {
			return nil, fmt.Errorf("filter step %d failed: %w", i, err)
		}

		res.traj.SetRow(i, []float64{float64(i), x, z, naive, est.Val(), est.Var()})
		res.est[i] = est
		res.u[i] = u
	}

	return res, nil
}

// Steps returns number of simulated steps
func (r *Result) Steps() int {
	rows, _ := r.traj.Dims()
	return rows
}

// Trajectory returns a copy of the simulation trajectory.
// Each row stores step, true position, measurement, naive estimate, filter estimate and filter variance.
func (r *Result) Trajectory() *mat.Dense {
	return mat.DenseCopyOf(r.traj)
}

// Estimates returns corrected filter estimates
func (r *Result) Estimates() []filter.Estimate {
	est := make([]filter.Estimate, len(r.est))
	copy(est, r.est)

	return est
}

// Controls returns control inputs applied in each step
func (r *Result) Controls() []float64 {
	u := make([]float64, len(r.u))
	copy(u, r.u)

	return u
}

// MeasurementError returns mean absolute error of the measurements
func (r *Result) MeasurementError() float64 {
	return r.meanAbsError(mat.Col(nil, MeasurementCol, r.traj))
}

// NaiveError returns mean absolute error of the naive estimate which ignores measurements
func (r *Result) NaiveError() float64 {
	return r.meanAbsError(mat.Col(nil, NaiveCol, r.traj))
}

// FilterError returns mean absolute error of the filter estimate
func (r *Result) FilterError() float64 {
	return r.meanAbsError(mat.Col(nil, FilterCol, r.traj))
}

// SmoothedError returns mean absolute error of smoothed estimates sx.
// It returns error if sx is not the same length as the simulation.
func (r *Result) SmoothedError(sx []filter.Estimate) (float64, error) {
	if len(sx) != r.Steps() {
		return 0, fmt.Errorf("invalid smoothed estimates size: %d != %d", len(sx), r.Steps())
	}

	vals := make([]float64, len(sx))
	for i := range sx {
		vals[i] = sx[i].Val()
	}

	return r.meanAbsError(vals), nil
}

func (r *Result) meanAbsError(vals []float64) float64 {
	diff := make([]float64, len(vals))
	floats.SubTo(diff, vals, mat.Col(nil, TruthCol, r.traj))
	for i := range diff {
		diff[i] = math.Abs(diff[i])
	}

	return stat.Mean(diff, nil)
}
