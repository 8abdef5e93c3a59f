package integrate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Result contains the repeated estimates taken at one sample level.
type Result struct {
	N         int           // Steps or tests per estimate
	Duration  time.Duration // Wall time for all trials at this level
	Estimates []float64     // One estimate per trial, in trial order
}

// Statistics summarizes the estimates of a Result against the exact value.
type Statistics struct {
	Mean     float64
	Stddev   float64
	Min      float64
	Max      float64
	AbsError float64 // |Mean - exact|
	RMSE     float64 // Root mean squared error of individual estimates
}

// ConvergenceFit models the error decay of an estimator:
//
//	err(N) = C · N^rate
//
// A Riemann sum converges at rate ≈ -1, hit-or-miss Monte Carlo at
// rate ≈ -0.5.
type ConvergenceFit struct {
	Rate     float64 // Exponent of N
	Constant float64 // C
	RSquared float64 // Fit quality in log-log space
}

// StudyConfig controls a convergence study.
type StudyConfig struct {
	Levels  []int // Sample levels to test (default: [100,1000,10000,100000])
	Repeats int   // Trials per level
	Workers int   // Concurrent trials (0 = GOMAXPROCS)
}

// DefaultStudyConfig returns sensible defaults.
func DefaultStudyConfig() StudyConfig {
	return StudyConfig{
		Levels:  []int{100, 1000, 10000, 100000},
		Repeats: 8,
		Workers: 0,
	}
}

// ErrInvalidLevel is returned by Study for a sample level that is not positive.
var ErrInvalidLevel = errors.New("study level must be positive")

// Study runs integ over domain at every level of cfg and returns one Result
// per level. integ must be safe for concurrent use when Workers > 1; both
// integrators in this package are.
func Study(ctx context.Context, integ Integrator, domain any, cfg StudyConfig) ([]Result, error) {
	d, err := Parse(domain)
	if err != nil {
		return nil, err
	}
	for _, n := range cfg.Levels {
		if n <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, n)
		}
	}
	if cfg.Repeats <= 0 {
		cfg.Repeats = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, 0, len(cfg.Levels))

	for _, n := range cfg.Levels {
		result, err := runLevel(ctx, integ, d, n, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed at N=%d: %w", n, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// runLevel executes cfg.Repeats trials at level n on cfg.Workers goroutines.
func runLevel(ctx context.Context, integ Integrator, d Interval, n int, cfg StudyConfig) (Result, error) {
	var (
		wg        sync.WaitGroup
		errOnce   sync.Once
		firstErr  error
		estimates = make([]float64, cfg.Repeats)
		trials    = make(chan int)
	)

	start := time.Now()

	workers := min(cfg.Workers, cfg.Repeats)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for trial := range trials {
				estimate, err := integ.ComputeIntegral(d, n)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				estimates[trial] = estimate
			}
		}()
	}

feed:
	for trial := 0; trial < cfg.Repeats; trial++ {
		select {
		case <-ctx.Done():
			break feed
		case trials <- trial:
		}
	}
	close(trials)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if firstErr != nil {
		return Result{}, firstErr
	}

	return Result{
		N:         n,
		Duration:  time.Since(start),
		Estimates: estimates,
	}, nil
}

// CalculateStatistics summarizes result against exact. Pass math.NaN() when
// the exact value is unknown; AbsError and RMSE are then NaN.
func CalculateStatistics(result Result, exact float64) Statistics {
	if len(result.Estimates) == 0 {
		return Statistics{}
	}

	estimates := result.Estimates
	mean, stddev := stat.PopMeanStdDev(estimates, nil)

	residuals := make([]float64, len(estimates))
	copy(residuals, estimates)
	floats.AddConst(-exact, residuals)

	return Statistics{
		Mean:     mean,
		Stddev:   stddev,
		Min:      floats.Min(estimates),
		Max:      floats.Max(estimates),
		AbsError: math.Abs(mean - exact),
		RMSE:     floats.Norm(residuals, 2) / math.Sqrt(float64(len(estimates))),
	}
}

// ErrInsufficientData is returned by FitConvergence when fewer than two
// levels have a positive, finite error.
var ErrInsufficientData = errors.New("not enough data to fit convergence")

// FitConvergence fits log(RMSE) = log(C) + rate·log(N) by least squares.
//
// Levels whose RMSE is zero (an exact estimate) carry no information about
// the decay and are skipped.
func FitConvergence(results []Result, exact float64) (ConvergenceFit, error) {
	var xs, ys []float64
	for _, r := range results {
		rmse := CalculateStatistics(r, exact).RMSE
		if r.N <= 0 || rmse <= 0 || math.IsNaN(rmse) || math.IsInf(rmse, 0) {
			continue
		}
		xs = append(xs, math.Log(float64(r.N)))
		ys = append(ys, math.Log(rmse))
	}
	if len(xs) < 2 {
		return ConvergenceFit{}, fmt.Errorf("%w: %d usable levels", ErrInsufficientData, len(xs))
	}

	if floats.Max(xs)-floats.Min(xs) < 1e-10 {
		return ConvergenceFit{}, fmt.Errorf("%w: levels are not distinct", ErrInsufficientData)
	}

	intercept, rate := stat.LinearRegression(xs, ys, nil, false)

	// A flat error curve leaves nothing unexplained.
	rSquared := stat.RSquared(xs, ys, nil, intercept, rate)
	if math.IsNaN(rSquared) {
		rSquared = 1
	}

	return ConvergenceFit{
		Rate:     rate,
		Constant: math.Exp(intercept),
		RSquared: rSquared,
	}, nil
}

// PredictError estimates the RMSE at level n.
func (c ConvergenceFit) PredictError(n int) float64 {
	return c.Constant * math.Pow(float64(n), c.Rate)
}

// LevelFor returns the smallest level whose predicted error is at most
// target, or 0 when the fit does not converge (rate ≥ 0).
func (c ConvergenceFit) LevelFor(target float64) int {
	if c.Rate >= 0 || target <= 0 || c.Constant <= 0 {
		return 0
	}
	return int(math.Ceil(math.Pow(target/c.Constant, 1/c.Rate)))
}
