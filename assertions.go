package integrate

import (
	"math"
	"testing"
)

// AssertionConfig contains tolerances for estimator properties.
type AssertionConfig struct {
	// Absolute tolerance on an estimate
	Tolerance float64

	// Allowed deviation of the fitted convergence rate
	RateTolerance float64

	// Minimum R² for the convergence fit
	MinRSquared float64
}

// DefaultAssertionConfig returns conservative tolerances.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		Tolerance:     0.05,
		RateTolerance: 0.2,
		MinRSquared:   0.9,
	}
}

// AssertEstimate verifies integ approximates k over its default domain.
func AssertEstimate(t testing.TB, integ Integrator, k Known, n int, cfg AssertionConfig) {
	t.Helper()

	got, err := integ.ComputeIntegral(k.Domain, n)
	if err != nil {
		t.Fatalf("ComputeIntegral(%v, %d) failed: %v", k.Domain, n, err)
	}

	if math.IsNaN(got) || math.Abs(got-k.Value) > cfg.Tolerance {
		t.Errorf("%s: got %.6f, want %.6f ± %.4f (n=%d)",
			k.Label, got, k.Value, cfg.Tolerance, n)
		return
	}

	t.Logf("✓ %s ≈ %.6f (exact %.6f, n=%d)", k.Label, got, k.Value, n)
}

// AssertConvergenceRate verifies the fitted error decay of results is
// within cfg.RateTolerance of want.
func AssertConvergenceRate(t testing.TB, results []Result, exact, want float64, cfg AssertionConfig) {
	t.Helper()

	fit, err := FitConvergence(results, exact)
	if err != nil {
		t.Fatalf("Failed to fit convergence: %v", err)
	}

	if math.Abs(fit.Rate-want) > cfg.RateTolerance {
		t.Errorf("Convergence rate off: got N^%.3f, want N^%.3f ± %.2f",
			fit.Rate, want, cfg.RateTolerance)
	}

	if fit.RSquared < cfg.MinRSquared {
		t.Errorf("Poor convergence fit: R² = %.4f (min: %.4f)", fit.RSquared, cfg.MinRSquared)
	}

	t.Logf("✓ Convergence: err ≈ %.4g · N^%.3f (R² = %.4f)", fit.Constant, fit.Rate, fit.RSquared)
}

// PrintStudy outputs a convergence table to the test log.
func PrintStudy(t testing.TB, results []Result, exact float64) {
	t.Helper()

	t.Logf("\n=== Convergence Study (exact = %.6f) ===", exact)
	t.Logf("  %-8s %12s %12s %12s %10s", "N", "Mean", "Stddev", "RMSE", "Time")
	for _, r := range results {
		s := CalculateStatistics(r, exact)
		t.Logf("  %-8d %12.6f %12.6f %12.3g %10v", r.N, s.Mean, s.Stddev, s.RMSE, r.Duration)
	}

	if fit, err := FitConvergence(results, exact); err == nil {
		t.Logf("  fit: err ≈ %.4g · N^%.3f, R² = %.4f", fit.Constant, fit.Rate, fit.RSquared)
	} else {
		t.Logf("  fit: %v", err)
	}
}
