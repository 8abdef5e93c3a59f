// Package integrate estimates definite integrals of real functions over
// bounded intervals.
//
// # Overview
//
// Two interchangeable strategies implement the Integrator interface:
//
//   - Riemann    - deterministic rectangle rule over evenly spaced samples
//   - MonteCarlo - stochastic hit-or-miss sampling, sign aware
//
// Both share the half-open Interval type, which handles parsing,
// containment, discretization and splitting.
//
// # Quick Start
//
//	mc, err := integrate.NewMonteCarlo(func(x float64) float64 {
//	    return x*x + 4*x*math.Sin(x)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	integral, err := mc.ComputeIntegral([2]float64{2, 3}, 10000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Integral on [2, 3) = %.4f\n", integral)
//
// The domain may be an Interval, a *Interval or any 2-element array or
// slice of numbers. Reversed endpoints are swapped.
//
// # Intervals
//
// An Interval is [lower, upper): Contains excludes the upper endpoint, while
// Discretize includes it so sampled estimates see the true edge.
//
//	i := integrate.NewInterval(3, 1)   // [1, 3)
//	i.Contains(3)                      // false
//	i.Discretize(3)                    // [1 2 3]
//	below, above := i.SplitAt(0)       // nil, [1, 3)
//
// SplitAt returns nil for a part that does not exist. A nil part is not the
// same thing as a present part of zero measure.
//
// # Monte Carlo
//
// The hit-or-miss estimator first samples f densely (1000 points by
// default) to estimate its range R = [min f, max f], then splits R at zero:
//
//	∫f = (R₊.lower·|D| + A₊) - (-R₋.upper·|D| + A₋)
//
// where A₊ and A₋ are the areas sampled inside the rectangles D × R₊ and
// D × R₋. Range estimation assumes f is continuous on D; a function that
// oscillates faster than the sampling grid may be under-ranged, which
// biases the estimate. Increase the density with WithRangeSteps.
//
// Randomness comes from the process-wide math/rand/v2 generator unless a
// source is supplied:
//
//	mc, _ := integrate.NewMonteCarlo(f, integrate.WithSeed(42))
//
// # Convergence
//
// Study runs an integrator at increasing sample levels and FitConvergence
// fits the error decay err(N) = C·N^rate:
//
//	results, err := integrate.Study(ctx, mc, k.Domain, integrate.DefaultStudyConfig())
//	fit, err := integrate.FitConvergence(results, k.Value)
//	fmt.Printf("rate: %.2f\n", fit.Rate) // ≈ -0.5 for Monte Carlo
//
// # Testing
//
// Known integrals (Catalog, Lookup) and the assertion helpers validate
// estimators in tests:
//
//	func TestMyIntegrator(t *testing.T) {
//	    integrate.AssertEstimate(t, integ, integrate.Demo(), 100000,
//	        integrate.DefaultAssertionConfig())
//	}
//
// # Command Line
//
// cmd/integrate exposes the estimators:
//
//	integrate estimate --integrand demo --method montecarlo -n 100000
//	integrate study --integrand poly2 --method riemann
//	integrate list
package integrate
