package cmd

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexshd/integrate"
)

// problemFlags select what to integrate and how.
type problemFlags struct {
	integrand  string
	method     string
	from, to   float64
	seed       uint64
	parallel   bool
	rangeSteps int
}

func (p *problemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.integrand, "integrand", "f", "demo", "integrand name (see \"integrate list\")")
	cmd.Flags().StringVarP(&p.method, "method", "m", string(integrate.MethodMonteCarlo), "riemann or montecarlo")
	cmd.Flags().Float64Var(&p.from, "from", 0, "lower limit (default: the integrand's own domain)")
	cmd.Flags().Float64Var(&p.to, "to", 0, "upper limit (default: the integrand's own domain)")
	cmd.Flags().Uint64Var(&p.seed, "seed", 0, "Monte Carlo seed (0 = config value, else unseeded)")
	cmd.Flags().BoolVar(&p.parallel, "parallel", false, "estimate signed halves concurrently")
	cmd.Flags().IntVar(&p.rangeSteps, "range-steps", 0, "range estimation samples (0 = config value)")
}

// problem is a resolved integration request.
type problem struct {
	known  integrate.Known
	method integrate.Method
	domain integrate.Interval
	exact  *float64
	integ  integrate.Integrator
	n      int // default tuning parameter for method
}

// resolve turns flags and configuration into an integrator and domain.
func (a *app) resolve(cmd *cobra.Command, p *problemFlags) (*problem, error) {
	known, err := integrate.Lookup(p.integrand)
	if err != nil {
		return nil, err
	}
	method, err := integrate.ParseMethod(p.method)
	if err != nil {
		return nil, err
	}

	domain := known.Domain
	if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
		lo, hi := known.Domain.Bounds()
		if cmd.Flags().Changed("from") {
			lo = p.from
		}
		if cmd.Flags().Changed("to") {
			hi = p.to
		}
		domain = integrate.NewInterval(lo, hi)
	}

	mcCfg := integrate.DefaultMonteCarloConfig()
	mcCfg.Tests = a.cfg.MonteCarlo.Tests
	mcCfg.RangeSteps = a.cfg.MonteCarlo.RangeSteps
	mcCfg.Parallel = a.cfg.MonteCarlo.Parallel || p.parallel
	mcCfg.Logger = a.logger
	if p.rangeSteps > 0 {
		mcCfg.RangeSteps = p.rangeSteps
	}

	opts := []integrate.MonteCarloOption{integrate.WithConfig(mcCfg)}
	seed := a.cfg.MonteCarlo.Seed
	if p.seed != 0 {
		seed = p.seed
	}
	if seed != 0 {
		opts = append(opts, integrate.WithSeed(seed))
	}

	integ, err := integrate.New(method, known.F, opts...)
	if err != nil {
		return nil, err
	}

	n := a.cfg.Riemann.Steps
	if method == integrate.MethodMonteCarlo {
		n = a.cfg.MonteCarlo.Tests
	}

	prob := &problem{
		known:  known,
		method: method,
		domain: domain,
		integ:  integ,
		n:      n,
	}
	if v, ok := known.ValueOver(domain); ok {
		prob.exact = &v
	}

	return prob, nil
}

func newEstimateCmd(a *app) *cobra.Command {
	var (
		flags problemFlags
		n     int
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate one integral",
		Example: `  integrate estimate --integrand demo
  integrate estimate -f sin -m riemann --from 0 --to 3.14159 -n 100000
  integrate estimate -f poly2 --seed 42 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prob, err := a.resolve(cmd, &flags)
			if err != nil {
				return err
			}
			if n <= 0 {
				n = prob.n
			}

			a.logger.Debug("estimating",
				"integrand", prob.known.Name,
				"method", prob.method,
				"domain", prob.domain,
				"n", n,
			)

			start := time.Now()
			estimate, err := prob.integ.ComputeIntegral(prob.domain, n)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			report := EstimateReport{
				RunID:     uuid.NewString(),
				Integrand: prob.known.Name,
				Label:     prob.known.Label,
				Method:    string(prob.method),
				Domain:    bounds(prob.domain),
				N:         n,
				Estimate:  estimate,
				Exact:     prob.exact,
				Elapsed:   elapsed.String(),
			}
			if prob.exact != nil {
				absErr := math.Abs(estimate - *prob.exact)
				report.AbsError = &absErr
			}

			a.logger.Info("estimate complete", "run_id", report.RunID, "elapsed", elapsed)

			return render(cmd.OutOrStdout(), a.cfg.Output.Format, report)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&n, "samples", "n", 0, "steps (riemann) or tests per half (montecarlo); 0 = config value")

	return cmd
}

func bounds(i integrate.Interval) [2]float64 {
	lo, hi := i.Bounds()
	return [2]float64{lo, hi}
}
