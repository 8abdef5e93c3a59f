package cmd

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexshd/integrate"
)

func newStudyCmd(a *app) *cobra.Command {
	var (
		flags   problemFlags
		levels  []int
		repeats int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "study",
		Short: "Measure how the error shrinks as samples grow",
		Example: `  integrate study -f poly2 -m montecarlo --levels 100,1000,10000
  integrate study -f xexp -m riemann --repeats 1 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prob, err := a.resolve(cmd, &flags)
			if err != nil {
				return err
			}

			cfg := integrate.DefaultStudyConfig()
			cfg.Levels = a.cfg.Study.Levels
			cfg.Repeats = a.cfg.Study.Repeats
			cfg.Workers = a.cfg.Study.Workers
			if len(levels) > 0 {
				cfg.Levels = levels
			}
			if repeats > 0 {
				cfg.Repeats = repeats
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Study.Timeout.Duration)
			defer cancel()

			a.logger.Info("study started",
				"integrand", prob.known.Name,
				"method", prob.method,
				"levels", cfg.Levels,
				"repeats", cfg.Repeats,
			)

			results, err := integrate.Study(ctx, prob.integ, prob.domain, cfg)
			if err != nil {
				return err
			}

			exact := math.NaN()
			if prob.exact != nil {
				exact = *prob.exact
			}

			report := StudyReport{
				RunID:     uuid.NewString(),
				Integrand: prob.known.Name,
				Method:    string(prob.method),
				Domain:    bounds(prob.domain),
				Exact:     prob.exact,
				Repeats:   cfg.Repeats,
			}
			for _, r := range results {
				stats := integrate.CalculateStatistics(r, exact)
				level := LevelReport{
					N:        r.N,
					Mean:     stats.Mean,
					Stddev:   stats.Stddev,
					Duration: r.Duration.String(),
				}
				if !math.IsNaN(stats.RMSE) {
					level.RMSE = stats.RMSE
				}
				report.Levels = append(report.Levels, level)
			}

			if prob.exact != nil {
				fit, err := integrate.FitConvergence(results, exact)
				switch {
				case err == nil:
					report.Fit = &FitReport{Rate: fit.Rate, Constant: fit.Constant, RSquared: fit.RSquared}
				case errors.Is(err, integrate.ErrInsufficientData):
					a.logger.Warn("no convergence fit", "err", err)
				default:
					return err
				}
			}

			a.logger.Info("study complete", "run_id", report.RunID)

			return render(cmd.OutOrStdout(), a.cfg.Output.Format, report)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntSliceVar(&levels, "levels", nil, "sample levels (default: config value)")
	cmd.Flags().IntVar(&repeats, "repeats", 0, "trials per level (0 = config value)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent trials (0 = config value)")

	return cmd
}
