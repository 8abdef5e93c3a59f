package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// EstimateReport is the result of "integrate estimate".
type EstimateReport struct {
	RunID     string     `json:"run_id" yaml:"run_id"`
	Integrand string     `json:"integrand" yaml:"integrand"`
	Label     string     `json:"label" yaml:"label"`
	Method    string     `json:"method" yaml:"method"`
	Domain    [2]float64 `json:"domain" yaml:"domain,flow"`
	N         int        `json:"n" yaml:"n"`
	Estimate  float64    `json:"estimate" yaml:"estimate"`
	Exact     *float64   `json:"exact,omitempty" yaml:"exact,omitempty"`
	AbsError  *float64   `json:"abs_error,omitempty" yaml:"abs_error,omitempty"`
	Elapsed   string     `json:"elapsed" yaml:"elapsed"`
}

// LevelReport summarizes one sample level of a study.
type LevelReport struct {
	N        int     `json:"n" yaml:"n"`
	Mean     float64 `json:"mean" yaml:"mean"`
	Stddev   float64 `json:"stddev" yaml:"stddev"`
	RMSE     float64 `json:"rmse,omitempty" yaml:"rmse,omitempty"`
	Duration string  `json:"duration" yaml:"duration"`
}

// FitReport is the fitted error decay err(N) = C·N^rate.
type FitReport struct {
	Rate     float64 `json:"rate" yaml:"rate"`
	Constant float64 `json:"constant" yaml:"constant"`
	RSquared float64 `json:"r_squared" yaml:"r_squared"`
}

// StudyReport is the result of "integrate study".
type StudyReport struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	Integrand string        `json:"integrand" yaml:"integrand"`
	Method    string        `json:"method" yaml:"method"`
	Domain    [2]float64    `json:"domain" yaml:"domain,flow"`
	Exact     *float64      `json:"exact,omitempty" yaml:"exact,omitempty"`
	Repeats   int           `json:"repeats" yaml:"repeats"`
	Levels    []LevelReport `json:"levels" yaml:"levels"`
	Fit       *FitReport    `json:"fit,omitempty" yaml:"fit,omitempty"`
}

// CatalogEntry describes one built-in integrand.
type CatalogEntry struct {
	Name   string     `json:"name" yaml:"name"`
	Label  string     `json:"label" yaml:"label"`
	Domain [2]float64 `json:"domain" yaml:"domain,flow"`
	Value  float64    `json:"value" yaml:"value"`
}

// render writes v to w in format.
func render(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return renderText(w, v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, v any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	switch r := v.(type) {
	case EstimateReport:
		fmt.Fprintf(tw, "Integral:\t%s\n", r.Label)
		fmt.Fprintf(tw, "Domain:\t[%g, %g)\n", r.Domain[0], r.Domain[1])
		fmt.Fprintf(tw, "Method:\t%s (n=%d)\n", r.Method, r.N)
		fmt.Fprintf(tw, "Estimate:\t%.6f\n", r.Estimate)
		if r.Exact != nil {
			fmt.Fprintf(tw, "Exact:\t%.6f\n", *r.Exact)
			fmt.Fprintf(tw, "Abs error:\t%.3g\n", *r.AbsError)
		}
		fmt.Fprintf(tw, "Elapsed:\t%s\n", r.Elapsed)
		fmt.Fprintf(tw, "Run:\t%s\n", r.RunID)

	case StudyReport:
		fmt.Fprintf(tw, "Integrand:\t%s over [%g, %g)\n", r.Integrand, r.Domain[0], r.Domain[1])
		fmt.Fprintf(tw, "Method:\t%s (%d repeats)\n", r.Method, r.Repeats)
		if r.Exact != nil {
			fmt.Fprintf(tw, "Exact:\t%.6f\n", *r.Exact)
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "N\tMean\tStddev\tRMSE\tTime")
		for _, l := range r.Levels {
			fmt.Fprintf(tw, "%d\t%.6f\t%.3g\t%.3g\t%s\n", l.N, l.Mean, l.Stddev, l.RMSE, l.Duration)
		}
		if r.Fit != nil {
			fmt.Fprintln(tw)
			fmt.Fprintf(tw, "Fit:\terr ≈ %.4g · N^%.3f (R² = %.4f)\n", r.Fit.Constant, r.Fit.Rate, r.Fit.RSquared)
		}
		fmt.Fprintf(tw, "Run:\t%s\n", r.RunID)

	case []CatalogEntry:
		fmt.Fprintln(tw, "NAME\tINTEGRAL\tVALUE")
		for _, e := range r {
			fmt.Fprintf(tw, "%s\t%s\t%.6f\n", e.Name, e.Label, e.Value)
		}

	default:
		fmt.Fprintf(tw, "%+v\n", v)
	}

	return tw.Flush()
}
