package integrate

import (
	"fmt"
	"strings"
)

// Integrator computes the definite integral of its function over a bounded
// domain.
//
// domain is anything Parse accepts. n is the variant's tuning parameter:
// the number of steps for Riemann, the number of hit-or-miss tests per
// signed half for MonteCarlo. n <= 0 selects the variant's default.
type Integrator interface {
	ComputeIntegral(domain any, n int) (float64, error)
}

// Method names an integration strategy.
type Method string

const (
	MethodRiemann    Method = "riemann"
	MethodMonteCarlo Method = "montecarlo"
)

// Methods lists the supported strategies.
var Methods = []Method{MethodRiemann, MethodMonteCarlo}

// ParseMethod maps a user-supplied name onto a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "riemann", "rectangle":
		return MethodRiemann, nil
	case "montecarlo", "monte-carlo", "mc":
		return MethodMonteCarlo, nil
	default:
		return "", fmt.Errorf("%w: %q (want one of %v)", ErrUnknownMethod, name, Methods)
	}
}

// New builds the integrator for method. MonteCarlo options are ignored by
// Riemann.
func New(method Method, f any, opts ...MonteCarloOption) (Integrator, error) {
	switch method {
	case MethodRiemann:
		return NewRiemann(f)
	case MethodMonteCarlo:
		return NewMonteCarlo(f, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}
