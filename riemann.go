package integrate

import "gonum.org/v1/gonum/floats"

// DefaultRiemannSteps is the step count used when ComputeIntegral gets n <= 0.
const DefaultRiemannSteps = 10000

// Riemann is the deterministic rectangle-rule estimator.
type Riemann struct {
	f callable
}

// NewRiemann wraps f. It fails with a *ConstructionError when f is not
// callable as f: R -> R.
func NewRiemann(f any) (*Riemann, error) {
	fn, err := newCallable(f)
	if err != nil {
		return nil, err
	}
	return &Riemann{f: fn}, nil
}

// ComputeIntegral samples f at nSteps evenly spaced points of the domain,
// endpoints included, and returns sum(f) * measure / nSteps.
//
// The error is the *ParseError for an unrecognized domain.
func (r *Riemann) ComputeIntegral(domain any, nSteps int) (float64, error) {
	d, err := Parse(domain)
	if err != nil {
		return 0, err
	}
	if nSteps <= 0 {
		nSteps = DefaultRiemannSteps
	}
	if d.Measure() == 0 {
		return 0, nil
	}

	values := r.f.vector(d.Discretize(nSteps))

	return floats.Sum(values) * d.Measure() / float64(nSteps), nil
}
