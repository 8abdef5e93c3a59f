package integrate

import (
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
)

// MonteCarloConfig controls the hit-or-miss estimator.
type MonteCarloConfig struct {
	Tests      int          // Tests per signed half when ComputeIntegral gets n <= 0
	RangeSteps int          // Samples used to estimate the range of f
	Parallel   bool         // Estimate the positive and negative halves concurrently
	Source     *rand.Rand   // Random source (nil = process-wide generator)
	Logger     *slog.Logger // Debug output (nil = discard)
}

// DefaultMonteCarloConfig returns sensible defaults.
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		Tests:      10000,
		RangeSteps: 1000,
	}
}

// MonteCarloOption adjusts a MonteCarloConfig.
type MonteCarloOption func(*MonteCarloConfig)

// WithConfig replaces the whole configuration.
func WithConfig(cfg MonteCarloConfig) MonteCarloOption {
	return func(c *MonteCarloConfig) { *c = cfg }
}

// WithTests sets the default number of tests per signed half.
func WithTests(n int) MonteCarloOption {
	return func(c *MonteCarloConfig) { c.Tests = n }
}

// WithRangeSteps sets the sampling density of range estimation.
func WithRangeSteps(n int) MonteCarloOption {
	return func(c *MonteCarloConfig) { c.RangeSteps = n }
}

// WithParallel runs the two signed halves on separate goroutines.
func WithParallel(parallel bool) MonteCarloOption {
	return func(c *MonteCarloConfig) { c.Parallel = parallel }
}

// WithSource makes the estimator draw from src instead of the process-wide
// generator. Results are then reproducible for a given sequence of calls.
func WithSource(src *rand.Rand) MonteCarloOption {
	return func(c *MonteCarloConfig) { c.Source = src }
}

// WithSeed is shorthand for WithSource over a PCG generator.
func WithSeed(seed uint64) MonteCarloOption {
	return WithSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithLogger enables debug logging of the range and signed contributions.
func WithLogger(logger *slog.Logger) MonteCarloOption {
	return func(c *MonteCarloConfig) { c.Logger = logger }
}

// MonteCarlo estimates integrals by hit-or-miss sampling.
//
// The range of f over the domain is estimated by dense sampling, split at
// zero, and each signed part is measured as a guaranteed rectangle plus a
// sampled sliver:
//
//	∫f = (pos.lower·|D| + hits₊) - (-neg.upper·|D| + hits₋)
//
// Range estimation assumes f is continuous on the domain. This is an
// approximation, not a guarantee: a function oscillating faster than the
// sampling grid can have its range underestimated, which biases the result.
//
// A MonteCarlo is safe for concurrent use.
type MonteCarlo struct {
	f      callable
	cfg    MonteCarloConfig
	logger *slog.Logger

	mu sync.Mutex // guards cfg.Source
}

// NewMonteCarlo wraps f. It fails with a *ConstructionError when f is not
// callable as f: R -> R.
func NewMonteCarlo(f any, opts ...MonteCarloOption) (*MonteCarlo, error) {
	fn, err := newCallable(f)
	if err != nil {
		return nil, err
	}

	cfg := DefaultMonteCarloConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Tests <= 0 {
		cfg.Tests = DefaultMonteCarloConfig().Tests
	}
	if cfg.RangeSteps <= 0 {
		cfg.RangeSteps = DefaultMonteCarloConfig().RangeSteps
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &MonteCarlo{f: fn, cfg: cfg, logger: logger}, nil
}

// Config returns the effective configuration.
func (m *MonteCarlo) Config() MonteCarloConfig {
	return m.cfg
}

// ComputeIntegral estimates ∫f over domain with nTests hit-or-miss tests on
// each signed half of the range.
//
// The error is the *ParseError for an unrecognized domain.
func (m *MonteCarlo) ComputeIntegral(domain any, nTests int) (float64, error) {
	d, err := Parse(domain)
	if err != nil {
		return 0, err
	}
	if nTests <= 0 {
		nTests = m.cfg.Tests
	}
	if d.Measure() == 0 {
		return 0, nil
	}

	fRange := m.estimateRange(d)
	neg, pos := fRange.SplitAt(0)

	// Streams are derived in a fixed order so a seeded source gives the
	// same answer with or without Parallel.
	posStream, negStream := m.stream(), m.stream()

	positive := func() float64 {
		if pos == nil {
			return 0
		}
		return pos.lower*d.Measure() + m.hitOrMiss(posStream, &d, pos, nTests)
	}
	negative := func() float64 {
		if neg == nil {
			return 0
		}
		return -neg.upper*d.Measure() + m.hitOrMiss(negStream, &d, neg, nTests)
	}

	var posIntegral, negIntegral float64
	if m.cfg.Parallel {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			posIntegral = positive()
		}()
		go func() {
			defer wg.Done()
			negIntegral = negative()
		}()
		wg.Wait()
	} else {
		posIntegral = positive()
		negIntegral = negative()
	}

	m.logger.Debug("monte carlo estimate",
		"domain", d,
		"range", fRange,
		"tests", nTests,
		"positive", posIntegral,
		"negative", negIntegral,
	)

	return posIntegral - negIntegral, nil
}

// Range returns the estimated range [min f, max f] over domain.
func (m *MonteCarlo) Range(domain any) (Interval, error) {
	d, err := Parse(domain)
	if err != nil {
		return Interval{}, err
	}
	return m.estimateRange(d), nil
}

// estimateRange samples f at RangeSteps points of d, endpoints included.
// NaN samples are skipped.
func (m *MonteCarlo) estimateRange(d Interval) Interval {
	values := m.f.vector(d.Discretize(m.cfg.RangeSteps))

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return Interval{}
	}

	return NewInterval(lo, hi)
}

// hitOrMiss draws n points uniformly from the rectangle x × y and returns
// the fraction landing between 0 and f, scaled by the rectangle's area.
// Either side being nil means an empty rectangle.
func (m *MonteCarlo) hitOrMiss(s sampler, x, y *Interval, n int) float64 {
	if x == nil || y == nil || n <= 0 {
		return 0
	}

	hits := 0
	for range n {
		px := uniform(s, *x)
		py := uniform(s, *y)
		if NewInterval(0, m.f.scalar(px)).Contains(py) {
			hits++
		}
	}

	return float64(hits) / float64(n) * x.Measure() * y.Measure()
}

// sampler draws uniform floats in [0, 1).
type sampler interface {
	Float64() float64
}

type globalSampler struct{}

func (globalSampler) Float64() float64 { return rand.Float64() }

// stream returns a sampler private to one estimation. With an explicit
// source it seeds a fresh PCG generator from it, so the source is locked
// once per stream rather than once per draw.
func (m *MonteCarlo) stream() sampler {
	if m.cfg.Source == nil {
		return globalSampler{}
	}

	m.mu.Lock()
	seed1, seed2 := m.cfg.Source.Uint64(), m.cfg.Source.Uint64()
	m.mu.Unlock()

	return rand.New(rand.NewPCG(seed1, seed2))
}

func uniform(s sampler, i Interval) float64 {
	return i.lower + (i.upper-i.lower)*s.Float64()
}
