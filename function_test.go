package integrate

import (
	"errors"
	"math"
	"strings"
	"testing"
)

type curve func(float64) float64

type batch func([]float64) []float64

type line struct{ slope, intercept float64 }

func (l line) Eval(x float64) float64 { return l.slope*x + l.intercept }

// TestNewCallable_Accepts verifies every supported integrand shape.
func TestNewCallable_Accepts(t *testing.T) {
	square := func(x float64) float64 { return x * x }
	squares := func(xs []float64) []float64 {
		ys := make([]float64, len(xs))
		for i, x := range xs {
			ys[i] = x * x
		}
		return ys
	}

	shapes := map[string]any{
		"func literal":     square,
		"Func":             Func(square),
		"named scalar":     curve(square),
		"vector literal":   squares,
		"VectorFunc":       VectorFunc(squares),
		"named vector":     batch(squares),
		"Function":         line{slope: 0, intercept: 4},
		"stdlib math.Sqrt": math.Sqrt,
	}

	for name, f := range shapes {
		t.Run(name, func(t *testing.T) {
			c, err := newCallable(f)
			if err != nil {
				t.Fatalf("newCallable rejected %s: %v", name, err)
			}

			scalar := c.scalar(2)
			vector := c.vector([]float64{2, 3})
			if len(vector) != 2 || vector[0] != scalar {
				t.Errorf("scalar and vector forms disagree: %v vs %v", scalar, vector)
			}
		})
	}
}

// TestNewCallable_Rejects verifies non-callable values fail with ConstructionError.
func TestNewCallable_Rejects(t *testing.T) {
	var nilFunc Func
	var nilVector VectorFunc
	var nilCurve curve

	values := map[string]any{
		"nil":            nil,
		"number":         3.0,
		"int":            42,
		"string":         "x*x",
		"slice":          []float64{1, 2},
		"nil Func":       nilFunc,
		"nil VectorFunc": nilVector,
		"nil named":      nilCurve,
		"wrong arg":      func(int) int { return 0 },
		"two results":    func(float64) (float64, error) { return 0, nil },
		"two args":       func(a, b float64) float64 { return a + b },
	}

	for name, v := range values {
		t.Run(name, func(t *testing.T) {
			for ctor, build := range map[string]func(any) error{
				"riemann": func(f any) error {
					_, err := NewRiemann(f)
					return err
				},
				"montecarlo": func(f any) error {
					_, err := NewMonteCarlo(f)
					return err
				},
			} {
				err := build(v)

				var constructionErr *ConstructionError
				if !errors.As(err, &constructionErr) {
					t.Errorf("%s: expected *ConstructionError, got %v", ctor, err)
				}
				if !errors.Is(err, ErrNotCallable) {
					t.Errorf("%s: expected ErrNotCallable in chain, got %v", ctor, err)
				}
			}
		})
	}
}

// TestNewCallable_ShortVector verifies a vector integrand that drops values
// fails loudly in both forms instead of indexing out of range or summing less.
func TestNewCallable_ShortVector(t *testing.T) {
	short := VectorFunc(func(xs []float64) []float64 {
		return make([]float64, len(xs)/2)
	})

	c, err := newCallable(short)
	if err != nil {
		t.Fatalf("newCallable rejected a VectorFunc: %v", err)
	}

	for name, eval := range map[string]func(){
		"scalar": func() { c.scalar(1) },
		"vector": func() { c.vector([]float64{0, 1, 2, 3}) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				msg, _ := recover().(string)
				if !strings.HasPrefix(msg, "integrate: vector integrand returned") {
					t.Errorf("expected an integrate: length panic, got %q", msg)
				}
			}()
			eval()
		})
	}

	r, _ := NewRiemann(short)
	func() {
		defer func() {
			if recover() == nil {
				t.Error("Riemann summed a short vector without panicking")
			}
		}()
		_, _ = r.ComputeIntegral([]float64{0, 1}, 100)
	}()
}

// TestNew_Methods verifies the method selector.
func TestNew_Methods(t *testing.T) {
	for _, name := range []string{"riemann", "Rectangle", "montecarlo", "MC", " monte-carlo "} {
		method, err := ParseMethod(name)
		if err != nil {
			t.Fatalf("ParseMethod(%q) failed: %v", name, err)
		}

		integ, err := New(method, math.Cos, WithSeed(1))
		if err != nil {
			t.Fatalf("New(%s) failed: %v", method, err)
		}

		got, err := integ.ComputeIntegral([]float64{0, math.Pi / 2}, 50000)
		if err != nil {
			t.Fatalf("ComputeIntegral failed: %v", err)
		}
		if math.Abs(got-1) > 0.05 {
			t.Errorf("%s: ∫_0^{π/2} cos: expected 1, got %.6f", method, got)
		}
	}

	if _, err := ParseMethod("simpson"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
	if _, err := New(Method("simpson"), math.Cos); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}
