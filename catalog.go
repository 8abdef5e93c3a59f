package integrate

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Known is a definite integral
//
//	∫_a^b f(x) dx
//
// with a known analytic value.
type Known struct {
	Name   string
	Label  string   // Human-readable formula
	Domain Interval // Default integration limits
	F      Func
	Value  float64 // Analytic value over Domain
	// Antiderivative, when set, gives the analytic value over any domain.
	Antiderivative Func
}

// ValueOver returns the analytic integral over domain.
// ok is false when no antiderivative is known and domain differs from the
// default one.
func (k Known) ValueOver(domain Interval) (value float64, ok bool) {
	if domain.Equal(k.Domain) {
		return k.Value, true
	}
	if k.Antiderivative == nil {
		return 0, false
	}
	return k.Antiderivative(domain.upper) - k.Antiderivative(domain.lower), true
}

// Constant returns ∫_{-1}^{2} alpha dx.
func Constant(alpha float64) Known {
	return Known{
		Name:   "constant",
		Label:  fmt.Sprintf("∫_{-1}^{2} %v dx", alpha),
		Domain: NewInterval(-1, 2),
		F: func(float64) float64 {
			return alpha
		},
		Value: 3 * alpha,
		Antiderivative: func(x float64) float64 {
			return alpha * x
		},
	}
}

// Poly returns ∫_{-1}^{2} x^degree dx.
func Poly(degree int) Known {
	d := float64(degree)
	return Known{
		Name:   fmt.Sprintf("poly%d", degree),
		Label:  fmt.Sprintf("∫_{-1}^{2} x^%v dx", degree),
		Domain: NewInterval(-1, 2),
		F: func(x float64) float64 {
			return math.Pow(x, d)
		},
		Value: (math.Pow(2, d+1) - math.Pow(-1, d+1)) / (d + 1),
		Antiderivative: func(x float64) float64 {
			return math.Pow(x, d+1) / (d + 1)
		},
	}
}

// Sin returns ∫_0^{2π} sin(x) dx, whose positive and negative lobes cancel.
func Sin() Known {
	return Known{
		Name:   "sin",
		Label:  "∫_0^{2π} sin(x) dx",
		Domain: NewInterval(0, 2*math.Pi),
		F:      math.Sin,
		Value:  0,
		Antiderivative: func(x float64) float64 {
			return -math.Cos(x)
		},
	}
}

// XExpMinusX returns ∫_0^1 x·exp(-x) dx.
func XExpMinusX() Known {
	return Known{
		Name:   "xexp",
		Label:  "∫_0^1 x·exp(-x) dx",
		Domain: NewInterval(0, 1),
		F: func(x float64) float64 {
			return x * math.Exp(-x)
		},
		Value: (math.E - 2) / math.E,
		Antiderivative: func(x float64) float64 {
			return -(x + 1) * math.Exp(-x)
		},
	}
}

// Sqrt returns ∫_0^1 √x dx.
func Sqrt() Known {
	return Known{
		Name:   "sqrt",
		Label:  "∫_0^1 √x dx",
		Domain: NewInterval(0, 1),
		F:      math.Sqrt,
		Value:  2.0 / 3.0,
		Antiderivative: func(x float64) float64 {
			return 2.0 / 3.0 * math.Pow(x, 1.5)
		},
	}
}

// Demo returns ∫_2^3 x² + 4x·sin(x) dx.
func Demo() Known {
	anti := func(x float64) float64 {
		return x*x*x/3 + 4*(math.Sin(x)-x*math.Cos(x))
	}
	return Known{
		Name:   "demo",
		Label:  "∫_2^3 x² + 4x·sin(x) dx",
		Domain: NewInterval(2, 3),
		F: func(x float64) float64 {
			return x*x + 4*x*math.Sin(x)
		},
		Value:          anti(3) - anti(2),
		Antiderivative: anti,
	}
}

// Catalog returns the built-in integrals, sorted by name.
func Catalog() []Known {
	catalog := []Known{
		Constant(1),
		Poly(1),
		Poly(2),
		Poly(3),
		Sin(),
		XExpMinusX(),
		Sqrt(),
		Demo(),
	}
	sort.Slice(catalog, func(i, j int) bool {
		return catalog[i].Name < catalog[j].Name
	})
	return catalog
}

// Lookup finds a catalog entry by name (case-insensitive).
func Lookup(name string) (Known, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Catalog() {
		if k.Name == name {
			return k, nil
		}
	}
	return Known{}, fmt.Errorf("%w: %q", ErrUnknownIntegrand, name)
}
