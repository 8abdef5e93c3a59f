package integrate

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotCallable is wrapped by every ConstructionError.
var ErrNotCallable = errors.New("function not callable")

// ConstructionError reports an integrator built from a value that cannot be
// called as f: R -> R.
type ConstructionError struct {
	Value any
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%v: %#v (%T)", ErrNotCallable, e.Value, e.Value)
}

func (e *ConstructionError) Unwrap() error { return ErrNotCallable }

// Func is a scalar integrand f: R -> R.
type Func func(x float64) float64

// VectorFunc evaluates an integrand at every point of xs and returns the
// values in the same order. It must not modify xs.
type VectorFunc func(xs []float64) []float64

// Function is implemented by integrands that carry state, such as a
// fitted model or a tabulated curve.
type Function interface {
	Eval(x float64) float64
}

var (
	scalarType = reflect.TypeOf(Func(nil))
	vectorType = reflect.TypeOf(VectorFunc(nil))
)

// callable holds an integrand in both its scalar and vectorized forms.
// Exactly one of them is native; the other is derived from it.
type callable struct {
	scalar Func
	vector VectorFunc
}

// newCallable validates f and wraps it.
//
// Accepted shapes: Func, VectorFunc, Function, and any function type whose
// signature is func(float64) float64 or func([]float64) []float64. Named
// function types are converted through reflection once, here, so the hot
// path never reflects.
func newCallable(f any) (callable, error) {
	switch fn := f.(type) {
	case nil:
		return callable{}, &ConstructionError{Value: f}
	case Func:
		if fn == nil {
			return callable{}, &ConstructionError{Value: f}
		}
		return fromScalar(fn), nil
	case func(float64) float64:
		if fn == nil {
			return callable{}, &ConstructionError{Value: f}
		}
		return fromScalar(fn), nil
	case VectorFunc:
		if fn == nil {
			return callable{}, &ConstructionError{Value: f}
		}
		return fromVector(fn), nil
	case func([]float64) []float64:
		if fn == nil {
			return callable{}, &ConstructionError{Value: f}
		}
		return fromVector(fn), nil
	case Function:
		return fromScalar(fn.Eval), nil
	}

	fnVal := reflect.ValueOf(f)
	if fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return callable{}, &ConstructionError{Value: f}
	}

	switch fnType := fnVal.Type(); {
	case fnType.ConvertibleTo(scalarType):
		return fromScalar(fnVal.Convert(scalarType).Interface().(Func)), nil
	case fnType.ConvertibleTo(vectorType):
		return fromVector(fnVal.Convert(vectorType).Interface().(VectorFunc)), nil
	default:
		return callable{}, &ConstructionError{Value: f}
	}
}

func fromScalar(f Func) callable {
	return callable{
		scalar: f,
		vector: func(xs []float64) []float64 {
			ys := make([]float64, len(xs))
			for i, x := range xs {
				ys[i] = f(x)
			}
			return ys
		},
	}
}

// fromVector panics when f returns a different number of values than it
// was given points.
func fromVector(f VectorFunc) callable {
	checked := func(xs []float64) []float64 {
		ys := f(xs)
		if len(ys) != len(xs) {
			panic(fmt.Sprintf("integrate: vector integrand returned %d values for %d points", len(ys), len(xs)))
		}
		return ys
	}
	return callable{
		scalar: func(x float64) float64 {
			return checked([]float64{x})[0]
		},
		vector: checked,
	}
}
