package integrate

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"gonum.org/v1/gonum/floats"
)

// ErrIntervalUnrecognized is wrapped by every ParseError.
var ErrIntervalUnrecognized = errors.New("interval unrecognized")

// ParseError reports a value that Parse cannot turn into an Interval.
type ParseError struct {
	Value any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %#v (%T)", ErrIntervalUnrecognized, e.Value, e.Value)
}

func (e *ParseError) Unwrap() error { return ErrIntervalUnrecognized }

// Interval is the half-open range [lower, upper).
//
// The zero value is the empty interval [0, 0). Intervals are values: copying
// one never aliases the original, so every Interval handed out by Parse or
// SplitAt is independent of its source.
type Interval struct {
	lower float64
	upper float64
}

// NewInterval returns the interval between a and b.
// Endpoints are swapped when given in reverse order. Equal endpoints give a
// valid interval of zero measure.
func NewInterval(a, b float64) Interval {
	if a < b {
		return Interval{lower: a, upper: b}
	}
	return Interval{lower: b, upper: a}
}

// Lower returns the included lower endpoint.
func (i Interval) Lower() float64 { return i.lower }

// Upper returns the excluded upper endpoint.
func (i Interval) Upper() float64 { return i.upper }

// Bounds returns (lower, upper).
func (i Interval) Bounds() (float64, float64) { return i.lower, i.upper }

// Measure returns the length upper - lower (always ≥ 0).
func (i Interval) Measure() float64 { return i.upper - i.lower }

// Contains reports whether lower <= x < upper.
func (i Interval) Contains(x float64) bool {
	return i.lower <= x && x < i.upper
}

// Equal reports whether both endpoints match.
func (i Interval) Equal(other Interval) bool {
	return i.lower == other.lower && i.upper == other.upper
}

// Discretize returns num evenly spaced samples over [lower, upper].
//
// Unlike Contains, both endpoints are included: the first sample is exactly
// lower and the last exactly upper, so range and area estimates see the
// true upper edge.
func (i Interval) Discretize(num int) []float64 {
	if num <= 0 {
		return []float64{}
	}

	samples := make([]float64, num)
	if num == 1 {
		samples[0] = i.lower
		return samples
	}

	floats.Span(samples, i.lower, i.upper)
	samples[num-1] = i.upper

	return samples
}

// SplitAt cuts the interval at point.
//
// A nil result means "no such sub-interval", which is different from a
// present interval of zero measure:
//   - point in [lower, upper): ([lower, point), [point, upper))
//   - point < lower:           (nil, copy)
//   - point >= upper:          (copy, nil)
//
// The measures of the non-nil parts always sum to Measure().
func (i Interval) SplitAt(point float64) (*Interval, *Interval) {
	switch {
	case i.Contains(point):
		below := NewInterval(i.lower, point)
		above := NewInterval(point, i.upper)
		return &below, &above
	case point < i.lower:
		above := i
		return nil, &above
	default:
		below := i
		return &below, nil
	}
}

// String renders the interval as "[lower, upper)".
func (i Interval) String() string {
	return fmt.Sprintf("[%v, %v)", i.lower, i.upper)
}

// GoString renders the interval for %#v.
func (i Interval) GoString() string {
	return fmt.Sprintf("<Interval: lower=%v, upper=%v>", i.lower, i.upper)
}

// Parse normalizes value into an Interval.
//
// Accepted inputs:
//   - Interval or non-nil *Interval (an independent copy is returned)
//   - any 2-element array or slice of integers or floats, e.g.
//     [2]float64{0, 1} or []int{3, -2}
//
// Everything else, including a NaN or infinite endpoint, fails with a
// *ParseError.
func Parse(value any) (Interval, error) {
	i, ok := parse(value)
	if !ok || !i.finite() {
		return Interval{}, &ParseError{Value: value}
	}
	return i, nil
}

func parse(value any) (Interval, bool) {
	switch v := value.(type) {
	case Interval:
		return v, true
	case *Interval:
		if v == nil {
			return Interval{}, false
		}
		return *v, true
	case [2]float64:
		return NewInterval(v[0], v[1]), true
	case []float64:
		if len(v) != 2 {
			return Interval{}, false
		}
		return NewInterval(v[0], v[1]), true
	}

	a, b, ok := numericPair(value)
	if !ok {
		return Interval{}, false
	}
	return NewInterval(a, b), true
}

func (i Interval) finite() bool {
	return !math.IsNaN(i.lower) && !math.IsNaN(i.upper) &&
		!math.IsInf(i.lower, 0) && !math.IsInf(i.upper, 0)
}

// MustParse is like Parse but panics on error.
// Use it for domains known at compile time.
func MustParse(value any) Interval {
	i, err := Parse(value)
	if err != nil {
		panic(fmt.Sprintf("integrate: %v", err))
	}
	return i
}

// numericPair extracts the two elements of a numeric array or slice.
func numericPair(value any) (float64, float64, bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return 0, 0, false
	}
	if rv.Kind() != reflect.Array && rv.Kind() != reflect.Slice {
		return 0, 0, false
	}
	if rv.Len() != 2 {
		return 0, 0, false
	}

	a, ok := toFloat(rv.Index(0))
	if !ok {
		return 0, 0, false
	}
	b, ok := toFloat(rv.Index(1))
	if !ok {
		return 0, 0, false
	}
	return a, b, true
}

func toFloat(v reflect.Value) (float64, bool) {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
