package integrate

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInterval_OrderIndependent(t *testing.T) {
	t.Parallel()

	pairs := [][2]float64{{0, 1}, {3, -2}, {-1.5, -1.5}, {1e9, -1e-9}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		ab, ba := NewInterval(a, b), NewInterval(b, a)

		assert.Equal(t, ab.Measure(), ba.Measure(), "measure of %v", p)
		assert.True(t, ab.Equal(ba), "%v vs %v", ab, ba)
		assert.LessOrEqual(t, ab.Lower(), ab.Upper())
		assert.GreaterOrEqual(t, ab.Measure(), 0.0)
	}
}

func TestInterval_Degenerate(t *testing.T) {
	t.Parallel()

	i := NewInterval(2, 2)
	lo, hi := i.Bounds()

	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 2.0, hi)
	assert.Zero(t, i.Measure())
	assert.False(t, i.Contains(2), "empty interval contains nothing")
}

func TestInterval_Contains(t *testing.T) {
	t.Parallel()

	i := NewInterval(1, 3)
	tests := []struct {
		x    float64
		want bool
	}{
		{0.999, false},
		{1, true},
		{2, true},
		{2.999999, true},
		{3, false},
		{4, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, i.Contains(tt.x), "Contains(%v)", tt.x)
	}
}

func TestInterval_Discretize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b float64
		num  int
	}{
		{0, 1, 2},
		{0, 5, 1000},
		{3, -2, 7},
		{-1, 2, 10000},
		{4, 4, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("[%v,%v]x%d", tt.a, tt.b, tt.num), func(t *testing.T) {
			samples := NewInterval(tt.a, tt.b).Discretize(tt.num)

			require.Len(t, samples, tt.num)
			assert.Equal(t, math.Min(tt.a, tt.b), samples[0])
			assert.Equal(t, math.Max(tt.a, tt.b), samples[len(samples)-1])

			for k := 1; k < len(samples); k++ {
				assert.GreaterOrEqual(t, samples[k], samples[k-1])
			}
		})
	}
}

func TestInterval_DiscretizeSmall(t *testing.T) {
	t.Parallel()

	i := NewInterval(1, 3)

	assert.Empty(t, i.Discretize(0))
	assert.Empty(t, i.Discretize(-4))
	assert.Equal(t, []float64{1}, i.Discretize(1))
	assert.Equal(t, []float64{1, 2, 3}, i.Discretize(3))
}

func TestInterval_SplitAt(t *testing.T) {
	t.Parallel()

	i := NewInterval(-1, 2)

	t.Run("inside", func(t *testing.T) {
		below, above := i.SplitAt(0.5)
		require.NotNil(t, below)
		require.NotNil(t, above)
		assert.True(t, below.Equal(NewInterval(-1, 0.5)))
		assert.True(t, above.Equal(NewInterval(0.5, 2)))
	})

	t.Run("at lower", func(t *testing.T) {
		below, above := i.SplitAt(-1)
		require.NotNil(t, below, "lower endpoint is contained, so both parts exist")
		require.NotNil(t, above)
		assert.Zero(t, below.Measure())
		assert.True(t, above.Equal(i))
	})

	t.Run("below", func(t *testing.T) {
		below, above := i.SplitAt(-5)
		assert.Nil(t, below)
		require.NotNil(t, above)
		assert.True(t, above.Equal(i))
	})

	t.Run("at upper", func(t *testing.T) {
		below, above := i.SplitAt(2)
		require.NotNil(t, below)
		assert.Nil(t, above)
		assert.True(t, below.Equal(i))
	})

	t.Run("above", func(t *testing.T) {
		below, above := i.SplitAt(7)
		require.NotNil(t, below)
		assert.Nil(t, above)
		assert.True(t, below.Equal(i))
	})
}

func TestInterval_SplitAtPreservesMeasure(t *testing.T) {
	t.Parallel()

	intervals := []Interval{
		NewInterval(0, 1),
		NewInterval(-3, 5),
		NewInterval(2, 2),
		NewInterval(-0.25, 1e6),
	}
	points := []float64{-10, -3, -0.25, 0, 0.3, 1, 2, 5, 1e7}

	measure := func(i *Interval) float64 {
		if i == nil {
			return 0
		}
		return i.Measure()
	}

	for _, i := range intervals {
		for _, p := range points {
			below, above := i.SplitAt(p)
			assert.InDelta(t, i.Measure(), measure(below)+measure(above), 1e-9,
				"%v split at %v", i, p)
		}
	}
}

func TestInterval_SplitAtPartition(t *testing.T) {
	t.Parallel()

	i := NewInterval(-2, 3)
	below, above := i.SplitAt(0.7)

	for _, x := range i.Discretize(101) {
		inBelow := below != nil && below.Contains(x)
		inAbove := above != nil && above.Contains(x)

		if i.Contains(x) {
			assert.True(t, inBelow != inAbove, "%v must be in exactly one part", x)
		} else {
			assert.False(t, inBelow || inAbove, "%v is outside %v", x, i)
		}
	}
}

func TestInterval_SplitAtCopies(t *testing.T) {
	t.Parallel()

	i := NewInterval(1, 2)
	below, _ := i.SplitAt(10)
	require.NotNil(t, below)

	*below = NewInterval(-100, 100)

	assert.True(t, i.Equal(NewInterval(1, 2)), "split result must not alias the receiver")
}

func TestParse(t *testing.T) {
	t.Parallel()

	src := NewInterval(4, 1)
	tests := []struct {
		name  string
		value any
		want  Interval
	}{
		{"interval", src, NewInterval(1, 4)},
		{"pointer", &src, NewInterval(1, 4)},
		{"float array", [2]float64{0, 5}, NewInterval(0, 5)},
		{"float slice", []float64{2, -1}, NewInterval(-1, 2)},
		{"int slice", []int{0, 2}, NewInterval(0, 2)},
		{"int array", [2]int{5, 5}, NewInterval(5, 5)},
		{"float32 slice", []float32{0.5, 1.5}, NewInterval(0.5, 1.5)},
		{"uint array", [2]uint8{1, 9}, NewInterval(1, 9)},
		{"mixed any", []any{1, 2.5}, NewInterval(1, 2.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.value)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	var nilInterval *Interval
	values := []any{
		nil,
		nilInterval,
		"ab",
		"[0, 1)",
		3.0,
		[]float64{0, 1, 2},
		[3]int{0, 1, 2},
		[]float64{1},
		[]string{"0", "1"},
		[]any{0, "1"},
		map[int]int{0: 1},
		[]float64{math.NaN(), 1},
		[2]float64{0, math.Inf(1)},
		[]any{math.Inf(-1), 0},
		NewInterval(math.NaN(), 1),
		[]float32{0, float32(math.Inf(1))},
	}

	for _, v := range values {
		_, err := Parse(v)
		require.Error(t, err, "Parse(%#v)", v)

		var parseErr *ParseError
		assert.True(t, errors.As(err, &parseErr), "want *ParseError, got %T", err)
		assert.ErrorIs(t, err, ErrIntervalUnrecognized)
	}
}

func TestParse_Independent(t *testing.T) {
	t.Parallel()

	src := NewInterval(0, 1)
	got, err := Parse(&src)
	require.NoError(t, err)

	src = NewInterval(5, 6)

	assert.True(t, got.Equal(NewInterval(0, 1)), "parsed copy changed with its source")
}

func TestMustParse_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustParse("nope") })
	assert.NotPanics(t, func() { MustParse([]int{1, 2}) })
}

func TestInterval_Format(t *testing.T) {
	t.Parallel()

	i := NewInterval(3, 2)

	assert.Equal(t, "[2, 3)", i.String())
	assert.Equal(t, "<Interval: lower=2, upper=3>", fmt.Sprintf("%#v", i))
}
