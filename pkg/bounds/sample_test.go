package bounds

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(p Plan) []int {
	return slices.Collect(p.Indices())
}

func TestPlanFull(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3, 4}, collect(FullPlan(5)))
	assert.Empty(t, collect(FullPlan(0)))
}

func TestPlanWrap(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
		want []int
	}{
		{"stride", Plan{Population: 10, Samples: 4, First: 1, Step: 3}, []int{1, 4, 7, 0}},
		{"negative step walks backwards", Plan{Population: 5, Samples: 5, Step: -1}, []int{0, 4, 3, 2, 1}},
		{"step larger than population", Plan{Population: 5, Samples: 3, Step: 12}, []int{0, 2, 4}},
		{"negative first", Plan{Population: 5, Samples: 2, First: -1, Step: 1}, []int{4, 0}},
		{"first beyond population", Plan{Population: 5, Samples: 2, First: 13, Step: 1}, []int{3, 4}},
		{"zero step becomes one", Plan{Population: 4, Samples: 4}, []int{0, 1, 2, 3}},
		{"step wrapping to zero becomes one", Plan{Population: 4, Samples: 2, Step: 8}, []int{0, 1}},
		{"samples clamped up", Plan{Population: 4, Samples: 0, First: 2, Step: 1}, []int{2}},
		{"samples clamped down", Plan{Population: 3, Samples: 99, Step: 1}, []int{0, 1, 2}},
		{"empty population", Plan{Population: 0, Samples: 5, Step: 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(tt.plan)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanDeterministic(t *testing.T) {
	rng := newRand()
	for range 50 {
		p := Plan{
			Population: rng.IntN(40) + 1,
			Samples:    rng.IntN(60) - 5,
			First:      rng.IntN(200) - 100,
			Step:       rng.IntN(200) - 100,
		}
		a, b := collect(p), collect(p)
		require.Equal(t, a, b, "plan %+v", p)
		require.Len(t, a, p.Len(), "plan %+v", p)
		for _, i := range a {
			require.GreaterOrEqual(t, i, 0)
			require.Less(t, i, p.Population)
		}
	}
}

func TestSamplerReset(t *testing.T) {
	s := NewSampler(Plan{Population: 7, Samples: 3, First: 5, Step: 4})

	var first []int
	for ; s.Scanning(); s.Next() {
		first = append(first, s.Index())
	}
	assert.Equal(t, []int{5, 2, 6}, first)
	assert.Equal(t, 3, s.Count())

	// advancing past the end is a no-op
	s.Next()
	assert.False(t, s.Scanning())
	assert.Equal(t, 3, s.Count())

	s.Reset()
	assert.True(t, s.Scanning())
	assert.Equal(t, 5, s.Index())
}

func TestStridePlan(t *testing.T) {
	assert.Equal(t, []int{0, 25, 50, 75}, collect(StridePlan(100, 4)))
	assert.Equal(t, []int{0, 1, 2}, collect(StridePlan(3, 10)))
}

func TestIndicesEarlyStop(t *testing.T) {
	var got []int
	for i := range FullPlan(10).Indices() {
		if i == 3 {
			break
		}
		got = append(got, i)
	}
	assert.Equal(t, []int{0, 1, 2}, got)
}
