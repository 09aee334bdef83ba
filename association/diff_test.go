package association

import (
	"cmp"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name       string
		current    []uint
		desired    []uint
		wantAdd    []uint
		wantRemove []uint
	}{
		{
			name:       "Swap one member",
			current:    []uint{1, 2},
			desired:    []uint{2, 3},
			wantAdd:    []uint{3},
			wantRemove: []uint{1},
		},
		{
			name:       "Empty desired clears",
			current:    []uint{3, 1},
			desired:    nil,
			wantAdd:    []uint{},
			wantRemove: []uint{1, 3},
		},
		{
			name:       "Empty current adds all",
			current:    nil,
			desired:    []uint{5, 4},
			wantAdd:    []uint{4, 5},
			wantRemove: []uint{},
		},
		{
			name:       "Duplicates collapse",
			current:    []uint{1, 1, 2},
			desired:    []uint{2, 3, 3, 3},
			wantAdd:    []uint{3},
			wantRemove: []uint{1},
		},
		{
			name:       "Same set in another order",
			current:    []uint{1, 2, 3},
			desired:    []uint{3, 2, 1},
			wantAdd:    []uint{},
			wantRemove: []uint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Diff(tt.current, tt.desired)
			assert.Equal(t, tt.wantAdd, plan.ToAdd)
			assert.Equal(t, tt.wantRemove, plan.ToRemove)
			assert.Equal(t, len(tt.wantAdd) == 0 && len(tt.wantRemove) == 0, plan.Empty())
		})
	}
}

func TestDiffStringKeys(t *testing.T) {
	plan := Diff([]string{"b.png", "a.png"}, []string{"c.png", "a.png"})
	assert.Equal(t, []string{"c.png"}, plan.ToAdd)
	assert.Equal(t, []string{"b.png"}, plan.ToRemove)
}

// applyPlan returns the sorted key set that results from applying p to current
func applyPlan[K cmp.Ordered](p Plan[K], current []K) []K {
	set := toSet(current)
	for _, k := range p.ToRemove {
		delete(set, k)
	}
	for _, k := range p.ToAdd {
		set[k] = struct{}{}
	}

	out := make([]K, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func TestDiffApplyReachesDesired(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	randomKeys := func() []uint {
		keys := make([]uint, rng.Intn(12))
		for i := range keys {
			keys[i] = uint(rng.Intn(10))
		}
		return keys
	}

	for i := 0; i < 500; i++ {
		current := randomKeys()
		desired := randomKeys()

		plan := Diff(current, desired)
		got := applyPlan(plan, current)

		want := slices.Compact(slices.Sorted(slices.Values(desired)))
		if want == nil {
			want = []uint{}
		}
		assert.Equal(t, want, got, "current=%v desired=%v", current, desired)

		// a second pass over the result has nothing left to do
		assert.True(t, Diff(got, desired).Empty(), "current=%v desired=%v", current, desired)

		for _, k := range plan.ToAdd {
			assert.NotContains(t, plan.ToRemove, k)
		}
	}
}
