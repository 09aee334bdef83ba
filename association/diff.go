package association

import (
	"cmp"
	"slices"
)

// Plan is the set difference between the keys currently linked to an owner
// and the keys the caller wants linked.
type Plan[K cmp.Ordered] struct {
	ToAdd    []K
	ToRemove []K
}

// Empty reports whether applying the plan would change nothing
func (p Plan[K]) Empty() bool {
	return len(p.ToAdd) == 0 && len(p.ToRemove) == 0
}

// Diff computes ToRemove = current \ desired and ToAdd = desired \ current.
// Both inputs may contain duplicates; both outputs are deduplicated and
// sorted ascending.
func Diff[K cmp.Ordered](current, desired []K) Plan[K] {
	have := toSet(current)
	want := toSet(desired)

	plan := Plan[K]{ToAdd: []K{}, ToRemove: []K{}}
	for k := range have {
		if _, ok := want[k]; !ok {
			plan.ToRemove = append(plan.ToRemove, k)
		}
	}
	for k := range want {
		if _, ok := have[k]; !ok {
			plan.ToAdd = append(plan.ToAdd, k)
		}
	}
	slices.Sort(plan.ToRemove)
	slices.Sort(plan.ToAdd)

	return plan
}

func toSet[K comparable](keys []K) map[K]struct{} {
	set := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
