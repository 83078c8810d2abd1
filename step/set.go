package step

import "sort"

// Set is an unordered collection of unique steps.
//
// Mutating operations return copies so snapshots taken at different points
// in the flow never share backing storage.
type Set map[Step]struct{}

// NewSet returns a set seeded with the provided steps.
func NewSet(steps ...Step) Set {
	set := make(Set, len(steps))
	for _, s := range steps {
		set[s] = struct{}{}
	}
	return set
}

// Add returns a copy of the set with s included.
func (set Set) Add(s Step) Set {
	next := set.Clone()
	if next == nil {
		next = make(Set, 1)
	}
	next[s] = struct{}{}
	return next
}

// Has reports whether s is a member of the set.
func (set Set) Has(s Step) bool {
	_, ok := set[s]
	return ok
}

// Len returns the number of members.
func (set Set) Len() int {
	return len(set)
}

// Clone returns an independent copy of the set. A nil set clones to nil.
func (set Set) Clone() Set {
	if set == nil {
		return nil
	}
	clone := make(Set, len(set))
	for s := range set {
		clone[s] = struct{}{}
	}
	return clone
}

// Sorted returns the members in ascending catalog order.
func (set Set) Sorted() []Step {
	steps := make([]Step, 0, len(set))
	for s := range set {
		steps = append(steps, s)
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i] < steps[j] })
	return steps
}

// Equal reports whether both sets contain exactly the same members.
func (set Set) Equal(other Set) bool {
	if len(set) != len(other) {
		return false
	}
	for s := range set {
		if !other.Has(s) {
			return false
		}
	}
	return true
}
