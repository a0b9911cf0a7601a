package directory

import "sort"

// SkipSet is an immutable set of directory names that are never descended into.
// Names are matched exactly against the final path element at every depth.
type SkipSet struct {
	names map[string]struct{}
}

// NewSkipSet builds a SkipSet from the given names.
func NewSkipSet(names ...string) SkipSet {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return SkipSet{names: set}
}

// Contains reports whether name is excluded.
func (s SkipSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns the excluded names in sorted order.
func (s SkipSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
