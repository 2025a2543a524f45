package benchplot

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Set is an unordered collection of distinct values.
type Set[T cmp.Ordered] map[T]struct{}

// FloatSet collects the distinct values of a column.
type FloatSet = Set[float64]

// StringSet collects column names.
type StringSet = Set[string]

func NewFloatSet() FloatSet { return make(FloatSet) }

func NewStringSet() StringSet { return make(StringSet) }

// NewStringSetFrom returns the set of the strings in init.
func NewStringSetFrom(init []string) StringSet {
	s := NewStringSet()
	s.Add(init...)
	return s
}

// Add adds xs to s.
func (s Set[T]) Add(xs ...T) {
	for _, x := range xs {
		s[x] = struct{}{}
	}
}

// Del removes x from s.
func (s Set[T]) Del(x T) {
	delete(s, x)
}

// Contains reports membership of x in s.
func (s Set[T]) Contains(x T) bool {
	_, ok := s[x]
	return ok
}

// Remove removes all elements of t from s. (Set difference)
func (s Set[T]) Remove(t Set[T]) {
	for x := range t {
		delete(s, x)
	}
}

// Elements returns the elements of s in ascending order.
func (s Set[T]) Elements() []T {
	elems := make([]T, 0, len(s))
	for x := range s {
		elems = append(elems, x)
	}
	slices.Sort(elems)
	return elems
}

func (s Set[T]) String() string {
	parts := make([]string, 0, len(s))
	for _, x := range s.Elements() {
		parts = append(parts, fmt.Sprint(x))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
