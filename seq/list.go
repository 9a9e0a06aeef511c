// Package seq provides List, an ordered container with Python-style
// wraparound indexing and a few bulk operations.
//
// A List is not safe for concurrent use. Mutating a List while ranging over
// All or Backward has unspecified results: elements may be skipped, repeated
// or observed in their old order.
package seq

import (
	"cmp"
	"fmt"
	"iter"
	"math/rand/v2"
	"reflect"
	"slices"
	"strings"

	"rasterkit/problem"
)

// Comparer is implemented by types that define their own total order.
// Compare returns a negative number, zero or a positive number when the
// receiver sorts before, equal to or after other.
type Comparer[E any] interface {
	Compare(other E) int
}

// List holds non-nil elements in insertion order.
//
// The zero value is an empty list. Without a constructor it orders elements
// by their Compare method when E implements Comparer, or by value when E is
// an integer, float or string kind. Otherwise it has no order: Sort leaves
// the elements as they are, Max fails and Equal falls back to EqualFunc with
// reflect.DeepEqual.
type List[E any] struct {
	items   []E
	compare func(a, b E) int
}

// New returns an empty list ordered by the natural order of E.
func New[E cmp.Ordered]() *List[E] {
	return &List[E]{compare: cmp.Compare[E]}
}

// Of returns a list holding values, in order.
func Of[E cmp.Ordered](values ...E) *List[E] {
	return &List[E]{items: slices.Clone(values), compare: cmp.Compare[E]}
}

// NewComparable returns an empty list ordered by E's Compare method.
func NewComparable[E Comparer[E]]() *List[E] {
	return &List[E]{compare: func(a, b E) int { return a.Compare(b) }}
}

// NewFunc returns an empty list ordered by compare, which must define a
// total order.
func NewFunc[E any](compare func(a, b E) int) (*List[E], error) {
	if err := problem.CheckNotNil("compare function", compare == nil); err != nil {
		return nil, err
	}
	return &List[E]{compare: compare}, nil
}

// Append adds v at the end.
func (l *List[E]) Append(v E) error {
	if err := problem.CheckNotNil("element that is added", isNil(v)); err != nil {
		return err
	}
	l.items = append(l.items, v)
	return nil
}

func (l *List[E]) Len() int      { return len(l.items) }
func (l *List[E]) IsEmpty() bool { return len(l.items) == 0 }

// Get returns the element at index. Negative indices count from the end, so
// the valid range is [-Len, Len).
func (l *List[E]) Get(index int) (E, error) {
	i, err := l.position(index)
	if err != nil {
		var zero E
		return zero, err
	}
	return l.items[i], nil
}

// Set replaces the element at index and returns the previous one. Indices
// follow Get.
func (l *List[E]) Set(index int, v E) (E, error) {
	var zero E
	i, err := l.position(index)
	if err != nil {
		return zero, err
	}
	if err := problem.CheckNotNil("new element", isNil(v)); err != nil {
		return zero, err
	}
	prev := l.items[i]
	l.items[i] = v
	return prev, nil
}

// Clear removes all elements.
func (l *List[E]) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}

// Sort orders the elements ascending. Equal elements keep their order.
func (l *List[E]) Sort() {
	if compare := l.order(); compare != nil {
		slices.SortStableFunc(l.items, compare)
	}
}

// Reverse reverses the order of the elements.
func (l *List[E]) Reverse() {
	slices.Reverse(l.items)
}

// Shuffle permutes the elements randomly using r, or the global source when
// r is nil. Pass a seeded *rand.Rand for a reproducible order.
func (l *List[E]) Shuffle(r *rand.Rand) {
	swap := func(i, j int) { l.items[i], l.items[j] = l.items[j], l.items[i] }
	if r == nil {
		rand.Shuffle(len(l.items), swap)
		return
	}
	r.Shuffle(len(l.items), swap)
}

// Max returns the greatest element; the first one wins on ties.
func (l *List[E]) Max() (E, error) {
	if l.IsEmpty() {
		var zero E
		return zero, fmt.Errorf("%w: cannot find maximum of an empty list", problem.ErrEmptyCollection)
	}
	compare := l.order()
	if compare == nil {
		var zero E
		return zero, fmt.Errorf("%w: elements of type %T have no order", problem.ErrInvalidArgument, zero)
	}
	best := l.items[0]
	for _, v := range l.items[1:] {
		if compare(v, best) > 0 {
			best = v
		}
	}
	return best, nil
}

// Join formats the elements with fmt.Sprint and puts delim between them.
func (l *List[E]) Join(delim string) string {
	var sb strings.Builder
	for i, v := range l.items {
		if i > 0 {
			sb.WriteString(delim)
		}
		fmt.Fprint(&sb, v)
	}
	return sb.String()
}

func (l *List[E]) String() string {
	return "[" + l.Join(",") + "]"
}

// Equal reports whether both lists have the same length and every pair of
// elements compares as 0 under the order of l. For orders that rank distinct
// values alike (such as a Compare method on a single key) this is
// equivalence, not identity; use EqualFunc to compare full values.
func (l *List[E]) Equal(other *List[E]) bool {
	compare := l.order()
	if compare == nil {
		return l.EqualFunc(other, func(a, b E) bool { return reflect.DeepEqual(a, b) })
	}
	return l.EqualFunc(other, func(a, b E) bool { return compare(a, b) == 0 })
}

// EqualFunc reports whether both lists have the same length and eq holds for
// every pair of elements.
func (l *List[E]) EqualFunc(other *List[E], eq func(a, b E) bool) bool {
	if other == nil || eq == nil {
		return false
	}
	return slices.EqualFunc(l.items, other.items, eq)
}

// All yields the elements from first to last.
func (l *List[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, v := range l.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward yields index and element pairs from last to first.
func (l *List[E]) Backward() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i := len(l.items) - 1; i >= 0; i-- {
			if i >= len(l.items) {
				continue
			}
			if !yield(i, l.items[i]) {
				return
			}
		}
	}
}

// Values returns a copy of the elements.
func (l *List[E]) Values() []E {
	return slices.Clone(l.items)
}

func (l *List[E]) position(index int) (int, error) {
	n := len(l.items)
	if err := problem.CheckRange("list index", index, -n, n); err != nil {
		return 0, err
	}
	if index < 0 {
		return n + index, nil
	}
	return index, nil
}

// order returns the compare function of l, deriving one from E for lists
// not built by a constructor. It returns nil when E has no usable order.
func (l *List[E]) order() func(a, b E) int {
	if l.compare != nil {
		return l.compare
	}
	var zero E
	if _, ok := any(zero).(Comparer[E]); ok {
		return func(a, b E) int { return any(a).(Comparer[E]).Compare(b) }
	}
	switch reflect.TypeFor[E]().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b E) int {
			return cmp.Compare(reflect.ValueOf(a).Int(), reflect.ValueOf(b).Int())
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b E) int {
			return cmp.Compare(reflect.ValueOf(a).Uint(), reflect.ValueOf(b).Uint())
		}
	case reflect.Float32, reflect.Float64:
		return func(a, b E) int {
			return cmp.Compare(reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float())
		}
	case reflect.String:
		return func(a, b E) int {
			return strings.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
		}
	}
	return nil
}

func isNil[E any](v E) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
