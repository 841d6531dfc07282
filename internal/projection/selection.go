package projection

import (
	"fmt"
	"strconv"
	"strings"

	"trajview/internal/trajectory"
)

// Selection chooses which objects are drawn: all of them or a single one.
// The zero value selects all objects.
type Selection struct {
	single bool
	index  int
}

// All selects every object.
func All() Selection { return Selection{} }

// Single selects the object at index.
func Single(index int) Selection { return Selection{single: true, index: index} }

// ParseSelection accepts "all" (or ""), an object index or an object name.
func ParseSelection(s string, names []string) (Selection, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return All(), nil
	}
	for i, n := range names {
		if n == s {
			return Single(i), nil
		}
	}
	idx, err := strconv.Atoi(s)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: no object named %q", trajectory.ErrInvalidInput, s)
	}
	sel := Single(idx)
	if err := sel.Validate(len(names)); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// IsAll reports whether every object is selected.
func (s Selection) IsAll() bool { return !s.single }

// Index returns the selected object, or -1 when all are selected.
func (s Selection) Index() int {
	if !s.single {
		return -1
	}
	return s.index
}

// Validate checks the selection against the number of objects.
func (s Selection) Validate(objects int) error {
	if s.single && (s.index < 0 || s.index >= objects) {
		return fmt.Errorf("%w: object index %d out of range [0, %d)", trajectory.ErrInvalidInput, s.index, objects)
	}
	return nil
}

// Indices lists the selected object indices in presentation order.
func (s Selection) Indices(objects int) []int {
	if s.single {
		if s.index < 0 || s.index >= objects {
			return nil
		}
		return []int{s.index}
	}
	out := make([]int, objects)
	for i := range out {
		out[i] = i
	}
	return out
}

// Next cycles all -> 0 -> 1 -> ... -> objects-1 -> all.
func (s Selection) Next(objects int) Selection {
	switch {
	case objects <= 0:
		return All()
	case !s.single:
		return Single(0)
	case s.index+1 >= objects:
		return All()
	default:
		return Single(s.index + 1)
	}
}

// Prev cycles in the opposite direction to Next.
func (s Selection) Prev(objects int) Selection {
	switch {
	case objects <= 0:
		return All()
	case !s.single:
		return Single(objects - 1)
	case s.index <= 0:
		return All()
	default:
		return Single(s.index - 1)
	}
}

func (s Selection) String() string {
	if !s.single {
		return "all"
	}
	return strconv.Itoa(s.index)
}
