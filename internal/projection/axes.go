// Package projection maps trajectory samples onto the three plot axes and
// projects them onto a rotatable 2D view.
package projection

import (
	"fmt"
	"strconv"
	"strings"

	"trajview/internal/trajectory"
)

// Pinned marks a plot axis that has no dimension behind it; it stays at zero.
const Pinned = -1

// AxisNames labels the plot axes in AxisMap order.
var AxisNames = [3]string{"X", "Y", "Z"}

// AxisMap names the dimension plotted on X, Y and Z.
type AxisMap [3]int

// DefaultAxisMap plots dimensions 0, 1 and 2, pinning the axes a
// lower-dimensional set cannot fill.
func DefaultAxisMap(dimensions int) AxisMap {
	m := AxisMap{0, 1, 2}
	for i := range m {
		if m[i] >= dimensions {
			m[i] = Pinned
		}
	}
	return m
}

// ParseAxisMap parses "0,1,2" style mappings. "-" or "-1" pins an axis.
func ParseAxisMap(s string) (AxisMap, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return AxisMap{}, fmt.Errorf("%w: axis map %q needs three comma separated entries", trajectory.ErrInvalidInput, s)
	}
	var m AxisMap
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "-" {
			m[i] = Pinned
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < Pinned {
			return AxisMap{}, fmt.Errorf("%w: axis map entry %q for %s", trajectory.ErrInvalidInput, p, AxisNames[i])
		}
		m[i] = n
	}
	return m, nil
}

// Validate checks every mapped dimension exists.
func (m AxisMap) Validate(dimensions int) error {
	for i, d := range m {
		if d != Pinned && (d < 0 || d >= dimensions) {
			return fmt.Errorf("%w: axis %s maps to dimension %d, set has %d dimensions",
				trajectory.ErrInvalidInput, AxisNames[i], d, dimensions)
		}
	}
	return nil
}

// Point returns the plot coordinates of object at sample.
func (m AxisMap) Point(t *trajectory.Trajectories, object, sample int) [3]float64 {
	var p [3]float64
	for i, d := range m {
		if d != Pinned {
			p[i] = t.At(object, d, sample)
		}
	}
	return p
}

func (m AxisMap) String() string {
	parts := make([]string, len(m))
	for i, d := range m {
		if d == Pinned {
			parts[i] = "-"
		} else {
			parts[i] = strconv.Itoa(d)
		}
	}
	return strings.Join(parts, ",")
}
