package projection

import "trajview/internal/trajectory"

// Bounds is the axis-aligned box around a set of plot points.
type Bounds struct {
	Min, Max [3]float64
	valid    bool
}

// BoundsOf returns the box around every sample of the given objects.
func BoundsOf(t *trajectory.Trajectories, objects []int, m AxisMap) Bounds {
	var b Bounds
	for _, o := range objects {
		for s := 0; s < t.Samples(); s++ {
			b.Extend(m.Point(t, o, s))
		}
	}
	return b
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p [3]float64) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	for i, v := range p {
		b.Min[i] = min(b.Min[i], v)
		b.Max[i] = max(b.Max[i], v)
	}
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool { return !b.valid }

// Box returns the corners used for drawing. An empty box is the unit cube
// around the origin.
func (b Bounds) Box() (lo, hi [3]float64) {
	if !b.valid {
		return [3]float64{-0.5, -0.5, -0.5}, [3]float64{0.5, 0.5, 0.5}
	}
	return b.Min, b.Max
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float64 {
	lo, hi := b.Box()
	var c [3]float64
	for i := range c {
		c[i] = (lo[i] + hi[i]) / 2
	}
	return c
}

// Extent returns the longest side of the box, or 1 when the box is flat in
// every direction.
func (b Bounds) Extent() float64 {
	lo, hi := b.Box()
	var e float64
	for i := range lo {
		e = max(e, hi[i]-lo[i])
	}
	if e == 0 {
		return 1
	}
	return e
}

// Axes returns one segment per plot axis, starting at the low corner of
// the box and running to its far side along that axis.
func (b Bounds) Axes() [3][2][3]float64 {
	lo, hi := b.Box()
	var out [3][2][3]float64
	for i := range out {
		end := lo
		end[i] = hi[i]
		out[i] = [2][3]float64{lo, end}
	}
	return out
}
