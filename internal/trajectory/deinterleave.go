package trajectory

import (
	"fmt"
	"math"
)

// Trajectories holds the reshaped samples, indexed [object][dimension][sample].
// The backing store is a single slice laid out in that order. A value is
// never modified after Deinterleave returns it.
type Trajectories struct {
	data       []float64
	objects    int
	dimensions int
	samples    int
}

// Deinterleave reshapes a flat stream ordered sample -> object -> dimension
// (dimension varying fastest) into per-object, per-dimension series.
//
// It fails with ErrDegenerateConfig when objects or dimensions is not
// positive and with ErrInvalidInput when len(raw) is not a multiple of
// objects*dimensions. No partial result is returned on failure.
func Deinterleave(raw []float64, objects, dimensions int) (*Trajectories, error) {
	stride, err := strideOf(objects, dimensions)
	if err != nil {
		return nil, err
	}
	if len(raw)%stride != 0 {
		return nil, fmt.Errorf("%w: %d trajectory points are not divisible by %d objects times %d dimensions",
			ErrInvalidInput, len(raw), objects, dimensions)
	}

	t := &Trajectories{
		data:       make([]float64, len(raw)),
		objects:    objects,
		dimensions: dimensions,
		samples:    len(raw) / stride,
	}
	for k, v := range raw {
		s, o, d := decompose(k, objects, dimensions)
		t.data[t.offset(o, d)+s] = v
	}
	return t, nil
}

// strideOf returns objects*dimensions, the number of values in one sample.
// Non-positive counts are degenerate; a product that does not fit in an int
// is invalid input.
func strideOf(objects, dimensions int) (int, error) {
	if objects <= 0 || dimensions <= 0 {
		return 0, fmt.Errorf("%w: %d objects, %d dimensions", ErrDegenerateConfig, objects, dimensions)
	}
	if objects > math.MaxInt/dimensions {
		return 0, fmt.Errorf("%w: %d objects times %d dimensions overflows", ErrInvalidInput, objects, dimensions)
	}
	return objects * dimensions, nil
}

// decompose splits a flat stream index k = s*objects*dimensions + o*dimensions + d.
func decompose(k, objects, dimensions int) (sample, object, dimension int) {
	stride := objects * dimensions
	rem := k % stride
	return k / stride, rem / dimensions, rem % dimensions
}

func (t *Trajectories) offset(object, dimension int) int {
	return (object*t.dimensions + dimension) * t.samples
}

// Objects returns the number of objects.
func (t *Trajectories) Objects() int { return t.objects }

// Dimensions returns the number of dimensions per sample.
func (t *Trajectories) Dimensions() int { return t.dimensions }

// Samples returns the number of time samples per series.
func (t *Trajectories) Samples() int { return t.samples }

// Series returns the time series of one object along one dimension.
// The returned slice shares storage with t and must not be modified.
func (t *Trajectories) Series(object, dimension int) []float64 {
	off := t.offset(object, dimension)
	return t.data[off : off+t.samples : off+t.samples]
}

// At returns A[object][dimension][sample].
func (t *Trajectories) At(object, dimension, sample int) float64 {
	return t.data[t.offset(object, dimension)+sample]
}

// Position returns the coordinates of object at sample, one per dimension.
func (t *Trajectories) Position(object, sample int) []float64 {
	pos := make([]float64, t.dimensions)
	for d := range pos {
		pos[d] = t.At(object, d, sample)
	}
	return pos
}

// Range returns the smallest and largest value of a series. ok is false
// for an empty series.
func (t *Trajectories) Range(object, dimension int) (low, high float64, ok bool) {
	series := t.Series(object, dimension)
	if len(series) == 0 {
		return 0, 0, false
	}
	low, high = math.Inf(1), math.Inf(-1)
	for _, v := range series {
		low = math.Min(low, v)
		high = math.Max(high, v)
	}
	return low, high, true
}

// Array returns a copy of the data as a nested [object][dimension][sample] array.
func (t *Trajectories) Array() [][][]float64 {
	out := make([][][]float64, t.objects)
	for o := range out {
		out[o] = make([][]float64, t.dimensions)
		for d := range out[o] {
			out[o][d] = append(make([]float64, 0, t.samples), t.Series(o, d)...)
		}
	}
	return out
}

// Flatten interleaves the series back into the sample -> object -> dimension
// stream Deinterleave consumed.
func (t *Trajectories) Flatten() []float64 {
	raw := make([]float64, len(t.data))
	for k := range raw {
		s, o, d := decompose(k, t.objects, t.dimensions)
		raw[k] = t.data[t.offset(o, d)+s]
	}
	return raw
}
