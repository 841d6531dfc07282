package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trajview/internal/trajectory"
)

func mustTrajectories(t *testing.T, raw []float64, objects, dims int) *trajectory.Trajectories {
	t.Helper()
	traj, err := trajectory.Deinterleave(raw, objects, dims)
	require.NoError(t, err)
	return traj
}

func TestDefaultAxisMap(t *testing.T) {
	assert.Equal(t, AxisMap{0, 1, 2}, DefaultAxisMap(3))
	assert.Equal(t, AxisMap{0, 1, 2}, DefaultAxisMap(6))
	assert.Equal(t, AxisMap{0, 1, Pinned}, DefaultAxisMap(2))
	assert.Equal(t, AxisMap{0, Pinned, Pinned}, DefaultAxisMap(1))
}

func TestParseAxisMap(t *testing.T) {
	tests := []struct {
		in      string
		want    AxisMap
		wantErr bool
	}{
		{"0,1,2", AxisMap{0, 1, 2}, false},
		{" 3, 4 ,5", AxisMap{3, 4, 5}, false},
		{"0,1,-", AxisMap{0, 1, Pinned}, false},
		{"0,-1,2", AxisMap{0, Pinned, 2}, false},
		{"0,1", AxisMap{}, true},
		{"0,1,x", AxisMap{}, true},
		{"0,1,-2", AxisMap{}, true},
	}

	for _, tt := range tests {
		got, err := ParseAxisMap(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, trajectory.ErrInvalidInput, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) AxisMap {
	t.Helper()
	m, err := ParseAxisMap(s)
	require.NoError(t, err)
	return m
}

func TestAxisMap_ValidateAndPoint(t *testing.T) {
	traj := mustTrajectories(t, []float64{1, 2, 3, 4, 5, 6}, 1, 6)

	assert.NoError(t, AxisMap{3, 4, 5}.Validate(6))
	assert.ErrorIs(t, AxisMap{0, 1, 6}.Validate(6), trajectory.ErrInvalidInput)

	assert.Equal(t, [3]float64{4, 5, 6}, AxisMap{3, 4, 5}.Point(traj, 0, 0))
	assert.Equal(t, [3]float64{1, 0, 3}, AxisMap{0, Pinned, 2}.Point(traj, 0, 0))
}

func TestParseSelection(t *testing.T) {
	names := []string{"Sun", "Jupiter", "Saturn"}

	sel, err := ParseSelection("", names)
	require.NoError(t, err)
	assert.True(t, sel.IsAll())

	sel, err = ParseSelection("ALL", names)
	require.NoError(t, err)
	assert.True(t, sel.IsAll())

	sel, err = ParseSelection("2", names)
	require.NoError(t, err)
	assert.Equal(t, 2, sel.Index())

	sel, err = ParseSelection("Jupiter", names)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Index())

	_, err = ParseSelection("3", names)
	assert.True(t, errors.Is(err, trajectory.ErrInvalidInput))

	_, err = ParseSelection("Pluto", names)
	assert.True(t, errors.Is(err, trajectory.ErrInvalidInput))
}

func TestSelection_Cycle(t *testing.T) {
	sel := All()
	var seen []string
	for i := 0; i < 4; i++ {
		sel = sel.Next(3)
		seen = append(seen, sel.String())
	}
	assert.Equal(t, []string{"0", "1", "2", "all"}, seen)

	seen = nil
	for i := 0; i < 4; i++ {
		sel = sel.Prev(3)
		seen = append(seen, sel.String())
	}
	assert.Equal(t, []string{"2", "1", "0", "all"}, seen)

	assert.Equal(t, []int{0, 1, 2}, All().Indices(3))
	assert.Equal(t, []int{1}, Single(1).Indices(3))
	assert.Nil(t, Single(5).Indices(3))
	assert.Equal(t, -1, All().Index())
}

func TestBounds(t *testing.T) {
	var b Bounds
	assert.True(t, b.Empty())
	assert.Equal(t, [3]float64{0, 0, 0}, b.Center())
	assert.Equal(t, 1.0, b.Extent())

	b.Extend([3]float64{1, -2, 0})
	assert.Equal(t, 1.0, b.Extent(), "a single point has no extent")

	b.Extend([3]float64{5, 2, 1})
	assert.Equal(t, [3]float64{1, -2, 0}, b.Min)
	assert.Equal(t, [3]float64{5, 2, 1}, b.Max)
	assert.Equal(t, [3]float64{3, 0, 0.5}, b.Center())
	assert.Equal(t, 4.0, b.Extent())

	axes := b.Axes()
	assert.Equal(t, [3]float64{5, -2, 0}, axes[0][1])
	assert.Equal(t, [3]float64{1, 2, 0}, axes[1][1])
	assert.Equal(t, [3]float64{1, -2, 1}, axes[2][1])
}

func TestBoundsOf_SelectedObjectsOnly(t *testing.T) {
	// Two objects, two samples: object 0 near the origin, object 1 far away.
	traj := mustTrajectories(t, []float64{0, 0, 0, 10, 10, 10, 1, 1, 1, 20, 20, 20}, 2, 3)

	b := BoundsOf(traj, []int{0}, DefaultAxisMap(3))
	assert.Equal(t, [3]float64{1, 1, 1}, b.Max)

	b = BoundsOf(traj, []int{0, 1}, DefaultAxisMap(3))
	assert.Equal(t, [3]float64{20, 20, 20}, b.Max)

	empty := mustTrajectories(t, nil, 2, 3)
	assert.True(t, BoundsOf(empty, []int{0, 1}, DefaultAxisMap(3)).Empty())
}

func TestCamera_Project(t *testing.T) {
	var b Bounds
	b.Extend([3]float64{-1, -1, -1})
	b.Extend([3]float64{1, 1, 1})

	front := Camera{Zoom: 1}
	got := front.Project([][3]float64{{1, 0, 0}, {0, 0, 1}, {0, 1, 0}}, b)
	require.Len(t, got, 3)
	assert.InDelta(t, 0.5, got[0][0], 1e-9)
	assert.InDelta(t, 0.0, got[0][1], 1e-9)
	assert.InDelta(t, 0.0, got[1][0], 1e-9)
	assert.InDelta(t, 0.5, got[1][1], 1e-9)
	// Depth collapses onto the origin when looking straight along +Y.
	assert.InDelta(t, 0.0, got[2][0], 1e-9)
	assert.InDelta(t, 0.0, got[2][1], 1e-9)

	turned := Camera{Yaw: math.Pi / 2, Zoom: 2}
	got = turned.Project([][3]float64{{0, 1, 0}}, b)
	assert.InDelta(t, -1.0, got[0][0], 1e-9)

	assert.Nil(t, front.Project(nil, b))
}

func TestCamera_Clamps(t *testing.T) {
	c := DefaultCamera().Rotate(0, 10)
	assert.Equal(t, math.Pi/2, c.Pitch)

	c = DefaultCamera().ZoomBy(1e6)
	assert.Equal(t, float64(maxZoom), c.Zoom)

	c = DefaultCamera().ZoomBy(1e-6)
	assert.Equal(t, minZoom, c.Zoom)
}

func TestFit(t *testing.T) {
	x, y := Fit([2]float64{0, 0}, 100, 40)
	assert.Equal(t, 50, x)
	assert.Equal(t, 20, y)

	x, y = Fit([2]float64{0.5, 0.5}, 100, 40)
	assert.Equal(t, 61, x)
	assert.Equal(t, 9, y)
}
