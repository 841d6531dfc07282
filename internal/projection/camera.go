package projection

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	minZoom = 0.1
	maxZoom = 50

	// fitScale keeps a rotated unit box inside the viewport.
	fitScale = 0.55
)

// Camera is an orthographic view: a yaw around the Z axis followed by a
// pitch around the X axis, looking along +Y with Z up.
type Camera struct {
	Yaw   float64
	Pitch float64
	Zoom  float64
}

// DefaultCamera looks at the box slightly from above and to the side.
func DefaultCamera() Camera {
	return Camera{Yaw: -math.Pi / 6, Pitch: math.Pi / 8, Zoom: 1}
}

// Rotate returns the camera turned by the given angles in radians. Pitch
// is clamped to straight up or down.
func (c Camera) Rotate(dYaw, dPitch float64) Camera {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Pitch+dPitch))
	return c
}

// ZoomBy scales the zoom factor, clamped to a usable range.
func (c Camera) ZoomBy(f float64) Camera {
	c.Zoom = math.Max(minZoom, math.Min(maxZoom, c.Zoom*f))
	return c
}

// Rotation returns the 3x3 view rotation Rx(pitch) * Rz(yaw).
func (c Camera) Rotation() *mat.Dense {
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(c.Pitch)
	rz := mat.NewDense(3, 3, []float64{
		cy, -sy, 0,
		sy, cy, 0,
		0, 0, 1,
	})
	rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cp, -sp,
		0, sp, cp,
	})
	var r mat.Dense
	r.Mul(rx, rz)
	return &r
}

// Project maps points into normalized screen space. The box b is centered
// on the origin and scaled so its longest side is 1 before rotation; the
// result is (right, up) scaled by the zoom factor.
func (c Camera) Project(points [][3]float64, b Bounds) [][2]float64 {
	if len(points) == 0 {
		return nil
	}
	center, scale := b.Center(), 1/b.Extent()

	p := mat.NewDense(3, len(points), nil)
	for j, pt := range points {
		for i := range pt {
			p.Set(i, j, (pt[i]-center[i])*scale)
		}
	}

	var view mat.Dense
	view.Mul(c.Rotation(), p)

	out := make([][2]float64, len(points))
	for j := range out {
		out[j] = [2]float64{view.At(0, j) * c.Zoom, view.At(2, j) * c.Zoom}
	}
	return out
}

// Fit converts a normalized screen point to pixel coordinates on a
// width x height raster, origin top-left.
func Fit(p [2]float64, width, height int) (x, y int) {
	scale := float64(min(width, height)) * fitScale
	x = int(math.Round(float64(width)/2 + p[0]*scale))
	y = int(math.Round(float64(height)/2 - p[1]*scale))
	return x, y
}
