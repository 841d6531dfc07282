package ui

import (
	"trajview/internal/canvas"
	"trajview/internal/projection"
	"trajview/internal/trajectory"
)

const (
	axisLayer  = -2
	labelLayer = -3

	// maxPointsPerSeries bounds the samples drawn per object; longer
	// series are strided, always keeping the last sample.
	maxPointsPerSeries = 20000
)

// plotSpec is everything needed to draw one frame.
type plotSpec struct {
	traj   *trajectory.Trajectories
	sel    projection.Selection
	axes   projection.AxisMap
	camera projection.Camera
}

// render draws the selected trajectories, the axis box edges and the X/Y/Z
// labels onto a cols x rows canvas. Layers are object indices, axisLayer
// or labelLayer.
func (p plotSpec) render(cols, rows int) *canvas.Canvas {
	c := canvas.New(cols, rows)
	if p.traj == nil {
		return c
	}
	objects := p.sel.Indices(p.traj.Objects())
	bounds := projection.BoundsOf(p.traj, objects, p.axes)
	axes := bounds.Axes()

	for _, seg := range axes {
		pts := p.camera.Project(seg[:], bounds)
		x0, y0 := projection.Fit(pts[0], c.Width(), c.Height())
		x1, y1 := projection.Fit(pts[1], c.Width(), c.Height())
		c.Line(x0, y0, x1, y1, axisLayer)
	}

	for _, o := range objects {
		p.drawSeries(c, o, bounds)
	}

	for i, seg := range axes {
		tip := p.camera.Project(seg[1:], bounds)[0]
		x, y := projection.Fit(tip, c.Width(), c.Height())
		c.Text(x, y, projection.AxisNames[i], labelLayer)
	}
	return c
}

// drawSeries draws one object's path. An empty series draws nothing.
func (p plotSpec) drawSeries(c *canvas.Canvas, object int, bounds projection.Bounds) {
	n := p.traj.Samples()
	if n == 0 {
		return
	}
	step := max(1, n/maxPointsPerSeries)
	pts := make([][3]float64, 0, n/step+1)
	for s := 0; s < n; s += step {
		pts = append(pts, p.axes.Point(p.traj, object, s))
	}
	if (n-1)%step != 0 {
		pts = append(pts, p.axes.Point(p.traj, object, n-1))
	}

	proj := p.camera.Project(pts, bounds)
	px, py := projection.Fit(proj[0], c.Width(), c.Height())
	c.Set(px, py, object)
	for _, pt := range proj[1:] {
		x, y := projection.Fit(pt, c.Width(), c.Height())
		c.Line(px, py, x, y, object)
		px, py = x, y
	}
}
