package canvas

import (
	"wordweb/geometry"
)

// Viewport defaults.
const (
	DefaultZoomSpeed = 0.001
	DefaultMinScale  = 0.2
	DefaultMaxScale  = 3.0
)

// Viewport maps world coordinates to screen coordinates with a pan offset and a uniform
// scale: screen = world*Scale + Pan.
type Viewport struct {
	PanX  float64
	PanY  float64
	Scale float64

	minScale  float64
	maxScale  float64
	zoomSpeed float64
}

// NewViewport creates an identity viewport with the default zoom limits.
func NewViewport() *Viewport {
	return &Viewport{
		Scale:     1,
		minScale:  DefaultMinScale,
		maxScale:  DefaultMaxScale,
		zoomSpeed: DefaultZoomSpeed,
	}
}

// SetLimits changes the scale range and zoom speed. The current scale is clamped into the
// new range. Invalid arguments are ignored.
func (v *Viewport) SetLimits(minScale, maxScale, zoomSpeed float64) {
	if minScale > 0 && maxScale >= minScale {
		v.minScale, v.maxScale = minScale, maxScale
		v.Scale = geometry.Clamp(v.Scale, minScale, maxScale)
	}
	if zoomSpeed > 0 {
		v.zoomSpeed = zoomSpeed
	}
}

// Limits returns the scale range.
func (v *Viewport) Limits() (minScale, maxScale float64) {
	return v.minScale, v.maxScale
}

// Pan returns the pan offset as a point.
func (v *Viewport) Pan() geometry.Point {
	return geometry.Pt(v.PanX, v.PanY)
}

// Zoom rescales around cursor so the world point under the cursor stays under it.
// It reports whether the scale changed.
func (v *Viewport) Zoom(delta float64, cursor geometry.Point) bool {
	oldScale := v.Scale
	newScale := geometry.Clamp(oldScale+delta*v.zoomSpeed, v.minScale, v.maxScale)
	if newScale == oldScale {
		return false
	}

	ratio := newScale / oldScale
	v.PanX = cursor.X - (cursor.X-v.PanX)*ratio
	v.PanY = cursor.Y - (cursor.Y-v.PanY)*ratio
	v.Scale = newScale
	return true
}

// PanBy moves the view by a screen-space delta. Panning is not scaled by zoom.
func (v *Viewport) PanBy(delta geometry.Point) {
	v.PanX += delta.X
	v.PanY += delta.Y
}

// ScreenToWorld converts a screen point to world coordinates.
func (v *Viewport) ScreenToWorld(p geometry.Point) geometry.Point {
	return geometry.Pt((p.X-v.PanX)/v.Scale, (p.Y-v.PanY)/v.Scale)
}

// WorldToScreen converts a world point to screen coordinates.
func (v *Viewport) WorldToScreen(p geometry.Point) geometry.Point {
	return geometry.Pt(p.X*v.Scale+v.PanX, p.Y*v.Scale+v.PanY)
}

// Reset returns the viewport to {0, 0, 1}.
func (v *Viewport) Reset() {
	v.PanX, v.PanY, v.Scale = 0, 0, 1
}

// CenterOn pans so that world point p sits at screen point screen.
func (v *Viewport) CenterOn(p, screen geometry.Point) {
	v.PanX = screen.X - p.X*v.Scale
	v.PanY = screen.Y - p.Y*v.Scale
}
