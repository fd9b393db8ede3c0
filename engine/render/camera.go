package render

import (
	"math"

	"basewar/engine/geom"
)

// Camera is the viewport into the world: plain 2D, center-anchored
type Camera struct {
	X, Y       float64 // camera center (world coords)
	Zoom       float64
	MinZoom    float64
	MaxZoom    float64
	ScreenW    int
	ScreenH    int
	Speed      float64 // pan speed (pixels per second)
	EdgeScroll bool
	EdgeSize   int // edge scroll trigger zone in pixels
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		X:          geom.MapWidth / 2,
		Y:          geom.MapHeight / 2,
		Zoom:       1.0,
		MinZoom:    0.25,
		MaxZoom:    3.0,
		ScreenW:    screenW,
		ScreenH:    screenH,
		Speed:      600,
		EdgeScroll: true,
		EdgeSize:   20,
	}
}

// Pan moves the camera by pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clamp()
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms toward a screen point, keeping it stationary
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	wx, wy := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom + delta)
	wx2, wy2 := c.ScreenToWorld(screenX, screenY)
	c.X += wx - wx2
	c.Y += wy - wy2
	c.clamp()
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(wx, wy float64) {
	c.X = wx
	c.Y = wy
	c.clamp()
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (wy-c.Y)*c.Zoom + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToWorld converts screen pixels to a world position
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	wx := (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X
	wy := (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Y
	return wx, wy
}

func (c *Camera) clamp() {
	c.X = geom.Clamp(c.X, 0, geom.MapWidth)
	c.Y = geom.Clamp(c.Y, 0, geom.MapHeight)
}
