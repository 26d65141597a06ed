package engine

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera that always looks at the scene origin
type Camera struct {
	Position mgl64.Vec3
	FOV      float64 // vertical, radians
	Near     float64
	Far      float64
	Width    float64 // viewport, pixels
	Height   float64
}

// NewCamera creates the default camera for a viewport
func NewCamera(width, height float64) Camera {
	return Camera{
		Position: mgl64.Vec3{0, 0, cameraDistance},
		FOV:      cameraFOV,
		Near:     cameraNear,
		Far:      cameraFar,
		Width:    width,
		Height:   height,
	}
}

// Follow eases the camera toward the parallax offset of the smoothed pointer.
// Screen Y grows downward, so the vertical offset is inverted.
func (c *Camera) Follow(pointerX, pointerY, k, steps float64) {
	f := dampFactor(k, steps)
	c.Position[0] += (pointerX*pointerParallax - c.Position[0]) * f
	c.Position[1] += (-pointerY*pointerParallax - c.Position[1]) * f
}

// Reset centers the camera
func (c *Camera) Reset() {
	c.Position = mgl64.Vec3{0, 0, cameraDistance}
}

// Aspect returns the viewport aspect ratio
func (c *Camera) Aspect() float64 {
	if c.Height <= 0 || c.Width <= 0 {
		return 1
	}
	return c.Width / c.Height
}

// View returns the view matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
}

// Projection returns the projection matrix for the current viewport
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(c.FOV, c.Aspect(), c.Near, c.Far)
}

// NDCToScreen converts normalized device coordinates to viewport pixels
func (c *Camera) NDCToScreen(x, y float64) (float64, float64) {
	sx := (x*0.5 + 0.5) * c.Width
	sy := (1 - (y*0.5 + 0.5)) * c.Height
	return sx, sy
}
