package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"voidgeometry/engine"
)

// lineWidth is the stroke width of wireframe edges in pixels
const lineWidth = 1

// Renderer draws engine frames onto an ebiten screen
type Renderer struct {
	screen *ebiten.Image
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// On binds the renderer to the screen of the current Draw call
func (r *Renderer) On(screen *ebiten.Image) engine.Target {
	r.screen = screen
	return r
}

// Draw clears to the fog color and strokes every segment
func (r *Renderer) Draw(f *engine.Frame) {
	if r.screen == nil {
		return
	}
	r.screen.Fill(opaque(f.Background))
	for _, s := range f.Segments {
		vector.StrokeLine(r.screen, s.X0, s.Y0, s.X1, s.Y1, lineWidth, segmentColor(f.Color, s.Alpha), true)
	}
}

func opaque(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// segmentColor is the material color at the segment's opacity
func segmentColor(c colorful.Color, alpha float32) color.NRGBA {
	out := opaque(c)
	switch {
	case alpha <= 0:
		out.A = 0
	case alpha >= 1:
		out.A = 255
	default:
		out.A = uint8(alpha*255 + 0.5)
	}
	return out
}
