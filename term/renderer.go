// Package term renders the background into a terminal with tcell. Each
// character cell covers one pixel column and two pixel rows, which keeps
// the projection close to square on common terminal fonts.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"voidgeometry/engine"
)

// shades orders glyphs from faint to dense
var shades = []rune(".,:;-=+*#%@")

// fullAlpha is the opacity drawn with the densest glyph
const fullAlpha = 0.45

// PixelsPerRow is the number of projected pixel rows per terminal row
const PixelsPerRow = 2

// Renderer draws engine frames onto a tcell screen
type Renderer struct {
	screen tcell.Screen
	cells  []float32 // strongest alpha per cell this frame
}

// NewRenderer creates a renderer for screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Viewport returns the engine viewport matching the screen, in pixels
func (r *Renderer) Viewport() (width, height int) {
	cols, rows := r.screen.Size()
	return cols, rows * PixelsPerRow
}

// Draw rasterizes every segment and writes the screen cells. It does not
// call Show so the caller can add an overlay first.
func (r *Renderer) Draw(f *engine.Frame) {
	cols, rows := r.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	if cap(r.cells) < cols*rows {
		r.cells = make([]float32, cols*rows)
	}
	r.cells = r.cells[:cols*rows]
	clear(r.cells)

	w, h := float64(cols), float64(rows*PixelsPerRow)
	for _, s := range f.Segments {
		x0, y0, x1, y1, ok := clipSegment(float64(s.X0), float64(s.Y0), float64(s.X1), float64(s.Y1), w, h)
		if !ok {
			continue
		}
		plotLine(int(x0), int(y0), int(x1), int(y1), func(x, y int) {
			if x < 0 || x >= cols || y < 0 || y >= rows*PixelsPerRow {
				return
			}
			i := (y/PixelsPerRow)*cols + x
			r.cells[i] = max(r.cells[i], s.Alpha)
		})
	}

	bg := f.Background.Clamped()
	base := tcell.StyleDefault.Background(toTcell(bg))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			a := r.cells[y*cols+x]
			if a <= 0 {
				r.screen.SetContent(x, y, ' ', nil, base)
				continue
			}
			t := math.Min(float64(a)/fullAlpha, 1)
			fg := bg.BlendRgb(f.Color, 0.4+0.6*t)
			r.screen.SetContent(x, y, shadeFor(t), nil, base.Foreground(toTcell(fg)))
		}
	}
}

// DrawText writes an overlay line at row y
func (r *Renderer) DrawText(x, y int, line string, style tcell.Style) {
	for _, c := range line {
		r.screen.SetContent(x, y, c, nil, style)
		x++
	}
}

func shadeFor(t float64) rune {
	i := int(t*float64(len(shades)-1) + 0.5)
	return shades[min(max(i, 0), len(shades)-1)]
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// clipSegment trims a segment to the box [0, w) x [0, h) using Liang-Barsky
func clipSegment(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	maxX, maxY := w-1, h-1
	for _, edge := range [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// plotLine walks the integer points of a line with Bresenham's algorithm
func plotLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
