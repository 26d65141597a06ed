package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// minVisibleAlpha drops edges too faint to change an 8-bit pixel
const minVisibleAlpha = 1.0 / 255

// Segment is one projected wireframe edge in viewport pixels
type Segment struct {
	X0, Y0 float32
	X1, Y1 float32
	Alpha  float32 // material opacity after fog
	Depth  float32 // distance from the camera plane
}

// Frame is the draw list of one tick. It is reused between ticks, so targets
// must not retain it after Draw returns.
type Frame struct {
	Number     uint64
	Width      int
	Height     int
	Color      colorful.Color
	Background colorful.Color
	Segments   []Segment
}

// Target receives exactly one Frame per tick
type Target interface {
	Draw(f *Frame)
}

// TargetFunc adapts a function to Target
type TargetFunc func(f *Frame)

func (fn TargetFunc) Draw(f *Frame) { fn(f) }

// projector turns the pool into segments. It keeps a scratch buffer so the
// per-frame path does not allocate once warmed up.
type projector struct {
	scratch []mgl64.Vec3
}

func (p *projector) project(dst *Frame, objects []SceneObject, group mgl64.Mat4, cam *Camera, opacity, fogDensity float64) {
	dst.Segments = dst.Segments[:0]
	view := cam.View()
	proj := cam.Projection()
	near := cam.Near

	for i := range objects {
		o := &objects[i]
		wf := WireframeOf(o.Shape)
		modelView := view.Mul4(group).Mul4(o.Transform())

		if cap(p.scratch) < len(wf.Vertices) {
			p.scratch = make([]mgl64.Vec3, len(wf.Vertices))
		}
		vs := p.scratch[:len(wf.Vertices)]
		for j, v := range wf.Vertices {
			vs[j] = modelView.Mul4x1(v.Vec4(1)).Vec3()
		}

		for _, e := range wf.Edges {
			a, b, ok := clipNear(vs[e[0]], vs[e[1]], near)
			if !ok {
				continue
			}
			depth := -(a.Z() + b.Z()) / 2
			alpha := opacity * fogVisibility(fogDensity, depth)
			if alpha < minVisibleAlpha {
				continue
			}
			x0, y0 := projectPoint(proj, cam, a)
			x1, y1 := projectPoint(proj, cam, b)
			dst.Segments = append(dst.Segments, Segment{
				X0: float32(x0), Y0: float32(y0),
				X1: float32(x1), Y1: float32(y1),
				Alpha: float32(alpha),
				Depth: float32(depth),
			})
		}
	}
}

// clipNear trims a view-space segment to the part in front of the near plane.
// The camera looks down -Z.
func clipNear(a, b mgl64.Vec3, near float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	plane := -near
	aIn, bIn := a.Z() <= plane, b.Z() <= plane
	switch {
	case aIn && bIn:
		return a, b, true
	case !aIn && !bIn:
		return a, b, false
	case !aIn:
		a = lerp(a, b, (plane-a.Z())/(b.Z()-a.Z()))
	default:
		b = lerp(b, a, (plane-b.Z())/(a.Z()-b.Z()))
	}
	return a, b, true
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func projectPoint(proj mgl64.Mat4, cam *Camera, p mgl64.Vec3) (float64, float64) {
	c := proj.Mul4x1(p.Vec4(1))
	if c.W() == 0 {
		return cam.NDCToScreen(0, 0)
	}
	return cam.NDCToScreen(c.X()/c.W(), c.Y()/c.W())
}

// fogVisibility is the share of the line color left after exponential
// squared fog at the given depth.
func fogVisibility(density, depth float64) float64 {
	d := density * depth
	return math.Exp(-d * d)
}
