package engine

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// SceneObject is one wireframe primitive with its animation metadata
type SceneObject struct {
	Shape Shape

	Base     mgl64.Vec3 // spawn position; Y is the breathing center
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles in radians, XYZ order
	Scale    float64

	Phase float64 // breathing phase offset in radians
	RateX float64 // self rotation in radians per frame
	RateY float64
}

// Transform returns the object's model matrix
func (o *SceneObject) Transform() mgl64.Mat4 {
	p := o.Position
	return mgl64.Translate3D(p[0], p[1], p[2]).
		Mul4(eulerXYZ(o.Rotation)).
		Mul4(mgl64.Scale3D(o.Scale, o.Scale, o.Scale))
}

// eulerXYZ builds an XYZ-order rotation, X applied last
func eulerXYZ(r mgl64.Vec3) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(r[0]).
		Mul4(mgl64.HomogRotate3DY(r[1])).
		Mul4(mgl64.HomogRotate3DZ(r[2]))
}

// Pool is the fixed set of primitives. Objects are created once and recycled
// through the depth window instead of being destroyed.
type Pool struct {
	objects []SceneObject
}

// NewPool places n primitives at random inside the spawn volume
func NewPool(n int, rng *rand.Rand) *Pool {
	if n < 0 {
		n = 0
	}
	p := &Pool{objects: make([]SceneObject, n)}
	for i := range p.objects {
		pos := mgl64.Vec3{
			(rng.Float64() - 0.5) * spawnSpread,
			(rng.Float64() - 0.5) * spawnSpread,
			(rng.Float64()-0.5)*spawnDepthSpread + spawnDepthOffset,
		}
		p.objects[i] = SceneObject{
			Shape:    Shape(rng.IntN(int(shapeCount))),
			Base:     pos,
			Position: pos,
			Scale:    rng.Float64()*scaleRange + scaleMin,
			Phase:    rng.Float64() * 2 * math.Pi,
			RateX:    (rng.Float64() - 0.5) * rotationRateSpread,
			RateY:    (rng.Float64() - 0.5) * rotationRateSpread,
		}
	}
	return p
}

// Len returns the pool size
func (p *Pool) Len() int { return len(p.objects) }

// Objects returns the pool contents. Callers must not retain or modify it.
func (p *Pool) Objects() []SceneObject { return p.objects }

// Update advances every object by steps frames: self rotation scaled by the
// rotation multiplier, breathing around the base height, and depth drift with
// scroll velocity that wraps inside the depth window.
func (p *Pool) Update(params RenderParameters, scrollVelocity, elapsed, steps float64, t Tuning) {
	spin := params.RotationMultiplier * steps
	drift := scrollVelocity * t.ScrollDrift * steps
	breath := elapsed * t.BreathRate
	for i := range p.objects {
		o := &p.objects[i]
		o.Rotation[0] += o.RateX * spin
		o.Rotation[1] += o.RateY * spin
		o.Position[1] = o.Base[1] + math.Sin(breath+o.Phase)*params.BreathingAmplitude
		o.Position[2] = wrapDepth(o.Position[2] + drift)
	}
}

// wrapDepth teleports z back into [depthMin, depthMax], modulo the window
// span, so any drift lands inside the window on the same tick
func wrapDepth(z float64) float64 {
	if z >= depthMin && z <= depthMax {
		return z
	}
	m := math.Mod(z-depthMin, depthSpan)
	if m < 0 {
		m += depthSpan
	}
	return depthMin + m
}
