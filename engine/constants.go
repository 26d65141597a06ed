package engine

import "math"

// Simulation constants
const (
	referenceFrame = 1.0 / 60.0 // seconds; damping factors are defined per frame at this rate
	maxFrameDelta  = 0.1        // seconds; larger gaps (tab switch, debugger) are clamped

	moodMin = -0.5
	moodMax = 1.0

	reducedMotionSpin = 0.0001 // radians per frame around Y when motion is reduced
	groupPitchRatio   = 0.5    // group X rotation relative to Y
	pointerParallax   = 2.0    // camera offset per unit of smoothed pointer
)

// Object pool constants
const (
	defaultObjectCount = 25
	spawnSpread        = 20.0 // x and y are uniform in [-spread/2, spread/2]
	spawnDepthSpread   = 10.0
	spawnDepthOffset   = -5.0
	scaleMin           = 0.2
	scaleRange         = 0.5
	rotationRateSpread = 0.01 // per-axis rates are uniform in [-spread/2, spread/2]

	depthMin  = -10.0
	depthMax  = 5.0
	depthSpan = depthMax - depthMin
)

// Camera constants
const (
	cameraDistance = 5.0
	cameraFOV      = 75 * math.Pi / 180
	cameraNear     = 0.1
	cameraFar      = 100.0
)

// Default tuning values
const (
	defaultPointerDamping     = 0.02
	defaultScrollDamping      = 0.02
	defaultMoodDamping        = 0.01
	defaultFogDamping         = 0.01
	defaultCameraDamping      = 0.02
	defaultColorStep          = 0.005
	defaultWorkThreshold      = 0.3
	defaultContactThreshold   = -0.2
	defaultBaseSpeed          = 0.0005
	defaultScrollDrift        = 0.005
	defaultBreathRate         = 0.2
	defaultPointerSensitivity = 0.001
	defaultScrollClamp        = 5.0
)

// Palette defaults
const (
	defaultHomeColor    = "#444444" // neutral grey
	defaultWorkColor    = "#3b4f7d" // blue tint
	defaultContactColor = "#1d3a38" // dark teal
	defaultFogColor     = "#0a0a0a"
)
