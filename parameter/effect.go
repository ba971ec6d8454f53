package parameter

// Channel domains for a combined effect state
const (
	BubblesMax   = 10.0
	SmokeMax     = 1.0
	SparklesMax  = 50
	GlowMax      = 2.0
	ExplosionMax = 10.0
)

// BaselineColor is the plain-water liquid color used when nothing contributes a color
const BaselineColor = "#add8e6"

// Bench Fill
const (
	// BenchCapacity is the number of substances that fills the beaker completely
	BenchCapacity = 12

	// FillSteps is K: the liquid shape table holds FillSteps+1 shapes
	FillSteps = 12
)
