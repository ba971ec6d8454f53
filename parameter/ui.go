package parameter

import "time"

// Layout & Margins
const (
	// BottomMargin reserves the status bar row
	BottomMargin = 1

	// BeakerMinWidth/MaxWidth bound the outline width in cells, walls included
	BeakerMinWidth = 12
	BeakerMaxWidth = 40

	// BeakerMinHeight/MaxHeight bound the outline height in rows, bottom included
	BeakerMinHeight = 6
	BeakerMaxHeight = 20

	// SmokeHeadroom is the minimum number of rows kept above the rim for smoke
	SmokeHeadroom = 4

	// CellAspect is the height/width ratio of a terminal cell, used to keep circles round
	CellAspect = 2.0
)

// Beaker Scale
const (
	// BeakerCapacityMl is the volume at the top of the interior
	BeakerCapacityMl = 400
)

// GraduationMarksMl are the volume marks drawn on the right wall
var GraduationMarksMl = [4]int{50, 150, 250, 350}

// LiquidLevels is the interior height fraction for each fill index
// Indices 10 through 12 share the maximum visual fill
var LiquidLevels = [FillSteps + 1]float64{
	0, 0.08, 0.16, 0.24, 0.32, 0.40, 0.48, 0.56, 0.64, 0.72, 0.80, 0.80, 0.80,
}

// SmokePlumeColumns are the fixed horizontal positions of the plumes, as interior fractions
var SmokePlumeColumns = [SmokePlumes]float64{0.3, 0.5, 0.7}

// SmokePlumeOffsets are the per-plume phase offsets, negative meaning already in progress
var SmokePlumeOffsets = [SmokePlumes]time.Duration{0, -time.Second, -2500 * time.Millisecond}

// SmokePlumePeriods are the per-plume rise periods
var SmokePlumePeriods = [SmokePlumes]time.Duration{5 * time.Second, 6 * time.Second, 4 * time.Second}

// Explosion Display
const (
	// ExplosionCellScale converts scene radius units into terminal columns
	ExplosionCellScale = 0.25
)

// Frame Pacing
const (
	// FrameInterval is the terminal redraw period while anything animates
	FrameInterval = 50 * time.Millisecond

	// StatusMessageTimeout is how long transient status messages stay visible
	StatusMessageTimeout = 2 * time.Second
)

// UI Symbols
const (
	AudioStr = "♫ "
	MuteStr  = "✕ "
)

// Glow Display
const (
	// GlowCellsPerUnit converts glow radius into halo rows; columns are scaled by CellAspect
	GlowCellsPerUnit = 1.5

	// GlowMaxAlpha is the halo opacity next to the glass
	GlowMaxAlpha = 0.6
)
