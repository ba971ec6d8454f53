package render

import (
	"github.com/lixenwraith/vi-beaker/effect"
)

// Frame is the per-update input to the renderer
type Frame struct {
	State       effect.Descriptor `json:"state"`
	Fill        effect.FillIndex  `json:"fill"`
	RetriggerID uint64            `json:"retriggerId"`

	// Sources is the number of active substances; zero hides the liquid
	Sources int `json:"sources"`
}

// EmptyFrame is the frame for a bench with nothing on it
func EmptyFrame() Frame {
	return Frame{State: effect.Baseline()}
}
