package audio

import (
	"errors"
)

// ChannelType identifies a continuously gated noise channel
type ChannelType int

const (
	ChannelFizz    ChannelType = iota // Bubbles
	ChannelHiss                       // Smoke
	ChannelCrackle                    // Sparkles
	channelTypeCount
)

func (c ChannelType) String() string {
	switch c {
	case ChannelFizz:
		return "fizz"
	case ChannelHiss:
		return "hiss"
	case ChannelCrackle:
		return "crackle"
	default:
		return "unknown"
	}
}

// NoiseColor selects the spectral tilt of a noise source
type NoiseColor int

const (
	NoiseWhite NoiseColor = iota
	NoisePink
	NoiseBrown
)

// ErrNoAudioBackend wraps output device initialization failures
var ErrNoAudioBackend = errors.New("no compatible audio backend found")
