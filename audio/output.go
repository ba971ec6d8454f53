package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is the device a Session plays through
// Lock/Unlock guard streamer state against the device's pull goroutine
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// speakerOutput plays through the system speaker via beep/speaker
type speakerOutput struct{}

// NewSpeakerOutput returns the default hardware output
func NewSpeakerOutput() Output {
	return speakerOutput{}
}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	if err := speaker.Init(rate, bufferSize); err != nil {
		return fmt.Errorf("%w: %v", ErrNoAudioBackend, err)
	}
	return nil
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }

func (speakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}

// MemoryOutput is a pull-driven Output with no device behind it
// Tests and headless runs drive it with Pull
type MemoryOutput struct {
	mu        sync.Mutex
	rate      beep.SampleRate
	streamers []beep.Streamer
	initErr   error
	inits     int
	closes    int
}

// NewMemoryOutput creates an output whose Init succeeds
func NewMemoryOutput() *MemoryOutput {
	return &MemoryOutput{}
}

// NewFailingOutput creates an output whose Init always fails, simulating a missing backend
func NewFailingOutput() *MemoryOutput {
	return &MemoryOutput{initErr: ErrNoAudioBackend}
}

func (o *MemoryOutput) Init(rate beep.SampleRate, bufferSize int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inits++
	if o.initErr != nil {
		return o.initErr
	}
	o.rate = rate
	return nil
}

func (o *MemoryOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streamers = append(o.streamers, s)
}

func (o *MemoryOutput) Lock()   { o.mu.Lock() }
func (o *MemoryOutput) Unlock() { o.mu.Unlock() }

func (o *MemoryOutput) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streamers = nil
	o.closes++
}

// Pull renders n stereo frames from everything playing
func (o *MemoryOutput) Pull(n int) [][2]float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([][2]float64, n)
	if len(o.streamers) == 0 {
		return out
	}

	tmp := make([][2]float64, n)
	alive := o.streamers[:0]
	for _, s := range o.streamers {
		for i := range tmp {
			tmp[i] = [2]float64{}
		}
		got, ok := s.Stream(tmp)
		for i := 0; i < got; i++ {
			out[i][0] += tmp[i][0]
			out[i][1] += tmp[i][1]
		}
		if ok {
			alive = append(alive, s)
		}
	}
	o.streamers = alive
	return out
}

// Playing reports how many top-level streamers are attached
func (o *MemoryOutput) Playing() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.streamers)
}

// Inits and Closes count lifecycle calls
func (o *MemoryOutput) Inits() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inits
}

func (o *MemoryOutput) Closes() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closes
}
