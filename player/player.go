// Package player provides preview playback for loaded audio files,
// with a volume stage and a sample tap feeding the spectrum view.
package player

import (
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"vinylgen/track"
)

// Player is the preview audio engine:
//
//	[Decode] -> [Resample] -> [Volume] -> [Tap] -> [Ctrl] -> [Speaker]
type Player struct {
	mu        sync.Mutex
	sr        beep.SampleRate
	streamer  beep.StreamSeekCloser
	format    beep.Format
	ctrl      *beep.Ctrl
	volume    float64 // dB, range [-30, +6]
	tap       *Tap
	trackDone atomic.Bool
	playing   bool
	paused    bool
	file      *os.File
}

// New creates a Player and initializes the speaker at the given sample rate.
func New(sr beep.SampleRate) *Player {
	speaker.Init(sr, sr.N(time.Second/10))
	return &Player{sr: sr}
}

// Play opens the audio file and starts playback, building the pipeline.
func (p *Player) Play(path string) error {
	p.Stop()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}

	streamer, format, err := track.Decode(f)
	if err != nil {
		f.Close()
		return err
	}

	p.mu.Lock()
	p.file = f
	p.streamer = streamer
	p.format = format
	p.trackDone.Store(false)

	var s beep.Streamer = streamer

	// Resample to the speaker rate if the file differs
	if format.SampleRate != p.sr {
		s = beep.Resample(4, format.SampleRate, p.sr, s)
	}

	// Volume control
	s = &volumeStreamer{s: s, vol: &p.volume, mu: &p.mu}

	// Tap for spectrum visualization
	p.tap = NewTap(s, 4096)

	// Pause/resume control
	p.ctrl = &beep.Ctrl{Streamer: p.tap}

	p.playing = true
	p.paused = false
	p.mu.Unlock()

	// Play with end-of-track callback
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		p.trackDone.Store(true)
	})))

	return nil
}

// TogglePause toggles between paused and playing states.
func (p *Player) TogglePause() {
	speaker.Lock()
	defer speaker.Unlock()
	if p.ctrl != nil {
		p.ctrl.Paused = !p.ctrl.Paused
		p.paused = p.ctrl.Paused
	}
}

// Stop halts playback and releases resources.
func (p *Player) Stop() {
	speaker.Clear()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.playing = false
	p.paused = false
	p.trackDone.Store(false)
}

// Seek moves the playback position by the given duration (positive or negative).
func (p *Player) Seek(d time.Duration) error {
	speaker.Lock()
	defer speaker.Unlock()
	if p.streamer == nil {
		return nil
	}
	curSample := p.streamer.Position()
	curDur := p.format.SampleRate.D(curSample)
	newSample := p.format.SampleRate.N(curDur + d)
	if newSample < 0 {
		newSample = 0
	}
	if newSample >= p.streamer.Len() {
		newSample = p.streamer.Len() - 1
	}
	return p.streamer.Seek(newSample)
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Position())
}

// Duration returns the total duration of the current track.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Progress returns the playhead as a normalized position in [0, 1].
func (p *Player) Progress() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	if p.streamer == nil || p.streamer.Len() == 0 {
		return 0
	}
	return float64(p.streamer.Position()) / float64(p.streamer.Len())
}

// SetVolume sets the volume in dB, clamped to [-30, +6].
func (p *Player) SetVolume(db float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = max(min(db, 6), -30)
}

// Volume returns the current volume in dB.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// IsPlaying returns true if a track is loaded and playing (possibly paused).
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// IsPaused returns true if playback is paused.
func (p *Player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// TrackDone returns true if the current track has finished playing.
func (p *Player) TrackDone() bool {
	return p.trackDone.Load()
}

// Samples returns the latest audio samples from the tap for spectrum analysis.
func (p *Player) Samples() []float64 {
	p.mu.Lock()
	tap := p.tap
	p.mu.Unlock()
	if tap == nil {
		return nil
	}
	return tap.Samples(2048)
}

// Close stops playback and cleans up.
func (p *Player) Close() {
	p.Stop()
}

// volumeStreamer applies dB gain to an audio stream.
type volumeStreamer struct {
	s   beep.Streamer
	vol *float64
	mu  *sync.Mutex
}

func (v *volumeStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := v.s.Stream(samples)
	v.mu.Lock()
	gain := math.Pow(10, *v.vol/20)
	v.mu.Unlock()
	for i := range n {
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	return n, ok
}

func (v *volumeStreamer) Err() error { return v.s.Err() }
