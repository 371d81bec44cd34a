// Package track loads audio files into mono sample buffers for
// spiral rendering. The original file is never modified; its path is
// retained so playback and video muxing can use the source stream
// directly.
package track

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Track is an immutable decoded audio file. Samples is the
// channel-averaged waveform, peak-normalized to [-1, 1].
type Track struct {
	Path       string
	SampleRate int
	Samples    []float64
}

// Load decodes the audio file at path into a Track. Multi-channel
// audio is reduced by averaging, and the result is normalized so the
// loudest sample has magnitude 1. On failure no Track is produced, so
// a caller holding a previously loaded Track keeps it untouched.
func Load(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := Decode(f)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	samples := collectMono(streamer)
	normalize(samples)

	return &Track{
		Path:       path,
		SampleRate: int(format.SampleRate),
		Samples:    samples,
	}, nil
}

// Decode picks a beep decoder for the open file by its extension.
// Closing the returned streamer does not close the file.
func Decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(f.Name())); ext {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".flac":
		s, format, err = flac.Decode(f)
	case ".ogg", ".oga":
		s, format, err = vorbis.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s (extension %q)", ErrUnsupportedFormat, f.Name(), ext)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, f.Name(), err)
	}
	return s, format, nil
}

// collectMono drains a streamer, averaging left and right into one
// amplitude sequence.
func collectMono(s beep.Streamer) []float64 {
	var out []float64
	buf := make([][2]float64, 2048)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, (buf[i][0]+buf[i][1])/2)
		}
		if !ok {
			return out
		}
	}
}

// normalize scales samples in place so the peak magnitude is 1. The
// epsilon keeps all-silence input finite instead of dividing by zero.
func normalize(samples []float64) {
	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	scale := 1 / (peak + 1e-9)
	for i := range samples {
		samples[i] *= scale
	}
}

// Duration returns the track length in seconds.
func (t *Track) Duration() float64 {
	if t.SampleRate == 0 {
		return 0
	}
	return float64(len(t.Samples)) / float64(t.SampleRate)
}

// AmplitudeAt returns the sample nearest to the normalized position
// in [0, 1]. Positions outside the range are clamped.
func (t *Track) AmplitudeAt(position float64) float64 {
	if len(t.Samples) == 0 {
		return 0
	}
	idx := int(position * float64(len(t.Samples)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(t.Samples) {
		idx = len(t.Samples) - 1
	}
	return t.Samples[idx]
}
