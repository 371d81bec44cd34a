package track

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
)

// writeWAV encodes a streamer into a temp WAV file and returns its path.
func writeWAV(t *testing.T, name string, s beep.Streamer, format beep.Format) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	if err := wav.Encode(f, s, format); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
	return path
}

// constStereo streams fixed left/right values for n samples.
type constStereo struct {
	n    int
	l, r float64
}

func (c *constStereo) Stream(samples [][2]float64) (int, bool) {
	if c.n <= 0 {
		return 0, false
	}
	n := min(len(samples), c.n)
	for i := 0; i < n; i++ {
		samples[i][0] = c.l
		samples[i][1] = c.r
	}
	c.n -= n
	return n, true
}

func (c *constStereo) Err() error { return nil }

func TestLoadWAV(t *testing.T) {
	t.Parallel()

	const (
		rate = 8000
		n    = 4000
	)
	sine, err := generators.SineTone(beep.SampleRate(rate), 440)
	if err != nil {
		t.Fatalf("SineTone() error = %v", err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	path := writeWAV(t, "tone.wav", beep.Take(n, sine), format)

	trk, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if trk.SampleRate != rate {
		t.Errorf("SampleRate = %d, want %d", trk.SampleRate, rate)
	}
	if len(trk.Samples) != n {
		t.Errorf("len(Samples) = %d, want %d", len(trk.Samples), n)
	}
	if got, want := trk.Duration(), float64(n)/rate; math.Abs(got-want) > 1e-9 {
		t.Errorf("Duration() = %v, want %v", got, want)
	}

	// Peak-normalized: the loudest sample is at magnitude ~1 and
	// nothing exceeds it.
	var peak float64
	for _, s := range trk.Samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak > 1 || peak < 0.99 {
		t.Errorf("peak after normalization = %v, want ~1", peak)
	}
}

func TestLoadReducesToMonoAverage(t *testing.T) {
	t.Parallel()

	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	path := writeWAV(t, "stereo.wav", &constStereo{n: 800, l: 0.4, r: 0.8}, format)

	trk, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Constant (0.4+0.8)/2 everywhere, normalized to 1.
	for i, s := range trk.Samples {
		if math.Abs(s-1) > 0.01 {
			t.Fatalf("Samples[%d] = %v, want ~1 (averaged constant signal)", i, s)
		}
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("RIFFgarbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.wav"))
	if err == nil {
		t.Fatal("Load() of missing file succeeded, want error")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want a plain I/O error", err)
	}
}

func TestAmplitudeAt(t *testing.T) {
	t.Parallel()

	trk := &Track{SampleRate: 100, Samples: []float64{-1, -0.5, 0, 0.5, 1}}

	cases := []struct {
		position float64
		want     float64
	}{
		{0, -1},
		{0.5, 0},
		{1, 1},
		{-0.5, -1}, // clamped low
		{1.5, 1},   // clamped high
	}
	for _, tc := range cases {
		if got := trk.AmplitudeAt(tc.position); got != tc.want {
			t.Errorf("AmplitudeAt(%v) = %v, want %v", tc.position, got, tc.want)
		}
	}

	empty := &Track{SampleRate: 100}
	if got := empty.AmplitudeAt(0.5); got != 0 {
		t.Errorf("empty AmplitudeAt(0.5) = %v, want 0", got)
	}
}
