package player

import (
	"testing"

	"github.com/gopxl/beep/v2"
)

// rampStreamer emits an increasing ramp, identical on both channels.
type rampStreamer struct {
	next float64
}

func (r *rampStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i][0] = r.next
		samples[i][1] = r.next
		r.next++
	}
	return len(samples), true
}

func (r *rampStreamer) Err() error { return nil }

func TestTapPassthrough(t *testing.T) {
	t.Parallel()

	tap := NewTap(&rampStreamer{}, 16)
	buf := make([][2]float64, 8)
	n, ok := tap.Stream(buf)
	if n != 8 || !ok {
		t.Fatalf("Stream() = (%d, %v), want (8, true)", n, ok)
	}
	for i := range n {
		if buf[i][0] != float64(i) {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i][0], float64(i))
		}
	}
}

func TestTapSamplesChronological(t *testing.T) {
	t.Parallel()

	tap := NewTap(&rampStreamer{}, 16)
	buf := make([][2]float64, 8)
	tap.Stream(buf)

	// Mono mix of identical channels is the value itself.
	got := tap.Samples(4)
	want := []float64{4, 5, 6, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Samples(4)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTapWraparound(t *testing.T) {
	t.Parallel()

	tap := NewTap(&rampStreamer{}, 8)
	buf := make([][2]float64, 6)
	tap.Stream(buf) // 0..5
	tap.Stream(buf) // 6..11, wraps

	got := tap.Samples(8)
	for i := range got {
		if want := float64(4 + i); got[i] != want {
			t.Errorf("Samples(8)[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestTapSamplesClampedToBuffer(t *testing.T) {
	t.Parallel()

	tap := NewTap(&rampStreamer{}, 4)
	if got := tap.Samples(100); len(got) != 4 {
		t.Errorf("Samples(100) returned %d samples, want 4", len(got))
	}
}

var _ beep.Streamer = (*Tap)(nil)
