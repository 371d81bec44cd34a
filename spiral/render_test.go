package spiral

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// horizontalPath is a simple on-canvas polyline for pixel checks.
func horizontalPath(n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: float64(100 + i), Y: 1000}
	}
	return pts
}

func TestRenderDimensionsAndBackground(t *testing.T) {
	t.Parallel()

	img := Render(nil, 0)
	b := img.Bounds()
	if b.Dx() != CanvasSize || b.Dy() != CanvasSize {
		t.Fatalf("frame is %dx%d, want %dx%d", b.Dx(), b.Dy(), CanvasSize, CanvasSize)
	}
	if got := img.RGBAAt(0, 0); got != Background {
		t.Errorf("corner pixel = %v, want background %v", got, Background)
	}
	if got := img.RGBAAt(CanvasSize/2, CanvasSize/2); got != Background {
		t.Errorf("center pixel = %v, want background %v", got, Background)
	}
}

func TestRenderProgressSplit(t *testing.T) {
	t.Parallel()

	pts := horizontalPath(100)

	count := func(progress float64) (played, trace int) {
		img := Render(pts, progress)
		for x := 0; x < CanvasSize; x++ {
			switch img.RGBAAt(x, 1000) {
			case PlayedColor:
				played++
			case TraceColor:
				trace++
			}
		}
		return played, trace
	}

	if played, trace := count(0); played != 0 || trace == 0 {
		t.Errorf("progress 0: played=%d trace=%d, want no played and some trace", played, trace)
	}
	if played, trace := count(1); played == 0 || trace != 0 {
		t.Errorf("progress 1: played=%d trace=%d, want some played and no trace", played, trace)
	}
	if played, trace := count(0.5); played == 0 || trace == 0 {
		t.Errorf("progress 0.5: played=%d trace=%d, want both segments drawn", played, trace)
	}
}

func TestRenderStateless(t *testing.T) {
	t.Parallel()

	pts := horizontalPath(50)

	// Frames must be reproducible in any order.
	a1 := Render(pts, 0.7)
	_ = Render(pts, 0.1)
	a2 := Render(pts, 0.7)
	for i := range a1.Pix {
		if a1.Pix[i] != a2.Pix[i] {
			t.Fatalf("frame at progress 0.7 differs after rendering another frame (pix %d)", i)
		}
	}
}

func TestRenderOffCanvasPoints(t *testing.T) {
	t.Parallel()

	// Extreme parameters can push points far off canvas, including
	// negative radii; rendering must simply skip them.
	pts := []Point{
		{X: -5000, Y: -5000},
		{X: 1000, Y: 1000},
		{X: 9000, Y: 9000},
	}
	img := Render(pts, 1)
	if img == nil {
		t.Fatal("Render returned nil")
	}
}

func TestSavePNG(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "spiral.png")

	img := Render(horizontalPath(10), 0)
	if err := SavePNG(img, path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open saved PNG: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode saved PNG: %v", err)
	}
	if decoded.Bounds().Dx() != CanvasSize {
		t.Errorf("decoded width = %d, want %d", decoded.Bounds().Dx(), CanvasSize)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	t.Parallel()

	img := Render(nil, 0)
	err := SavePNG(img, filepath.Join(t.TempDir(), "missing", "dir", "out.png"))
	if err == nil {
		t.Fatal("SavePNG() to a nonexistent directory succeeded, want error")
	}
}
