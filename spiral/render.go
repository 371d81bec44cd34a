package spiral

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Render colors.
var (
	Background  = color.RGBA{0, 0, 0, 255}       // canvas fill
	TraceColor  = color.RGBA{204, 204, 204, 255} // unplayed spiral (#CCCCCC)
	PlayedColor = color.RGBA{255, 0, 0, 255}     // played prefix (#FF0000)
)

// Render rasterizes the spiral path as one frame. The prefix of the
// path up to progress (0..1) is drawn in the played color, the rest
// in the trace color. Stateless: frames may be rendered in any order.
func Render(pts []Point, progress float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
	fill(img, Background)

	split := int(float64(len(pts)) * progress)
	if split < 0 {
		split = 0
	}
	if split > len(pts) {
		split = len(pts)
	}

	if split > 1 {
		polyline(img, pts[:split], PlayedColor)
	}
	if split < len(pts) {
		polyline(img, pts[split:], TraceColor)
	}
	return img
}

// SavePNG writes a frame to path as PNG.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("save image: %w", err)
	}
	return f.Close()
}

func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

// polyline draws segments between consecutive points.
func polyline(img *image.RGBA, pts []Point, c color.RGBA) {
	for i := 1; i < len(pts); i++ {
		line(img, pts[i-1], pts[i], c)
	}
}

// line plots a segment by sampling it at pixel pitch. Points far off
// canvas (possible with extreme parameters) are skipped by setPixel's
// bounds check rather than clipped geometrically.
func line(img *image.RGBA, a, b Point, c color.RGBA) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		setPixel(img, int(a.X+dx*t), int(a.Y+dy*t), c)
	}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= CanvasSize || y >= CanvasSize {
		return
	}
	off := img.PixOffset(x, y)
	img.Pix[off] = c.R
	img.Pix[off+1] = c.G
	img.Pix[off+2] = c.B
	img.Pix[off+3] = c.A
}
