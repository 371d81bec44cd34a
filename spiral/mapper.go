// Package spiral maps a waveform onto an Archimedean spiral and
// rasterizes it. All functions are pure: the same track, parameters,
// and playhead always produce the same path and the same frame, which
// is what keeps video rendering frame-exact and reproducible.
package spiral

import "math"

const (
	// CanvasSize is the square raster edge in pixels.
	CanvasSize = 2000

	// edgeMargin keeps the outermost revolution just inside the canvas.
	edgeMargin = 0.98

	// maxPathPoints caps path resolution so one frame of a long track
	// stays cheap to draw. Tracks shorter than ~12s at 44.1kHz still
	// get one point per sample.
	maxPathPoints = 1 << 19
)

// Params are the user-tunable spiral controls. Recommended ranges are
// guidance only: out-of-range values are accepted and simply produce
// visually extreme spirals.
type Params struct {
	R0  float64 // initial radius, recommended 100-2000
	B   float64 // radial growth per radian, recommended 1-10
	Amp float64 // amplitude scale, recommended 10-100
}

// DefaultParams returns the starting parameter set.
func DefaultParams() Params {
	return Params{R0: 500, B: 5, Amp: 40}
}

// Point is a Cartesian canvas coordinate.
type Point struct {
	X, Y float64
}

// Mapper converts normalized track positions to spiral coordinates
// for a fixed parameter set and canvas.
type Mapper struct {
	params   Params
	thetaMax float64
	center   float64
}

// NewMapper derives the spiral geometry: the total angular sweep is
// chosen so the unmodulated spiral ends at the canvas edge.
func NewMapper(params Params) *Mapper {
	rMax := float64(CanvasSize) / 2 * edgeMargin
	return &Mapper{
		params:   params,
		thetaMax: (rMax - params.R0) / (params.B + 1e-9),
		center:   float64(CanvasSize) / 2,
	}
}

// ThetaMax returns the total angular sweep in radians.
func (m *Mapper) ThetaMax() float64 { return m.thetaMax }

// Angle returns the spiral angle for a normalized position in [0, 1].
// It is strictly increasing in position whenever thetaMax is positive.
func (m *Mapper) Angle(position float64) float64 {
	return position * m.thetaMax
}

// Radius returns the amplitude-modulated radius at the given angle.
// It may go negative for strongly negative amplitudes with a small
// r0; that is drawn as-is, not clamped.
func (m *Mapper) Radius(theta, localAmplitude float64) float64 {
	return m.params.R0 + m.params.B*theta + m.params.Amp*localAmplitude
}

// Map converts a normalized position and local amplitude to a canvas
// point. The quarter-turn phase offset starts the spiral at twelve
// o'clock.
func (m *Mapper) Map(position, localAmplitude float64) Point {
	theta := m.Angle(position)
	r := m.Radius(theta, localAmplitude)
	a := theta + math.Pi/2
	return Point{
		X: m.center + r*math.Cos(a),
		Y: m.center + r*math.Sin(a),
	}
}

// Path maps a whole sample sequence onto the spiral, one point per
// sample up to maxPathPoints (longer tracks are decimated evenly).
func Path(samples []float64, params Params) []Point {
	n := len(samples)
	if n == 0 {
		return nil
	}
	step := 1
	if n > maxPathPoints {
		step = (n + maxPathPoints - 1) / maxPathPoints
	}

	m := NewMapper(params)
	pts := make([]Point, 0, (n+step-1)/step)
	denom := float64(n - 1)
	if denom == 0 {
		denom = 1
	}
	for i := 0; i < n; i += step {
		pts = append(pts, m.Map(float64(i)/denom, samples[i]))
	}
	return pts
}
