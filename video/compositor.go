// Package video drives frame rendering across a track's duration and
// pipes raw RGB24 frames into an external ffmpeg process, which muxes
// in the original audio stream. Frames are produced and submitted
// strictly in increasing time order; ffmpeg assumes sequential
// delivery on its rawvideo input.
package video

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// Renderer produces one frame for a normalized playhead position.
// Implementations must be stateless across calls.
type Renderer interface {
	RenderFrame(progress float64) *image.RGBA
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(progress float64) *image.RGBA

func (f RenderFunc) RenderFrame(progress float64) *image.RGBA { return f(progress) }

// Options configure one compositor.
type Options struct {
	FPS     int    // output frame rate
	Width   int    // frame width in pixels
	Height  int    // frame height in pixels
	CRF     int    // libx264 constant rate factor, lower is better
	Preset  string // libx264 preset
	Encoder string // encoder binary name, resolved on PATH
}

// DefaultOptions mirror the original tool: 10 fps at CRF 23 keeps
// encode time reasonable for spirals that only advance a red prefix.
func DefaultOptions(width, height int) Options {
	return Options{
		FPS:     10,
		Width:   width,
		Height:  height,
		CRF:     23,
		Preset:  "ultrafast",
		Encoder: "ffmpeg",
	}
}

// killGrace is how long a cancelled encoder gets to exit after its
// input pipe closes before it is killed outright.
const killGrace = 3 * time.Second

// Compositor turns rendered frames plus a source audio file into a
// video. It is reusable; each Start call produces an independent Job.
type Compositor struct {
	opts Options

	// test seams
	lookPath func(string) (string, error)
	newCmd   func(bin, audioPath, outPath string) *exec.Cmd
}

// New creates a Compositor with the given options.
func New(opts Options) *Compositor {
	c := &Compositor{opts: opts, lookPath: exec.LookPath}
	c.newCmd = c.encoderCmd
	return c
}

// encoderCmd builds the ffmpeg invocation: raw frames on stdin, the
// untouched source audio as a second input, H.264 + AAC out.
func (c *Compositor) encoderCmd(bin, audioPath, outPath string) *exec.Cmd {
	return exec.Command(bin,
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", c.opts.Width, c.opts.Height),
		"-framerate", strconv.Itoa(c.opts.FPS),
		"-i", "pipe:0",
		"-i", audioPath,
		"-c:v", "libx264",
		"-preset", c.opts.Preset,
		"-crf", strconv.Itoa(c.opts.CRF),
		"-c:a", "aac",
		"-b:a", "192k",
		"-pix_fmt", "yuv420p",
		"-shortest",
		outPath,
	)
}

// Start begins a video generation job in the background. duration is
// the track length in seconds. The returned Job reports progress and
// accepts cancellation; read Err after Done closes.
func (c *Compositor) Start(r Renderer, audioPath string, duration float64, outPath string) (*Job, error) {
	bin, err := c.lookPath(c.opts.Encoder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoderNotFound, err)
	}

	total := int(duration * float64(c.opts.FPS))
	if total < 1 {
		total = 1
	}

	job := newJob(outPath, total)
	go c.run(job, r, bin, audioPath)
	return job, nil
}

func (c *Compositor) run(job *Job, r Renderer, bin, audioPath string) {
	cmd := c.newCmd(bin, audioPath, job.OutPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		job.finish(StateFailed, &EncodeError{Err: err})
		return
	}
	if err := cmd.Start(); err != nil {
		job.finish(StateFailed, &EncodeError{Err: err})
		return
	}

	frame := make([]byte, c.opts.Width*c.opts.Height*3)
	for i := 0; i < job.total; i++ {
		// Cancellation is cooperative: observed between frames only.
		if job.cancelRequested() {
			c.abort(cmd, stdin)
			os.Remove(job.OutPath)
			job.finish(StateCancelled, ErrCancelled)
			return
		}

		img := r.RenderFrame(float64(i) / float64(job.total))
		rgb24(img, frame)
		if _, err := stdin.Write(frame); err != nil {
			c.abort(cmd, stdin)
			os.Remove(job.OutPath)
			job.finish(StateFailed, &EncodeError{Err: err, Stderr: stderr.String()})
			return
		}
		job.frame.Store(int64(i + 1))
	}

	// Closing stdin signals end-of-stream; ffmpeg then finalizes the
	// container and muxes the audio.
	stdin.Close()
	if err := cmd.Wait(); err != nil {
		os.Remove(job.OutPath)
		job.finish(StateFailed, &EncodeError{Err: err, Stderr: stderr.String()})
		return
	}
	job.finish(StateCompleted, nil)
}

// abort closes the frame pipe and reaps the encoder, killing it if it
// does not exit within the grace period. Every exit path must reap
// the process to avoid orphans.
func (c *Compositor) abort(cmd *exec.Cmd, stdin io.WriteCloser) {
	stdin.Close()

	exited := make(chan struct{})
	go func() {
		cmd.Wait()
		close(exited)
	}()
	select {
	case <-exited:
	case <-time.After(killGrace):
		cmd.Process.Kill()
		<-exited
	}
}

// rgb24 packs an RGBA frame into the encoder's rawvideo pixel format,
// dropping alpha.
func rgb24(img *image.RGBA, dst []byte) {
	j := 0
	for i := 0; i < len(img.Pix); i += 4 {
		dst[j] = img.Pix[i]
		dst[j+1] = img.Pix[i+1]
		dst[j+2] = img.Pix[i+2]
		j += 3
	}
}
