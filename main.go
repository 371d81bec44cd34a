// Package main is the entry point for vinylgen, a spiral waveform
// visualizer that previews audio in the terminal and exports PNG
// stills or ffmpeg-encoded videos.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"

	"vinylgen/player"
	"vinylgen/playlist"
	"vinylgen/spiral"
	"vinylgen/track"
	"vinylgen/ui"
	"vinylgen/video"
)

func run() error {
	var (
		pngOut = flag.String("png", "", "write a spiral snapshot PNG to this path and exit")
		mp4Out = flag.String("mp4", "", "render a spiral video to this path and exit")
		at     = flag.Float64("at", 0, "playhead progress (0-1) for -png snapshots")
		fps    = flag.Int("fps", 10, "frame rate for -mp4 output")
		r0     = flag.Float64("r0", 500, "initial radius (recommended 100-2000)")
		b      = flag.Float64("b", 5, "spiral step per radian (recommended 1-10)")
		amp    = flag.Float64("amp", 40, "amplitude scale (recommended 10-100)")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		return errors.New("usage: vinylgen [flags] <audio-file> [more files...]")
	}

	// Expand shell globs that may not have been expanded by the shell
	var files []string
	for _, arg := range flag.Args() {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			files = append(files, arg)
		} else {
			files = append(files, matches...)
		}
	}

	params := spiral.Params{R0: *r0, B: *b, Amp: *amp}

	if *pngOut != "" || *mp4Out != "" {
		logSkippedFiles(files)
		return export(files[0], params, *pngOut, *mp4Out, *at, *fps)
	}

	// Build the file queue
	queue := playlist.New()
	for _, f := range files {
		queue.Add(playlist.FromPath(f))
	}

	// Initialize the preview audio engine at CD-quality sample rate
	p := player.New(beep.SampleRate(44100))
	defer p.Close()

	m := ui.NewModel(p, queue)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// logSkippedFiles notes queued files beyond the first; -png and -mp4
// name a single output path, so headless export takes one input.
func logSkippedFiles(files []string) {
	if len(files) > 1 {
		log.Printf("exporting %s only; ignoring %d additional file(s)", files[0], len(files)-1)
	}
}

// export runs the headless render path: load, build the spiral, write
// the requested outputs, and report progress on the log.
func export(path string, params spiral.Params, pngOut, mp4Out string, at float64, fps int) error {
	log.Printf("loading %s", path)
	t, err := track.Load(path)
	if err != nil {
		return err
	}
	log.Printf("loaded %d samples @ %d Hz (%.1fs)", len(t.Samples), t.SampleRate, t.Duration())

	pts := spiral.Path(t.Samples, params)

	if pngOut != "" {
		if err := spiral.SavePNG(spiral.Render(pts, at), pngOut); err != nil {
			return err
		}
		log.Printf("image saved to %s", pngOut)
	}

	if mp4Out != "" {
		if err := exportVideo(t, pts, mp4Out, fps); err != nil {
			return err
		}
	}
	return nil
}

func exportVideo(t *track.Track, pts []spiral.Point, outPath string, fps int) error {
	opts := video.DefaultOptions(spiral.CanvasSize, spiral.CanvasSize)
	opts.FPS = fps
	comp := video.New(opts)

	job, err := comp.Start(video.RenderFunc(func(progress float64) *image.RGBA {
		return spiral.Render(pts, progress)
	}), t.Path, t.Duration(), outPath)
	if err != nil {
		return err
	}

	// Ctrl-C cancels the job; the compositor discards partial output.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-interrupt:
			job.Cancel()
		case <-ticker.C:
			log.Printf("frame %d/%d", job.Frame(), job.Total())
		case <-job.Done():
			if err := job.Err(); err != nil {
				if errors.Is(err, video.ErrCancelled) {
					log.Printf("cancelled, partial output removed")
					return nil
				}
				return err
			}
			log.Printf("video saved to %s", outPath)
			return nil
		}
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vinylgen:", err)
		os.Exit(1)
	}
}
