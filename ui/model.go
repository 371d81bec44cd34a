// Package ui implements the Bubbletea session for the vinyl
// visualizer: parameter editing, spiral preview with a live playhead,
// preview playback, and video export with progress.
package ui

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vinylgen/player"
	"vinylgen/playlist"
	"vinylgen/spiral"
	"vinylgen/track"
	"vinylgen/video"
)

// paramField identifies the spiral parameter under the cursor.
type paramField int

const (
	fieldR0 paramField = iota
	fieldB
	fieldAmp
	numFields
)

type tickMsg time.Time

// trackLoadedMsg reports the result of a background decode.
type trackLoadedMsg struct {
	path string
	t    *track.Track
	err  error
}

// jobDoneMsg reports a finished video generation job.
type jobDoneMsg struct{ job *video.Job }

// Model owns all mutable application state: the loaded track, the
// current parameters, and the in-flight render job. Everything the
// background worker shares with the session goes through the job's
// atomics, read on tick.
type Model struct {
	player *player.Player
	queue  *playlist.Playlist
	vis    *Visualizer

	trk    *track.Track
	params spiral.Params
	pts    []spiral.Point

	job *video.Job

	preview      *Preview
	previewStr   string
	previewAt    float64 // progress the cached preview was drawn at
	previewDirty bool

	cursor   paramField
	loading  bool
	status   string
	err      error
	quitting bool
	width    int
	height   int
}

// NewModel creates a Model wired to the given player and file queue.
func NewModel(p *player.Player, queue *playlist.Playlist) Model {
	return Model{
		player:  p,
		queue:   queue,
		vis:     NewVisualizer(44100),
		params:  spiral.DefaultParams(),
		preview: NewPreview(60, 18),
	}
}

// Init starts the tick timer, requests the terminal size, and loads
// the first queued file.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), tea.WindowSize()}
	if entry, idx := m.queue.Current(); idx >= 0 {
		cmds = append(cmds, loadCmd(entry.Path))
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*50, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCmd decodes an audio file off the UI loop.
func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		t, err := track.Load(path)
		return trackLoadedMsg{path: path, t: t, err: err}
	}
}

// waitJobCmd blocks until the render job reaches a terminal state.
func waitJobCmd(j *video.Job) tea.Cmd {
	return func() tea.Msg {
		<-j.Done()
		return jobDoneMsg{job: j}
	}
}

// Update handles messages: key presses, ticks, load and job results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePreview()

	case trackLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// Keep the previously loaded track untouched on failure.
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.trk = msg.t
		m.status = fmt.Sprintf("Loaded %s (%.1fs @ %d Hz)",
			filepath.Base(msg.path), msg.t.Duration(), msg.t.SampleRate)
		m.rebuild()

	case jobDoneMsg:
		if msg.job == m.job {
			m.finishJob()
		}

	case tickMsg:
		if m.player.IsPlaying() && !m.player.IsPaused() && m.player.TrackDone() {
			m.player.Stop()
		}
		m.refreshPreview()
		return m, tickCmd()
	}

	return m, nil
}

// rebuild recomputes the spiral path from the current track and
// parameters, invalidating the cached preview.
func (m *Model) rebuild() {
	if m.trk == nil {
		return
	}
	m.pts = spiral.Path(m.trk.Samples, m.params)
	m.previewDirty = true
	m.refreshPreview()
}

// playheadProgress is the normalized position driving the preview's
// red prefix: live playback position while playing, else 0.
func (m *Model) playheadProgress() float64 {
	if m.player == nil || !m.player.IsPlaying() {
		return 0
	}
	return m.player.Progress()
}

// refreshPreview re-renders the cached preview string when the
// playhead moved far enough to change it, or after a rebuild.
func (m *Model) refreshPreview() {
	if m.pts == nil {
		m.previewStr = ""
		return
	}
	progress := m.playheadProgress()
	moved := progress-m.previewAt >= 0.005 || m.previewAt-progress >= 0.005
	if !m.previewDirty && !moved {
		return
	}
	m.previewStr = m.preview.Render(m.pts, progress)
	m.previewAt = progress
	m.previewDirty = false
}

// resizePreview fits the preview grid to the terminal.
func (m *Model) resizePreview() {
	cols := m.width - 8
	rows := m.height - 16
	if cols < 20 {
		cols = 20
	}
	if rows < 6 {
		rows = 6
	}
	m.preview = NewPreview(cols, rows)
	m.previewDirty = true
	m.refreshPreview()
}

// selectEntry loads another queued file, stopping playback first.
func (m *Model) selectEntry(entry playlist.Entry) tea.Cmd {
	if m.job != nil {
		m.status = "Finish or cancel the render first"
		return nil
	}
	m.player.Stop()
	m.loading = true
	m.status = "Loading " + entry.DisplayName()
	return loadCmd(entry.Path)
}

// startVideo kicks off background video generation for the current
// track, rendering frames from the already built spiral path.
func (m *Model) startVideo() tea.Cmd {
	if m.trk == nil || m.pts == nil || m.job != nil {
		return nil
	}
	outPath := derivedPath(m.trk.Path, "_vinyl.mp4")
	comp := video.New(video.DefaultOptions(spiral.CanvasSize, spiral.CanvasSize))

	pts := m.pts // frames must not see later parameter edits
	job, err := comp.Start(video.RenderFunc(func(progress float64) *image.RGBA {
		return spiral.Render(pts, progress)
	}), m.trk.Path, m.trk.Duration(), outPath)
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.job = job
	m.status = "Rendering " + filepath.Base(outPath)
	return waitJobCmd(job)
}

// finishJob folds a terminal job state back into the session.
func (m *Model) finishJob() {
	job := m.job
	m.job = nil
	switch job.State() {
	case video.StateCompleted:
		m.status = "Video saved to " + job.OutPath
	case video.StateCancelled:
		// Expected user action: status only, no error surface.
		m.status = "Video generation cancelled"
	default:
		m.err = job.Err()
		m.status = ""
	}
}

// savePNG exports the current spiral (with playhead, if playing).
func (m *Model) savePNG() {
	if m.trk == nil || m.pts == nil {
		return
	}
	outPath := derivedPath(m.trk.Path, "_vinyl.png")
	img := spiral.Render(m.pts, m.playheadProgress())
	if err := spiral.SavePNG(img, outPath); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = "Image saved to " + outPath
}

// derivedPath places an output next to the source file.
func derivedPath(srcPath, suffix string) string {
	base := strings.TrimSuffix(srcPath, filepath.Ext(srcPath))
	return base + suffix
}
