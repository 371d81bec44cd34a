package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Per-field adjustment steps; coarse enough to sweep the recommended
// ranges in a few presses.
var paramSteps = [numFields]float64{25, 0.5, 5}

// quitGrace bounds how long quitting waits for a cancelled render job
// to reach a terminal state. It exceeds the compositor's own kill
// grace, so a hung encoder cannot wedge the exit.
const quitGrace = 5 * time.Second

// handleKey dispatches key presses. It may return a command (track
// load, job wait) to run off the UI loop.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.job != nil {
			// The job's teardown reaps the encoder and removes
			// partial output; it must run before the process exits.
			m.job.Cancel()
			select {
			case <-m.job.Done():
			case <-time.After(quitGrace):
			}
		}
		if m.player != nil {
			m.player.Stop()
		}
		m.quitting = true

	case "tab", "down":
		m.cursor = (m.cursor + 1) % numFields

	case "shift+tab", "up":
		m.cursor = (m.cursor + numFields - 1) % numFields

	case "+", "=":
		m.adjustParam(paramSteps[m.cursor])

	case "-", "_":
		m.adjustParam(-paramSteps[m.cursor])

	case "enter", "u":
		m.rebuild()

	case " ":
		m.togglePlayback()

	case "s":
		m.player.Stop()
		m.previewDirty = true
		m.refreshPreview()

	case "left":
		m.player.Seek(-5 * time.Second)

	case "right":
		m.player.Seek(5 * time.Second)

	case "9":
		m.player.SetVolume(m.player.Volume() - 2)
		m.status = volumeStatus(m.player.Volume())

	case "0":
		m.player.SetVolume(m.player.Volume() + 2)
		m.status = volumeStatus(m.player.Volume())

	case "p":
		m.savePNG()

	case "v":
		return m.startVideo()

	case "x":
		if m.job != nil {
			m.job.Cancel()
		}

	case "]", "n":
		if entry, ok := m.queue.Next(); ok {
			return m.selectEntry(entry)
		}

	case "[", "b":
		if entry, ok := m.queue.Prev(); ok {
			return m.selectEntry(entry)
		}
	}
	return nil
}

// adjustParam nudges the selected parameter. Values are not clamped:
// extreme spirals are a feature, not an error.
func (m *Model) adjustParam(delta float64) {
	switch m.cursor {
	case fieldR0:
		m.params.R0 += delta
	case fieldB:
		m.params.B += delta
	case fieldAmp:
		m.params.Amp += delta
	}
}

func volumeStatus(db float64) string {
	return fmt.Sprintf("Volume %+.0f dB", db)
}

// togglePlayback starts, pauses, or resumes preview playback.
func (m *Model) togglePlayback() {
	if m.trk == nil {
		return
	}
	if m.player.IsPlaying() {
		m.player.TogglePause()
		return
	}
	if err := m.player.Play(m.trk.Path); err != nil {
		m.err = err
	}
}
