package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vinylgen/video"
)

// View renders the full session frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderTitle(),
		m.renderTrackInfo(),
		m.renderParams(),
		"",
		m.renderPreview(),
		"",
		m.renderTimeStatus(),
		m.renderSeekBar(),
	}

	if m.player.IsPlaying() {
		sections = append(sections, m.renderSpectrum())
	}
	if m.job != nil {
		sections = append(sections, m.renderJobProgress())
	}

	sections = append(sections, "", m.renderStatus(), m.renderHelp())

	return frameStyle.Render(strings.Join(sections, "\n"))
}

// pw returns the usable inner panel width.
func (m Model) pw() int {
	w := m.width - 6 // border (2) + padding (2x2)
	if w < 40 {
		w = 40
	}
	return w
}

func (m Model) renderTitle() string {
	title := titleStyle.Render("V I N Y L G E N")
	if m.queue.Len() > 1 {
		pos := dimStyle.Render(fmt.Sprintf("file %d/%d", m.queue.Index()+1, m.queue.Len()))
		gap := m.pw() - lipgloss.Width(title) - lipgloss.Width(pos)
		if gap < 1 {
			gap = 1
		}
		return title + strings.Repeat(" ", gap) + pos
	}
	return title
}

func (m Model) renderTrackInfo() string {
	entry, idx := m.queue.Current()
	if idx < 0 {
		return dimStyle.Render("No file queued")
	}
	name := entry.DisplayName()
	if m.loading {
		return trackStyle.Render("♫ " + name + " (loading...)")
	}
	if m.trk == nil {
		return dimStyle.Render("♫ " + name + " (not loaded)")
	}
	info := fmt.Sprintf("♫ %s  %.1fs @ %d Hz", name, m.trk.Duration(), m.trk.SampleRate)
	return trackStyle.Render(info)
}

// renderParams shows the three spiral controls with the cursor on the
// active one.
func (m Model) renderParams() string {
	fields := [numFields]string{
		fmt.Sprintf("r0 %.0f", m.params.R0),
		fmt.Sprintf("b %.1f", m.params.B),
		fmt.Sprintf("amp %.0f", m.params.Amp),
	}

	parts := make([]string, numFields)
	for i, f := range fields {
		if paramField(i) == m.cursor {
			parts[i] = paramActiveStyle.Render("▸ " + f)
		} else {
			parts[i] = paramInactiveStyle.Render("  " + f)
		}
	}
	return labelStyle.Render("SPIRAL ") + strings.Join(parts, "  ")
}

func (m Model) renderPreview() string {
	if m.previewStr == "" {
		return dimStyle.Render("  (no spiral yet)")
	}
	return m.previewStr
}

func (m Model) renderTimeStatus() string {
	pos := m.player.Position()
	dur := m.player.Duration()

	posMin := int(pos.Minutes())
	posSec := int(pos.Seconds()) % 60
	durMin := int(dur.Minutes())
	durSec := int(dur.Seconds()) % 60

	timeStr := fmt.Sprintf("%02d:%02d / %02d:%02d", posMin, posSec, durMin, durSec)

	var status string
	switch {
	case m.player.IsPlaying() && m.player.IsPaused():
		status = statusStyle.Render("Paused")
	case m.player.IsPlaying():
		status = statusStyle.Render("Playing")
	default:
		status = dimStyle.Render("Stopped")
	}

	left := timeStyle.Render(timeStr)
	gap := m.pw() - lipgloss.Width(left) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + status
}

func (m Model) renderSeekBar() string {
	pos := m.player.Position()
	dur := m.player.Duration()

	var progress float64
	if dur > 0 {
		progress = float64(pos) / float64(dur)
	}
	progress = max(0, min(1, progress))

	pw := m.pw()
	filled := int(progress * float64(pw-1))

	return seekFillStyle.Render(strings.Repeat("━", filled)) +
		seekFillStyle.Render("●") +
		seekDimStyle.Render(strings.Repeat("━", max(0, pw-filled-1)))
}

func (m Model) renderSpectrum() string {
	bands := m.vis.Analyze(m.player.Samples())
	return m.vis.Render(bands, m.pw())
}

// renderJobProgress shows the running render's frame counter; the
// compositor goroutine is the single writer, this view the single
// reader.
func (m Model) renderJobProgress() string {
	frame := m.job.Frame()
	total := m.job.Total()

	var progress float64
	if total > 0 {
		progress = float64(frame) / float64(total)
	}

	barW := m.pw() - 20
	if barW < 10 {
		barW = 10
	}
	filled := int(progress * float64(barW))
	bar := progressFillStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barW-filled))

	label := fmt.Sprintf(" %d/%d frames", frame, total)
	if m.job.State() == video.StateRunning && m.job.Frame() == 0 {
		label = " starting encoder"
	}
	return labelStyle.Render("REC ") + bar + dimStyle.Render(label)
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render("ERR: " + m.err.Error())
	}
	if m.status != "" {
		return okStyle.Render(m.status)
	}
	return ""
}

func (m Model) renderHelp() string {
	return dimStyle.Render("[Tab]Param [+-]Adjust [Enter]Redraw [Spc]Play [←→]Seek [9/0]Vol [P]ng [V]ideo [X]Cancel [n/b]File [Q]uit")
}
