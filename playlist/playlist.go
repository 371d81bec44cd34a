// Package playlist manages the ordered list of audio files queued for
// visualization.
package playlist

import (
	"path/filepath"
	"strings"
)

// Entry is one queued audio file. Decoding is deferred until the
// entry is selected; the queue itself only holds paths.
type Entry struct {
	Path   string
	Title  string
	Artist string
}

// FromPath creates an Entry by parsing the filename. Supports
// "Artist - Title" format, otherwise uses the filename as title.
func FromPath(path string) Entry {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.SplitN(name, " - ", 2)
	if len(parts) == 2 {
		return Entry{Path: path, Artist: strings.TrimSpace(parts[0]), Title: strings.TrimSpace(parts[1])}
	}
	return Entry{Path: path, Title: name}
}

// DisplayName returns a formatted display string for the entry.
func (e Entry) DisplayName() string {
	if e.Artist != "" {
		return e.Artist + " - " + e.Title
	}
	return e.Title
}

// Playlist is an ordered file queue with a selection cursor.
type Playlist struct {
	entries []Entry
	pos     int
}

// New creates an empty Playlist.
func New() *Playlist {
	return &Playlist{}
}

// Add appends entries to the queue.
func (p *Playlist) Add(entries ...Entry) {
	p.entries = append(p.entries, entries...)
}

// Len returns the number of queued files.
func (p *Playlist) Len() int { return len(p.entries) }

// Current returns the selected entry and its index, or -1 when empty.
func (p *Playlist) Current() (Entry, int) {
	if len(p.entries) == 0 {
		return Entry{}, -1
	}
	return p.entries[p.pos], p.pos
}

// Index returns the selected index, or -1 when empty.
func (p *Playlist) Index() int {
	if len(p.entries) == 0 {
		return -1
	}
	return p.pos
}

// Next advances the selection. Returns false at the end of the queue.
func (p *Playlist) Next() (Entry, bool) {
	if p.pos+1 >= len(p.entries) {
		return Entry{}, false
	}
	p.pos++
	return p.entries[p.pos], true
}

// Prev moves the selection back. Returns false at the start.
func (p *Playlist) Prev() (Entry, bool) {
	if len(p.entries) == 0 || p.pos == 0 {
		return Entry{}, false
	}
	p.pos--
	return p.entries[p.pos], true
}

// SetIndex moves the selection to i if it is in range.
func (p *Playlist) SetIndex(i int) {
	if i >= 0 && i < len(p.entries) {
		p.pos = i
	}
}

// Entries returns all queued files.
func (p *Playlist) Entries() []Entry { return p.entries }
