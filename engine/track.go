// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"os"

	"github.com/dhowden/tag"
	"github.com/google/uuid"

	"github.com/quaverhq/quaver/remote"
)

// Track is the immutable descriptor the engine hands to frontends. Index is
// the track's ordinal position in the queue and is reassigned whenever the
// queue is replaced; ID is an opaque identity that survives reordering and
// is what external remotes (MPRIS) key on.
type Track struct {
	ID       string
	Index    int
	Path     string
	Title    string
	Artist   string
	Album    string
	Duration int64
}

// ReadTrack extracts a descriptor for the file at path. Unreadable tags
// degrade to "Unknown ..." placeholders rather than failing; an
// undecodable file simply reports a zero duration.
func ReadTrack(path string, index int) Track {
	t := Track{
		ID:     uuid.NewString(),
		Index:  index,
		Path:   path,
		Title:  "Unknown Title",
		Artist: "Unknown Artist",
		Album:  "Unknown Album",
	}

	if f, err := os.Open(path); err == nil {
		if m, err := tag.ReadFrom(f); err == nil {
			if m.Title() != "" {
				t.Title = m.Title()
			}
			if m.Artist() != "" {
				t.Artist = m.Artist()
			}
			if m.Album() != "" {
				t.Album = m.Album()
			}
		}
		f.Close()
	}

	if streamer, format, err := Decode(path); err == nil {
		t.Duration = int64(float64(streamer.Len()) / float64(format.SampleRate))
		streamer.Close()
	}

	return t
}

var _ remote.TrackInterface = (*Track)(nil)

func (t *Track) GetID() string {
	if t == nil {
		return ""
	}
	return t.ID
}

func (t *Track) GetTitle() string {
	if t == nil {
		return ""
	}
	return t.Title
}

func (t *Track) GetArtist() string {
	if t == nil {
		return ""
	}
	return t.Artist
}

func (t *Track) GetAlbum() string {
	if t == nil {
		return ""
	}
	return t.Album
}

func (t *Track) GetDuration() int64 {
	if t == nil {
		return 0
	}
	return t.Duration
}

func (t *Track) IsValid() bool {
	return t != nil && t.ID != ""
}
