// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaverhq/quaver/engine"
)

func makeQueue(n int) []engine.Track {
	queue := make([]engine.Track, n)
	for i := range queue {
		queue[i] = engine.Track{
			Index:    i,
			Path:     "/music/track.mp3",
			Title:    "title",
			Artist:   "artist",
			Album:    "album",
			Duration: 100,
		}
	}
	return queue
}

func TestControlStatesFor(t *testing.T) {
	tests := []struct {
		name                                 string
		queueEmpty, hasCurrentTrack, playing bool
		want                                 controlStates
	}{
		{
			name:       "empty queue disables everything",
			queueEmpty: true,
			want:       controlStates{},
		},
		{
			name: "queue without current track only allows starting",
			want: controlStates{resume: true, loop: true, volume: true, clear: true},
		},
		{
			name:            "paused with current track",
			hasCurrentTrack: true,
			want:            controlStates{resume: true, next: true, prev: true, seek: true, loop: true, volume: true, clear: true},
		},
		{
			name:            "playing",
			hasCurrentTrack: true,
			playing:         true,
			want:            controlStates{pause: true, seek: true, loop: true, volume: true, clear: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := controlStatesFor(tt.queueEmpty, tt.hasCurrentTrack, tt.playing)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestControlStatesForIsPure(t *testing.T) {
	a := controlStatesFor(false, true, true)
	b := controlStatesFor(false, true, true)
	assert.Equal(t, a, b, "same inputs produce the same states")
}

func TestApplyQueueEmptyResetsTransport(t *testing.T) {
	var s playerState
	queue := makeQueue(2)
	s.applyQueue(queue)
	s.applyPlay(&queue[1])
	s.applyPosition(42, 100)

	s.applyQueue(nil)

	snapshot := s.snapshot()
	assert.Empty(t, snapshot.queue)
	assert.Nil(t, snapshot.current)
	assert.Equal(t, -1, snapshot.currentIndex)
	assert.False(t, snapshot.playing)
	assert.Equal(t, int64(0), snapshot.position, "empty queue resets the clock")
	assert.Equal(t, int64(0), snapshot.duration)
}

func TestApplyQueueRepointsCurrentTrack(t *testing.T) {
	var s playerState
	queue := makeQueue(3)
	s.applyQueue(queue)
	s.applyPlay(&queue[1])

	// a wholesale replacement keeps the current track by its index
	bigger := makeQueue(5)
	s.applyQueue(bigger)

	snapshot := s.snapshot()
	require.NotNil(t, snapshot.current)
	assert.Equal(t, 1, snapshot.currentIndex)

	// a replacement that drops the index clears the current track
	s.applyQueue(makeQueue(1))
	snapshot = s.snapshot()
	assert.Nil(t, snapshot.current)
}

func TestApplyPlayMarksPlaying(t *testing.T) {
	var s playerState
	queue := makeQueue(2)
	s.applyQueue(queue)

	s.applyPlay(&queue[0])

	snapshot := s.snapshot()
	assert.True(t, snapshot.playing)
	assert.Equal(t, 0, snapshot.currentIndex)
	assert.Equal(t, int64(100), snapshot.duration)
}

func TestApplyStatusIsAuthoritative(t *testing.T) {
	var s playerState
	queue := makeQueue(1)
	s.applyQueue(queue)
	s.applyPlay(&queue[0])

	s.applyStatus(engine.StatePaused)
	assert.False(t, s.snapshot().playing)

	s.applyStatus(engine.StatePlaying)
	assert.True(t, s.snapshot().playing)
}

func TestApplyPositionKeepsDurationFallback(t *testing.T) {
	var s playerState
	queue := makeQueue(1)
	s.applyQueue(queue)
	s.applyPlay(&queue[0])

	// progress without a duration keeps the one we know
	s.applyPosition(10, 0)
	snapshot := s.snapshot()
	assert.Equal(t, int64(10), snapshot.position)
	assert.Equal(t, int64(100), snapshot.duration)

	s.applyPosition(20, 90)
	assert.Equal(t, int64(90), s.snapshot().duration)
}

func TestApplyVolumeEchoGuard(t *testing.T) {
	s := playerState{volume: 37}

	assert.False(t, s.applyVolume(0.37), "identical echo is dropped")
	assert.True(t, s.applyVolume(0.42))
	assert.Equal(t, 42, s.snapshot().volume)
}

func TestApplyTrackChangeResetsPosition(t *testing.T) {
	var s playerState
	queue := makeQueue(2)
	s.applyQueue(queue)
	s.applyPlay(&queue[0])
	s.applyPosition(42, 100)

	s.applyTrackChange(&queue[1])

	snapshot := s.snapshot()
	assert.Equal(t, 1, snapshot.currentIndex)
	assert.Equal(t, int64(0), snapshot.position)
	assert.Equal(t, int64(100), snapshot.duration)
}

func TestSnapshotIsACopy(t *testing.T) {
	var s playerState
	s.applyQueue(makeQueue(2))

	snapshot := s.snapshot()
	snapshot.queue[0].Title = "mutated"

	assert.Equal(t, "title", s.queue[0].Title, "mutating a snapshot leaves the state alone")
}
