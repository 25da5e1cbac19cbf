// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"math"

	"github.com/quaverhq/quaver/engine"
)

// controlStates describes which transport controls are usable given the
// current playback situation. Widgets and key handlers both consult it, so
// a disabled button and its key binding can never disagree.
type controlStates struct {
	pause  bool
	resume bool
	next   bool
	prev   bool
	seek   bool
	loop   bool
	volume bool
	clear  bool
}

// controlStatesFor derives the enablement of every control from three
// facts. It is a pure function of its inputs.
func controlStatesFor(queueEmpty, hasCurrentTrack, isPlaying bool) controlStates {
	return controlStates{
		pause:  !queueEmpty && hasCurrentTrack && isPlaying,
		resume: !queueEmpty && !isPlaying,
		next:   !queueEmpty && hasCurrentTrack && !isPlaying,
		prev:   !queueEmpty && hasCurrentTrack && !isPlaying,
		seek:   !queueEmpty && hasCurrentTrack,
		loop:   !queueEmpty,
		volume: !queueEmpty,
		clear:  !queueEmpty,
	}
}

// playerState is the ui's single source of truth for what the backend last
// told us. It is only ever touched from the tview event goroutine; the
// event loop applies backend envelopes to it and widgets render from its
// snapshots.
type playerState struct {
	queue    []engine.Track
	current  *engine.Track
	playing  bool
	looped   bool
	volume   int // percent
	position int64
	duration int64
}

// stateSnapshot is the immutable view handed to render code.
type stateSnapshot struct {
	queue        []engine.Track
	current      *engine.Track
	currentIndex int
	playing      bool
	looped       bool
	volume       int
	position     int64
	duration     int64
	controls     controlStates
}

func (s *playerState) snapshot() stateSnapshot {
	queue := make([]engine.Track, len(s.queue))
	copy(queue, s.queue)

	currentIndex := -1
	var current *engine.Track
	if s.current != nil {
		currentIndex = s.current.Index
		c := *s.current
		current = &c
	}

	return stateSnapshot{
		queue:        queue,
		current:      current,
		currentIndex: currentIndex,
		playing:      s.playing,
		looped:       s.looped,
		volume:       s.volume,
		position:     s.position,
		duration:     s.duration,
		controls:     controlStatesFor(len(queue) == 0, current != nil, s.playing),
	}
}

// applyQueue replaces the queue wholesale. An empty queue resets the whole
// transport; otherwise the current track is re-pointed into the new slice
// by its index.
func (s *playerState) applyQueue(queue []engine.Track) {
	s.queue = queue

	if len(queue) == 0 {
		s.current = nil
		s.playing = false
		s.position = 0
		s.duration = 0
		return
	}

	if s.current != nil {
		if s.current.Index >= 0 && s.current.Index < len(queue) {
			s.current = &queue[s.current.Index]
		} else {
			s.current = nil
		}
	}
}

func (s *playerState) applyPlay(track *engine.Track) {
	if track == nil {
		return
	}
	s.current = track
	s.playing = true
	s.duration = track.Duration
}

func (s *playerState) applyStatus(state engine.PlaybackState) {
	s.playing = state == engine.StatePlaying
}

func (s *playerState) applyPosition(position, duration int64) {
	s.position = position
	if duration > 0 {
		s.duration = duration
	}
}

func (s *playerState) applyLooped(looped bool) {
	s.looped = looped
}

// applyVolume reports whether the echoed volume actually differs from what
// the ui already shows. Identical echoes are dropped so a remote volume
// set and a local keypress cannot chase each other.
func (s *playerState) applyVolume(volume float64) bool {
	percent := int(math.Round(volume * 100))
	if percent == s.volume {
		return false
	}
	s.volume = percent
	return true
}

func (s *playerState) applyTrackChange(track *engine.Track) {
	if track == nil {
		return
	}
	s.current = track
	s.position = 0
	s.duration = track.Duration
}
