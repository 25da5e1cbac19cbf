// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

// EventName identifies the push channel an envelope was emitted on.
type EventName string

const (
	// full queue snapshot, payload: Queue
	EventQueue EventName = "queue"
	// a track started or resumed, payload: Index, Track, State
	EventPlay EventName = "play"
	// playback state changed without a track change, payload: State
	EventStatus EventName = "status"
	// reply to a seek, payload: Position
	EventPosition EventName = "position"
	// loop flag changed, payload: Looped
	EventLooped EventName = "looped"
	// volume changed, payload: Volume
	EventVolume EventName = "volume"
	// periodic progress report while playing, payload: Position, Duration
	EventProgress EventName = "track-progress"
	// the loaded track changed, payload: Index, Track
	EventTrackChange EventName = "track-change"
)

// PlaybackState is the authoritative transport state. Every successful
// envelope carries one so consumers never have to infer it from which
// channel fired last.
type PlaybackState string

const (
	StatePlaying PlaybackState = "playing"
	StatePaused  PlaybackState = "paused"
	StateStopped PlaybackState = "stopped"
)

// Payload is the data union for all event channels; which fields are
// meaningful depends on the envelope's Name.
type Payload struct {
	State    PlaybackState
	Queue    []Track
	Index    int
	Track    *Track
	Position int64
	Duration int64
	Looped   bool
	Volume   float64
}

// Envelope wraps every pushed event. On Success the Data payload is set;
// otherwise Error carries the reason and Data is nil.
type Envelope struct {
	Name    EventName
	Success bool
	Data    *Payload
	Error   string
}

// EventConsumer receives events pushed from the engine to a frontend.
type EventConsumer interface {
	SendEvent(event Envelope)
}
