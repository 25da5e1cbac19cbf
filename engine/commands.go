// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

// Command names, the invocation surface frontends use. Everything is
// fire-and-forget except add_queue, which replies with the full queue.
const (
	cmdAddQueue    = "add_queue"
	cmdClearQueue  = "clear_queue"
	cmdPlay        = "play"
	cmdPause       = "pause"
	cmdResume      = "resume"
	cmdPrev        = "prev"
	cmdNext        = "next"
	cmdSetPosition = "set_position"
	cmdSetLooped   = "set_looped"
	cmdSetVolume   = "set_volume"
)

type command struct {
	name     string
	paths    []string
	index    int
	position int64
	looped   bool
	volume   float64
	reply    chan []Track
}

func (e *Engine) send(cmd command) error {
	// the command channel is buffered, so check for shutdown first
	select {
	case <-e.closed:
		return ErrClosed
	default:
	}
	select {
	case e.commands <- cmd:
		return nil
	case <-e.closed:
		return ErrClosed
	}
}

// AddQueue reads the given files into track descriptors, appends them to
// the queue and returns the resulting queue. Indexes continue from the
// current tail.
func (e *Engine) AddQueue(paths []string) ([]Track, error) {
	reply := make(chan []Track, 1)
	if err := e.send(command{name: cmdAddQueue, paths: paths, reply: reply}); err != nil {
		return nil, err
	}
	select {
	case queue := <-reply:
		return queue, nil
	case <-e.closed:
		return nil, ErrClosed
	}
}

// ClearQueue stops playback and empties the queue.
func (e *Engine) ClearQueue() error {
	return e.send(command{name: cmdClearQueue})
}

// Play starts the track at the given queue index.
func (e *Engine) Play(index int) error {
	return e.send(command{name: cmdPlay, index: index})
}

func (e *Engine) Pause() error {
	return e.send(command{name: cmdPause})
}

func (e *Engine) Resume() error {
	return e.send(command{name: cmdResume})
}

func (e *Engine) Prev() error {
	return e.send(command{name: cmdPrev})
}

func (e *Engine) Next() error {
	return e.send(command{name: cmdNext})
}

// SetPosition seeks within the loaded track.
func (e *Engine) SetPosition(seconds int64) error {
	return e.send(command{name: cmdSetPosition, position: seconds})
}

func (e *Engine) SetLooped(looped bool) error {
	return e.send(command{name: cmdSetLooped, looped: looped})
}

// SetVolume takes 0.0..1.0; out-of-range values are clamped.
func (e *Engine) SetVolume(volume float64) error {
	return e.send(command{name: cmdSetVolume, volume: volume})
}
