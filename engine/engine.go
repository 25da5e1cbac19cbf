// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/quaverhq/quaver/logger"
)

var (
	ErrClosed      = errors.New("engine closed")
	ErrEmptyQueue  = errors.New("queue is empty")
	ErrOutOfBounds = errors.New("index out of bounds")
)

// progress events are throttled; anything faster is wasted redraws.
const progressInterval = 500 * time.Millisecond

// Engine is the playback backend. It owns the queue and the audio output on
// a single goroutine; frontends talk to it exclusively through the named
// commands in commands.go and the event envelopes in events.go.
type Engine struct {
	commands  chan command
	trackDone chan struct{}
	quit      chan struct{}
	closed    chan struct{}
	quitOnce  sync.Once

	out       output
	readTrack func(path string, index int) Track
	logger    logger.LoggerInterface

	// registration happens while the run loop is already emitting
	consumerMu sync.Mutex
	consumer   EventConsumer

	// owned by the run loop
	queue    []Track
	current  int
	loaded   bool
	playing  bool
	looped   bool
	volume   float64
	duration int64
}

func NewEngine(log logger.LoggerInterface) (*Engine, error) {
	out, err := newSpeakerOutput()
	if err != nil {
		return nil, err
	}
	return newEngine(out, ReadTrack, log), nil
}

func newEngine(out output, readTrack func(string, int) Track, log logger.LoggerInterface) *Engine {
	e := &Engine{
		commands:  make(chan command, 16),
		trackDone: make(chan struct{}, 1),
		quit:      make(chan struct{}),
		closed:    make(chan struct{}),
		out:       out,
		readTrack: readTrack,
		logger:    log,
		volume:    1.0,
	}
	go e.run()
	return e
}

// RegisterEventConsumer sets the frontend that receives pushed events.
// Events emitted before registration are dropped.
func (e *Engine) RegisterEventConsumer(consumer EventConsumer) {
	e.consumerMu.Lock()
	e.consumer = consumer
	e.consumerMu.Unlock()
}

func (e *Engine) eventConsumer() EventConsumer {
	e.consumerMu.Lock()
	defer e.consumerMu.Unlock()
	return e.consumer
}

// Quit shuts the engine down and waits for the run loop to release the
// audio device. Commands sent afterwards return ErrClosed.
func (e *Engine) Quit() {
	e.quitOnce.Do(func() { close(e.quit) })
	<-e.closed
}

func (e *Engine) run() {
	defer close(e.closed)

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.quit:
			e.out.Close()
			return

		case cmd := <-e.commands:
			e.handleCommand(cmd)

		case <-e.trackDone:
			e.advance()

		case <-ticker.C:
			if e.playing {
				e.emit(EventProgress, &Payload{
					State:    StatePlaying,
					Position: e.out.Position(),
					Duration: e.duration,
				})
			}
		}
	}
}

func (e *Engine) handleCommand(cmd command) {
	switch cmd.name {
	case cmdAddQueue:
		for _, path := range cmd.paths {
			e.queue = append(e.queue, e.readTrack(path, len(e.queue)))
		}
		queue := e.queueCopy()
		if cmd.reply != nil {
			cmd.reply <- queue
		}
		e.emit(EventQueue, &Payload{State: e.state(), Queue: queue})

	case cmdClearQueue:
		e.out.Stop()
		e.queue = nil
		e.current = 0
		e.loaded = false
		e.playing = false
		e.duration = 0
		e.emit(EventQueue, &Payload{State: StateStopped, Queue: []Track{}})

	case cmdPlay:
		if cmd.index < 0 || cmd.index >= len(e.queue) {
			e.emitError(EventPlay, ErrOutOfBounds)
			return
		}
		e.startTrack(cmd.index)

	case cmdPause:
		e.out.SetPaused(true)
		e.playing = false
		e.emit(EventStatus, &Payload{State: StatePaused})

	case cmdResume:
		if len(e.queue) == 0 {
			e.emitError(EventPlay, ErrEmptyQueue)
			return
		}
		if !e.loaded {
			// nothing loaded yet, resume means start from the top
			e.startTrack(0)
			return
		}
		e.out.SetPaused(false)
		e.playing = true
		track := e.queue[e.current]
		e.emit(EventPlay, &Payload{State: StatePlaying, Index: e.current, Track: &track})

	case cmdPrev:
		if len(e.queue) == 0 {
			e.emitError(EventPlay, ErrEmptyQueue)
			return
		}
		// within the first seconds prev steps back, after that it restarts
		if e.current > 0 && e.out.Position() < 5 {
			e.current--
		}
		e.startTrack(e.current)

	case cmdNext:
		if len(e.queue) == 0 {
			e.emitError(EventPlay, ErrEmptyQueue)
			return
		}
		switch {
		case e.current < len(e.queue)-1:
			e.startTrack(e.current + 1)
		case e.looped:
			e.startTrack(0)
		default:
			e.emitError(EventPlay, ErrOutOfBounds)
		}

	case cmdSetPosition:
		if err := e.out.Seek(cmd.position); err != nil {
			e.emitError(EventPosition, err)
			return
		}
		e.emit(EventPosition, &Payload{State: e.state(), Position: e.out.Position()})

	case cmdSetLooped:
		e.looped = cmd.looped
		e.emit(EventLooped, &Payload{State: e.state(), Looped: e.looped})

	case cmdSetVolume:
		v := cmd.volume
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		e.volume = v
		e.out.SetVolume(v)
		e.emit(EventVolume, &Payload{State: e.state(), Volume: v})

	default:
		e.logger.Printf("engine: unhandled command %q", cmd.name)
	}
}

func (e *Engine) startTrack(index int) {
	track := e.queue[index]
	if err := e.out.Load(track.Path, e.trackDone); err != nil {
		e.loaded = false
		e.playing = false
		e.emitError(EventPlay, err)
		return
	}

	e.current = index
	e.loaded = true
	e.playing = true
	e.duration = track.Duration

	e.emit(EventPlay, &Payload{State: StatePlaying, Index: index, Track: &track})
	e.emit(EventTrackChange, &Payload{State: StatePlaying, Index: index, Track: &track})
}

// advance reacts to a track finishing on its own.
func (e *Engine) advance() {
	if !e.loaded {
		return
	}
	switch {
	case e.current < len(e.queue)-1:
		e.startTrack(e.current + 1)
	case e.looped && len(e.queue) > 0:
		e.startTrack(0)
	default:
		e.loaded = false
		e.playing = false
		e.emit(EventStatus, &Payload{State: StatePaused})
	}
}

func (e *Engine) state() PlaybackState {
	switch {
	case e.playing:
		return StatePlaying
	case e.loaded:
		return StatePaused
	default:
		return StateStopped
	}
}

func (e *Engine) queueCopy() []Track {
	cpy := make([]Track, len(e.queue))
	copy(cpy, e.queue)
	return cpy
}

func (e *Engine) emit(name EventName, data *Payload) {
	consumer := e.eventConsumer()
	if consumer == nil {
		return
	}
	consumer.SendEvent(Envelope{Name: name, Success: true, Data: data})
}

func (e *Engine) emitError(name EventName, err error) {
	e.logger.PrintError("engine: "+string(name), err)
	consumer := e.eventConsumer()
	if consumer == nil {
		return
	}
	consumer.SendEvent(Envelope{Name: name, Success: false, Error: err.Error()})
}
