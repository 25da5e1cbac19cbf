// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaverhq/quaver/logger"
)

// fakeOutput records transport calls instead of touching an audio device.
type fakeOutput struct {
	mu       sync.Mutex
	loaded   []string
	paused   bool
	volume   float64
	position int64
	stops    int
	loadErr  error
	done     chan<- struct{}
}

func (f *fakeOutput) Load(path string, done chan<- struct{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = append(f.loaded, path)
	f.paused = false
	f.position = 0
	f.done = done
	return nil
}

func (f *fakeOutput) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.done = nil
}

func (f *fakeOutput) SetPaused(paused bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = paused
}

func (f *fakeOutput) SetVolume(volume float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = volume
}

func (f *fakeOutput) Seek(seconds int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = seconds
	return nil
}

func (f *fakeOutput) Position() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakeOutput) Close() {}

func (f *fakeOutput) setPosition(seconds int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = seconds
}

// finish simulates the loaded track playing through to its end.
func (f *fakeOutput) finish() {
	f.mu.Lock()
	done := f.done
	f.mu.Unlock()
	if done != nil {
		done <- struct{}{}
	}
}

func (f *fakeOutput) lastLoaded() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.loaded) == 0 {
		return ""
	}
	return f.loaded[len(f.loaded)-1]
}

type eventRecorder struct {
	events chan Envelope
}

func (r *eventRecorder) SendEvent(event Envelope) {
	r.events <- event
}

// waitFor discards envelopes until one on the named channel arrives.
func (r *eventRecorder) waitFor(t *testing.T, name EventName) Envelope {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-r.events:
			if event.Name == name {
				return event
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q event", name)
		}
	}
}

func stubReadTrack(path string, index int) Track {
	return Track{
		ID:       "id-" + path,
		Index:    index,
		Path:     path,
		Title:    "title " + path,
		Artist:   "artist",
		Album:    "album",
		Duration: 100,
	}
}

func newTestEngine(t *testing.T) (*Engine, *fakeOutput, *eventRecorder) {
	t.Helper()
	out := &fakeOutput{}
	e := newEngine(out, stubReadTrack, logger.Init())
	recorder := &eventRecorder{events: make(chan Envelope, 64)}
	e.RegisterEventConsumer(recorder)
	t.Cleanup(e.Quit)
	return e, out, recorder
}

func addTracks(t *testing.T, e *Engine, n int) []Track {
	t.Helper()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("/music/%02d.mp3", i)
	}
	queue, err := e.AddQueue(paths)
	require.NoError(t, err)
	return queue
}

func TestAddQueueAssignsOrdinalIndexes(t *testing.T) {
	e, _, recorder := newTestEngine(t)

	queue, err := e.AddQueue([]string{"/music/a.mp3", "/music/b.flac"})
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, 0, queue[0].Index)
	assert.Equal(t, 1, queue[1].Index)

	event := recorder.waitFor(t, EventQueue)
	require.True(t, event.Success)
	assert.Len(t, event.Data.Queue, 2)
	assert.Equal(t, StateStopped, event.Data.State)

	// a second add keeps counting from the tail
	queue, err = e.AddQueue([]string{"/music/c.mp3"})
	require.NoError(t, err)
	require.Len(t, queue, 3)
	assert.Equal(t, 2, queue[2].Index)
}

func TestPlayByIndex(t *testing.T) {
	e, out, recorder := newTestEngine(t)
	addTracks(t, e, 3)

	require.NoError(t, e.Play(1))
	event := recorder.waitFor(t, EventPlay)
	require.True(t, event.Success)
	assert.Equal(t, 1, event.Data.Index)
	assert.Equal(t, StatePlaying, event.Data.State)
	require.NotNil(t, event.Data.Track)
	assert.Equal(t, "/music/01.mp3", event.Data.Track.Path)
	assert.Equal(t, "/music/01.mp3", out.lastLoaded())

	change := recorder.waitFor(t, EventTrackChange)
	assert.Equal(t, 1, change.Data.Index)
}

func TestPlayOutOfBounds(t *testing.T) {
	e, out, recorder := newTestEngine(t)
	addTracks(t, e, 2)

	require.NoError(t, e.Play(5))
	event := recorder.waitFor(t, EventPlay)
	assert.False(t, event.Success)
	assert.NotEmpty(t, event.Error)
	assert.Empty(t, out.lastLoaded())
}

func TestPauseEmitsPausedStatus(t *testing.T) {
	e, out, recorder := newTestEngine(t)
	addTracks(t, e, 1)
	require.NoError(t, e.Play(0))
	recorder.waitFor(t, EventPlay)

	require.NoError(t, e.Pause())
	event := recorder.waitFor(t, EventStatus)
	require.True(t, event.Success)
	assert.Equal(t, StatePaused, event.Data.State)

	assert.Eventually(t, func() bool {
		out.mu.Lock()
		defer out.mu.Unlock()
		return out.paused
	}, time.Second, 10*time.Millisecond)
}

func TestResumeAfterPause(t *testing.T) {
	e, _, recorder := newTestEngine(t)
	addTracks(t, e, 2)
	require.NoError(t, e.Play(1))
	recorder.waitFor(t, EventPlay)
	require.NoError(t, e.Pause())
	recorder.waitFor(t, EventStatus)

	require.NoError(t, e.Resume())
	event := recorder.waitFor(t, EventPlay)
	require.True(t, event.Success)
	assert.Equal(t, 1, event.Data.Index)
	assert.Equal(t, StatePlaying, event.Data.State)
}

func TestResumeEmptyQueueFails(t *testing.T) {
	e, _, recorder := newTestEngine(t)

	require.NoError(t, e.Resume())
	event := recorder.waitFor(t, EventPlay)
	assert.False(t, event.Success)
}

func TestResumeWithoutLoadedTrackStartsFirst(t *testing.T) {
	e, out, recorder := newTestEngine(t)
	addTracks(t, e, 2)

	require.NoError(t, e.Resume())
	event := recorder.waitFor(t, EventPlay)
	require.True(t, event.Success)
	assert.Equal(t, 0, event.Data.Index)
	assert.Equal(t, "/music/00.mp3", out.lastLoaded())
}

func TestPrevRestartsLateIntoTrack(t *testing.T) {
	e, out, recorder := newTestEngine(t)
	addTracks(t, e, 2)
	require.NoError(t, e.Play(1))
	recorder.waitFor(t, EventPlay)

	out.setPosition(30)
	require.NoError(t, e.Prev())
	event := recorder.waitFor(t, EventPlay)
	assert.Equal(t, 1, event.Data.Index, "past 5s prev restarts the same track")
}

func TestPrevStepsBackEarlyIntoTrack(t *testing.T) {
	e, out, recorder := newTestEngine(t)
	addTracks(t, e, 2)
	require.NoError(t, e.Play(1))
	recorder.waitFor(t, EventPlay)

	out.setPosition(2)
	require.NoError(t, e.Prev())
	event := recorder.waitFor(t, EventPlay)
	assert.Equal(t, 0, event.Data.Index)
}

func TestNextStopsAtEndUnlessLooped(t *testing.T) {
	e, _, recorder := newTestEngine(t)
	addTracks(t, e, 2)
	require.NoError(t, e.Play(1))
	recorder.waitFor(t, EventPlay)

	require.NoError(t, e.Next())
	event := recorder.waitFor(t, EventPlay)
	assert.False(t, event.Success, "next past the end is out of bounds")

	require.NoError(t, e.SetLooped(true))
	recorder.waitFor(t, EventLooped)

	require.NoError(t, e.Next())
	event = recorder.waitFor(t, EventPlay)
	require.True(t, event.Success)
	assert.Equal(t, 0, event.Data.Index, "looped next wraps to the head")
}

func TestAutoAdvance(t *testing.T) {
	e, out, recorder := newTestEngine(t)
	addTracks(t, e, 2)
	require.NoError(t, e.Play(0))
	recorder.waitFor(t, EventPlay)

	out.finish()
	event := recorder.waitFor(t, EventPlay)
	require.True(t, event.Success)
	assert.Equal(t, 1, event.Data.Index)

	// end of queue without loop pauses
	out.finish()
	status := recorder.waitFor(t, EventStatus)
	assert.Equal(t, StatePaused, status.Data.State)
}

func TestAutoAdvanceWrapsWhenLooped(t *testing.T) {
	e, out, recorder := newTestEngine(t)
	addTracks(t, e, 2)
	require.NoError(t, e.SetLooped(true))
	recorder.waitFor(t, EventLooped)
	require.NoError(t, e.Play(1))
	recorder.waitFor(t, EventPlay)

	out.finish()
	event := recorder.waitFor(t, EventPlay)
	require.True(t, event.Success)
	assert.Equal(t, 0, event.Data.Index)
}

func TestClearQueueEmitsEmptySnapshot(t *testing.T) {
	e, out, recorder := newTestEngine(t)
	addTracks(t, e, 2)
	require.NoError(t, e.Play(0))
	recorder.waitFor(t, EventPlay)

	require.NoError(t, e.ClearQueue())
	event := recorder.waitFor(t, EventQueue)
	require.True(t, event.Success)
	assert.Empty(t, event.Data.Queue)
	assert.Equal(t, StateStopped, event.Data.State)

	assert.Eventually(t, func() bool {
		out.mu.Lock()
		defer out.mu.Unlock()
		return out.stops > 0
	}, time.Second, 10*time.Millisecond)
}

func TestSetVolumeClampsAndEchoes(t *testing.T) {
	e, _, recorder := newTestEngine(t)

	require.NoError(t, e.SetVolume(0.37))
	event := recorder.waitFor(t, EventVolume)
	assert.InDelta(t, 0.37, event.Data.Volume, 1e-9)

	require.NoError(t, e.SetVolume(1.5))
	event = recorder.waitFor(t, EventVolume)
	assert.InDelta(t, 1.0, event.Data.Volume, 1e-9)

	require.NoError(t, e.SetVolume(-0.2))
	event = recorder.waitFor(t, EventVolume)
	assert.InDelta(t, 0.0, event.Data.Volume, 1e-9)
}

func TestSetPositionEmitsPosition(t *testing.T) {
	e, _, recorder := newTestEngine(t)
	addTracks(t, e, 1)
	require.NoError(t, e.Play(0))
	recorder.waitFor(t, EventPlay)

	require.NoError(t, e.SetPosition(42))
	event := recorder.waitFor(t, EventPosition)
	require.True(t, event.Success)
	assert.Equal(t, int64(42), event.Data.Position)
}

func TestConsumerRegisteredWhileRunning(t *testing.T) {
	out := &fakeOutput{}
	e := newEngine(out, stubReadTrack, logger.Init())
	t.Cleanup(e.Quit)

	// the run loop is already emitting before anyone is registered
	require.NoError(t, e.SetVolume(0.5))
	assert.Eventually(t, func() bool {
		out.mu.Lock()
		defer out.mu.Unlock()
		return out.volume == 0.5
	}, time.Second, 10*time.Millisecond)

	recorder := &eventRecorder{events: make(chan Envelope, 64)}
	e.RegisterEventConsumer(recorder)

	require.NoError(t, e.SetVolume(0.7))
	event := recorder.waitFor(t, EventVolume)
	assert.InDelta(t, 0.7, event.Data.Volume, 1e-9, "pre-registration emits are dropped, not replayed")
}

func TestCommandsAfterQuit(t *testing.T) {
	out := &fakeOutput{}
	e := newEngine(out, stubReadTrack, logger.Init())
	e.Quit()

	assert.True(t, errors.Is(e.Play(0), ErrClosed))
	_, err := e.AddQueue([]string{"/music/a.mp3"})
	assert.True(t, errors.Is(err, ErrClosed))
}
