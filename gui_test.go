// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"sync"

	"github.com/rivo/tview"

	"github.com/quaverhq/quaver/engine"
	"github.com/quaverhq/quaver/logger"
)

// fakePlayer records every dispatched command instead of driving audio.
type fakePlayer struct {
	mu    sync.Mutex
	calls int
	plays []int
	added [][]string
}

var _ playerController = (*fakePlayer)(nil)

func (f *fakePlayer) record() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakePlayer) AddQueue(paths []string) ([]engine.Track, error) {
	f.mu.Lock()
	f.calls++
	f.added = append(f.added, paths)
	f.mu.Unlock()

	queue := make([]engine.Track, len(paths))
	for i, path := range paths {
		queue[i] = engine.Track{Index: i, Path: path}
	}
	return queue, nil
}

func (f *fakePlayer) Play(index int) error {
	f.mu.Lock()
	f.calls++
	f.plays = append(f.plays, index)
	f.mu.Unlock()
	return nil
}

func (f *fakePlayer) ClearQueue() error       { f.record(); return nil }
func (f *fakePlayer) Pause() error            { f.record(); return nil }
func (f *fakePlayer) Resume() error           { f.record(); return nil }
func (f *fakePlayer) Prev() error             { f.record(); return nil }
func (f *fakePlayer) Next() error             { f.record(); return nil }
func (f *fakePlayer) SetPosition(int64) error { f.record(); return nil }
func (f *fakePlayer) SetLooped(bool) error    { f.record(); return nil }
func (f *fakePlayer) SetVolume(float64) error { f.record(); return nil }

func (f *fakePlayer) RegisterEventConsumer(engine.EventConsumer) {}

func (f *fakePlayer) Quit() {}

func (f *fakePlayer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakePlayer) playedIndexes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.plays...)
}

func (f *fakePlayer) addedPaths() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.added...)
}

// newTestUi builds just enough Ui for widget-level dispatch tests; the
// application is never run.
func newTestUi(player playerController) *Ui {
	ui := &Ui{
		engineEvents: make(chan engine.Envelope, 16),
		player:       player,
		logger:       logger.Init(),
	}
	ui.app = tview.NewApplication()
	ui.pages = tview.NewPages()
	return ui
}
