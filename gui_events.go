// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/quaverhq/quaver/engine"
)

// SendEvent is called by the playback engine from its own goroutine; the
// envelope is handed to the gui event loop.
func (ui *Ui) SendEvent(event engine.Envelope) {
	ui.engineEvents <- event
}
