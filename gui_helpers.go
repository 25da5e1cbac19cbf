// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/quaverhq/quaver/engine"
)

func makeModal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
}

func formatPlayerStatus(volume int, position int64, duration int64) string {
	if position < 0 {
		position = 0
	}

	if duration < 0 {
		duration = 0
	}

	return fmt.Sprintf("[%d%%][::b][%s/%s]", volume, formatTime(position), formatTime(duration))
}

func formatTrackForStatusBar(track *engine.Track) (text string) {
	if track == nil {
		return
	}
	if track.Title != "" {
		text += "[::-] [white]" + tview.Escape(track.Title)
	}
	if track.Artist != "" {
		text += " [gray]by [white]" + tview.Escape(track.Artist)
	}
	return
}

func formatStatusLine(snapshot stateSnapshot) string {
	switch {
	case snapshot.playing:
		return "[green::b]Playing[::-]" + formatTrackForStatusBar(snapshot.current)
	case snapshot.current != nil:
		return "[yellow::b]Paused[::-]" + formatTrackForStatusBar(snapshot.current)
	default:
		return fmt.Sprintf("[::b]%s[::-] v%s", clientName, clientVersion)
	}
}
