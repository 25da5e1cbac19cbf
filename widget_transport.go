// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TransportWidget is the row of playback buttons above the menu bar. The
// buttons mirror the key bindings; both go through the same gated dispatch
// methods on Ui, and Update re-derives every button's enablement from a
// state snapshot.
type TransportWidget struct {
	Root *tview.Flex

	prevButton      *tview.Button
	playPauseButton *tview.Button
	nextButton      *tview.Button
	loopButton      *tview.Button
	clearButton     *tview.Button

	positionText *tview.TextView

	enabledStyle  tcell.Style
	disabledStyle tcell.Style

	// external references
	ui *Ui
}

func (ui *Ui) createTransportWidget() (w *TransportWidget) {
	w = &TransportWidget{
		enabledStyle:  tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
		disabledStyle: tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray),

		ui: ui,
	}

	w.prevButton = tview.NewButton("|◀ prev").
		SetSelectedFunc(func() { ui.prevTrack() })
	w.playPauseButton = tview.NewButton("▶ play").
		SetSelectedFunc(func() { ui.pauseOrResume() })
	w.nextButton = tview.NewButton("next ▶|").
		SetSelectedFunc(func() { ui.nextTrack() })
	w.loopButton = tview.NewButton("loop: off").
		SetSelectedFunc(func() { ui.toggleLoop() })
	w.clearButton = tview.NewButton("clear").
		SetSelectedFunc(func() { ui.clearQueue() })

	w.positionText = tview.NewTextView().
		SetTextAlign(tview.AlignRight).
		SetDynamicColors(true).
		SetScrollable(false)

	w.Root = tview.NewFlex().SetDirection(tview.FlexColumn)
	for _, button := range []*tview.Button{w.prevButton, w.playPauseButton, w.nextButton, w.loopButton, w.clearButton} {
		button.SetStyle(w.enabledStyle)
		button.SetActivatedStyle(w.enabledStyle)
		w.Root.AddItem(button, 11, 0, false)
		w.Root.AddItem(nil, 1, 0, false)
	}
	w.Root.AddItem(w.positionText, 0, 1, false)

	// clear background
	w.Root.Box = tview.NewBox()

	w.Update(stateSnapshot{controls: controlStatesFor(true, false, false)})

	return
}

// Update re-renders the transport from a snapshot.
func (w *TransportWidget) Update(snapshot stateSnapshot) {
	controls := snapshot.controls

	if snapshot.playing {
		w.playPauseButton.SetLabel("⏸ pause")
	} else {
		w.playPauseButton.SetLabel("▶ play")
	}
	if snapshot.looped {
		w.loopButton.SetLabel("loop: on")
	} else {
		w.loopButton.SetLabel("loop: off")
	}

	w.setEnabled(w.prevButton, controls.prev)
	w.setEnabled(w.playPauseButton, controls.pause || controls.resume)
	w.setEnabled(w.nextButton, controls.next)
	w.setEnabled(w.loopButton, controls.loop)
	w.setEnabled(w.clearButton, controls.clear)

	if snapshot.current != nil {
		w.positionText.SetText(formatTime(snapshot.position) + "/" + formatTime(snapshot.duration))
	} else {
		w.positionText.SetText(formatTime(0) + "/" + formatTime(0))
	}
}

func (w *TransportWidget) setEnabled(button *tview.Button, enabled bool) {
	if enabled {
		button.SetStyle(w.enabledStyle)
		button.SetActivatedStyle(w.enabledStyle)
	} else {
		button.SetStyle(w.disabledStyle)
		button.SetActivatedStyle(w.disabledStyle)
	}
}
