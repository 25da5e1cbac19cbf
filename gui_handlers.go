// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
)

func (ui *Ui) handlePageInput(event *tcell.EventKey) *tcell.EventKey {
	// we don't want any of these firing while a modal is up
	if ui.helpWidget.visible || ui.filePickerWidget.visible {
		return event
	}

	switch event.Rune() {
	case '1':
		ui.ShowPage(PageQueue)

	case '2':
		ui.ShowPage(PageLog)

	case '?':
		ui.ShowHelp()

	case 'Q':
		ui.Quit()

	case 'a':
		// add files to queue
		ui.ShowFilePicker()

	case 'D':
		// clear queue and stop playing
		ui.clearQueue()

	case 'p':
		// toggle playing/pause
		ui.pauseOrResume()

	case '>':
		// skip to next track
		ui.nextTrack()

	case '<':
		// skip to previous track
		ui.prevTrack()

	case 'l':
		ui.toggleLoop()

	case '-':
		// volume-
		ui.adjustVolume(-5)

	case '+', '=':
		// volume+
		ui.adjustVolume(5)

	case '.':
		// >>
		ui.seekBy(10)

	case ',':
		// <<
		ui.seekBy(-10)

	default:
		return event
	}

	return nil
}

func (ui *Ui) ShowPage(name string) {
	ui.pages.SwitchToPage(name)
	ui.menuWidget.SetActivePage(name)
	_, prim := ui.pages.GetFrontPage()
	ui.app.SetFocus(prim)
}

func (ui *Ui) Quit() {
	ui.player.Quit()
	ui.app.Stop()
}

// The gated dispatch methods below are shared between key bindings and
// transport buttons. Each consults the control states derived from the
// current snapshot, so a control that renders as disabled also dispatches
// nothing.

func (ui *Ui) pauseOrResume() {
	controls := ui.state.snapshot().controls
	switch {
	case controls.pause:
		if err := ui.player.Pause(); err != nil {
			ui.logger.PrintError("pauseOrResume: Pause", err)
		}
	case controls.resume:
		if err := ui.player.Resume(); err != nil {
			ui.logger.PrintError("pauseOrResume: Resume", err)
		}
	}
}

func (ui *Ui) nextTrack() {
	if !ui.state.snapshot().controls.next {
		return
	}
	if err := ui.player.Next(); err != nil {
		ui.logger.PrintError("nextTrack", err)
	}
}

func (ui *Ui) prevTrack() {
	if !ui.state.snapshot().controls.prev {
		return
	}
	if err := ui.player.Prev(); err != nil {
		ui.logger.PrintError("prevTrack", err)
	}
}

func (ui *Ui) toggleLoop() {
	snapshot := ui.state.snapshot()
	if !snapshot.controls.loop {
		return
	}
	if err := ui.player.SetLooped(!snapshot.looped); err != nil {
		ui.logger.PrintError("toggleLoop", err)
	}
}

func (ui *Ui) clearQueue() {
	if !ui.state.snapshot().controls.clear {
		return
	}
	if err := ui.player.ClearQueue(); err != nil {
		ui.logger.PrintError("clearQueue", err)
	}
}

func (ui *Ui) adjustVolume(delta int) {
	snapshot := ui.state.snapshot()
	if !snapshot.controls.volume {
		return
	}
	if err := ui.player.SetVolume(volumeToFloat(snapshot.volume + delta)); err != nil {
		ui.logger.PrintError("adjustVolume", err)
	}
}

func (ui *Ui) seekBy(delta int64) {
	snapshot := ui.state.snapshot()
	if !snapshot.controls.seek {
		return
	}
	target := snapshot.position + delta
	if target < 0 {
		target = 0
	}
	if err := ui.player.SetPosition(target); err != nil {
		ui.logger.PrintError("seekBy", err)
	}
}

// addTracksToQueue reads the files off the tview goroutine. The command
// replies with the authoritative queue, which replaces the local copy the
// same way a queue event would.
func (ui *Ui) addTracksToQueue(paths []string) {
	go func() {
		queue, err := ui.player.AddQueue(paths)
		if err != nil {
			ui.logger.PrintError("addTracksToQueue", err)
			return
		}
		ui.app.QueueUpdateDraw(func() {
			ui.state.applyQueue(queue)
			ui.render(ui.state.snapshot())
		})
	}()
}
