// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"errors"

	"github.com/quaverhq/quaver/engine"
)

var errMissingPayload = errors.New("missing payload")

// decodeEvent normalizes a backend envelope before anything else looks at
// it. Failed envelopes and successful envelopes without a payload both
// come back as errors, so the state container only ever sees well-formed
// payloads.
func decodeEvent(event engine.Envelope) (*engine.Payload, error) {
	if !event.Success {
		if event.Error != "" {
			return nil, errors.New(event.Error)
		}
		return nil, errors.New("command failed")
	}
	if event.Data == nil {
		return nil, errMissingPayload
	}
	return event.Data, nil
}

// handle ui updates
func (ui *Ui) guiEventLoop() {
	for {
		select {
		case msg := <-ui.logger.Prints:
			// handle log page output
			ui.logPage.Print(msg)

		case event := <-ui.engineEvents:
			payload, err := decodeEvent(event)
			if err != nil {
				ui.logger.Printf("event %s: %s", event.Name, err)
				continue
			}

			// keep the remote control in sync before touching the ui
			if ui.mprisPlayer != nil {
				switch event.Name {
				case engine.EventTrackChange:
					if payload.Track != nil {
						ui.mprisPlayer.OnSongChange(payload.Track)
					}
				case engine.EventPlay, engine.EventStatus, engine.EventQueue:
					ui.mprisPlayer.OnStateChange(string(payload.State))
				case engine.EventProgress, engine.EventPosition:
					ui.mprisPlayer.OnPositionChange(payload.Position)
				}
			}

			ui.app.QueueUpdateDraw(func() {
				if ui.applyEvent(event.Name, payload) {
					ui.render(ui.state.snapshot())
				}
			})
		}
	}
}

// applyEvent folds a decoded payload into the state container and reports
// whether anything the widgets show may have changed. Runs on the tview
// goroutine.
func (ui *Ui) applyEvent(name engine.EventName, payload *engine.Payload) bool {
	switch name {
	case engine.EventQueue:
		ui.state.applyQueue(payload.Queue)

	case engine.EventPlay:
		ui.state.applyPlay(payload.Track)

	case engine.EventStatus:
		ui.state.applyStatus(payload.State)

	case engine.EventPosition, engine.EventProgress:
		ui.state.applyPosition(payload.Position, payload.Duration)

	case engine.EventLooped:
		ui.state.applyLooped(payload.Looped)

	case engine.EventVolume:
		// identical echoes are dropped to avoid a feedback loop with
		// remote volume changes
		return ui.state.applyVolume(payload.Volume)

	case engine.EventTrackChange:
		ui.state.applyTrackChange(payload.Track)

	default:
		ui.logger.Printf("guiEventLoop: unhandled event %q", name)
		return false
	}

	return true
}
