// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"text/template"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/quaverhq/quaver/engine"
	"github.com/quaverhq/quaver/logger"
)

// columns: playing marker, title, artist, album, duration
const queueDataColumns = 5
const playingIcon = "▶"

// data for rendering the queue table
type queueData struct {
	tview.TableContentReadOnly

	// our copy of the rendered state
	queue        []engine.Track
	currentIndex int
}

var _ tview.TableContent = (*queueData)(nil)

type QueuePage struct {
	Root *tview.Flex

	queueList *tview.Table
	queueData queueData

	trackInfo *tview.TextView

	// external refs
	ui     *Ui
	logger logger.LoggerInterface

	trackInfoTemplate *template.Template
}

func (ui *Ui) createQueuePage() *QueuePage {
	trackInfoTemplate, err := template.New("track info").Parse(trackInfoTemplateString)
	if err != nil {
		ui.logger.PrintError("createQueuePage", err)
	}
	queuePage := QueuePage{
		ui:                ui,
		logger:            ui.logger,
		trackInfoTemplate: trackInfoTemplate,
	}
	queuePage.queueData.currentIndex = -1

	// main table
	queuePage.queueList = tview.NewTable().
		SetSelectable(true, false). // rows selectable
		SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorLightGray).Foreground(tcell.ColorBlack))
	queuePage.queueList.Box.
		SetTitle(" queue ").
		SetTitleAlign(tview.AlignLeft).
		SetBorder(true)

	// ENTER or double click starts the selected track
	queuePage.queueList.SetSelectedFunc(func(row, column int) {
		queuePage.handleActivate(row)
	})

	// track info
	queuePage.trackInfo = tview.NewTextView()
	queuePage.trackInfo.SetDynamicColors(true).SetScrollable(true).SetBorder(true).SetTitle("Track Info")

	queuePage.queueList.SetSelectionChangedFunc(queuePage.changeSelection)

	// flex wrapper
	queuePage.Root = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(queuePage.queueList, 0, 2, true).
		AddItem(queuePage.trackInfo, 0, 1, false)

	return &queuePage
}

// handleActivate dispatches a play command for the activated row. The
// backend's play event moves the marker; nothing changes locally.
func (q *QueuePage) handleActivate(row int) {
	if row < 0 || row >= len(q.queueData.queue) {
		return
	}
	if err := q.ui.player.Play(row); err != nil {
		q.logger.PrintError("handleActivate", err)
	}
}

func (q *QueuePage) changeSelection(row, column int) {
	q.trackInfo.Clear()
	if row >= len(q.queueData.queue) || row < 0 || column < 0 {
		return
	}
	currentTrack := q.queueData.queue[row]
	if err := q.trackInfoTemplate.Execute(q.trackInfo, currentTrack); err != nil {
		q.logger.PrintError("changeSelection", err)
	}
}

// UpdateQueue replaces the rendered queue with the snapshot's copy. The
// backend's queue event is the authoritative source; rows are never edited
// in place.
func (q *QueuePage) UpdateQueue(snapshot stateSnapshot) {
	queueWasEmpty := len(q.queueData.queue) == 0

	// tell the tview table to update its data
	q.queueData.queue = snapshot.queue
	q.queueData.currentIndex = snapshot.currentIndex
	q.queueList.SetContent(&q.queueData)

	// by default we're scrolled down after initially adding rows, fix this
	if queueWasEmpty {
		q.queueList.ScrollToBeginning()
	}

	r, c := q.queueList.GetSelection()
	q.changeSelection(r, c)
}

// queueData methods, used by tview to lazily render the table
func (q *queueData) GetCell(row, column int) *tview.TableCell {
	if row >= len(q.queue) || column >= queueDataColumns || row < 0 || column < 0 {
		return nil
	}
	track := q.queue[row]

	switch column {
	case 0: // playing marker
		text := " "
		color := tcell.ColorDefault
		if row == q.currentIndex {
			text = playingIcon
			color = tcell.ColorGreen
		}
		return &tview.TableCell{
			Text:        text,
			Color:       color,
			Expansion:   0,
			MaxWidth:    1,
			Transparent: true,
		}
	case 1: // title
		return &tview.TableCell{
			Text:        tview.Escape(track.Title),
			Expansion:   1,
			Transparent: true,
		}
	case 2: // artist
		return &tview.TableCell{
			Text:        tview.Escape(track.Artist),
			Expansion:   1,
			Transparent: true,
		}
	case 3: // album
		return &tview.TableCell{
			Text:        tview.Escape(track.Album),
			Expansion:   1,
			Transparent: true,
		}
	case 4: // duration
		return &tview.TableCell{
			Text:        formatTime(track.Duration),
			Align:       tview.AlignRight,
			Expansion:   0,
			MaxWidth:    6,
			Transparent: true,
		}
	}

	return nil
}

// Return the total number of rows in the table.
func (q *queueData) GetRowCount() int {
	return len(q.queue)
}

// Return the total number of columns in the table.
func (q *queueData) GetColumnCount() int {
	return queueDataColumns
}

var trackInfoTemplateString = `[blue::b]Title:[-:-:-:-] [green::i]{{.Title}}[-:-:-:-]
[blue::b]Artist:[-:-:-:-] [::i]{{.Artist}}[-:-:-:-]
[blue::b]Album:[-:-:-:-] [::i]{{.Album}}[-:-:-:-]`
