// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The marker column must show the playing icon on exactly the row whose
// index the backend reported, and nowhere else.
func TestQueueDataPlayingMarker(t *testing.T) {
	data := queueData{
		queue:        makeQueue(3),
		currentIndex: 1,
	}

	marked := 0
	for row := 0; row < data.GetRowCount(); row++ {
		cell := data.GetCell(row, 0)
		require.NotNil(t, cell)
		if cell.Text == playingIcon {
			marked++
			assert.Equal(t, 1, row)
		} else {
			assert.Equal(t, " ", cell.Text)
		}
	}
	assert.Equal(t, 1, marked, "exactly one row carries the marker")
}

func TestQueueDataNoMarkerWithoutCurrentTrack(t *testing.T) {
	data := queueData{
		queue:        makeQueue(3),
		currentIndex: -1,
	}

	for row := 0; row < data.GetRowCount(); row++ {
		cell := data.GetCell(row, 0)
		require.NotNil(t, cell)
		assert.Equal(t, " ", cell.Text)
	}
}

func TestQueueDataBounds(t *testing.T) {
	data := queueData{queue: makeQueue(2), currentIndex: 0}

	assert.Nil(t, data.GetCell(-1, 0))
	assert.Nil(t, data.GetCell(2, 0))
	assert.Nil(t, data.GetCell(0, queueDataColumns))
	assert.Equal(t, 2, data.GetRowCount())
	assert.Equal(t, queueDataColumns, data.GetColumnCount())
}

func TestRowActivationDispatchesPlayOnce(t *testing.T) {
	player := &fakePlayer{}
	ui := newTestUi(player)
	page := ui.createQueuePage()
	page.queueData.queue = makeQueue(5)

	page.handleActivate(3)

	assert.Equal(t, []int{3}, player.playedIndexes(), "activation plays the activated row")
	assert.Equal(t, 1, player.callCount(), "exactly one dispatch per activation")
}

func TestRowActivationOutOfBoundsDispatchesNothing(t *testing.T) {
	player := &fakePlayer{}
	ui := newTestUi(player)
	page := ui.createQueuePage()
	page.queueData.queue = makeQueue(2)

	page.handleActivate(-1)
	page.handleActivate(2)

	assert.Zero(t, player.callCount())
}

func TestQueueDataDurationColumn(t *testing.T) {
	queue := makeQueue(1)
	queue[0].Duration = 125
	data := queueData{queue: queue, currentIndex: -1}

	cell := data.GetCell(0, 4)
	require.NotNil(t, cell)
	assert.Equal(t, "2:05", cell.Text)
}
