// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:00", formatTime(0))
	assert.Equal(t, "0:05", formatTime(5))
	assert.Equal(t, "1:05", formatTime(65))
	assert.Equal(t, "2:05", formatTime(125))
	assert.Equal(t, "10:00", formatTime(600))
	assert.Equal(t, "0:00", formatTime(-3), "negative durations render as zero")
}

func TestVolumeToFloat(t *testing.T) {
	assert.InDelta(t, 0.37, volumeToFloat(37), 1e-9)
	assert.InDelta(t, 0.0, volumeToFloat(0), 1e-9)
	assert.InDelta(t, 1.0, volumeToFloat(100), 1e-9)
	assert.InDelta(t, 0.0, volumeToFloat(-5), 1e-9, "below range clamps to zero")
	assert.InDelta(t, 1.0, volumeToFloat(120), 1e-9, "above range clamps to full")
}

func TestFormatPlayerStatus(t *testing.T) {
	assert.Equal(t, "[37%][::b][1:05/2:05]", formatPlayerStatus(37, 65, 125))
	assert.Equal(t, "[100%][::b][0:00/0:00]", formatPlayerStatus(100, -1, -1))
}
