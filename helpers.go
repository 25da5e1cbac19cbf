// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"math"
)

func secondsToMinAndSec(seconds int64) (int, int) {
	minutes := math.Floor(float64(seconds) / 60)
	remainingSeconds := int(seconds) % 60
	return int(minutes), remainingSeconds
}

// formatTime renders a duration in whole seconds as m:ss.
// Negative input renders as 0:00.
func formatTime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes, secs := secondsToMinAndSec(seconds)
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// volumeToFloat converts the 0..100 percentage the ui works with into the
// 0.0..1.0 scale the backend takes.
func volumeToFloat(percent int) float64 {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return float64(percent) / 100.0
}
