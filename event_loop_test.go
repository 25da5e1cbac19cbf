// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaverhq/quaver/engine"
)

func TestDecodeEvent(t *testing.T) {
	payload := &engine.Payload{State: engine.StatePlaying}

	decoded, err := decodeEvent(engine.Envelope{Name: engine.EventPlay, Success: true, Data: payload})
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)

	_, err = decodeEvent(engine.Envelope{Name: engine.EventPlay, Success: false, Error: "index out of bounds"})
	require.Error(t, err)
	assert.Equal(t, "index out of bounds", err.Error())

	_, err = decodeEvent(engine.Envelope{Name: engine.EventPlay, Success: false})
	require.Error(t, err, "failures without a message still decode to an error")

	_, err = decodeEvent(engine.Envelope{Name: engine.EventPlay, Success: true})
	assert.ErrorIs(t, err, errMissingPayload)
}
