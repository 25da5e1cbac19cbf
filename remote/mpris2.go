// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"errors"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"

	"github.com/quaverhq/quaver/logger"
)

const mprisPath = "/org/mpris/MediaPlayer2"

type MprisPlayer struct {
	dbus   *dbus.Conn
	props  *prop.Properties
	player ControlledPlayer
	logger logger.LoggerInterface

	mu           sync.Mutex
	lastState    string
	lastPosition int64
}

func RegisterMprisPlayer(player ControlledPlayer, logger_ logger.LoggerInterface) (mpp *MprisPlayer, err error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return
	}

	mpp = &MprisPlayer{
		dbus:      conn,
		player:    player,
		logger:    logger_,
		lastState: "stopped",
	}

	err = conn.ExportAll(mpp, mprisPath, "org.mpris.MediaPlayer2.Player")
	if err != nil {
		return
	}

	metadata := map[string]interface{}{
		"mpris:trackid":     dbus.ObjectPath("/org/mpris/MediaPlayer2/TrackList/NoTrack"),
		"mpris:length":      int64(0),
		"xesam:album":       "",
		"xesam:albumArtist": "",
		"xesam:artist":      []string{},
		"xesam:composer":    []string{},
		"xesam:genre":       []string{},
		"xesam:title":       "",
		"xesam:trackNumber": int(0),
	}

	var mprisPlayer = map[string]*prop.Prop{
		"CanControl":     {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoNext":      {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoPrevious":  {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPause":       {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPlay":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanSeek":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Metadata":       {Value: metadata, Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"Volume":         {Value: float64(0.0), Writable: true, Emit: prop.EmitTrue, Callback: mpp.volumeChange},
		"PlaybackStatus": {Value: "Stopped", Writable: false, Emit: prop.EmitTrue, Callback: nil},
	}

	var mediaPlayer = map[string]*prop.Prop{
		"CanQuit":             {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanRaise":            {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"HasTrackList":        {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Identity":            {Value: "quaver", Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedUriSchemes": {Value: "", Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedMimeTypes":  {Value: "", Writable: false, Emit: prop.EmitFalse, Callback: nil},
	}

	props, err := prop.Export(
		conn,
		mprisPath,
		map[string]map[string]*prop.Prop{
			"org.mpris.MediaPlayer2":        mediaPlayer,
			"org.mpris.MediaPlayer2.Player": mprisPlayer,
		},
	)
	if err != nil {
		return
	}
	mpp.props = props

	n := &introspect.Node{
		Name: mprisPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       "org.mpris.MediaPlayer2.Player",
				Methods:    introspect.Methods(mpp),
				Properties: props.Introspection("org.mpris.MediaPlayer2.Player"), // we implement the standard interface
			},
		},
	}
	err = conn.Export(introspect.NewIntrospectable(n), mprisPath, "org.freedesktop.DBus.Introspectable")
	if err != nil {
		return
	}

	// our unique name
	name := "org.mpris.MediaPlayer2.quaver"
	reply, err := conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		return
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		err = errors.New("name already owned")
		return
	}
	return
}

func (m *MprisPlayer) Close() {
	if err := m.dbus.Close(); err != nil {
		m.logger.PrintError("mpp Close", err)
	}
}

// Mandatory functions
func (m *MprisPlayer) Stop() {
	if err := m.player.Pause(); err != nil {
		m.logger.PrintError("mpp Stop", err)
	}
}

func (m *MprisPlayer) Next() {
	if err := m.player.Next(); err != nil {
		m.logger.PrintError("mpp Next", err)
	}
}

func (m *MprisPlayer) Previous() {
	if err := m.player.Prev(); err != nil {
		m.logger.PrintError("mpp Previous", err)
	}
}

// set paused
func (m *MprisPlayer) Pause() {
	if m.state() == "playing" {
		if err := m.player.Pause(); err != nil {
			m.logger.PrintError("mpp Pause", err)
		}
	}
}

// set playing
func (m *MprisPlayer) Play() {
	if m.state() != "playing" {
		if err := m.player.Resume(); err != nil {
			m.logger.PrintError("mpp Play", err)
		}
	}
}

func (m *MprisPlayer) PlayPause() {
	var err error
	if m.state() == "playing" {
		err = m.player.Pause()
	} else {
		err = m.player.Resume()
	}
	if err != nil {
		m.logger.PrintError("mpp PlayPause", err)
	}
}

func (m *MprisPlayer) OpenUri(string) {
	// playback is queue-based, external URIs are not accepted
}

// Seek moves relative to the current position, in microseconds.
func (m *MprisPlayer) Seek(offset int64) {
	m.mu.Lock()
	target := m.lastPosition + offset/1000000
	m.mu.Unlock()
	if target < 0 {
		target = 0
	}
	if err := m.player.SetPosition(target); err != nil {
		m.logger.PrintError("mpp Seek", err)
	}
}

func (m *MprisPlayer) SetPosition(trackId dbus.ObjectPath, position int64) {
	if err := m.player.SetPosition(position / 1000000); err != nil {
		m.logger.PrintError("mpp SetPosition", err)
	}
}

func (m *MprisPlayer) volumeChange(c *prop.Change) *dbus.Error {
	fVol := c.Value.(float64)

	if err := m.player.SetVolume(fVol); err != nil {
		m.logger.PrintError("volumeChange", err)
	} else {
		m.logger.Printf("mpris: adjust volume %f", fVol)
	}
	return nil
}

func (m *MprisPlayer) state() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastState
}

// OnStateChange is called by the event loop with the backend's playback
// state ("playing", "paused" or "stopped").
func (m *MprisPlayer) OnStateChange(state string) {
	m.mu.Lock()
	m.lastState = state
	m.mu.Unlock()

	var status string
	switch state {
	case "playing":
		status = "Playing"
	case "paused":
		status = "Paused"
	default:
		status = "Stopped"
	}
	m.props.SetMust("org.mpris.MediaPlayer2.Player", "PlaybackStatus", status)
}

// OnPositionChange is called by the event loop to keep relative seeks
// anchored to the real position.
func (m *MprisPlayer) OnPositionChange(seconds int64) {
	m.mu.Lock()
	m.lastPosition = seconds
	m.mu.Unlock()
}

// OnSongChange is called by the event loop whenever the loaded track
// changes.
func (m *MprisPlayer) OnSongChange(currentSong TrackInterface) {
	if !currentSong.IsValid() {
		return
	}

	trackid := "/com/quaverhq/quaver/track/" + strings.ReplaceAll(currentSong.GetID(), "-", "")
	metadata := map[string]interface{}{
		"mpris:trackid":     dbus.ObjectPath(trackid),
		"mpris:length":      currentSong.GetDuration() * 1000000, // duration in microseconds
		"xesam:album":       currentSong.GetAlbum(),
		"xesam:albumArtist": "",
		"xesam:artist":      []string{currentSong.GetArtist()},
		"xesam:composer":    []string{},
		"xesam:genre":       []string{},
		"xesam:title":       currentSong.GetTitle(),
		"xesam:trackNumber": 0,
	}

	err := m.dbus.Emit(mprisPath, "org.freedesktop.DBus.Properties.PropertiesChanged",
		"org.mpris.MediaPlayer2.Player", map[string]map[string]interface{}{
			"Metadata": metadata,
		}, []string{})

	if err != nil {
		m.logger.PrintError("mpris: Emit PropertiesChanged", err)
	}
}
