// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"errors"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// output is the slice of the audio stack the command loop drives. It exists
// as an interface so the loop's queue and transport semantics can be
// exercised without an audio device.
type output interface {
	// Load decodes path and starts playing it from the beginning,
	// replacing whatever was loaded before. done receives one signal when
	// the track plays through to its natural end.
	Load(path string, done chan<- struct{}) error
	// Stop silences the output and drops the loaded track.
	Stop()
	SetPaused(paused bool)
	// SetVolume takes 0.0..1.0.
	SetVolume(volume float64)
	Seek(seconds int64) error
	Position() int64
	Close()
}

const outputSampleRate = beep.SampleRate(44100)

// speakerOutput plays through the OS audio device via beep's speaker.
// Everything runs at one output rate; tracks with a different native rate
// are resampled on the fly.
type speakerOutput struct {
	mixer    *beep.Mixer
	volume   *effects.Volume
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	format   beep.Format
}

func newSpeakerOutput() (*speakerOutput, error) {
	if err := speaker.Init(outputSampleRate, outputSampleRate.N(time.Second/4)); err != nil {
		return nil, err
	}

	mixer := &beep.Mixer{}
	vol := &effects.Volume{
		Streamer: mixer,
		Base:     2,
		Volume:   0,
		Silent:   false,
	}
	speaker.Play(vol)

	return &speakerOutput{mixer: mixer, volume: vol}, nil
}

func (s *speakerOutput) Load(path string, done chan<- struct{}) error {
	streamer, format, err := Decode(path)
	if err != nil {
		return err
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != outputSampleRate {
		stream = beep.Resample(4, format.SampleRate, outputSampleRate, streamer)
	}

	speaker.Lock()
	if s.streamer != nil {
		s.streamer.Close()
	}
	s.streamer = streamer
	s.format = format
	s.ctrl = &beep.Ctrl{Streamer: stream}

	// Clearing the mixer drops the previous sequence before its callback
	// fires, so done only ever signals a natural end of track.
	seq := beep.Seq(s.ctrl, beep.Callback(func() {
		select {
		case done <- struct{}{}:
		default:
		}
	}))
	s.mixer.Clear()
	s.mixer.Add(seq)
	speaker.Unlock()

	return nil
}

func (s *speakerOutput) Stop() {
	speaker.Lock()
	s.mixer.Clear()
	if s.streamer != nil {
		s.streamer.Close()
		s.streamer = nil
	}
	s.ctrl = nil
	speaker.Unlock()
}

func (s *speakerOutput) SetPaused(paused bool) {
	speaker.Lock()
	if s.ctrl != nil {
		s.ctrl.Paused = paused
	}
	speaker.Unlock()
}

func (s *speakerOutput) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	speaker.Lock()
	if volume == 0 {
		s.volume.Silent = true
	} else {
		s.volume.Silent = false
		s.volume.Volume = volume*2 - 1 // log scale, sounds linear to the ear
	}
	speaker.Unlock()
}

func (s *speakerOutput) Seek(seconds int64) error {
	speaker.Lock()
	defer speaker.Unlock()

	if s.streamer == nil {
		return errors.New("no track loaded")
	}

	n := s.format.SampleRate.N(time.Duration(seconds) * time.Second)
	if n < 0 {
		n = 0
	}
	if n > s.streamer.Len() {
		n = s.streamer.Len()
	}
	return s.streamer.Seek(n)
}

func (s *speakerOutput) Position() int64 {
	speaker.Lock()
	defer speaker.Unlock()

	if s.streamer == nil {
		return 0
	}
	return int64(float64(s.streamer.Position()) / float64(s.format.SampleRate))
}

func (s *speakerOutput) Close() {
	s.Stop()
	speaker.Close()
}
