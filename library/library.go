// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/quaverhq/quaver/engine"
	"github.com/quaverhq/quaver/logger"
)

// metadata sweep interval; stale entries are files that vanished from disk
const sweepInterval = time.Minute

// Library is the view onto the configured music directory: it finds
// playable files and serves their tag metadata through an asynchronous
// cache, so browsing never blocks on tag parsing.
type Library struct {
	root   string
	meta   *Cache[engine.Track]
	notify func(path string, track engine.Track)
	logger logger.LoggerInterface
}

func New(root string, log logger.LoggerInterface) *Library {
	l := &Library{
		root:   root,
		logger: log,
	}

	placeholder := engine.Track{Title: "…"}
	l.meta = NewCache(
		placeholder,
		func(path string) (engine.Track, error) {
			return engine.ReadTrack(path, 0), nil
		},
		func(path string, track engine.Track) {
			if l.notify != nil {
				l.notify(path, track)
			}
		},
		func(path string) bool {
			_, err := os.Stat(path)
			return err != nil
		},
		sweepInterval,
		log,
	)

	return l
}

func (l *Library) Root() string {
	return l.root
}

// SetNotify registers the callback invoked when metadata for a previously
// requested path becomes available. Register before the first Metadata
// call.
func (l *Library) SetNotify(notify func(path string, track engine.Track)) {
	l.notify = notify
}

// Metadata returns the cached descriptor for path, or a placeholder while
// the tags load in the background.
func (l *Library) Metadata(path string) engine.Track {
	return l.meta.Get(path)
}

func (l *Library) Close() {
	l.meta.Close()
}

// FindTracks walks the library root and returns every playable file, in
// walk order.
func (l *Library) FindTracks() ([]string, error) {
	return FindFiles(l.root)
}

// FindFiles walks root and collects files with a playable extension.
func FindFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && engine.Supported(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
