// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/quaverhq/quaver/engine"
)

// FilePickerWidget is the modal for adding files to the queue. It browses
// the library directory; ENTER descends into directories, space toggles a
// file selection, and accept hands the selected paths to the ui. Cancel
// dispatches nothing.
type FilePickerWidget struct {
	Root *tview.Flex

	pathView *tview.TextView
	fileList *tview.List
	accept   *tview.Button
	cancel   *tview.Button

	dir      string
	entries  []pickerEntry
	selected map[string]struct{}
	visible  bool

	// external references
	ui *Ui
}

type pickerEntry struct {
	name  string
	path  string
	isDir bool
}

func (ui *Ui) createFilePickerWidget() (m *FilePickerWidget) {
	m = &FilePickerWidget{
		selected: make(map[string]struct{}),
		ui:       ui,
	}

	m.pathView = tview.NewTextView().
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true).
		SetScrollable(false)

	m.fileList = tview.NewList().ShowSecondaryText(true)
	m.fileList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		m.handleActivate(index)
	})

	m.accept = tview.NewButton("Add").SetLabelColor(tcell.ColorBlack)
	m.cancel = tview.NewButton("Cancel").SetLabelColor(tcell.ColorBlack)

	m.accept.SetSelectedFunc(m.handleAccept)
	m.cancel.SetSelectedFunc(m.handleCancel)

	buttons := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(tview.NewFlex(), 0, 1, false).
		AddItem(m.accept, 0, 4, false).
		AddItem(tview.NewFlex(), 0, 1, false).
		AddItem(m.cancel, 0, 4, false).
		AddItem(tview.NewFlex(), 0, 1, false)

	m.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.pathView, 1, 0, false).
		AddItem(m.fileList, 0, 1, true).
		AddItem(buttons, 1, 0, false)

	m.Root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == ' ' {
			focused := m.ui.app.GetFocus()
			if focused == m.accept {
				m.handleAccept()
				return nil
			}
			if focused == m.cancel {
				m.handleCancel()
				return nil
			}
			m.toggleSelection(m.fileList.GetCurrentItem())
			return nil
		}
		switch event.Key() {
		case tcell.KeyESC:
			m.handleCancel()
			return nil
		case tcell.KeyCR:
			focused := m.ui.app.GetFocus()
			if focused == m.accept {
				m.handleAccept()
				return nil
			} else if focused == m.cancel {
				m.handleCancel()
				return nil
			}
			return event
		case tcell.KeyTab:
			return m.focusNext(event)
		case tcell.KeyBacktab:
			return m.focusPrev(event)
		}
		return event
	})

	m.Root.Box.SetBorder(true).SetTitle(" Add Files ")

	return
}

// Show (re)loads the library directory and resets the selection.
func (m *FilePickerWidget) Show() {
	m.reset()
	m.loadDir(m.ui.library.Root())
}

func (m *FilePickerWidget) reset() {
	m.selected = make(map[string]struct{})
}

func (m *FilePickerWidget) loadDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.ui.logger.PrintError("filePicker loadDir", err)
		return
	}

	m.dir = dir
	m.entries = m.entries[:0]

	if dir != m.ui.library.Root() {
		m.entries = append(m.entries, pickerEntry{name: "..", path: filepath.Dir(dir), isDir: true})
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			m.entries = append(m.entries, pickerEntry{name: entry.Name(), path: path, isDir: true})
		} else if engine.Supported(path) {
			m.entries = append(m.entries, pickerEntry{name: entry.Name(), path: path, isDir: false})
		}
	}
	sort.SliceStable(m.entries, func(i, j int) bool {
		if m.entries[i].isDir != m.entries[j].isDir {
			return m.entries[i].isDir
		}
		return m.entries[i].name < m.entries[j].name
	})

	m.pathView.SetText("[::b]" + tview.Escape(dir))
	m.renderList()
}

func (m *FilePickerWidget) renderList() {
	current := m.fileList.GetCurrentItem()
	m.fileList.Clear()
	for _, entry := range m.entries {
		main := entry.name
		secondary := ""
		if entry.isDir {
			main += "/"
		} else {
			if _, ok := m.selected[entry.path]; ok {
				main = "[x] " + main
			} else {
				main = "[ ] " + main
			}
			track := m.ui.library.Metadata(entry.path)
			secondary = fmt.Sprintf("    %s - %s", track.Artist, track.Title)
		}
		m.fileList.AddItem(main, secondary, 0, nil)
	}
	if current >= 0 && current < m.fileList.GetItemCount() {
		m.fileList.SetCurrentItem(current)
	}
}

// RefreshMetadata redraws the listing, picking up tags that finished
// loading in the background.
func (m *FilePickerWidget) RefreshMetadata() {
	if m.visible {
		m.renderList()
	}
}

// handleAccept closes the picker and hands the selection to the queue.
// An empty selection dispatches nothing.
func (m *FilePickerWidget) handleAccept() {
	paths := m.selectedPaths()
	m.reset()
	m.ui.CloseFilePicker()
	if len(paths) > 0 {
		m.ui.addTracksToQueue(paths)
	}
}

// handleCancel closes the picker without touching the backend.
func (m *FilePickerWidget) handleCancel() {
	m.reset()
	m.ui.CloseFilePicker()
}

func (m *FilePickerWidget) handleActivate(index int) {
	if index < 0 || index >= len(m.entries) {
		return
	}
	entry := m.entries[index]
	if entry.isDir {
		m.loadDir(entry.path)
		return
	}
	m.toggleSelection(index)
}

func (m *FilePickerWidget) toggleSelection(index int) {
	if index < 0 || index >= len(m.entries) {
		return
	}
	entry := m.entries[index]
	if entry.isDir {
		return
	}
	if _, ok := m.selected[entry.path]; ok {
		delete(m.selected, entry.path)
	} else {
		m.selected[entry.path] = struct{}{}
	}
	m.renderList()
}

// selectedPaths returns the selection in listing order. Selections made
// in other directories come after the visible ones, sorted by path.
func (m *FilePickerWidget) selectedPaths() []string {
	paths := make([]string, 0, len(m.selected))
	seen := make(map[string]struct{}, len(m.selected))
	for _, entry := range m.entries {
		if _, ok := m.selected[entry.path]; ok {
			paths = append(paths, entry.path)
			seen[entry.path] = struct{}{}
		}
	}

	rest := make([]string, 0, len(m.selected)-len(paths))
	for path := range m.selected {
		if _, ok := seen[path]; !ok {
			rest = append(rest, path)
		}
	}
	sort.Strings(rest)
	return append(paths, rest...)
}

func (m *FilePickerWidget) focusNext(event *tcell.EventKey) *tcell.EventKey {
	switch m.ui.app.GetFocus() {
	case m.fileList:
		m.ui.app.SetFocus(m.accept)
	case m.accept:
		m.ui.app.SetFocus(m.cancel)
	case m.cancel:
		m.ui.app.SetFocus(m.fileList)
	default:
		return event
	}
	return nil
}

func (m *FilePickerWidget) focusPrev(event *tcell.EventKey) *tcell.EventKey {
	switch m.ui.app.GetFocus() {
	case m.fileList:
		m.ui.app.SetFocus(m.cancel)
	case m.accept:
		m.ui.app.SetFocus(m.fileList)
	case m.cancel:
		m.ui.app.SetFocus(m.accept)
	default:
		return event
	}
	return nil
}
