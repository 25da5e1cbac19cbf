// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/quaverhq/quaver/engine"
	"github.com/quaverhq/quaver/library"
	"github.com/quaverhq/quaver/logger"
	"github.com/quaverhq/quaver/remote"
)

// playerController is the command surface the ui dispatches to. The
// playback engine satisfies it; tests substitute a recording fake.
type playerController interface {
	AddQueue(paths []string) ([]engine.Track, error)
	ClearQueue() error
	Play(index int) error
	Pause() error
	Resume() error
	Prev() error
	Next() error
	SetPosition(seconds int64) error
	SetLooped(looped bool) error
	SetVolume(volume float64) error
	RegisterEventConsumer(consumer engine.EventConsumer)
	Quit()
}

var _ playerController = (*engine.Engine)(nil)

// struct contains all the updatable elements of the Ui
type Ui struct {
	app   *tview.Application
	pages *tview.Pages

	// top bar
	startStopStatus *tview.TextView
	playerStatus    *tview.TextView

	// transport bar and bottom bar
	transportWidget *TransportWidget
	menuWidget      *MenuWidget

	// queue page
	queuePage *QueuePage

	// log page
	logPage *LogPage

	// modals
	messageBox       *tview.Modal
	helpModal        tview.Primitive
	helpWidget       *HelpWidget
	filePickerModal  tview.Primitive
	filePickerWidget *FilePickerWidget

	// the rendered playback state; only the tview goroutine touches it
	state playerState

	engineEvents chan engine.Envelope
	mprisPlayer  *remote.MprisPlayer

	player  playerController
	library *library.Library
	logger  *logger.Logger
}

const (
	// page identifiers (use these instead of hardcoding page names for showing/hiding)
	PageQueue = "queue"
	PageLog   = "log"

	PageMessageBox = "messageBox"
	PageHelpBox    = "helpBox"
	PageFilePicker = "filePicker"
)

func InitGui(player playerController,
	lib *library.Library,
	logger *logger.Logger,
	mprisPlayer *remote.MprisPlayer,
	volumePercent int,
	looped bool) (ui *Ui) {
	ui = &Ui{
		engineEvents: make(chan engine.Envelope, 16),

		player:      player,
		library:     lib,
		logger:      logger,
		mprisPlayer: mprisPlayer,
	}

	ui.state.volume = volumePercent
	ui.state.looped = looped

	ui.app = tview.NewApplication()
	ui.pages = tview.NewPages()

	// status text at the top
	ui.startStopStatus = tview.NewTextView().SetText(formatStatusLine(ui.state.snapshot())).
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true).
		SetScrollable(false)
	ui.startStopStatus.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		return action, nil
	})

	statusRight := formatPlayerStatus(volumePercent, 0, 0)
	ui.playerStatus = tview.NewTextView().SetText(statusRight).
		SetTextAlign(tview.AlignRight).
		SetDynamicColors(true).
		SetScrollable(false)

	ui.menuWidget = ui.createMenuWidget()
	ui.transportWidget = ui.createTransportWidget()
	ui.helpWidget = ui.createHelpWidget()
	ui.filePickerWidget = ui.createFilePickerWidget()

	// redraw picker rows when background tag loads complete
	lib.SetNotify(func(path string, track engine.Track) {
		ui.app.QueueUpdateDraw(func() {
			ui.filePickerWidget.RefreshMetadata()
		})
	})

	// message box for small notes
	ui.messageBox = tview.NewModal().
		SetText("hi there").
		SetBackgroundColor(tcell.ColorBlack)
	ui.messageBox.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		ui.pages.HidePage(PageMessageBox)
		return event
	})

	ui.filePickerModal = makeModal(ui.filePickerWidget.Root, 80, 30)

	// help box modal
	ui.helpModal = makeModal(ui.helpWidget.Root, 80, 30)
	ui.helpWidget.Root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Belts and suspenders. After the dialog is shown, this function will
		// _always_ be called. Therefore, check to ensure it's actually visible
		// before triggering on events. Also, don't close on every key, but only
		// ESC, like the help text says.
		if ui.helpWidget.visible && (event.Key() == tcell.KeyEscape) {
			ui.CloseHelp()
		}
		return event
	})

	// top bar: status text
	topBarFlex := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.startStopStatus, 0, 1, false).
		AddItem(ui.playerStatus, 20, 0, false)

	// queue page
	ui.queuePage = ui.createQueuePage()

	// log page
	ui.logPage = ui.createLogPage()

	ui.pages.AddPage(PageQueue, ui.queuePage.Root, true, true).
		AddPage(PageMessageBox, ui.messageBox, true, false).
		AddPage(PageHelpBox, ui.helpModal, true, false).
		AddPage(PageFilePicker, ui.filePickerModal, true, false).
		AddPage(PageLog, ui.logPage.Root, true, false)

	rootFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(topBarFlex, 1, 0, false).
		AddItem(ui.pages, 0, 1, true).
		AddItem(ui.transportWidget.Root, 1, 0, false).
		AddItem(ui.menuWidget.Root, 1, 0, false)

	// add main input handler
	rootFlex.SetInputCapture(ui.handlePageInput)

	ui.app.SetRoot(rootFlex, true).
		SetFocus(rootFlex).
		EnableMouse(true)

	return ui
}

func (ui *Ui) Run() error {
	// receive events from the playback engine
	ui.player.RegisterEventConsumer(ui)

	// run gui event handler
	go ui.guiEventLoop()

	// gui main loop (blocking)
	return ui.app.Run()
}

func (ui *Ui) ShowHelp() {
	activePage := ui.menuWidget.GetActivePage()
	ui.helpWidget.RenderHelp(activePage)

	ui.pages.ShowPage(PageHelpBox)
	ui.pages.SendToFront(PageHelpBox)
	ui.app.SetFocus(ui.helpModal)
	ui.helpWidget.visible = true
}

func (ui *Ui) CloseHelp() {
	ui.helpWidget.visible = false
	ui.pages.HidePage(PageHelpBox)
}

func (ui *Ui) ShowFilePicker() {
	ui.filePickerWidget.Show()
	ui.pages.ShowPage(PageFilePicker)
	ui.pages.SendToFront(PageFilePicker)
	ui.app.SetFocus(ui.filePickerWidget.fileList)
	ui.filePickerWidget.visible = true
}

func (ui *Ui) CloseFilePicker() {
	ui.pages.HidePage(PageFilePicker)
	ui.filePickerWidget.visible = false
}

func (ui *Ui) showMessageBox(text string) {
	ui.pages.ShowPage(PageMessageBox)
	ui.messageBox.SetText(text)
	ui.app.SetFocus(ui.messageBox)
}

// render pushes a state snapshot into every widget that displays playback
// state. It must run on the tview goroutine.
func (ui *Ui) render(snapshot stateSnapshot) {
	ui.queuePage.UpdateQueue(snapshot)
	ui.transportWidget.Update(snapshot)
	ui.startStopStatus.SetText(formatStatusLine(snapshot))
	ui.playerStatus.SetText(formatPlayerStatus(snapshot.volume, snapshot.position, snapshot.duration))
}
