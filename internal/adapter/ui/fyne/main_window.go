package fyne

import (
	"fmt"
	"image"
	"sync"
	"time"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/gowave/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/ports"
	"github.com/tejashwikalptaru/gowave/internal/timefmt"
	"github.com/tejashwikalptaru/gowave/res"
)

const (
	// APPNAME is the window title
	APPNAME = "Go Wave"

	// WIDTH and HEIGHT are the initial window size
	WIDTH  = 640
	HEIGHT = 220
)

// MainWindow is the main UI window implementing the ports.UI interface.
// It handles all UI rendering and user interactions.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All business logic is in the Presenter
// - User interactions are forwarded to the Presenter
//
// Every ports.UI method hands its update to the Fyne thread with fyne.Do.
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window

	// UI components
	waveform     *widgets.WaveformView
	recordButton *widget.Button
	stopButton   *widget.Button
	playButton   *widget.Button
	clearButton  *widget.Button
	title        *widget.Label
	elapsed      *widgets.DoubleTapLabel
	playback     *widget.Label

	// Style menu items
	fullscreenItem    *fyneapp.MenuItem
	roundedItem       *fyneapp.MenuItem
	animatePickItem   *fyneapp.MenuItem
	onlyRecordingItem *fyneapp.MenuItem
	mainMenu          *fyneapp.MainMenu

	// State
	mu            sync.Mutex
	preciseClock  bool
	lastElapsed   time.Duration
	onBeforeClose func()
	version       string

	// Lifecycle management
	closeOnce sync.Once

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates a new main window.
func NewMainWindow(app fyneapp.App) *MainWindow {
	w := &MainWindow{
		app: app,
	}

	// Create a window
	w.window = app.NewWindow(APPNAME)

	// Build UI
	w.buildUI()

	// Set window properties
	w.window.Resize(fyneapp.Size{
		Width:  WIDTH,
		Height: HEIGHT,
	})

	w.window.SetCloseIntercept(func() {
		w.mu.Lock()
		hook := w.onBeforeClose
		w.mu.Unlock()

		if hook != nil {
			hook()
		}
		w.window.Close()
	})

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.wirePresenterHandlers()
	w.addShortcuts()
}

// SetOnBeforeClose registers a hook that runs before the window closes.
func (w *MainWindow) SetOnBeforeClose(hook func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onBeforeClose = hook
}

// SetVersion sets the version line of the About dialog.
func (w *MainWindow) SetVersion(version string) {
	w.version = version
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI() {
	w.waveform = widgets.NewWaveformView()

	// Control buttons
	w.recordButton = widget.NewButtonWithIcon("", theme.MediaRecordIcon(), nil)
	w.stopButton = widget.NewButtonWithIcon("", theme.MediaStopIcon(), nil)
	w.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
	w.clearButton = widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)

	// Labels
	w.title = widget.NewLabel("")
	w.title.Truncation = fyneapp.TextTruncateEllipsis
	w.title.TextStyle = fyneapp.TextStyle{
		Bold:   true,
		Italic: true,
	}
	w.elapsed = widgets.NewDoubleTapLabel(timefmt.RecordingTime(0), w.toggleClockFormat)
	w.elapsed.TextStyle = fyneapp.TextStyle{Monospace: true}
	w.playback = widget.NewLabel("")
	w.playback.TextStyle = fyneapp.TextStyle{Monospace: true}

	buttons := container.NewHBox(w.recordButton, w.stopButton, w.playButton, w.clearButton)
	controls := container.NewBorder(nil, nil, buttons, container.NewHBox(w.elapsed, w.playback), w.title)

	// Main layout
	content := container.NewBorder(nil, controls, nil, nil, w.waveform)
	w.window.SetContent(container.NewPadded(content))

	// Menu
	w.mainMenu = fyneapp.NewMainMenu(w.createMenu()...)
	w.window.SetMainMenu(w.mainMenu)
}

// wirePresenterHandlers connects UI events to presenter handlers.
func (w *MainWindow) wirePresenterHandlers() {
	if w.presenter == nil {
		return
	}

	// Button handlers
	w.recordButton.OnTapped = func() {
		w.presenter.OnRecordClicked()
	}

	w.stopButton.OnTapped = func() {
		w.presenter.OnStopClicked()
	}

	w.playButton.OnTapped = func() {
		w.presenter.OnPlayClicked()
	}

	w.clearButton.OnTapped = func() {
		w.presenter.OnClearClicked()
	}

	// Waveform
	w.waveform.OnTapped = w.presenter.OnWaveformTapped
	w.waveform.OnResized = w.presenter.OnWaveformResized
	w.waveform.OnSecondaryTapped = func(pe *fyneapp.PointEvent) {
		widget.ShowPopUpMenuAtPosition(w.styleMenu(), w.window.Canvas(), pe.AbsolutePosition)
	}
}

// createMenu creates the application menu.
func (w *MainWindow) createMenu() []*fyneapp.Menu {
	separator := fyneapp.NewMenuItemSeparator()

	openFile := fyneapp.NewMenuItem("Open Recording...", func() {
		w.handleOpenFile()
	})

	export := fyneapp.NewMenuItem("Export WAV...", func() {
		w.handleExport()
	})

	exitMenu := fyneapp.NewMenuItem("Exit", func() {
		w.Close()
	})

	fileMenu := fyneapp.NewMenu("File", openFile, export, separator, exitMenu)

	about := fyneapp.NewMenuItem("About", func() {
		w.showAbout()
	})
	helpMenu := fyneapp.NewMenu("Help", about)

	return []*fyneapp.Menu{fileMenu, w.styleMenu(), helpMenu}
}

// styleMenu builds the style toggles; the same menu backs the main menu
// and the waveform's context menu.
func (w *MainWindow) styleMenu() *fyneapp.Menu {
	if w.fullscreenItem == nil {
		w.fullscreenItem = fyneapp.NewMenuItem("Full Width", func() {
			w.editStyle(func(s *domain.Style) { s.Fullscreen = !s.Fullscreen })
		})
		w.roundedItem = fyneapp.NewMenuItem("Rounded Bars", func() {
			w.editStyle(func(s *domain.Style) {
				if s.Rounded > 0 {
					s.Rounded = 0
				} else {
					s.Rounded = domain.DefaultStyle().Rounded
				}
			})
		})
		w.animatePickItem = fyneapp.NewMenuItem("Animate Current Peak", func() {
			w.editStyle(func(s *domain.Style) { s.AnimateCurrentPick = !s.AnimateCurrentPick })
		})
		w.onlyRecordingItem = fyneapp.NewMenuItem("Live Only", func() {
			w.editStyle(func(s *domain.Style) { s.OnlyRecording = !s.OnlyRecording })
		})
	}

	reset := fyneapp.NewMenuItem("Reset Style", func() {
		if w.presenter != nil {
			w.presenter.OnResetStyle()
		}
	})

	return fyneapp.NewMenu("Style",
		w.fullscreenItem, w.roundedItem, w.animatePickItem, w.onlyRecordingItem,
		fyneapp.NewMenuItemSeparator(), reset)
}

func (w *MainWindow) editStyle(edit func(*domain.Style)) {
	if w.presenter != nil {
		w.presenter.OnStyleChanged(edit)
	}
}

func (w *MainWindow) showAbout() {
	content := widget.NewRichTextFromMarkdown(res.AboutContent)
	content.Wrapping = fyneapp.TextWrapWord

	version := widget.NewLabel(w.version)
	version.TextStyle = fyneapp.TextStyle{Italic: true}

	d := dialog.NewCustom("About "+APPNAME, "Close", container.NewVBox(content, version), w.window)
	d.Resize(fyneapp.NewSize(420, 280))
	d.Show()
}

// handleOpenFile handles the "Open Recording" menu action.
func (w *MainWindow) handleOpenFile() {
	if w.presenter == nil {
		return
	}

	d := NewFileDialog(w.window, func(filePath string) {
		if err := w.presenter.OnFileOpened(filePath); err != nil {
			w.ShowError("Open Failed", err)
		}
	}, w.presenter.logger)
	d.Show()
}

// handleExport handles the "Export WAV" menu action.
func (w *MainWindow) handleExport() {
	if w.presenter == nil {
		return
	}

	d := NewSaveDialog(w.window, "recording.wav", func(filePath string) {
		if err := w.presenter.OnExportRequested(filePath); err != nil {
			w.ShowError("Export Failed", err)
		}
	}, w.presenter.logger)
	d.Show()
}

// addShortcuts adds keyboard shortcuts.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyR,
		Modifier: fyneapp.KeyModifierShortcutDefault,
	}, func(fyneapp.Shortcut) {
		w.presenter.OnRecordClicked()
	})

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyS,
		Modifier: fyneapp.KeyModifierShortcutDefault,
	}, func(fyneapp.Shortcut) {
		w.presenter.OnStopClicked()
	})

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyP,
		Modifier: fyneapp.KeyModifierShortcutDefault,
	}, func(fyneapp.Shortcut) {
		w.presenter.OnPlayClicked()
	})
}

func (w *MainWindow) toggleClockFormat() {
	w.mu.Lock()
	w.preciseClock = !w.preciseClock
	elapsed := w.lastElapsed
	w.mu.Unlock()

	w.SetElapsed(elapsed)
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// ports.UI interface implementation

// SetWaveform shows a freshly painted canvas.
func (w *MainWindow) SetWaveform(img *image.RGBA) {
	fyneapp.Do(func() {
		w.waveform.SetImage(img)
	})
}

// SetCaptureState updates the capture controls.
func (w *MainWindow) SetCaptureState(status domain.CaptureStatus) {
	fyneapp.Do(func() {
		switch status {
		case domain.CaptureRecording:
			w.recordButton.SetIcon(theme.MediaPauseIcon())
			w.stopButton.Enable()
			w.playButton.Disable()
			w.clearButton.Disable()
		case domain.CapturePaused:
			w.recordButton.SetIcon(theme.MediaRecordIcon())
			w.stopButton.Enable()
			w.playButton.Disable()
			w.clearButton.Disable()
		default:
			w.recordButton.SetIcon(theme.MediaRecordIcon())
			w.stopButton.Disable()
			w.playButton.Enable()
			w.clearButton.Enable()
		}
	})
}

// SetElapsed updates the recording clock.
func (w *MainWindow) SetElapsed(elapsed time.Duration) {
	w.mu.Lock()
	w.lastElapsed = elapsed
	precise := w.preciseClock
	w.mu.Unlock()

	text := timefmt.RecordingTime(elapsed)
	if precise {
		text = timefmt.RecordedAudio(elapsed)
	}

	fyneapp.Do(func() {
		w.elapsed.SetText(text)
	})
}

// SetPlayback updates the playback display and the play button.
func (w *MainWindow) SetPlayback(position, duration time.Duration, playing bool) {
	text := ""
	if duration > 0 {
		text = fmt.Sprintf("%s / %s", timefmt.RecordedAudio(position), timefmt.Duration(duration))
	}

	fyneapp.Do(func() {
		w.playback.SetText(text)
		if playing {
			w.playButton.SetIcon(theme.MediaPauseIcon())
		} else {
			w.playButton.SetIcon(theme.MediaPlayIcon())
		}
	})
}

// SetTitle shows the name of the loaded recording.
func (w *MainWindow) SetTitle(title string) {
	fyneapp.Do(func() {
		w.title.SetText(title)
		if title == "" {
			w.window.SetTitle(APPNAME)
		} else {
			w.window.SetTitle(fmt.Sprintf("%s - %s", title, APPNAME))
		}
	})
}

// SetStyle checks the style menu items that are on.
func (w *MainWindow) SetStyle(style domain.Style) {
	fyneapp.Do(func() {
		w.fullscreenItem.Checked = style.Fullscreen
		w.roundedItem.Checked = style.Rounded > 0
		w.animatePickItem.Checked = style.AnimateCurrentPick
		w.onlyRecordingItem.Checked = style.OnlyRecording
		w.mainMenu.Refresh()
	})
}

// ShowNotification displays a system notification.
func (w *MainWindow) ShowNotification(title, message string) {
	w.app.SendNotification(fyneapp.NewNotification(title, message))
}

// ShowError displays an error dialog.
func (w *MainWindow) ShowError(title string, err error) {
	fyneapp.Do(func() {
		dialog.ShowError(fmt.Errorf("%s: %w", title, err), w.window)
	})
}

// Verify ports.UI implementation
var _ ports.UI = (*MainWindow)(nil)
