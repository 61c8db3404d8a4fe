package fyne

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// recordingExtensions are the containers the decoder understands.
var recordingExtensions = []string{".wav", ".mp3", ".ogg", ".flac"}

// FileDialog is a helper for creating recording open dialogs.
type FileDialog struct {
	window   fyne.Window
	callback func(string)
	logger   *slog.Logger
}

// NewFileDialog creates a new file dialog.
func NewFileDialog(window fyne.Window, callback func(string), logger *slog.Logger) *FileDialog {
	return &FileDialog{
		window:   window,
		callback: callback,
		logger:   logger,
	}
}

// Show displays the file dialog.
func (d *FileDialog) Show() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			d.logger.Error("file dialog error", slog.Any("error", err))
			return
		}
		if reader == nil {
			return // User cancelled
		}
		filePath := reader.URI().Path()
		_ = reader.Close()

		if d.callback != nil {
			d.callback(filePath)
		}
	}, d.window)
	open.SetFilter(storage.NewExtensionFileFilter(recordingExtensions))
	open.Show()
}

// SaveDialog is a helper for choosing an export destination.
type SaveDialog struct {
	window   fyne.Window
	fileName string
	callback func(string)
	logger   *slog.Logger
}

// NewSaveDialog creates a new save dialog proposing fileName.
func NewSaveDialog(window fyne.Window, fileName string, callback func(string), logger *slog.Logger) *SaveDialog {
	return &SaveDialog{
		window:   window,
		fileName: fileName,
		callback: callback,
		logger:   logger,
	}
}

// Show displays the save dialog. The chosen file is handed to the callback
// by path, so the callback can reopen it for seeking.
func (d *SaveDialog) Show() {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			d.logger.Error("save dialog error", slog.Any("error", err))
			return
		}
		if writer == nil {
			return // User cancelled
		}
		filePath := writer.URI().Path()
		_ = writer.Close()

		if d.callback != nil {
			d.callback(filePath)
		}
	}, d.window)
	save.SetFileName(d.fileName)
	save.SetFilter(storage.NewExtensionFileFilter([]string{".wav"}))
	save.Show()
}
