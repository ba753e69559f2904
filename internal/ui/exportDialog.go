package ui

import (
	"errors"
	"log"

	"SketchBoard/internal/export"
	"SketchBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// ShowExportDialog asks for a destination and writes the board there. The
// snapshot is taken when the dialog opens.
func ShowExportDialog(win fyne.Window, snap state.Snapshot, width, height float32, status func(string)) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("[Export] Error closing writer: %v", err)
			}
		}()

		ext := writer.URI().Extension()
		if err := export.Write(writer, ext, snap, width, height); err != nil {
			log.Printf("[Export] Failed to export %s: %v", writer.URI(), err)
			if errors.Is(err, export.ErrUnknownFormat) {
				err = errors.New("choose a .pdf or .png file name")
			}
			dialog.ShowError(err, win)
			return
		}
		log.Printf("[Export] Wrote %s", writer.URI())
		if status != nil {
			status("Exported " + writer.URI().Name())
		}
	}, win)
	d.SetFileName("board.pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf", ".png"}))
	d.Show()
}
