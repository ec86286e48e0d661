// Command picrename-gui is the desktop front end: pick a folder, adjust the
// prefix and start number, and rename every image in it as one batch.
package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/afero"

	"github.com/backmassage/picrename/internal/app"
	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/logging"
	"github.com/backmassage/picrename/internal/pipeline"
)

/* -------------------- App State -------------------- */

type uiState struct {
	folder string
	files  []string
}

func main() {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	core := app.New(&cfg, afero.NewOsFs(), nil, logging.Nop())

	a := fyneapp.NewWithID("com.backmassage.picrename")
	w := a.NewWindow("Image Rename Tool")
	w.Resize(fyne.NewSize(820, 600))

	state := &uiState{}

	/* -------------------- Inputs -------------------- */

	prefixEntry := widget.NewEntry()
	prefixEntry.SetPlaceHolder("prefix")
	startEntry := widget.NewEntry()
	startEntry.SetPlaceHolder("1")

	if p, err := core.LastPrefix(); err == nil {
		prefixEntry.SetText(p)
	}
	if n, err := core.LastNumber(); err == nil {
		startEntry.SetText(strconv.Itoa(n))
	}

	renameFolderCheck := widget.NewCheck("Rename folder afterwards", nil)
	previewLabel := widget.NewLabel("")
	previewLabel.TextStyle = fyne.TextStyle{Monospace: true}

	updatePreview := func() {
		start, err := parseStart(startEntry.Text)
		if err != nil {
			previewLabel.SetText("Start number: " + err.Error())
			return
		}
		previewLabel.SetText("Example: " + core.Preview(prefixEntry.Text, start))
	}
	prefixEntry.OnChanged = func(string) { updatePreview() }
	startEntry.OnChanged = func(string) { updatePreview() }

	policySelect := widget.NewSelect([]string{string(config.PolicyRandomSuffix), string(config.PolicySequential)}, nil)
	policySelect.SetSelected(string(cfg.Policy))

	/* -------------------- File list -------------------- */

	folderLabel := widget.NewLabel("Folder: (none)")
	folderLabel.Truncation = fyne.TextTruncateEllipsis
	countLabel := widget.NewLabel("")

	fileList := widget.NewList(
		func() int { return len(state.files) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(filepath.Base(state.files[id]))
		},
	)

	loadFolder := func(path string) {
		state.folder = path
		folderLabel.SetText("Folder: " + path)
		files, err := core.ImageFiles(path)
		if err != nil {
			dialog.ShowError(err, w)
			files = nil
		}
		state.files = files
		countLabel.SetText(fmt.Sprintf("%d images", len(files)))
		fileList.Refresh()
	}

	// The policy is part of the core config; rebuild it on change.
	policySelect.OnChanged = func(sel string) {
		p, err := config.ParseNamingPolicy(sel)
		if err != nil {
			return
		}
		cfg.Policy = p
		core = app.New(&cfg, afero.NewOsFs(), nil, logging.Nop())
		updatePreview()
	}

	selectFolderBtn := widget.NewButton("Select Folder…", func() {
		dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			loadFolder(uri.Path())
		}, w).Show()
	})

	/* -------------------- Rename -------------------- */

	startBtn := widget.NewButtonWithIcon("Start renaming", theme.ConfirmIcon(), func() {
		if len(state.files) == 0 {
			dialog.ShowInformation("Nothing to do", "Select a folder that contains images.", w)
			return
		}
		start, err := parseStart(startEntry.Text)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}

		msg := fmt.Sprintf("Rename %d images in\n%s\n\nfirst name: %s",
			len(state.files), state.folder, core.Preview(prefixEntry.Text, start))
		dialog.ShowConfirm("Confirm rename", msg, func(ok bool) {
			if !ok {
				return
			}
			first := state.files[0]
			out, err := core.RenameFiles(pipeline.Request{
				Files:        state.files,
				Prefix:       prefixEntry.Text,
				StartNumber:  start,
				RenameFolder: renameFolderCheck.Checked,
			})
			if err != nil {
				dialog.ShowError(err, w)
				return
			}

			result := dialog.NewCustom("Rename complete", "OK",
				container.NewVScroll(widget.NewLabel(resultMessage(&out))), w)
			result.Resize(fyne.NewSize(640, 420))
			result.Show()

			// Fields follow the saved state for the next batch.
			if n, err := core.LastNumber(); err == nil {
				startEntry.SetText(strconv.Itoa(n))
			}
			loadFolder(reloadFolder(state.folder, first, &out))
		}, w)
	})

	/* -------------------- Layout -------------------- */

	form := widget.NewForm(
		widget.NewFormItem("Prefix", prefixEntry),
		widget.NewFormItem("Start number", startEntry),
		widget.NewFormItem("Policy", policySelect),
	)
	left := container.NewVBox(
		widget.NewLabelWithStyle("Batch", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		renameFolderCheck,
		widget.NewSeparator(),
		previewLabel,
		startBtn,
	)
	right := container.NewBorder(countLabel, nil, nil, nil, fileList)

	topBar := container.NewBorder(nil, nil, selectFolderBtn, nil, folderLabel)
	split := container.NewHSplit(left, right)
	split.Offset = 0.45

	w.SetContent(container.NewBorder(topBar, nil, nil, nil, split))
	updatePreview()
	w.ShowAndRun()
}

// parseStart reads the start number entry.
func parseStart(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n < 0 {
		return 0, pipeline.ErrInvalidStart
	}
	return n, nil
}

// reloadFolder is the folder to list after a batch. The folder rename
// targets the first file's parent, which may be a subfolder of the one shown.
func reloadFolder(folder, firstFile string, out *pipeline.Outcome) string {
	if out.FolderRenamed == nil || filepath.Dir(firstFile) != folder {
		return folder
	}
	return filepath.Join(filepath.Dir(folder), out.FolderRenamed.New)
}

// resultMessage is the text of the results dialog.
func resultMessage(out *pipeline.Outcome) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Renamed: %d\nFailed: %d\n", out.Renamed(), out.Failed())
	switch {
	case out.FolderRenamed != nil:
		fmt.Fprintf(&sb, "Folder: %s -> %s\n", out.FolderRenamed.Original, out.FolderRenamed.New)
	case out.FolderRenameError != nil:
		fmt.Fprintf(&sb, "Folder not renamed: %s\n", *out.FolderRenameError)
	}
	if len(out.Success) > 0 {
		sb.WriteString("\n")
		for _, s := range out.Success {
			fmt.Fprintf(&sb, "%s -> %s\n", s.Original, s.New)
		}
	}
	if len(out.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, e := range out.Errors {
			fmt.Fprintf(&sb, "%s: %s\n", e.File, e.Message)
		}
	}
	return sb.String()
}
