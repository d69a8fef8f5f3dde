// Package window is the fyne desktop window of pdfmerge. It forwards user
// input to a gui.Controller and renders what the controller returns.
package window

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/config"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/gui"
)

// Run opens the main window and blocks until it is closed.
func Run(ctrl *gui.Controller, title string) {
	a := app.NewWithID("com.mycarrier.pdfmerge")
	w := a.NewWindow(title)
	w.Resize(fyne.NewSize(820, 620))
	newView(ctrl, w).build()
	w.ShowAndRun()
}

type view struct {
	ctrl *gui.Controller
	w    fyne.Window

	dirLabel   *widget.Label
	root       string
	pattern    *widget.Entry
	template   *widget.Entry
	configMode *widget.Check
	progress   *widget.ProgressBar
	logView    *widget.Entry
	status     *widget.Label

	actions []*widget.Button
	cancel  context.CancelFunc
}

func newView(ctrl *gui.Controller, w fyne.Window) *view {
	return &view{ctrl: ctrl, w: w}
}

func (v *view) build() {
	/* -------------------- Directory -------------------- */
	v.dirLabel = widget.NewLabel("Directory: (none)")
	v.dirLabel.Truncation = fyne.TextTruncateEllipsis
	browseBtn := widget.NewButtonWithIcon("Browse…", theme.FolderOpenIcon(), func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			v.setRoot(uri.Path())
		}, v.w)
	})

	/* -------------------- Settings -------------------- */
	v.pattern = widget.NewEntry()
	v.pattern.SetText(config.DefaultPattern)
	v.template = widget.NewEntry()
	v.template.SetText(config.DefaultTemplate)
	v.configMode = widget.NewCheck("Configuration mode (merge saved file list in order)", nil)

	patternHelp := widget.NewButtonWithIcon("", theme.QuestionIcon(), func() {
		dialog.ShowInformation("File pattern", gui.PatternHelp, v.w)
	})
	templateHelp := widget.NewButtonWithIcon("", theme.QuestionIcon(), func() {
		dialog.ShowInformation("Output template", gui.PlaceholderHelp, v.w)
	})
	editCfgBtn := widget.NewButtonWithIcon("Edit configuration…", theme.DocumentCreateIcon(), v.editConfiguration)

	settings := widget.NewForm(
		widget.NewFormItem("Pattern", container.NewBorder(nil, nil, nil, patternHelp, v.pattern)),
		widget.NewFormItem("Output name", container.NewBorder(nil, nil, nil, templateHelp, v.template)),
	)

	/* -------------------- Actions -------------------- */
	previewBtn := widget.NewButtonWithIcon("Preview", theme.SearchIcon(), func() { v.start(true) })
	mergeBtn := widget.NewButtonWithIcon("Merge", theme.ConfirmIcon(), v.confirmMerge)
	mergeBtn.Importance = widget.HighImportance
	clearBtn := widget.NewButtonWithIcon("Clear log", theme.ContentClearIcon(), func() {
		v.logView.SetText("")
		v.progress.SetValue(0)
	})
	stopBtn := widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		if v.cancel != nil {
			v.cancel()
		}
	})
	v.actions = []*widget.Button{browseBtn, editCfgBtn, previewBtn, mergeBtn}

	/* -------------------- Progress & log -------------------- */
	v.progress = widget.NewProgressBar()
	v.status = widget.NewLabel("Ready")
	v.logView = widget.NewMultiLineEntry()
	v.logView.Wrapping = fyne.TextWrapOff
	v.logView.TextStyle = fyne.TextStyle{Monospace: true}

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, browseBtn, v.dirLabel),
		widget.NewSeparator(),
		settings,
		container.NewBorder(nil, nil, nil, editCfgBtn, v.configMode),
		widget.NewSeparator(),
		container.NewHBox(previewBtn, mergeBtn, stopBtn, clearBtn),
		v.progress,
		v.status,
	)
	v.w.SetContent(container.NewBorder(top, nil, nil, nil, v.logView))
}

func (v *view) setRoot(path string) {
	v.root = path
	v.dirLabel.SetText("Directory: " + path)
	if order, err := v.ctrl.Configuration(path); err == nil && order != "" {
		v.appendLog("Saved configuration for this directory: " + order)
	}
}

func (v *view) form() gui.Form {
	return gui.Form{
		Root:       v.root,
		Pattern:    v.pattern.Text,
		Template:   v.template.Text,
		ConfigMode: v.configMode.Checked,
	}
}

func (v *view) editConfiguration() {
	if v.root == "" {
		dialog.ShowError(gui.ErrNoDirectory, v.w)
		return
	}
	current, err := v.ctrl.Configuration(v.root)
	if err != nil {
		dialog.ShowError(err, v.w)
		return
	}
	names := widget.NewEntry()
	names.SetPlaceHolder("cover, intro, body")
	names.SetText(current)

	items := []*widget.FormItem{
		widget.NewFormItem("Files in order", names),
		widget.NewFormItem("", widget.NewLabel(gui.ConfigurationHelp)),
	}
	d := dialog.NewForm("Merge configuration", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		order, err := v.ctrl.SaveConfiguration(v.root, names.Text)
		if err != nil {
			dialog.ShowError(err, v.w)
			return
		}
		v.configMode.SetChecked(true)
		v.appendLog("Saved configuration: " + strings.Join(order, ", "))
	}, v.w)
	d.Resize(fyne.NewSize(560, 300))
	d.Show()
}

func (v *view) confirmMerge() {
	msg, err := v.ctrl.ConfirmMessage(v.form())
	if err != nil {
		dialog.ShowError(err, v.w)
		return
	}
	confirm := dialog.NewCustomConfirm("Confirm merge", "Merge", "Cancel",
		widget.NewLabel(msg),
		func(ok bool) {
			if ok {
				v.start(false)
			}
		}, v.w)
	confirm.Show()
}

// start runs a preview or merge in the background. Widget updates from the
// run goroutine go through fyne.Do.
func (v *view) start(preview bool) {
	f := v.form()
	warnings, err := v.ctrl.Check(f)
	if err != nil {
		dialog.ShowError(err, v.w)
		return
	}
	for _, msg := range warnings {
		v.appendLog("Warning: " + msg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.setBusy(true)
	v.progress.SetValue(0)
	if preview {
		v.appendLog(fmt.Sprintf("=== Preview started %s ===", time.Now().Format(time.TimeOnly)))
	} else {
		v.appendLog(fmt.Sprintf("=== Merge started %s ===", time.Now().Format(time.TimeOnly)))
	}

	events := gui.Events{
		Log: func(line string) {
			fyne.Do(func() { v.appendLog(line) })
		},
		Progress: func(done, total int) {
			fyne.Do(func() {
				v.progress.SetValue(float64(done) / float64(total))
				v.status.SetText(fmt.Sprintf("Processed %d of %d", done, total))
			})
		},
	}

	go func() {
		defer cancel()
		summary, err := v.ctrl.Run(ctx, f, preview, events)
		fyne.Do(func() {
			v.setBusy(false)
			v.cancel = nil
			if summary != nil {
				v.appendLog(gui.Report(summary))
				v.status.SetText(gui.ResultTitle(summary))
				dialog.ShowInformation(gui.ResultTitle(summary), gui.ResultMessage(summary), v.w)
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				v.status.SetText("Error")
				dialog.ShowError(err, v.w)
			}
		})
	}()
}

func (v *view) setBusy(busy bool) {
	for _, b := range v.actions {
		if busy {
			b.Disable()
		} else {
			b.Enable()
		}
	}
	if busy {
		v.status.SetText("Running…")
	}
}

func (v *view) appendLog(line string) {
	v.logView.SetText(v.logView.Text + line + "\n")
	v.logView.CursorRow = strings.Count(v.logView.Text, "\n")
	v.logView.Refresh()
}
