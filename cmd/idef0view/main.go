// Command idef0view is a terminal viewer for the built-in IDEF0 diagrams
// with an image editor tab backed by the Gemini API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/idef0-toolkit/internal/config"
	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
	"github.com/ha1tch/idef0-toolkit/pkg/idef0file"
	"github.com/ha1tch/idef0-toolkit/pkg/imageedit"
	"github.com/ha1tch/idef0-toolkit/pkg/layout"
)

// Tab is a top-level view.
type Tab int

const (
	TabDiagrams Tab = iota
	TabEditor
)

var tabNames = []string{"Diagrams", "Image Editor"}

// Field is the focused input on the editor tab.
type Field int

const (
	FieldPath Field = iota
	FieldPrompt
)

// MessageType for status bar messages
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
)

// editDoneEvent is posted when an edit request returns.
type editDoneEvent struct {
	tcell.EventTime
	err error
}

// Viewer holds all viewer state
type Viewer struct {
	screen tcell.Screen
	ctx    context.Context
	log    *slog.Logger

	cfg          config.Config
	settings     config.ViewerSettings
	settingsPath string

	tab     Tab
	diagram *idef0.Diagram
	drawing *layout.Drawing

	session   *imageedit.Session
	field     Field
	pathInput string
	prompt    string
	imageInfo string
	editStart time.Time

	message     string
	messageType MessageType

	copyText func(string) error
}

func newViewer(ctx context.Context, cfg config.Config, logger *slog.Logger, editor imageedit.Editor, settingsPath string) *Viewer {
	v := &Viewer{
		ctx:          ctx,
		log:          logger,
		cfg:          cfg,
		settingsPath: settingsPath,
		settings:     config.LoadViewerSettings(settingsPath),
		session:      imageedit.NewSession(editor),
		copyText:     clipboard.WriteAll,
	}
	v.selectDiagram(v.settings.Diagram)
	return v
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := config.OpenLogFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	opts := cfg.EditOptions()
	opts.Logger = logger
	client := imageedit.NewClient(opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := newViewer(ctx, cfg, logger, client, config.ViewerSettingsPath())
	if len(os.Args) > 1 {
		v.loadImage(os.Args[1])
		v.tab = TabEditor
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	v.screen = screen

	v.run()

	screen.Fini()
}

func (v *Viewer) run() {
	// Refresh the spinner while an edit is in flight.
	go func() {
		ticker := time.NewTicker(150 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-v.ctx.Done():
				return
			case <-ticker.C:
				if v.session.Busy() {
					v.screen.PostEvent(tcell.NewEventInterrupt(nil))
				}
			}
		}
	}()

	for {
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *editDoneEvent:
			v.editDone(ev.err)
		case *tcell.EventInterrupt:
			// spinner tick, just redraw
		}
	}
}

func (v *Viewer) showMessage(msg string, msgType MessageType) {
	v.message = msg
	v.messageType = msgType
}

// handleKey processes a key press. It returns true to quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyTab, tcell.KeyBacktab:
		v.tab = (v.tab + 1) % Tab(len(tabNames))
		return false
	case tcell.KeyF1:
		v.tab = TabDiagrams
		return false
	case tcell.KeyF2:
		v.tab = TabEditor
		return false
	}

	if v.tab == TabEditor {
		v.handleEditorKey(ev)
		return false
	}
	return v.handleDiagramKey(ev)
}

func (v *Viewer) handleDiagramKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case 'c', 'C':
		v.selectDiagram(string(idef0.KindContext))
	case 'd', 'D':
		v.selectDiagram(string(idef0.KindDecomposition))
	case 'f', 'F':
		if v.settings.Format == "svg" {
			v.settings.Format = "png"
		} else {
			v.settings.Format = "svg"
		}
		v.saveSettings()
		v.showMessage("Export format: "+strings.ToUpper(v.settings.Format), MsgInfo)
	case 'e', 'E':
		v.export()
	case 'y', 'Y':
		svg := idef0file.GenerateSVG(v.drawing, idef0file.DefaultSVGOptions())
		if err := v.copyText(svg); err != nil {
			v.showMessage("Clipboard: "+err.Error(), MsgError)
		} else {
			v.showMessage("SVG copied to clipboard", MsgSuccess)
		}
	}
	return false
}

func (v *Viewer) handleEditorKey(ev *tcell.EventKey) {
	input := &v.pathInput
	if v.field == FieldPrompt {
		input = &v.prompt
	}

	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyDown:
		v.field = 1 - v.field
	case tcell.KeyEnter:
		if v.field == FieldPath {
			v.loadImage(v.pathInput)
		} else {
			v.submit()
		}
	case tcell.KeyCtrlS:
		v.submit()
	case tcell.KeyCtrlX:
		v.session.Clear()
		v.imageInfo = ""
		v.showMessage("Image cleared", MsgInfo)
	case tcell.KeyCtrlW:
		v.saveImage()
	case tcell.KeyCtrlY:
		if img := v.session.Image(); img != "" {
			if err := v.copyText(img); err != nil {
				v.showMessage("Clipboard: "+err.Error(), MsgError)
			} else {
				v.showMessage("Image data URI copied", MsgSuccess)
			}
		}
	case tcell.KeyEscape:
		v.tab = TabDiagrams
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(*input); len(r) > 0 {
			*input = string(r[:len(r)-1])
		}
	case tcell.KeyCtrlU:
		*input = ""
	case tcell.KeyRune:
		*input += string(ev.Rune())
	}
}

func (v *Viewer) selectDiagram(name string) {
	d, err := idef0.Builtin(name)
	if err != nil {
		d = idef0.ContextDiagram()
	}
	v.diagram = d
	v.drawing = layout.Compute(d, v.cfg.LayoutOptions())
	for _, w := range v.drawing.Warnings {
		v.log.Warn("Layout warning", "diagram", d.Code, "edge", w.EdgeID, "message", w.Message)
	}
	if v.settings.Diagram != string(d.Kind()) {
		v.settings.Diagram = string(d.Kind())
		v.saveSettings()
	}
}

func (v *Viewer) saveSettings() {
	if err := config.SaveViewerSettings(v.settingsPath, v.settings); err != nil {
		v.log.Error("Saving settings failed", "path", v.settingsPath, "error", err)
	}
}

// export writes the current diagram to LastDir in the configured format.
func (v *Viewer) export() {
	name := strings.ToLower(strings.ReplaceAll(v.diagram.Code, "-", "")) + "." + v.settings.Format
	path := filepath.Join(v.settings.LastDir, name)

	var err error
	if v.settings.Format == "png" {
		var f *os.File
		if f, err = os.Create(path); err == nil {
			err = idef0file.RenderPNG(v.drawing, f, idef0file.DefaultPNGOptions())
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
	} else {
		err = os.WriteFile(path, []byte(idef0file.GenerateSVG(v.drawing, idef0file.DefaultSVGOptions())), 0644)
	}

	if err != nil {
		v.showMessage("Export failed: "+err.Error(), MsgError)
		return
	}
	v.showMessage("Exported "+path, MsgSuccess)
}

func (v *Viewer) loadImage(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		v.showMessage("Enter an image path", MsgError)
		return
	}
	uri, err := imageedit.LoadImageFile(path, v.cfg.MaxUpload, true)
	if err != nil {
		v.showMessage(err.Error(), MsgError)
		return
	}
	v.session.SetImage(uri)
	v.pathInput = path
	v.imageInfo = describeImage(uri)
	v.field = FieldPrompt
	v.settings.LastDir = filepath.Dir(path)
	v.saveSettings()
	v.showMessage("Loaded "+filepath.Base(path), MsgSuccess)
}

// submit starts an edit in the background. The session rejects it
// synchronously if one is already running or the input is incomplete.
func (v *Viewer) submit() {
	if v.session.Busy() {
		v.showMessage(imageedit.ErrBusy.Error(), MsgError)
		return
	}
	if v.session.Image() == "" {
		v.showMessage("Load an image first", MsgError)
		return
	}
	if strings.TrimSpace(v.prompt) == "" {
		v.showMessage(imageedit.ErrEmptyPrompt.Error(), MsgError)
		return
	}

	prompt := v.prompt
	v.editStart = time.Now()
	v.showMessage("Generating...", MsgInfo)

	go func() {
		ev := &editDoneEvent{}
		_, ev.err = v.session.Submit(v.ctx, prompt)
		ev.SetEventNow()
		_ = v.screen.PostEvent(ev)
	}()
}

func (v *Viewer) editDone(err error) {
	if err != nil {
		v.showMessage("Edit failed: "+err.Error(), MsgError)
		return
	}
	v.imageInfo = describeImage(v.session.Image())
	v.prompt = ""
	v.showMessage(fmt.Sprintf("Edit complete in %s", time.Since(v.editStart).Round(100*time.Millisecond)), MsgSuccess)
}

// saveImage writes the current image next to the last loaded one.
func (v *Viewer) saveImage() {
	uri := v.session.Image()
	if uri == "" {
		v.showMessage("No image to save", MsgError)
		return
	}
	_, data, err := imageedit.DecodeDataURI(uri)
	if err != nil {
		v.showMessage(err.Error(), MsgError)
		return
	}
	path := filepath.Join(v.settings.LastDir, fmt.Sprintf("edited-%s.png", time.Now().Format("20060102-150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		v.showMessage("Save failed: "+err.Error(), MsgError)
		return
	}
	v.showMessage("Saved "+path, MsgSuccess)
}
