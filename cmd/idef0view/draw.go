package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/idef0-toolkit/pkg/imageedit"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleTitle      = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorWhite)
	styleTab        = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleTabSel     = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite).Bold(true)
	styleLine       = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleArrowhead  = tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true)
	styleArrowLabel = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBox        = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBoxLabel   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleNumber     = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleInputFocus = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLabel      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

var cellStyles = map[CellKind]tcell.Style{
	CellLine:       styleLine,
	CellArrowhead:  styleArrowhead,
	CellArrowLabel: styleArrowLabel,
	CellBox:        styleBox,
	CellBoxLabel:   styleBoxLabel,
	CellNumber:     styleNumber,
}

var spinner = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	v.drawTabs(w)
	switch v.tab {
	case TabDiagrams:
		v.drawDiagram(w, h)
	case TabEditor:
		v.drawEditor(w, h)
	}
	v.drawStatusBar(w, h)
}

func (v *Viewer) drawTabs(w int) {
	x := 1
	for i, name := range tabNames {
		style := styleTab
		if Tab(i) == v.tab {
			style = styleTabSel
		}
		label := fmt.Sprintf(" F%d %s ", i+1, name)
		v.drawString(x, 0, label, style)
		x += runewidth.StringWidth(label) + 1
	}
	title := "idef0view"
	v.drawString(w-runewidth.StringWidth(title)-1, 0, title, styleTitle)
}

// drawDiagram fills the rows between the tab bar and the help bar.
func (v *Viewer) drawDiagram(w, h int) {
	v.drawString(1, 1, v.drawing.Heading, styleTitle)

	top := 2
	rows := h - top - 2
	if rows < 3 || w < 10 {
		return
	}
	g := Rasterize(v.drawing, w, rows)
	for y, row := range g.Cells {
		for x, c := range row {
			if c.Rune == 0 {
				continue
			}
			v.screen.SetContent(x, top+y, c.Rune, nil, cellStyles[c.Kind])
		}
	}
}

func (v *Viewer) drawEditor(w, h int) {
	y := 2
	v.drawString(2, y, "Image:", styleLabel)
	v.drawField(10, y, w-12, v.pathInput, v.field == FieldPath)

	y += 2
	v.drawString(2, y, "Edit:", styleLabel)
	v.drawField(10, y, w-12, v.prompt, v.field == FieldPrompt)

	y += 2
	boxH := h - y - 3
	if boxH < 4 {
		return
	}
	v.drawTitledBox(2, y, w-4, boxH, "Current image")

	inner := y + 2
	img := v.session.Image()
	switch {
	case v.session.Busy():
		frame := spinner[int(time.Since(v.editStart)/(100*time.Millisecond))%len(spinner)]
		v.drawString(4, inner, fmt.Sprintf("%c Generating...", frame), styleArrowLabel)
	case img == "":
		v.drawString(4, inner, "No image loaded. Enter a path above and press Enter.", styleHelp)
	default:
		v.drawString(4, inner, v.imageInfo, styleDefault)
	}
	if err := v.session.Err(); err != nil && !v.session.Busy() {
		msg := runewidth.Truncate(err.Error(), w-10, "…")
		v.drawString(4, inner+2, msg, styleMsgError.Background(tcell.ColorDefault))
	}
}

func (v *Viewer) drawField(x, y, w int, value string, focused bool) {
	style := styleInput
	if focused {
		style = styleInputFocus
		value += "_"
	}
	for i := 0; i < w; i++ {
		v.screen.SetContent(x+i, y, ' ', nil, style)
	}
	// Keep the tail visible when the value is wider than the field.
	for runewidth.StringWidth(value) > w-1 && value != "" {
		_, size := firstRune(value)
		value = value[size:]
	}
	v.drawString(x, y, value, style)
}

func firstRune(s string) (rune, int) {
	for i, r := range s {
		if i > 0 {
			return r, i
		}
	}
	return 0, len(s)
}

// describeImage summarises a data URI for display.
func describeImage(uri string) string {
	mime, data, err := imageedit.DecodeDataURI(uri)
	if err != nil {
		return "invalid image data"
	}
	return fmt.Sprintf("%s, %s", mime, humanBytes(len(data)))
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d bytes", n)
}

func (v *Viewer) drawStatusBar(w, h int) {
	y := h - 1
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	info := fmt.Sprintf("%s  export: %s", v.drawing.Code, strings.ToUpper(v.settings.Format))
	if v.tab == TabEditor {
		info = v.cfg.Model
	}
	v.drawString(1, y, info, styleStatus)

	if v.message != "" {
		style := styleMsgInfo
		switch v.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		msg := runewidth.Truncate(v.message, w/2, "…")
		v.drawString(w-runewidth.StringWidth(msg)-2, y, msg, style)
	}

	y = h - 2
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	v.drawString(1, y, v.helpString(), styleHelp)
}

func (v *Viewer) helpString() string {
	if v.tab == TabEditor {
		return "Enter:load/submit  ↑↓:field  ^S:submit  ^X:clear  ^W:save  ^Y:copy  Tab:diagrams  ^C:quit"
	}
	return "c:context  d:decomposition  f:format  e:export  y:copy SVG  Tab:editor  q:quit"
}

// drawTitledBox draws a bordered box with optional title
func (v *Viewer) drawTitledBox(x, y, w, h int, title string) {
	v.screen.SetContent(x, y, '┌', nil, styleBorder)
	for i := 1; i < w-1; i++ {
		v.screen.SetContent(x+i, y, '─', nil, styleBorder)
	}
	v.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)

	if title != "" {
		v.drawString(x+2, y, " "+title+" ", styleLabel)
	}

	for row := 1; row < h-1; row++ {
		v.screen.SetContent(x, y+row, '│', nil, styleBorder)
		v.screen.SetContent(x+w-1, y+row, '│', nil, styleBorder)
	}

	v.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	for i := 1; i < w-1; i++ {
		v.screen.SetContent(x+i, y+h-1, '─', nil, styleBorder)
	}
	v.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
