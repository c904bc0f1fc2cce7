// Native PNG rendering for IDEF0 diagrams.
// Mirrors the SVG renderer output using fogleman/gg.

package idef0file

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ha1tch/idef0-toolkit/pkg/layout"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Scale     float64 // output pixels per diagram unit (0 = 1)
	FontSize  float64 // box label font size
	LabelSize float64 // arrow label font size (0 = FontSize - 2)
	LineWidth float64
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Scale:     1,
		FontSize:  14,
		LabelSize: 12,
		LineWidth: 1.5,
	}
}

func (o PNGOptions) withDefaults() PNGOptions {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.FontSize == 0 {
		o.FontSize = 14
	}
	if o.LabelSize == 0 {
		o.LabelSize = o.FontSize - 2
	}
	if o.LineWidth == 0 {
		o.LineWidth = 1.5
	}
	return o
}

// Colors used in rendering
var (
	colorWhite = color.RGBA{255, 255, 255, 255}
	colorInk   = color.RGBA{51, 51, 51, 255} // #333
	colorText  = color.RGBA{17, 17, 17, 255} // #111
)

const arrowSize = 10.0

// newFace builds a Go Regular face. Glyphs go through the context
// transform, so the size is given in diagram units.
func newFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// RenderPNG renders a laid-out diagram to PNG.
func RenderPNG(dr *layout.Drawing, w io.Writer, opts PNGOptions) error {
	dc, err := renderContext(dr, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// renderContext draws the diagram onto a fresh gg context.
func renderContext(dr *layout.Drawing, opts PNGOptions) (*gg.Context, error) {
	opts = opts.withDefaults()

	width := int(math.Ceil(dr.Width * opts.Scale))
	height := int(math.Ceil(dr.Height * opts.Scale))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	labelFace, err := newFace(opts.LabelSize)
	if err != nil {
		return nil, err
	}
	boxFace, err := newFace(opts.FontSize)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(colorWhite)
	dc.Clear()
	dc.Scale(opts.Scale, opts.Scale)

	// Arrows first so boxes cover their ends
	dc.SetFontFace(labelFace)
	for _, r := range dr.Routes {
		drawRoutePNG(dc, r, opts)
	}

	dc.SetFontFace(boxFace)
	for _, b := range dr.Boxes {
		drawBoxPNG(dc, b, opts.Scale)
	}

	return dc, nil
}

func drawRoutePNG(dc *gg.Context, r layout.Route, opts PNGOptions) {
	if len(r.Points) < 2 {
		return
	}

	dc.SetColor(colorInk)
	dc.SetLineWidth(opts.LineWidth * opts.Scale)
	dc.MoveTo(r.Points[0].X, r.Points[0].Y)
	for _, p := range r.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()

	// The arrowhead follows the last segment that has a direction.
	tip := r.End()
	for i := len(r.Points) - 2; i >= 0; i-- {
		if !r.Points[i].Eq(tip) {
			drawArrowheadPNG(dc, r.Points[i], tip)
			break
		}
	}

	if r.Label != "" {
		ax := 0.0
		if r.Anchor == layout.AnchorMiddle {
			ax = 0.5
		}
		drawHaloText(dc, r.Label, r.LabelAt.X, r.LabelAt.Y, ax)
	}
}

func drawArrowheadPNG(dc *gg.Context, from, to layout.Point) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	half := arrowSize * 0.35
	baseX := to.X - arrowSize*dx
	baseY := to.Y - arrowSize*dy

	dc.MoveTo(to.X, to.Y)
	dc.LineTo(baseX+half*dy, baseY-half*dx)
	dc.LineTo(baseX-half*dy, baseY+half*dx)
	dc.ClosePath()
	dc.SetColor(colorInk)
	dc.Fill()
}

// drawHaloText draws text with a white outline, matching the paint-order
// halo of the SVG labels.
func drawHaloText(dc *gg.Context, s string, x, y, ax float64) {
	dc.SetColor(colorWhite)
	for _, d := range [][2]float64{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}} {
		dc.DrawStringAnchored(s, x+d[0], y+d[1], ax, 0)
	}
	dc.SetColor(colorInk)
	dc.DrawStringAnchored(s, x, y, ax, 0)
}

// Line widths are in output pixels and do not follow the transform.
func drawBoxPNG(dc *gg.Context, b layout.Box, scale float64) {
	dc.DrawRectangle(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H)
	dc.SetColor(colorWhite)
	dc.FillPreserve()
	dc.SetColor(colorInk)
	dc.SetLineWidth(2 * scale)
	dc.Stroke()

	dc.SetLineWidth(scale)
	for _, l := range b.NumberRules {
		dc.DrawLine(l.From.X, l.From.Y, l.To.X, l.To.Y)
		dc.Stroke()
	}
	dc.DrawStringAnchored(b.Number, b.NumberAt.X, b.NumberAt.Y, 0.5, 0)

	dc.SetColor(colorText)
	for i, line := range b.LabelLines {
		p := b.LabelAt[i]
		dc.DrawStringAnchored(line, p.X, p.Y, 0.5, 0)
	}
}
