package layout

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Measurer returns the rendered width of s in canvas units.
type Measurer interface {
	Measure(s string) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(s string) float64

func (f MeasureFunc) Measure(s string) float64 { return f(s) }

// FaceMeasurer measures text with a loaded font face.
type FaceMeasurer struct {
	mu   sync.Mutex // font.Face is not safe for concurrent use
	face font.Face
}

// NewFaceMeasurer wraps face.
func NewFaceMeasurer(face font.Face) *FaceMeasurer {
	return &FaceMeasurer{face: face}
}

func (m *FaceMeasurer) Measure(s string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	adv := font.MeasureString(m.face, s)
	return float64(adv) / 64
}

// LabelFace returns the Go Regular face at size px, the face used for
// node labels in both writers.
func LabelFace(size float64) (font.Face, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

var (
	defaultMeasurerOnce sync.Once
	defaultMeasurer     Measurer
)

// DefaultMeasurer measures with Go Regular at 14px. If the embedded font
// cannot be loaded it falls back to an average-advance estimate.
func DefaultMeasurer() Measurer {
	defaultMeasurerOnce.Do(func() {
		face, err := LabelFace(14)
		if err != nil {
			defaultMeasurer = EstimateMeasurer(14)
			return
		}
		defaultMeasurer = NewFaceMeasurer(face)
	})
	return defaultMeasurer
}

// EstimateMeasurer approximates width as 0.6em per rune.
func EstimateMeasurer(size float64) Measurer {
	return MeasureFunc(func(s string) float64 {
		return float64(len([]rune(s))) * size * 0.6
	})
}

// Wrap breaks text into lines no wider than maxWidth. Words longer than a
// line are kept whole on their own line.
func Wrap(text string, maxWidth float64, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if m == nil {
		m = DefaultMeasurer()
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if m.Measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}
