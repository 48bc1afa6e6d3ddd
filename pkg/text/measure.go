package text

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// FontConfig holds paths to font files used for text measurement and rendering.
// An empty path selects the matching face of the bundled Go font family.
type FontConfig struct {
	Regular    string `mapstructure:"regular"`
	Bold       string `mapstructure:"bold"`
	Italic     string `mapstructure:"italic"`
	BoldItalic string `mapstructure:"bold_italic"`
}

// DefaultFontConfig uses the bundled Go fonts for every style.
func DefaultFontConfig() FontConfig {
	return FontConfig{}
}

// FontPath returns the font path for the given style combination.
func (fc FontConfig) FontPath(bold, italic bool) string {
	switch {
	case bold && italic:
		return fc.BoldItalic
	case bold:
		return fc.Bold
	case italic:
		return fc.Italic
	default:
		return fc.Regular
	}
}

func builtinTTF(bold, italic bool) []byte {
	switch {
	case bold && italic:
		return gobolditalic.TTF
	case bold:
		return gobold.TTF
	case italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

// LoadFace opens the face for a style at the given point size.
func (fc FontConfig) LoadFace(bold, italic bool, size float64) (font.Face, error) {
	if path := fc.FontPath(bold, italic); path != "" {
		return gg.LoadFontFace(path, size)
	}
	f, err := truetype.Parse(builtinTTF(bold, italic))
	if err != nil {
		return nil, fmt.Errorf("parsing builtin font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}

type faceKey struct {
	bold   bool
	italic bool
	size   float64
}

// Measurer measures words with real glyph metrics. Faces are opened lazily
// and kept per style and size. A configured font that cannot be loaded is
// replaced by the bundled face for that style, so measuring and drawing agree.
//
// WordWidth, SpaceWidth and LineHeight may be called concurrently. A face
// returned by Face keeps its own glyph cache and must only be used by one
// goroutine at a time.
type Measurer struct {
	fonts  FontConfig
	logger *zap.Logger

	mu    sync.Mutex
	dc    *gg.Context
	faces map[faceKey]font.Face
}

func NewMeasurer(fonts FontConfig) *Measurer {
	return &Measurer{
		fonts:  fonts,
		logger: zap.NewNop(),
		dc:     gg.NewContext(1, 1),
		faces:  make(map[faceKey]font.Face),
	}
}

func (m *Measurer) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m.mu.Lock()
	m.logger = logger.Named("fonts")
	m.mu.Unlock()
}

// Face returns the cached face for a style, loading it on first use.
func (m *Measurer) Face(bold, italic bool, size float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face(bold, italic, size)
}

func (m *Measurer) face(bold, italic bool, size float64) (font.Face, error) {
	key := faceKey{bold, italic, size}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	face, err := m.fonts.LoadFace(bold, italic, size)
	if err != nil {
		m.logger.Warn("font unavailable, using bundled face",
			zap.String("path", m.fonts.FontPath(bold, italic)),
			zap.Error(err))
		face, err = DefaultFontConfig().LoadFace(bold, italic, size)
		if err != nil {
			return nil, err
		}
	}
	m.faces[key] = face
	return face, nil
}

// WordWidth measures word at the given style. If no face at all can be
// loaded a rough estimate is returned instead.
func (m *Measurer) WordWidth(word string, bold, italic bool, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.face(bold, italic, size)
	if err != nil {
		return float64(utf8.RuneCountInString(word)) * size * 0.6
	}
	m.dc.SetFontFace(face)
	w, _ := m.dc.MeasureString(word)
	return w
}

func (m *Measurer) SpaceWidth(bold, italic bool, size float64) float64 {
	return m.WordWidth(" ", bold, italic, size)
}

// LineHeight is the face's ascent plus descent.
func (m *Measurer) LineHeight(bold, italic bool, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.face(bold, italic, size)
	if err != nil {
		return size * 1.2
	}
	metrics := face.Metrics()
	return float64(metrics.Ascent+metrics.Descent) / 64
}
