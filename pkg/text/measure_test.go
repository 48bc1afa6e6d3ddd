package text

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"quill/pkg/layout"
)

var _ layout.TextMeasurer = (*Measurer)(nil)

func TestFontConfig_FontPath(t *testing.T) {
	fc := FontConfig{Regular: "r.ttf", Bold: "b.ttf", Italic: "i.ttf", BoldItalic: "bi.ttf"}
	assert.Equal(t, "r.ttf", fc.FontPath(false, false))
	assert.Equal(t, "b.ttf", fc.FontPath(true, false))
	assert.Equal(t, "i.ttf", fc.FontPath(false, true))
	assert.Equal(t, "bi.ttf", fc.FontPath(true, true))
	assert.Empty(t, DefaultFontConfig().FontPath(true, true))
}

func TestLoadFace_Builtin(t *testing.T) {
	for _, style := range []struct{ bold, italic bool }{{false, false}, {true, false}, {false, true}, {true, true}} {
		face, err := DefaultFontConfig().LoadFace(style.bold, style.italic, 16)
		require.NoError(t, err)
		require.NotNil(t, face)
	}
}

func TestMeasurer_Widths(t *testing.T) {
	m := NewMeasurer(DefaultFontConfig())

	a := m.WordWidth("a", false, false, 16)
	ab := m.WordWidth("ab", false, false, 16)
	assert.Greater(t, a, 0.0)
	assert.Greater(t, ab, a)
	assert.Greater(t, m.SpaceWidth(false, false, 16), 0.0)
	assert.Greater(t, m.WordWidth("hello", false, false, 32), m.WordWidth("hello", false, false, 16))

	// Deterministic across calls and measurers.
	assert.Equal(t, ab, m.WordWidth("ab", false, false, 16))
	assert.Equal(t, ab, NewMeasurer(DefaultFontConfig()).WordWidth("ab", false, false, 16))
}

func TestMeasurer_LineHeight(t *testing.T) {
	m := NewMeasurer(DefaultFontConfig())
	h := m.LineHeight(false, false, 16)
	assert.Greater(t, h, 12.0)
	assert.Less(t, h, 32.0)
	assert.Greater(t, m.LineHeight(false, false, 32), h)
}

func TestMeasurer_FaceIsCached(t *testing.T) {
	m := NewMeasurer(DefaultFontConfig())
	f1, err := m.Face(true, false, 16)
	require.NoError(t, err)
	f2, err := m.Face(true, false, 16)
	require.NoError(t, err)
	assert.Same(t, f1, f2)
}

func TestMeasurer_MissingFontUsesBundledFace(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.ttf")
	m := NewMeasurer(FontConfig{Regular: missing})
	m.SetLogger(zaptest.NewLogger(t))
	bundled := NewMeasurer(DefaultFontConfig())

	assert.Equal(t, bundled.WordWidth("abcd", false, false, 16), m.WordWidth("abcd", false, false, 16))
	assert.Equal(t, bundled.SpaceWidth(false, false, 16), m.SpaceWidth(false, false, 16))
	assert.Equal(t, bundled.LineHeight(false, false, 16), m.LineHeight(false, false, 16))

	face, err := m.Face(false, false, 16)
	require.NoError(t, err)
	require.NotNil(t, face)
}
