package layout

import (
	"quill/pkg/html"

	"go.uber.org/zap"
)

type LayoutEngine struct {
	viewportWidth float64
	measurer      TextMeasurer
	logger        *zap.Logger
}

func NewLayoutEngine(viewportWidth float64, measurer TextMeasurer) *LayoutEngine {
	return &LayoutEngine{
		viewportWidth: viewportWidth,
		measurer:      measurer,
		logger:        zap.NewNop(),
	}
}

// SetViewportWidth changes the wrap width for subsequent Layout calls.
func (le *LayoutEngine) SetViewportWidth(width float64) {
	le.viewportWidth = width
}

// GetViewportWidth returns the current wrap width.
func (le *LayoutEngine) GetViewportWidth() float64 {
	return le.viewportWidth
}

func (le *LayoutEngine) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	le.logger = logger.Named("layout")
}

// Layout is a convenience wrapper for a one-off layout pass.
func Layout(tokens []html.Token, viewportWidth float64, measurer TextMeasurer) DisplayList {
	return NewLayoutEngine(viewportWidth, measurer).Layout(tokens)
}

// state is everything carried from one token to the next. Each step takes
// the previous state by value and returns the next one.
type state struct {
	style StyleState
	// font is the style of the most recent text token; </p> measures with it.
	font          StyleState
	cursor        Cursor
	terminalSpace bool
	boxes         DisplayList
}

var defaultStyle = StyleState{Size: DefaultFontSize}

func initialState() state {
	return state{
		style:         defaultStyle,
		font:          defaultStyle,
		cursor:        Cursor{X: Margin, Y: Margin},
		terminalSpace: true,
	}
}

// Layout places every word of the token stream. It has no side effects, so
// calling it again with the same tokens yields the same display list.
func (le *LayoutEngine) Layout(tokens []html.Token) DisplayList {
	s := initialState()
	for _, tok := range tokens {
		s = le.step(s, tok)
	}
	le.logger.Debug("layout complete",
		zap.Int("tokens", len(tokens)),
		zap.Int("boxes", len(s.boxes)),
		zap.Float64("width", le.viewportWidth),
		zap.Float64("bottom", s.boxes.Bottom()))
	return s.boxes
}

func (le *LayoutEngine) step(s state, tok html.Token) state {
	if tok.Type == html.TokenText {
		return le.layoutText(s, tok.Text)
	}
	switch tok.Tag {
	case "i":
		s.style.Italic = true
	case "/i":
		s.style.Italic = false
	case "b":
		s.style.Bold = true
	case "/b":
		s.style.Bold = false
	case "/p":
		s.terminalSpace = true
		s.cursor.X = Margin
		s.cursor.Y += le.lineAdvance(s.font) + ParagraphSpacing
	}
	return s
}

func (le *LayoutEngine) lineAdvance(style StyleState) float64 {
	return le.measurer.LineHeight(style.Bold, style.Italic, style.Size) * LineSpacing
}
