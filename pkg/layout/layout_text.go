package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func (le *LayoutEngine) layoutText(s state, text string) state {
	if text == "" {
		return s
	}
	style := s.style
	space := le.measurer.SpaceWidth(style.Bold, style.Italic, style.Size)

	// Leading whitespace after a run that ended mid-word (e.g. "<b>a</b> b")
	// still separates the two runs.
	if first, _ := utf8.DecodeRuneInString(text); unicode.IsSpace(first) && !s.terminalSpace {
		s.cursor.X += space
	}

	right := le.viewportWidth - Margin
	for _, word := range strings.Fields(text) {
		w := le.measurer.WordWidth(word, style.Bold, style.Italic, style.Size)
		if s.cursor.X+w > right {
			s.cursor.X = Margin
			s.cursor.Y += le.lineAdvance(style)
		}
		s.boxes = append(s.boxes, WordBox{
			X:        s.cursor.X,
			Y:        s.cursor.Y,
			Text:     word,
			Bold:     style.Bold,
			Italic:   style.Italic,
			FontSize: style.Size,
		})
		s.cursor.X += w + space
	}

	last, _ := utf8.DecodeLastRuneInString(text)
	s.terminalSpace = unicode.IsSpace(last)
	if !s.terminalSpace {
		s.cursor.X -= space
	}
	s.font = style
	return s
}
