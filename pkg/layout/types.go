package layout

const (
	// Margin is the left, top and right content inset.
	Margin = 13.0
	// DefaultFontSize is the only size text is set in.
	DefaultFontSize = 16.0
	// LineSpacing multiplies the font's line height to get the line advance.
	LineSpacing = 1.2
	// ParagraphSpacing is the extra gap added after </p>.
	ParagraphSpacing = 16.0
)

// TextMeasurer reports font metrics for a style. Results must be
// deterministic for the same arguments.
type TextMeasurer interface {
	WordWidth(word string, bold, italic bool, size float64) float64
	SpaceWidth(bold, italic bool, size float64) float64
	LineHeight(bold, italic bool, size float64) float64
}

// StyleState is the running font style while laying out.
type StyleState struct {
	Bold   bool
	Italic bool
	Size   float64
}

// Cursor is where the next word will be placed.
type Cursor struct {
	X float64
	Y float64
}

// WordBox is one positioned, styled word.
type WordBox struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Text     string  `json:"text"`
	Bold     bool    `json:"bold"`
	Italic   bool    `json:"italic"`
	FontSize float64 `json:"font_size"`
}

// DisplayList holds word boxes in reading order.
type DisplayList []WordBox

// Bottom returns the largest y of any box, or zero for an empty list.
func (dl DisplayList) Bottom() float64 {
	bottom := 0.0
	for _, box := range dl {
		if box.Y > bottom {
			bottom = box.Y
		}
	}
	return bottom
}

// Visible returns the boxes that overlap the window [scroll, scroll+height].
// A box is taken to extend one line advance below its y.
func (dl DisplayList) Visible(scroll, height float64) DisplayList {
	var out DisplayList
	for _, box := range dl {
		if box.Y+box.FontSize*LineSpacing < scroll || box.Y > scroll+height {
			continue
		}
		out = append(out, box)
	}
	return out
}
