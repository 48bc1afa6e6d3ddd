package render

// Viewport tracks the visible window onto a laid-out document.
type Viewport struct {
	Width      float64
	Height     float64
	ScrollStep float64
	Scroll     float64
}

func NewViewport(width, height, scrollStep float64) *Viewport {
	return &Viewport{Width: width, Height: height, ScrollStep: scrollStep}
}

// ScrollDown moves one step further into the document. There is no lower
// bound; scrolling past the end shows a blank canvas.
func (v *Viewport) ScrollDown() {
	v.Scroll += v.ScrollStep
}

// ScrollUp moves one step back, stopping at the top.
func (v *Viewport) ScrollUp() {
	v.Scroll -= v.ScrollStep
	if v.Scroll < 0 {
		v.Scroll = 0
	}
}

// Resize reports whether the width changed, in which case the document
// must be laid out again.
func (v *Viewport) Resize(width, height float64) bool {
	changed := width != v.Width
	v.Width = width
	v.Height = height
	return changed
}
