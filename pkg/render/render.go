package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"quill/pkg/layout"
)

// FaceSource supplies the font face for a word box's style.
type FaceSource interface {
	Face(bold, italic bool, size float64) (font.Face, error)
}

type Renderer struct {
	context *gg.Context
	faces   FaceSource
}

func NewRenderer(width, height int, faces FaceSource) *Renderer {
	return &Renderer{context: gg.NewContext(width, height), faces: faces}
}

// NewRendererForImage draws directly into target.
func NewRendererForImage(target *image.RGBA, faces FaceSource) *Renderer {
	return &Renderer{context: gg.NewContextForRGBA(target), faces: faces}
}

// Render clears the canvas and draws every box that falls inside the
// viewport once shifted up by scroll. Boxes are anchored at their top-left.
func (r *Renderer) Render(dl layout.DisplayList, scroll float64) error {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	height := float64(r.context.Height())
	r.context.SetRGB(0, 0, 0)
	for _, box := range dl.Visible(scroll, height) {
		if err := r.drawWord(box, scroll); err != nil {
			return err
		}
	}
	r.drawScrollbar(dl, scroll)
	return nil
}

func (r *Renderer) drawWord(box layout.WordBox, scroll float64) error {
	face, err := r.faces.Face(box.Bold, box.Italic, box.FontSize)
	if err != nil {
		return fmt.Errorf("loading face for %q: %w", box.Text, err)
	}
	r.context.SetFontFace(face)
	ascent := float64(face.Metrics().Ascent) / 64
	r.context.DrawString(box.Text, box.X, box.Y-scroll+ascent)
	return nil
}

// drawScrollbar draws a thumb on the right edge when the document is taller
// than the canvas.
func (r *Renderer) drawScrollbar(dl layout.DisplayList, scroll float64) {
	const scrollbarWidth = 4.0
	width := float64(r.context.Width())
	height := float64(r.context.Height())
	docHeight := dl.Bottom() + layout.Margin
	if docHeight <= height {
		return
	}

	thumbHeight := height * height / docHeight
	thumbY := scroll / docHeight * height
	if thumbY+thumbHeight > height {
		thumbY = height - thumbHeight
	}
	r.context.SetRGB(0.78, 0.78, 0.78)
	r.context.DrawRectangle(width-scrollbarWidth, thumbY, scrollbarWidth, thumbHeight)
	r.context.Fill()
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
