package resource

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"quill/pkg/html"
	"quill/pkg/layout"
	"quill/pkg/render"
	"quill/pkg/text"
)

// Renderer renders a document onto an image.
type Renderer interface {
	Render(htmlContent string, target *image.RGBA, scroll float64) error
}

// Document is a fetched and tokenized page, ready to be laid out at any width.
type Document struct {
	URI    string
	Source string
	Tokens []html.Token
}

// QuillRenderer runs the whole pipeline: fetch, lex, layout, draw.
type QuillRenderer struct {
	fetcher  Fetcher
	measurer *text.Measurer
	logger   *zap.Logger
}

// NewQuillRenderer creates a QuillRenderer with the given fetcher and font paths.
// If fonts is omitted the bundled Go fonts are used.
func NewQuillRenderer(fetcher Fetcher, fonts ...text.FontConfig) *QuillRenderer {
	fc := text.DefaultFontConfig()
	if len(fonts) > 0 {
		fc = fonts[0]
	}
	return &QuillRenderer{
		fetcher:  fetcher,
		measurer: text.NewMeasurer(fc),
		logger:   zap.NewNop(),
	}
}

func (r *QuillRenderer) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.logger = logger
	r.measurer.SetLogger(logger)
}

// Measurer returns the measurer used for layout and drawing.
func (r *QuillRenderer) Measurer() *text.Measurer {
	return r.measurer
}

// Load fetches uri and tokenizes its body.
func (r *QuillRenderer) Load(ctx context.Context, uri string) (*Document, error) {
	if r.fetcher == nil {
		return nil, fmt.Errorf("no fetcher configured for %s", uri)
	}
	source, err := r.fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", uri, err)
	}
	doc := Parse(source)
	doc.URI = uri
	r.logger.Debug("document loaded",
		zap.String("uri", uri),
		zap.Int("bytes", len(source)),
		zap.Int("tokens", len(doc.Tokens)))
	return doc, nil
}

// Parse tokenizes markup that is already in memory.
func Parse(source string) *Document {
	return &Document{Source: source, Tokens: html.Lex(source)}
}

// Layout lays the document out for the given viewport width.
func (r *QuillRenderer) Layout(doc *Document, viewportWidth float64) layout.DisplayList {
	engine := layout.NewLayoutEngine(viewportWidth, r.measurer)
	engine.SetLogger(r.logger)
	return engine.Layout(doc.Tokens)
}

// Render lays out htmlContent for the target's width and draws the part
// visible at the given scroll offset.
func (r *QuillRenderer) Render(htmlContent string, target *image.RGBA, scroll float64) error {
	doc := Parse(htmlContent)
	dl := r.Layout(doc, float64(target.Bounds().Dx()))
	return r.Draw(dl, target, scroll)
}

// Draw paints an existing display list onto target.
func (r *QuillRenderer) Draw(dl layout.DisplayList, target *image.RGBA, scroll float64) error {
	renderer := render.NewRendererForImage(target, r.measurer)
	if err := renderer.Render(dl, scroll); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}
