package main

import (
	"context"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quill/pkg/layout"
	"quill/pkg/render"
	"quill/pkg/resource"
)

// browser holds the state behind the window. All methods run on the UI goroutine.
type browser struct {
	renderer *resource.QuillRenderer
	viewport *render.Viewport
	doc      *resource.Document
	dl       layout.DisplayList
	logger   *zap.Logger
}

func newBrowser(r *resource.QuillRenderer, vp *render.Viewport, logger *zap.Logger) *browser {
	return &browser{renderer: r, viewport: vp, logger: logger}
}

func (b *browser) setDocument(doc *resource.Document) {
	b.doc = doc
	b.viewport.Scroll = 0
	b.relayout()
}

func (b *browser) relayout() {
	if b.doc == nil {
		b.dl = nil
		return
	}
	b.dl = b.renderer.Layout(b.doc, b.viewport.Width)
}

// handleKey reports whether the key changed the scroll position.
func (b *browser) handleKey(key fyne.KeyName) bool {
	before := b.viewport.Scroll
	switch key {
	case fyne.KeyDown, fyne.KeyPageDown:
		b.viewport.ScrollDown()
	case fyne.KeyUp, fyne.KeyPageUp:
		b.viewport.ScrollUp()
	default:
		return false
	}
	return b.viewport.Scroll != before
}

func (b *browser) resize(width, height float64) {
	if b.viewport.Resize(width, height) {
		b.relayout()
	}
}

func (b *browser) frame() (*image.RGBA, error) {
	w, h := max(int(b.viewport.Width), 1), max(int(b.viewport.Height), 1)
	target := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := b.renderer.Draw(b.dl, target, b.viewport.Scroll); err != nil {
		return nil, err
	}
	return target, nil
}

// viewportLayout stretches its single child and reports size changes.
type viewportLayout struct {
	last     fyne.Size
	onResize func(fyne.Size)
}

func (l *viewportLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	if size != l.last {
		l.last = size
		l.onResize(size)
	}
}

func (l *viewportLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(100, 100)
}

func (c *cli) newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view URL|FILE",
		Short: "Open a page in a window; arrow keys scroll, F5 reloads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.runWindow(cmd.Context(), args[0])
			return nil
		},
	}
}

func (c *cli) runWindow(ctx context.Context, uri string) {
	vc := c.cfg.Viewport
	fetcher := c.fetcher()
	b := newBrowser(c.renderer(fetcher), render.NewViewport(vc.Width, vc.Height, vc.ScrollStep), c.logger.Named("view"))

	a := app.New()
	w := a.NewWindow("quill")
	w.Resize(fyne.NewSize(float32(vc.Width), float32(vc.Height)))

	page := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, int(vc.Width), int(vc.Height))))
	page.FillMode = canvas.ImageFillStretch
	status := widget.NewLabel("")

	redraw := func() {
		img, err := b.frame()
		if err != nil {
			status.SetText("Render error: " + err.Error())
			return
		}
		page.Image = img
		page.Refresh()
	}

	surface := container.New(&viewportLayout{onResize: func(size fyne.Size) {
		b.resize(float64(size.Width), float64(size.Height))
		redraw()
	}}, page)
	w.SetContent(container.NewBorder(nil, status, nil, nil, surface))

	load := func() {
		status.SetText("Loading " + uri + "...")
		go func() {
			doc, err := b.renderer.Load(ctx, uri)
			fyne.Do(func() {
				if err != nil {
					b.logger.Error("load failed", zap.String("uri", uri), zap.Error(err))
					status.SetText("Error: " + err.Error())
					return
				}
				b.setDocument(doc)
				redraw()
				status.SetText(uri)
				w.SetTitle("quill: " + uri)
			})
		}()
	}

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyF5 {
			if cf, ok := fetcher.(*resource.CachingFetcher); ok {
				cf.Forget(uri)
			}
			load()
			return
		}
		if b.handleKey(ev.Name) {
			redraw()
		}
	})

	load()
	w.ShowAndRun()
}
