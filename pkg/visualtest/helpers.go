package visualtest

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"quill/pkg/resource"
)

// RenderHTML lays out and draws htmlContent onto a fresh width x height
// canvas at the given scroll offset.
func RenderHTML(htmlContent string, width, height int, scroll float64) (*image.RGBA, error) {
	target := image.NewRGBA(image.Rect(0, 0, width, height))
	renderer := resource.NewQuillRenderer(nil)
	if err := renderer.Render(htmlContent, target, scroll); err != nil {
		return nil, fmt.Errorf("render error: %w", err)
	}
	return target, nil
}

// RenderHTMLToFile renders HTML content to a PNG file
func RenderHTMLToFile(htmlContent string, outputPath string, width, height int) error {
	img, err := RenderHTML(htmlContent, width, height, 0)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := gg.SavePNG(outputPath, img); err != nil {
		return fmt.Errorf("save error: %w", err)
	}
	return nil
}

// RenderHTMLFile renders an HTML file to a PNG file
func RenderHTMLFile(htmlPath, outputPath string, width, height int) error {
	htmlContent, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}
	return RenderHTMLToFile(string(htmlContent), outputPath, width, height)
}

// Page is an HTML fixture paired with its reference render.
type Page struct {
	HTMLPath      string
	ReferencePath string
}

// Pages lists every *.html fixture in dir. References live next to them
// under reference/<name>.png.
func Pages(dir string) ([]Page, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	pages := make([]Page, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), ".html")
		pages = append(pages, Page{
			HTMLPath:      m,
			ReferencePath: filepath.Join(dir, "reference", name+".png"),
		})
	}
	return pages, nil
}

// UpdateReferenceImage regenerates a reference image. Use this only after an
// intentional rendering change.
func UpdateReferenceImage(htmlPath, referencePath string, width, height int) error {
	return RenderHTMLFile(htmlPath, referencePath, width, height)
}

// CheckReference renders htmlPath and compares it with referencePath.
func CheckReference(page Page, width, height int, opts CompareOptions) (*CompareResult, error) {
	htmlContent, err := os.ReadFile(page.HTMLPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML file: %w", err)
	}
	actual, err := RenderHTML(string(htmlContent), width, height, 0)
	if err != nil {
		return nil, err
	}
	expected, err := gg.LoadPNG(page.ReferencePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference image: %w", err)
	}
	return CompareImages(actual, expected, opts)
}
