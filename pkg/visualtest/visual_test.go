package visualtest

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCompareImages_Identical(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{255, 0, 0, 255})
	result, err := CompareImages(img, img, DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected images to match")
	}
	if result.DifferentPixels != 0 {
		t.Errorf("expected 0 different pixels, got %d", result.DifferentPixels)
	}
}

func TestCompareImages_Different(t *testing.T) {
	opts := DefaultOptions()
	opts.DiffImagePath = filepath.Join(t.TempDir(), "diff.png")

	red := solidImage(10, 10, color.RGBA{255, 0, 0, 255})
	blue := solidImage(10, 10, color.RGBA{0, 0, 255, 255})
	result, err := CompareImages(red, blue, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match {
		t.Errorf("expected images to not match")
	}
	if result.DifferentPixels != 100 {
		t.Errorf("expected 100 different pixels, got %d", result.DifferentPixels)
	}
	if result.MaxDifference != 255 {
		t.Errorf("expected max difference 255, got %d", result.MaxDifference)
	}
	if _, err := os.Stat(opts.DiffImagePath); os.IsNotExist(err) {
		t.Errorf("diff image was not created")
	}
}

func TestCompareImages_WithTolerance(t *testing.T) {
	img1 := solidImage(10, 10, color.RGBA{100, 100, 100, 255})
	img2 := solidImage(10, 10, color.RGBA{102, 102, 102, 255})

	opts := DefaultOptions()
	opts.Tolerance = 2
	result, err := CompareImages(img1, img2, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected images to match with tolerance=2")
	}

	opts.Tolerance = 0
	result, err = CompareImages(img1, img2, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match {
		t.Errorf("expected images to not match with tolerance=0")
	}
}

func TestCompareImages_MaxDifferentPercent(t *testing.T) {
	img1 := solidImage(10, 10, color.White)
	img2 := solidImage(10, 10, color.White)
	img2.Set(0, 0, color.Black)

	opts := DefaultOptions()
	result, _ := CompareImages(img1, img2, opts)
	if result.Match {
		t.Errorf("expected a single differing pixel to fail by default")
	}
	opts.MaxDifferentPercent = 1
	result, _ = CompareImages(img1, img2, opts)
	if !result.Match {
		t.Errorf("expected 1%% different pixels to pass with MaxDifferentPercent=1")
	}
}

func TestCompareImages_DifferentDimensions(t *testing.T) {
	result, err := CompareImages(image.NewRGBA(image.Rect(0, 0, 10, 10)), image.NewRGBA(image.Rect(0, 0, 20, 20)), DefaultOptions())
	if err == nil {
		t.Errorf("expected error for different dimensions")
	}
	if result != nil && result.Match {
		t.Errorf("expected images with different dimensions to not match")
	}
}

const samplePage = "<p>The <b>quick</b> brown fox <i>jumps</i> over the lazy dog.</p>" +
	"<p>Pack my box with five dozen liquor jugs.</p>"

func TestRenderHTML_Deterministic(t *testing.T) {
	first, err := RenderHTML(samplePage, 320, 200, 0)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	second, err := RenderHTML(samplePage, 320, 200, 0)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	opts := DefaultOptions()
	opts.Tolerance = 0
	result, err := CompareImages(first, second, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected identical renders, %d pixels differ", result.DifferentPixels)
	}
}

func TestRenderHTML_DrawsText(t *testing.T) {
	blank := solidImage(320, 200, color.White)
	img, err := RenderHTML(samplePage, 320, 200, 0)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	result, _ := CompareImages(img, blank, DefaultOptions())
	if result.Match {
		t.Errorf("expected text to be drawn on the canvas")
	}
}

func TestRenderHTML_ScrollShiftsContent(t *testing.T) {
	top, err := RenderHTML(samplePage, 320, 200, 0)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	scrolled, err := RenderHTML(samplePage, 320, 200, 100)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	result, _ := CompareImages(top, scrolled, DefaultOptions())
	if result.Match {
		t.Errorf("expected scrolling to change the render")
	}
}

func TestRenderHTMLFile(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "page.html")
	if err := os.WriteFile(htmlPath, []byte(samplePage), 0644); err != nil {
		t.Fatalf("failed to write html: %v", err)
	}
	outPath := filepath.Join(dir, "out", "page.png")
	if err := RenderHTMLFile(htmlPath, outPath, 320, 200); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	expected, err := RenderHTML(samplePage, 320, 200, 0)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	expectedPath := filepath.Join(dir, "expected.png")
	if err := gg.SavePNG(expectedPath, expected); err != nil {
		t.Fatalf("failed to save expected image: %v", err)
	}
	result, err := CompareFiles(outPath, expectedPath, DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected file render to match in-memory render, %d pixels differ", result.DifferentPixels)
	}
}

// darkPixelsIn counts pixels darker than mid-gray inside r.
func darkPixelsIn(img *image.RGBA, r image.Rectangle) int {
	var n int
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c := color.GrayModel.Convert(img.At(x, y)).(color.Gray); c.Y < 128 {
				n++
			}
		}
	}
	return n
}

// TestReferenceImages compares every fixture with its committed reference.
// A fixture without a reference gets one written on the first run, and
// UPDATE_REFS=1 rewrites them all.
func TestReferenceImages(t *testing.T) {
	const width, height = 800, 600
	pages, err := Pages("testdata")
	if err != nil {
		t.Fatalf("listing fixtures: %v", err)
	}
	if len(pages) == 0 {
		t.Fatal("no fixtures found in testdata")
	}
	update := os.Getenv("UPDATE_REFS") != ""
	for _, page := range pages {
		t.Run(filepath.Base(page.HTMLPath), func(t *testing.T) {
			source, err := os.ReadFile(page.HTMLPath)
			if err != nil {
				t.Fatalf("reading fixture: %v", err)
			}
			img, err := RenderHTML(string(source), width, height, 0)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if darkPixelsIn(img, img.Bounds()) == 0 {
				t.Errorf("fixture rendered no text")
			}
			for name, r := range map[string]image.Rectangle{
				"left margin":  image.Rect(0, 0, 10, height),
				"right margin": image.Rect(width-5, 0, width, height),
				"top margin":   image.Rect(0, 0, width, 10),
			} {
				if n := darkPixelsIn(img, r); n > 0 {
					t.Errorf("%d dark pixels in the %s", n, name)
				}
			}

			_, statErr := os.Stat(page.ReferencePath)
			if update || os.IsNotExist(statErr) {
				if err := UpdateReferenceImage(page.HTMLPath, page.ReferencePath, width, height); err != nil {
					t.Fatalf("writing reference: %v", err)
				}
				t.Logf("wrote reference %s", page.ReferencePath)
				return
			}
			result, err := CheckReference(page, width, height, DefaultOptions())
			if err != nil {
				t.Fatalf("comparison failed: %v", err)
			}
			if !result.Match {
				t.Errorf("%d of %d pixels differ from %s", result.DifferentPixels, result.TotalPixels, page.ReferencePath)
			}
		})
	}
}

func TestPages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.html", "b.html", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	pages, err := Pages(dir)
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if want := filepath.Join(dir, "reference", "a.png"); pages[0].ReferencePath != want {
		t.Errorf("expected reference %s, got %s", want, pages[0].ReferencePath)
	}
}
