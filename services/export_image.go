package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// PreviewSelector is the element of the preview page captured in image exports.
const PreviewSelector = "#quote-preview-content"

// PreviewRenderer rasterizes the preview HTML into an image (PNG or JPEG bytes).
type PreviewRenderer interface {
	Capture(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer captures the preview with a headless Chrome via chromedp.
type ChromeRenderer struct {
	// ExecPath is the Chrome binary; empty lets chromedp look it up.
	ExecPath string
	// Scale is the device scale factor; 2 gives a sharp image.
	Scale   float64
	Timeout time.Duration
}

// DetectChromePath returns the first Chrome/Chromium binary found on the
// system, or "" when none is installed.
func DetectChromePath() string {
	candidates := []string{
		"google-chrome", "google-chrome-stable", "chromium", "chromium-browser",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, c := range candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p
		}
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Capture loads html into a blank page and screenshots PreviewSelector.
func (r ChromeRenderer) Capture(ctx context.Context, html string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	scale := r.Scale
	if scale <= 0 {
		scale = 2
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var shot []byte
	err := chromedp.Run(chromeCtx,
		chromedp.EmulateViewport(900, 1200, chromedp.EmulateScale(scale)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitVisible(PreviewSelector, chromedp.ByQuery),
		chromedp.Screenshot(PreviewSelector, &shot, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("capture preview: %w", err)
	}
	return shot, nil
}

// ImageOptions controls JPEG encoding of a captured preview.
type ImageOptions struct {
	Quality  int
	MaxWidth int // 0 keeps the captured width
}

// GenerateJPEG renders the preview html through renderer and re-encodes the
// capture as a JPEG flattened on a white background.
func GenerateJPEG(ctx context.Context, renderer PreviewRenderer, html string, opts ImageOptions) ([]byte, error) {
	raw, err := renderer.Capture(ctx, html)
	if err != nil {
		return nil, err
	}
	if mt := mimetype.Detect(raw); !mt.Is("image/png") && !mt.Is("image/jpeg") {
		return nil, fmt.Errorf("capture is %s, want an image", mt.String())
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	b := img.Bounds()
	flat := imaging.New(b.Dx(), b.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
