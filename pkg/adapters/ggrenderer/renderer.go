// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/vidcompare/pkg/ports"
)

// Overlay divider handle dimensions in pixels.
const (
	handleWidth  = 10
	handleHeight = 40
)

// Renderer implements ports.Renderer. It holds no state between calls.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// FitSize returns the largest size with the source aspect ratio that fits
// inside the box. Both results are at least 1 when the inputs are positive.
func FitSize(srcW, srcH, boxW, boxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0
	}
	// compare boxW/srcW with boxH/srcH without floating point
	var w, h int
	if int64(boxW)*int64(srcH) <= int64(boxH)*int64(srcW) {
		w = boxW
		h = int(int64(srcH) * int64(boxW) / int64(srcW))
	} else {
		h = boxH
		w = int(int64(srcW) * int64(boxH) / int64(srcH))
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Fit scales img to fit inside width x height preserving its aspect ratio.
func (r *Renderer) Fit(img image.Image, width, height int, quality ports.ScaleQuality) image.Image {
	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), width, height)
	if w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	if w == b.Dx() && h == b.Dy() {
		return img
	}

	if quality == ports.ScaleFast {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		return dst
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// Overlay draws top over bottom inside a width x height panel. Both frames
// are fitted and centered; top is clipped at divider (fraction of its fitted
// width) and a divider line with a handle is drawn at the split.
func (r *Renderer) Overlay(top, bottom image.Image, width, height int, divider float64, quality ports.ScaleQuality) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.Black)
	dc.Clear()

	fb := r.Fit(bottom, width, height, quality)
	bb := fb.Bounds()
	dc.DrawImage(fb, (width-bb.Dx())/2, (height-bb.Dy())/2)

	ft := r.Fit(top, width, height, quality)
	tb := ft.Bounds()
	x1 := (width - tb.Dx()) / 2
	y1 := (height - tb.Dy()) / 2

	clip := int(float64(tb.Dx()) * divider)
	if clip > 0 {
		dc.DrawImage(imaging.Crop(ft, image.Rect(tb.Min.X, tb.Min.Y, tb.Min.X+clip, tb.Max.Y)), x1, y1)
	}

	dividerX := float64(x1 + clip)
	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	dc.DrawLine(dividerX, 0, dividerX, float64(height))
	dc.Stroke()

	hx := dividerX - handleWidth/2
	hy := float64(height-handleHeight) / 2
	dc.DrawRectangle(hx, hy, handleWidth, handleHeight)
	dc.SetColor(color.White)
	dc.FillPreserve()
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.Stroke()

	return dc.Image()
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawImageCentered draws an image centered inside the given box.
func (c *Canvas) DrawImageCentered(img image.Image, x, y, width, height int) {
	b := img.Bounds()
	c.dc.DrawImage(img, x+(width-b.Dx())/2, y+(height-b.Dy())/2)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawText draws text anchored vertically at y.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.dc.SetColor(style.Color)

	if style.FontPath != "" {
		// keep gg's built-in face when the font cannot be loaded
		_ = c.dc.LoadFontFace(style.FontPath, style.FontSize)
	}

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	// multi-line labels are drawn line by line
	lines := c.dc.WordWrap(text, float64(c.dc.Width()))
	lineHeight := c.dc.FontHeight() * 1.4
	for i, line := range lines {
		c.dc.DrawStringAnchored(line, float64(x), float64(y)+float64(i)*lineHeight, ax, 0.5)
	}
}

// DrawLine draws a line between two points.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, col color.Color, width float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
	c.dc.Stroke()
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
