package mocks

import (
	"image"
	"image/color"

	"github.com/user/vidcompare/pkg/ports"
)

// FitCall records one Renderer.Fit invocation.
type FitCall struct {
	Source  image.Rectangle
	Width   int
	Height  int
	Quality ports.ScaleQuality
}

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	FitFunc          func(img image.Image, width, height int, quality ports.ScaleQuality) image.Image
	OverlayFunc      func(top, bottom image.Image, width, height int, divider float64, quality ports.ScaleQuality) image.Image
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	FitCalls     []FitCall
	OverlayCalls []float64
}

func (m *Renderer) Fit(img image.Image, width, height int, quality ports.ScaleQuality) image.Image {
	m.FitCalls = append(m.FitCalls, FitCall{Source: img.Bounds(), Width: width, Height: height, Quality: quality})
	if m.FitFunc != nil {
		return m.FitFunc(img, width, height, quality)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) Overlay(top, bottom image.Image, width, height int, divider float64, quality ports.ScaleQuality) image.Image {
	m.OverlayCalls = append(m.OverlayCalls, divider)
	if m.OverlayFunc != nil {
		return m.OverlayFunc(top, bottom, width, height, divider, quality)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return &Canvas{width: width, height: height}
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	b := img.Bounds()
	return []byte{byte(format), byte(b.Dx()), byte(b.Dy())}, nil
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that records text draws.
type Canvas struct {
	width  int
	height int

	Texts []string
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {}

func (m *Canvas) DrawImageCentered(img image.Image, x, y, width, height int) {}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, text)
}

func (m *Canvas) DrawLine(x1, y1, x2, y2 int, c color.Color, width float64) {}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)
