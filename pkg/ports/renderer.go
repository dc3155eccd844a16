package ports

import (
	"image"
	"image/color"
)

// ScaleQuality selects the resampling filter used when fitting frames.
type ScaleQuality int

const (
	// ScaleSmooth uses a high quality filter (paused view, snapshots).
	ScaleSmooth ScaleQuality = iota
	// ScaleFast uses a cheap filter (during playback).
	ScaleFast
)

// ParseScaleQuality parses "smooth" or "fast". Unknown values fall back to smooth.
func ParseScaleQuality(s string) ScaleQuality {
	if s == "fast" {
		return ScaleFast
	}
	return ScaleSmooth
}

// Renderer abstracts image processing operations.
type Renderer interface {
	// Fit scales img to fit inside width x height preserving its aspect ratio.
	// The result is never larger than the box and never distorted.
	Fit(img image.Image, width, height int, quality ScaleQuality) image.Image

	// Overlay draws top over bottom inside a width x height panel, clipping
	// top at divider (0..1 of the fitted frame width) and drawing the divider handle.
	Overlay(top, bottom image.Image, width, height int, divider float64, quality ScaleQuality) image.Image

	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)
}

// Canvas provides drawing operations for compositing images.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawImageCentered draws an image centered inside the given box.
	DrawImageCentered(img image.Image, x, y, width, height int)

	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawText draws text at the specified position.
	DrawText(text string, x, y int, style TextStyle)

	// DrawLine draws a line between two points.
	DrawLine(x1, y1, x2, y2 int, c color.Color, width float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
