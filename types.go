package imgsplit

import (
	"fmt"
	"image"
	"image/color"
)

// Format identifies a raster container format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatTIFF
	FormatWebP
)

// SourceImage stores a decoded image in non-premultiplied RGBA, 4 bytes per pixel, row-major.
// It must not be modified after it is handed to Partition.
type SourceImage struct {
	Width  int
	Height int
	Pix    []byte // len = Width * Height * 4
}

// Region is a rectangle of the source image assigned to a section.
type Region struct {
	Index  int `json:"index"` // 1-based
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Section is an independent copy of one region of a SourceImage.
type Section struct {
	Index  int // 1-based
	Region Region
	Width  int
	Height int
	Pix    []byte // same encoding as SourceImage.Pix
}

// EncodeOptions controls section encoding.
type EncodeOptions struct {
	Format      Format
	Quality     int // JPEG quality (1-100), 0 means default
	Compression int // PNG compression: 0 default, 1 none, 2 speed, 3 best
}

// DecodeOptions controls image intake.
type DecodeOptions struct {
	MaxPixels int // reject images with more pixels, 0 disables the check
}

// PreviewOptions controls contact sheet rendering.
type PreviewOptions struct {
	ThumbSize  uint // maximum thumbnail side
	Padding    int
	Background color.Color // nil means light gray
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func (r Region) String() string {
	return fmt.Sprintf("section %d (%d,%d %dx%d)", r.Index, r.X, r.Y, r.Width, r.Height)
}
