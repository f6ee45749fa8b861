package imgsplit

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// NewSourceImage wraps an RGBA pixel buffer after checking its length.
func NewSourceImage(w, h int, pix []byte) (*SourceImage, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	if len(pix) != w*h*bytesPerPixel {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPixelBuffer, len(pix), w*h*bytesPerPixel)
	}
	return &SourceImage{Width: w, Height: h, Pix: pix}, nil
}

// SourceImageFromImage converts any image to a SourceImage with origin at (0, 0).
func SourceImageFromImage(img image.Image) *SourceImage {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	src := &SourceImage{Width: w, Height: h, Pix: make([]byte, w*h*bytesPerPixel)}

	if n, ok := img.(*image.NRGBA); ok {
		rowLen := w * bytesPerPixel
		for y := 0; y < h; y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(src.Pix[y*rowLen:(y+1)*rowLen], n.Pix[off:off+rowLen])
		}
		return src
	}

	dst := &image.NRGBA{Pix: src.Pix, Stride: w * bytesPerPixel, Rect: image.Rect(0, 0, w, h)}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return src
}

// Image returns the source as an *image.NRGBA sharing its pixel buffer.
func (s *SourceImage) Image() *image.NRGBA {
	return &image.NRGBA{Pix: s.Pix, Stride: s.Width * bytesPerPixel, Rect: image.Rect(0, 0, s.Width, s.Height)}
}

// Partition copies the five layout regions out of src.
func Partition(src *SourceImage) ([]Section, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidDimensions)
	}
	if len(src.Pix) != src.Width*src.Height*bytesPerPixel {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d", ErrInvalidPixelBuffer, len(src.Pix), src.Width, src.Height)
	}
	regions, err := Layout(src.Width, src.Height)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(regions))
	for _, r := range regions {
		sections = append(sections, cropSection(src, r))
	}
	return sections, nil
}

// PartitionImage converts img and partitions it.
func PartitionImage(img image.Image) ([]Section, error) {
	return Partition(SourceImageFromImage(img))
}

func cropSection(src *SourceImage, r Region) Section {
	rowLen := r.Width * bytesPerPixel
	pix := make([]byte, rowLen*r.Height)
	for y := 0; y < r.Height; y++ {
		off := ((r.Y+y)*src.Width + r.X) * bytesPerPixel
		copy(pix[y*rowLen:(y+1)*rowLen], src.Pix[off:off+rowLen])
	}
	return Section{
		Index:  r.Index,
		Region: r,
		Width:  r.Width,
		Height: r.Height,
		Pix:    pix,
	}
}

// Image returns the section as an *image.NRGBA backed by a fresh copy of its pixels.
func (s Section) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    append([]byte(nil), s.Pix...),
		Stride: s.Width * bytesPerPixel,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}

func (s Section) clone() Section {
	s.Pix = append([]byte(nil), s.Pix...)
	return s
}

// Filename returns the download name of the section, e.g. section_1.png.
func (s Section) Filename(f Format) string {
	return SectionFilename(s.Index, f)
}

// SectionFilename returns section_<index>.<ext> for a 1-based index.
func SectionFilename(index int, f Format) string {
	return fmt.Sprintf(sectionFilePattern, index, f.Extension())
}
