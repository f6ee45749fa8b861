package imgsplit

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// Join places sections back onto a canvas of the manifest's source size.
// Rows not covered by any section stay fully transparent.
func Join(m *Manifest, sections []Section) (*image.NRGBA, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(sections) != len(m.Sections) {
		return nil, fmt.Errorf("%w: got %d sections, want %d", errSectionMismatch, len(sections), len(m.Sections))
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, m.SourceWidth, m.SourceHeight))
	for i, s := range sections {
		r := m.Sections[i].Region
		if s.Width != r.Width || s.Height != r.Height {
			return nil, fmt.Errorf("%w: section %d is %dx%d, want %dx%d",
				errSectionMismatch, r.Index, s.Width, s.Height, r.Width, r.Height)
		}
		if len(s.Pix) != s.Width*s.Height*bytesPerPixel {
			return nil, fmt.Errorf("%w: section %d has %d bytes, want %d",
				ErrInvalidPixelBuffer, r.Index, len(s.Pix), s.Width*s.Height*bytesPerPixel)
		}
		draw.Draw(canvas, r.Rect(), s.Image(), image.Point{}, draw.Src)
	}
	return canvas, nil
}

// JoinDir reads a manifest file and joins the section files next to it.
func JoinDir(manifestPath string) (*image.NRGBA, error) {
	f, err := os.Open(filepath.Clean(manifestPath))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadManifest(f)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(manifestPath)
	sections := make([]Section, 0, len(m.Sections))
	for _, ms := range m.Sections {
		src, _, err := DecodeFile(filepath.Join(dir, filepath.Base(ms.File)))
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", ms.Index, err)
		}
		sections = append(sections, Section{
			Index:  ms.Index,
			Region: ms.Region,
			Width:  src.Width,
			Height: src.Height,
			Pix:    src.Pix,
		})
	}
	return Join(m, sections)
}
