package imgsplit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Manifest describes a split: source size and where every section file belongs.
type Manifest struct {
	Format       string            `json:"format"`
	SourceWidth  int               `json:"source_width"`
	SourceHeight int               `json:"source_height"`
	ImageFormat  string            `json:"image_format"`
	Sections     []ManifestSection `json:"sections"`
}

// ManifestSection is one entry of Manifest.Sections.
type ManifestSection struct {
	Region
	File string `json:"file"`
}

// BuildManifest builds a manifest for sections of a w x h source encoded as f.
func BuildManifest(w, h int, sections []Section, f Format) *Manifest {
	m := &Manifest{
		Format:       manifestFormat,
		SourceWidth:  w,
		SourceHeight: h,
		ImageFormat:  f.Extension(),
		Sections:     make([]ManifestSection, 0, len(sections)),
	}
	for _, s := range sections {
		m.Sections = append(m.Sections, ManifestSection{Region: s.Region, File: s.Filename(f)})
	}
	return m
}

// ReadManifest decodes and validates a JSON manifest.
func ReadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest against the fixed layout of its source size.
func (m *Manifest) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: manifest is nil", ErrInvalidManifest)
	}
	if m.Format != manifestFormat {
		return fmt.Errorf("%w: unsupported format %q", ErrInvalidManifest, m.Format)
	}
	regions, err := Layout(m.SourceWidth, m.SourceHeight)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if len(m.Sections) != len(regions) {
		return fmt.Errorf("%w: got %d sections, want %d", ErrInvalidManifest, len(m.Sections), len(regions))
	}
	for i, s := range m.Sections {
		if s.Region != regions[i] {
			return fmt.Errorf("%w: %s does not match layout %s", ErrInvalidManifest, s.Region, regions[i])
		}
		if s.File == "" {
			return fmt.Errorf("%w: section %d has no file", ErrInvalidManifest, s.Index)
		}
	}
	return nil
}

// WriteTo writes the manifest as indented JSON.
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return 0, err
	}
	payload = append(payload, '\n')
	n, err := w.Write(payload)
	return int64(n), err
}

var errSectionMismatch = errors.New("section does not match manifest")
