package imgsplit

import (
	"fmt"
	"image"
	"io"
	"sync"
)

// Session holds the currently selected image and its sections.
// It is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	source   *SourceImage
	format   Format
	sections []Section

	decode DecodeOptions
}

// NewSession creates an empty session.
func NewSession(opts ...func(o *DecodeOptions)) *Session {
	s := &Session{}
	for _, applyOpt := range opts {
		applyOpt(&s.decode)
	}
	return s
}

// Load decodes an image and replaces the session state with it and its sections.
// On error the previous state is kept.
func (s *Session) Load(r io.Reader) error {
	src, format, err := Decode(r, func(o *DecodeOptions) { *o = s.decode })
	if err != nil {
		return err
	}
	return s.set(src, format)
}

// LoadImage replaces the session state with an already decoded image.
func (s *Session) LoadImage(img image.Image) error {
	return s.set(SourceImageFromImage(img), FormatUnknown)
}

func (s *Session) set(src *SourceImage, format Format) error {
	sections, err := Partition(src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.source = src
	s.format = format
	s.sections = sections
	return nil
}

// Clear drops the loaded image and its sections.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.source = nil
	s.format = FormatUnknown
	s.sections = nil
}

// Source returns the loaded image and its detected format, nil if empty.
func (s *Session) Source() (*SourceImage, Format) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.source, s.format
}

// Sections returns copies of the sections of the loaded image in index order.
func (s *Session) Sections() []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Section, len(s.sections))
	for i, sec := range s.sections {
		out[i] = sec.clone()
	}
	return out
}

// Section returns the section with the 1-based index.
func (s *Session) Section(index int) (Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.source == nil {
		return Section{}, ErrNoImage
	}
	if index < 1 || index > len(s.sections) {
		return Section{}, fmt.Errorf("%w: %d", ErrSectionIndex, index)
	}
	return s.sections[index-1].clone(), nil
}

// Download encodes the section with the 1-based index to w and returns its file name.
func (s *Session) Download(w io.Writer, index int, opts EncodeOptions) (string, error) {
	sec, err := s.Section(index)
	if err != nil {
		return "", err
	}
	opts = opts.withDefaults()
	if err := EncodeSection(w, sec, opts); err != nil {
		return "", err
	}
	return sec.Filename(opts.Format), nil
}
