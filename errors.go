package imgsplit

import "errors"

var (
	// ErrInvalidDimensions is returned when the image is too small for five non-empty sections.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidPixelBuffer is returned when a pixel buffer does not match its dimensions.
	ErrInvalidPixelBuffer = errors.New("invalid pixel buffer")
	// ErrUnsupportedFormat is returned for unrecognized or non-encodable formats.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrImageTooLarge is returned when DecodeOptions.MaxPixels is exceeded.
	ErrImageTooLarge = errors.New("image too large")
	// ErrSectionIndex is returned for section indexes outside 1..SectionCount.
	ErrSectionIndex = errors.New("section index out of range")
	// ErrNoImage is returned by Session when no image is loaded.
	ErrNoImage = errors.New("no image loaded")
	// ErrInvalidManifest is returned when a manifest fails validation.
	ErrInvalidManifest = errors.New("invalid manifest")
)
