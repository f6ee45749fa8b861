package imgsplit

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder.
	_ "image/jpeg" // Register JPEG decoder.
	_ "image/png"  // Register PNG decoder.
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // Register BMP decoder.
	_ "golang.org/x/image/tiff" // Register TIFF decoder.
	_ "golang.org/x/image/webp" // Register WebP decoder.
)

// Decode reads an encoded image and converts it to a SourceImage.
// The detected container format is returned along with the pixels.
func Decode(r io.Reader, opts ...func(o *DecodeOptions)) (*SourceImage, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, FormatUnknown, err
	}
	return DecodeBytes(data, opts...)
}

// DecodeBytes is Decode for an in-memory image.
func DecodeBytes(data []byte, opts ...func(o *DecodeOptions)) (*SourceImage, Format, error) {
	opt := DecodeOptions{}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	format := sniff(data)
	if format == FormatUnknown {
		return nil, FormatUnknown, ErrUnsupportedFormat
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("decode %s config: %w", format, err)
	}
	if opt.MaxPixels > 0 && cfg.Width*cfg.Height > opt.MaxPixels {
		return nil, format, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, opt.MaxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("decode %s: %w", format, err)
	}
	return SourceImageFromImage(img), format, nil
}

// DecodeFile reads and decodes the image at path.
func DecodeFile(path string, opts ...func(o *DecodeOptions)) (*SourceImage, Format, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, FormatUnknown, err
	}
	return DecodeBytes(data, opts...)
}
