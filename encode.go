package imgsplit

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func (o EncodeOptions) withDefaults() EncodeOptions {
	if o.Format == FormatUnknown {
		o.Format = FormatPNG
	}
	if o.Quality <= 0 {
		o.Quality = defaultJPEGQuality
	}
	if o.Quality > 100 {
		o.Quality = 100
	}
	return o
}

func (o EncodeOptions) pngLevel() png.CompressionLevel {
	switch o.Compression {
	case 1:
		return png.NoCompression
	case 2:
		return png.BestSpeed
	case 3:
		return png.BestCompression
	default:
		return png.DefaultCompression
	}
}

// EncodeSection writes the section to w in the requested format (PNG when unset).
func EncodeSection(w io.Writer, s Section, opts EncodeOptions) error {
	opts = opts.withDefaults()
	if len(s.Pix) != s.Width*s.Height*bytesPerPixel || s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: section %d", ErrInvalidPixelBuffer, s.Index)
	}
	img := s.Image()

	switch opts.Format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: opts.pngLevel()}
		return enc.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: opts.Quality})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, opts.Format)
	}
}

// EncodeSectionBytes encodes the section into memory.
func EncodeSectionBytes(s Section, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeSection(&buf, s, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
