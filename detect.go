package imgsplit

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

const sniffLen = 16

var (
	pngMagic    = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic   = []byte{0xFF, 0xD8, 0xFF}
	gif87Magic  = []byte("GIF87a")
	gif89Magic  = []byte("GIF89a")
	bmpMagic    = []byte("BM")
	tiffLEMagic = []byte("II*\x00")
	tiffBEMagic = []byte("MM\x00*")
	riffMagic   = []byte("RIFF")
	webpMagic   = []byte("WEBP")
)

// DetectFormat sniffs the container format from the first bytes of r.
// It reads at most 16 bytes and returns FormatUnknown for unrecognized data.
func DetectFormat(r io.Reader) (Format, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, err
	}
	return sniff(buf[:n]), nil
}

func sniff(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, pngMagic):
		return FormatPNG
	case bytes.HasPrefix(head, jpegMagic):
		return FormatJPEG
	case bytes.HasPrefix(head, gif87Magic), bytes.HasPrefix(head, gif89Magic):
		return FormatGIF
	case bytes.HasPrefix(head, tiffLEMagic), bytes.HasPrefix(head, tiffBEMagic):
		return FormatTIFF
	case len(head) >= 12 && bytes.HasPrefix(head, riffMagic) && bytes.Equal(head[8:12], webpMagic):
		return FormatWebP
	case len(head) >= 14 && bytes.HasPrefix(head, bmpMagic):
		return FormatBMP
	default:
		return FormatUnknown
	}
}

// ParseFormat maps a name or file extension (with or without a dot) to a Format.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG
	case "jpg", "jpeg":
		return FormatJPEG
	case "gif":
		return FormatGIF
	case "bmp":
		return FormatBMP
	case "tif", "tiff":
		return FormatTIFF
	case "webp":
		return FormatWebP
	default:
		return FormatUnknown
	}
}

// Extension returns the canonical file extension without a dot.
func (f Format) Extension() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpg"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	case FormatWebP:
		return "webp"
	default:
		return "bin"
	}
}

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatGIF:
		return "image/gif"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	case FormatWebP:
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// CanEncode reports whether sections can be written in this format.
func (f Format) CanEncode() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatBMP, FormatTIFF:
		return true
	default:
		return false
	}
}

func (f Format) String() string {
	if f == FormatUnknown {
		return "unknown"
	}
	return f.Extension()
}
