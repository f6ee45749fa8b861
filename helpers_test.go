package imgsplit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// gradient builds an opaque source where every pixel encodes its own coordinates.
func gradient(t testing.TB, w, h int) *SourceImage {
	t.Helper()

	pix := make([]byte, w*h*bytesPerPixel)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * bytesPerPixel
			pix[i] = byte(x)
			pix[i+1] = byte(y)
			pix[i+2] = byte(x*7 + y*13)
			pix[i+3] = 0xFF
		}
	}
	src, err := NewSourceImage(w, h, pix)
	require.NoError(t, err)
	return src
}

func pixelAt(pix []byte, stride, x, y int) [4]byte {
	i := y*stride + x*bytesPerPixel
	return [4]byte{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}
