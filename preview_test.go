package imgsplit

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnail(t *testing.T) {
	sections, err := Partition(gradient(t, 400, 90))
	require.NoError(t, err)

	// Section 3 is 200x30.
	thumb := Thumbnail(sections[2], 100)
	assert.Equal(t, image.Rect(0, 0, 100, 15), thumb.Bounds())

	// Small sections are not upscaled.
	small, err := Partition(gradient(t, 10, 9))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 4), Thumbnail(small[0], 100).Bounds())
}

func TestContactSheet(t *testing.T) {
	sections, err := Partition(gradient(t, 100, 90))
	require.NoError(t, err)

	sheet, err := ContactSheet(sections, func(o *PreviewOptions) {
		o.ThumbSize = 40
		o.Padding = 4
		o.Background = color.NRGBA{A: 0xFF}
	})
	require.NoError(t, err)

	// Two columns, three rows.
	assert.Equal(t, 2*40+3*4, sheet.Bounds().Dx())
	assert.Equal(t, 3*40+4*4, sheet.Bounds().Dy())

	assert.Equal(t, color.NRGBA{A: 0xFF}, sheet.NRGBAAt(0, 0))

	// Section 1 (50x45) fits as 40x36, centered vertically in the first cell.
	assert.Equal(t, color.NRGBA{A: 0xFF}, sheet.NRGBAAt(4, 4))
	assert.NotEqual(t, color.NRGBA{A: 0xFF}, sheet.NRGBAAt(4+20, 4+2+18))
}

func TestContactSheetDefaults(t *testing.T) {
	sections, err := Partition(gradient(t, 20, 12))
	require.NoError(t, err)

	sheet, err := ContactSheet(sections)
	require.NoError(t, err)
	assert.Equal(t, 2*defaultThumbSize+3*defaultPadding, sheet.Bounds().Dx())
	assert.Equal(t, defaultBackground, sheet.NRGBAAt(0, 0))

	_, err = ContactSheet(nil)
	assert.Error(t, err)
}

func TestContactSheetClampsSizes(t *testing.T) {
	sections, err := Partition(gradient(t, 20, 12))
	require.NoError(t, err)

	sheet, err := ContactSheet(sections, func(o *PreviewOptions) {
		o.ThumbSize = ^uint(0)
		o.Padding = 1
	})
	require.NoError(t, err)
	assert.Equal(t, 2*maxThumbSize+3, sheet.Bounds().Dx())
	assert.Equal(t, 3*maxThumbSize+4, sheet.Bounds().Dy())
}
