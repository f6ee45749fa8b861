package imgsplit

import (
	"errors"
	"image"
	"image/color"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

const previewColumns = 2

var defaultBackground = color.NRGBA{R: 0xF3, G: 0xF4, B: 0xF6, A: 0xFF}

// Thumbnail downscales the section to fit in maxSide x maxSide, preserving aspect ratio.
// Sections that already fit are returned unscaled.
func Thumbnail(s Section, maxSide uint) image.Image {
	if maxSide == 0 {
		maxSide = defaultThumbSize
	}
	return resize.Thumbnail(maxSide, maxSide, s.Image(), resize.Lanczos3)
}

// ContactSheet renders section thumbnails in a two-column grid, in index order.
func ContactSheet(sections []Section, opts ...func(o *PreviewOptions)) (*image.NRGBA, error) {
	if len(sections) == 0 {
		return nil, errors.New("no sections to preview")
	}

	opt := PreviewOptions{
		ThumbSize:  defaultThumbSize,
		Padding:    defaultPadding,
		Background: defaultBackground,
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.ThumbSize == 0 {
		opt.ThumbSize = defaultThumbSize
	}
	if opt.ThumbSize > maxThumbSize {
		opt.ThumbSize = maxThumbSize
	}
	if opt.Padding < 0 {
		opt.Padding = 0
	}
	if opt.Padding > maxThumbSize {
		opt.Padding = maxThumbSize
	}
	if opt.Background == nil {
		opt.Background = defaultBackground
	}

	cell := int(opt.ThumbSize)
	rows := (len(sections) + previewColumns - 1) / previewColumns
	w := previewColumns*cell + (previewColumns+1)*opt.Padding
	h := rows*cell + (rows+1)*opt.Padding

	sheet := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(opt.Background), image.Point{}, draw.Src)

	for i, s := range sections {
		thumb := Thumbnail(s, opt.ThumbSize)
		tb := thumb.Bounds()

		col, row := i%previewColumns, i/previewColumns
		x := opt.Padding + col*(cell+opt.Padding) + (cell-tb.Dx())/2
		y := opt.Padding + row*(cell+opt.Padding) + (cell-tb.Dy())/2

		draw.Draw(sheet, image.Rect(x, y, x+tb.Dx(), y+tb.Dy()), thumb, tb.Min, draw.Over)
	}
	return sheet, nil
}
