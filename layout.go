package imgsplit

import "fmt"

// Layout computes the five section regions for an image of w x h pixels.
//
// The left column is split into two halves of floor(h/2) rows, the right column into
// three strips of floor(h/3) rows. Rows left over by floor division are not covered.
func Layout(w, h int) ([]Region, error) {
	if w < minWidth || h < minHeight {
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrInvalidDimensions, w, h, minWidth, minHeight)
	}

	leftWidth := w / 2
	rightWidth := w - leftWidth
	leftHeight := h / 2
	rightHeight := h / 3

	return []Region{
		{Index: 1, X: 0, Y: 0, Width: leftWidth, Height: leftHeight},
		{Index: 2, X: 0, Y: leftHeight, Width: leftWidth, Height: leftHeight},
		{Index: 3, X: leftWidth, Y: 0, Width: rightWidth, Height: rightHeight},
		{Index: 4, X: leftWidth, Y: rightHeight, Width: rightWidth, Height: rightHeight},
		{Index: 5, X: leftWidth, Y: 2 * rightHeight, Width: rightWidth, Height: rightHeight},
	}, nil
}
