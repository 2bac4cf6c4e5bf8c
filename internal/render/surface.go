// Package render draws a game frame onto a 2D raster surface.
package render

import "github.com/tomz197/absorb/internal/draw"

// Surface is a 2D raster with its origin at the top-left corner. Coordinates
// are logical canvas units. Drawing attributes (fill, stroke, shadow, text
// alignment) persist until changed and are saved/restored as a stack.
type Surface interface {
	Size() (width, height float64)

	Save()
	Restore()

	SetFill(c draw.Color)
	SetStroke(c draw.Color, width float64)
	SetShadow(dx, dy, blur float64, c draw.Color)
	SetTextAlign(a draw.Align)

	FillRect(x, y, w, h float64)
	FillCircle(cx, cy, r float64)
	StrokeCircle(cx, cy, r float64)
	FillText(x, y float64, text string)
}

// Compile-time check that the terminal canvas is a Surface.
var _ Surface = (*draw.Canvas)(nil)
