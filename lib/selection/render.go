package selection

import (
	"fmt"
	"image"
	"image/color"
)

type Surface interface {
	Bounds() image.Rectangle
	DrawFrame(f *Frame)
	FillRect(r image.Rectangle, c color.Color)
	DrawPanel(p Panel)
}

// Panel is the magnifier box that follows the cursor.
type Panel struct {
	// Origin is the top-left corner of the box on the surface.
	Origin image.Point
	Sample *image.NRGBA
	Zoom   int

	Pointer image.Point
	Color   color.NRGBA
	InFrame bool
}

func (p Panel) CoordsLabel() string {
	return fmt.Sprintf("%v, %v", p.Pointer.X, p.Pointer.Y)
}

func (p Panel) ColorLabel() string {
	return fmt.Sprintf("%v, %v, %v, %v", p.Color.R, p.Color.G, p.Color.B, p.Color.A)
}

// Render draws the frame, the shadow around the selection, and the
// magnifier panel, in that order.
func (c *Controller) Render(s Surface) {
	s.DrawFrame(c.frame)

	if sel, ok := c.Selection(); ok {
		screen := s.Bounds()
		sel = image.Rectangle{
			Min: clampPoint(sel.Min, screen),
			Max: clampPoint(sel.Max, screen),
		}
		for _, r := range ShadowRects(screen, sel) {
			if !r.Empty() {
				s.FillRect(r, c.opts.ShadowColor)
			}
		}
	}

	s.DrawPanel(c.Panel())
}

// Panel describes the magnifier for the current pointer position.
func (c *Controller) Panel() Panel {
	zoom := c.opts.MagnifierZoom
	size := c.opts.MagnifierSize.Div(zoom)
	if size.X < 1 {
		size.X = 1
	}
	if size.Y < 1 {
		size.Y = 1
	}
	px, ok := c.frame.PixelAt(c.pointer)
	return Panel{
		Origin:  c.pointer.Add(c.opts.PanelOffset),
		Sample:  Sample(c.frame, c.pointer, size.X, size.Y),
		Zoom:    zoom,
		Pointer: c.pointer,
		Color:   px,
		InFrame: ok,
	}
}

func clampPoint(p image.Point, r image.Rectangle) image.Point {
	if p.X < r.Min.X {
		p.X = r.Min.X
	} else if p.X > r.Max.X {
		p.X = r.Max.X
	}
	if p.Y < r.Min.Y {
		p.Y = r.Min.Y
	} else if p.Y > r.Max.Y {
		p.Y = r.Max.Y
	}
	return p
}
