package selection

import "image"

// ShadowRects tiles screen minus sel with four rectangles that never
// overlap, so a translucent fill darkens every outside pixel exactly once:
//
//	left column      screen.Min        -> (sel.Min.X, sel.Max.Y)
//	top row          (sel.Min.X, top)  -> (right, sel.Min.Y)
//	bottom-left      (left, sel.Max.Y) -> (sel.Max.X, bottom)
//	bottom-right     (sel.Max.X, sel.Min.Y) -> screen.Max
//
// sel must be normalized. The pieces are only disjoint in this exact
// arrangement.
func ShadowRects(screen, sel image.Rectangle) [4]image.Rectangle {
	return [4]image.Rectangle{
		image.Rect(screen.Min.X, screen.Min.Y, sel.Min.X, sel.Max.Y),
		image.Rect(sel.Min.X, screen.Min.Y, screen.Max.X, sel.Min.Y),
		image.Rect(screen.Min.X, sel.Max.Y, sel.Max.X, screen.Max.Y),
		image.Rect(sel.Max.X, sel.Min.Y, screen.Max.X, screen.Max.Y),
	}
}
