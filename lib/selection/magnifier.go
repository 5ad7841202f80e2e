package selection

import "image"

// Sample copies a w×h window of the frame centered on center. Texel (x, y)
// comes from source pixel (center.X - w/2 + x, center.Y - h/2 + y); source
// pixels outside the frame come out as transparent white.
func Sample(f *Frame, center image.Point, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	ox, oy := center.X-w/2, center.Y-h/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := f.PixelAt(image.Pt(ox+x, oy+y))
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = c.A
		}
	}
	return dst
}
