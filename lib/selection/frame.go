package selection

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

var (
	ErrCaptureUnavailable = errors.New("screen capture unavailable")
	ErrCancelled          = errors.New("cancelled")
	ErrEmptySelection     = errors.New("empty selection")
)

var transparent = color.NRGBA{255, 255, 255, 0}

// Frame is the captured screen for one session. It is never modified
// after construction; everything handed out is either a copy or read-only.
type Frame struct {
	img *image.NRGBA
}

// NewFrame wraps a non-premultiplied RGBA buffer of width*height*4 bytes.
// The buffer is copied.
func NewFrame(width, height int, pix []byte) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions: width=%d, height=%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("invalid frame buffer: got %d bytes, want %d", len(pix), width*height*4)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pix)
	return &Frame{img: img}, nil
}

// FrameFromImage copies img into a frame whose origin is (0, 0).
func FrameFromImage(img image.Image) (*Frame, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("invalid frame dimensions: width=%d, height=%d", b.Dx(), b.Dy())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Frame{img: dst}, nil
}

func (f *Frame) Width() int              { return f.img.Rect.Dx() }
func (f *Frame) Height() int             { return f.img.Rect.Dy() }
func (f *Frame) Bounds() image.Rectangle { return f.img.Rect }

// Image exposes the pixels for drawing. Callers must not write to it.
func (f *Frame) Image() image.Image { return f.img }

// PixelAt returns the pixel at p, or a transparent pixel and false
// when p lies outside the frame.
func (f *Frame) PixelAt(p image.Point) (color.NRGBA, bool) {
	if !p.In(f.img.Rect) {
		return transparent, false
	}
	return f.img.NRGBAAt(p.X, p.Y), true
}

// Crop copies the part of the frame covered by r.
func (f *Frame) Crop(r image.Rectangle) (*image.NRGBA, error) {
	r = r.Intersect(f.img.Rect)
	if r.Empty() {
		return nil, ErrEmptySelection
	}
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	rowLen := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		src := f.img.PixOffset(r.Min.X, r.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], f.img.Pix[src:src+rowLen])
	}
	return dst, nil
}
