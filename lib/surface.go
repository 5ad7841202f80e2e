package lib

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/nvlled/screensnip/lib/selection"
)

const (
	swatchSize   = 10
	checkerSize  = 8
	panelPadding = 4
)

// Surface draws the controller's overlay onto an ebiten screen image.
type Surface struct {
	screen *ebiten.Image
	scrp   *ScreenPrint

	frame      *selection.Frame
	frameImage *ebiten.Image

	sampleImage *ebiten.Image
	samplePix   []byte
}

func NewSurface(scrp *ScreenPrint) *Surface {
	return &Surface{scrp: scrp}
}

func (s *Surface) Reset(screen *ebiten.Image) {
	s.screen = screen
}

func (s *Surface) Bounds() image.Rectangle {
	return s.screen.Bounds()
}

func (s *Surface) DrawFrame(f *selection.Frame) {
	if s.frame != f {
		s.frame = f
		s.frameImage = ebiten.NewImageFromImage(f.Image())
	}
	s.screen.DrawImage(s.frameImage, nil)
}

func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	ebitenutil.DrawRect(s.screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), c)
}

func (s *Surface) DrawPanel(p selection.Panel) {
	scrp := s.scrp
	coords, rgba := p.CoordsLabel(), p.ColorLabel()
	sampleSize := p.Sample.Rect.Size().Mul(p.Zoom)
	textSize := scrp.Measure(coords, rgba)

	w := max(sampleSize.X, textSize.X) + panelPadding*2
	h := sampleSize.Y + textSize.Y + swatchSize + panelPadding*3
	panel := placePanel(p.Origin, image.Pt(w, h), p.Pointer, s.Bounds())
	s.FillRect(panel, ColorPanel)

	sampleRect := image.Rectangle{Max: sampleSize}.Add(image.Pt(panel.Min.X+(w-sampleSize.X)/2, panel.Min.Y+panelPadding))
	s.drawChecker(sampleRect)
	s.drawSample(p.Sample, sampleRect.Min, p.Zoom)

	scrp.Reset(s.screen, image.Rect(panel.Min.X, sampleRect.Max.Y, panel.Max.X, panel.Max.Y))
	scrp.AlignX = 0b11
	scrp.Color = ColorWhite
	if !p.InFrame {
		scrp.Color = ColorGray
	}
	scrp.Println(coords)
	scrp.Println(rgba)

	swatch := image.Rect(0, 0, swatchSize, swatchSize).Add(image.Pt(panel.Min.X+w/2-swatchSize/2, scrp.Cursor()+panelPadding))
	s.drawChecker(swatch)
	s.FillRect(swatch, p.Color)
}

// drawSample uploads the magnifier texels and draws them scaled by zoom
// with nearest filtering so individual pixels stay sharp.
func (s *Surface) drawSample(sample *image.NRGBA, at image.Point, zoom int) {
	size := sample.Rect.Size()
	if s.sampleImage == nil || s.sampleImage.Bounds().Size() != size {
		s.sampleImage = ebiten.NewImage(size.X, size.Y)
		s.samplePix = make([]byte, size.X*size.Y*4)
	}
	premultiply(s.samplePix, sample.Pix)
	s.sampleImage.WritePixels(s.samplePix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(zoom), float64(zoom))
	op.GeoM.Translate(float64(at.X), float64(at.Y))
	op.Filter = ebiten.FilterNearest
	s.screen.DrawImage(s.sampleImage, op)
}

func (s *Surface) drawChecker(r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y += checkerSize {
		for x := r.Min.X; x < r.Max.X; x += checkerSize {
			cell := image.Rect(x, y, x+checkerSize, y+checkerSize).Intersect(r)
			c := ColorCheckLight
			if ((x-r.Min.X)/checkerSize+(y-r.Min.Y)/checkerSize)%2 == 1 {
				c = ColorCheckDark
			}
			s.FillRect(cell, c)
		}
	}
}

// placePanel puts a box of the given size at origin, flipping it to the
// other side of the pointer on any axis where it would leave the screen.
func placePanel(origin, size, pointer image.Point, screen image.Rectangle) image.Rectangle {
	r := image.Rectangle{Min: origin, Max: origin.Add(size)}
	if r.Max.X > screen.Max.X {
		x := pointer.X - (origin.X - pointer.X) - size.X
		r.Min.X, r.Max.X = x, x+size.X
	}
	if r.Max.Y > screen.Max.Y {
		y := pointer.Y - (origin.Y - pointer.Y) - size.Y
		r.Min.Y, r.Max.Y = y, y+size.Y
	}
	if r.Min.X < screen.Min.X {
		r = r.Add(image.Pt(screen.Min.X-r.Min.X, 0))
	}
	if r.Min.Y < screen.Min.Y {
		r = r.Add(image.Pt(0, screen.Min.Y-r.Min.Y))
	}
	return r
}

// premultiply converts non-premultiplied RGBA bytes into the premultiplied
// layout ebiten.Image.WritePixels takes.
func premultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		a := uint32(src[i+3])
		dst[i+0] = byte(uint32(src[i+0]) * a / 255)
		dst[i+1] = byte(uint32(src[i+1]) * a / 255)
		dst[i+2] = byte(uint32(src[i+2]) * a / 255)
		dst[i+3] = byte(a)
	}
}
