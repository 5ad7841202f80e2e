package lib

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// ScreenPrint lays out lines of text top to bottom inside Area.
type ScreenPrint struct {
	currentY int
	image    *ebiten.Image

	Area  image.Rectangle
	Color color.Color

	// 0b00 - align left
	// 0b10 - align left
	// 0b11 - align center
	// 0b01 - align right
	AlignX byte

	Font font.Face

	Border      int
	LineSpacing int
}

func NewScreenPrint(face font.Face) *ScreenPrint {
	return &ScreenPrint{
		Font:        face,
		Color:       ColorWhite,
		Border:      12,
		LineSpacing: 6,
	}
}

// Reset starts printing at the top of area on screen.
func (scrp *ScreenPrint) Reset(screen *ebiten.Image, area image.Rectangle) {
	scrp.image = screen
	scrp.Area = area
	scrp.currentY = area.Min.Y
}

func (scrp *ScreenPrint) Println(str string) {
	for _, line := range strings.Split(str, "\n") {
		if line == "" {
			line = " "
		}
		textB := text.BoundString(scrp.Font, line)

		x := scrp.Area.Min.X + scrp.Border/2
		if scrp.AlignX&0b11 == 0b11 {
			x = scrp.Area.Min.X + scrp.Area.Dx()/2 - textB.Dx()/2
		} else if scrp.AlignX&0b01 == 0b01 {
			x = scrp.Area.Max.X - textB.Dx() - scrp.Border/2
		}
		y := scrp.currentY + scrp.Font.Metrics().Ascent.Ceil() + scrp.Border/2

		textColor := scrp.Color
		if textColor == nil {
			textColor = ColorWhite
		}

		text.Draw(scrp.image, line, scrp.Font, x, y, textColor)
		scrp.currentY += lineHeight(scrp.Font) + scrp.LineSpacing
	}
}

// Cursor is the y coordinate the next line starts at.
func (scrp *ScreenPrint) Cursor() int {
	return scrp.currentY
}

// Measure returns the size lines would take when printed, borders included.
func (scrp *ScreenPrint) Measure(lines ...string) image.Point {
	w, h := 0, 0
	for _, str := range lines {
		for _, line := range strings.Split(str, "\n") {
			if d := text.BoundString(scrp.Font, line).Dx(); d > w {
				w = d
			}
			h += lineHeight(scrp.Font) + scrp.LineSpacing
		}
	}
	return image.Pt(w+scrp.Border, h+scrp.Border)
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}
