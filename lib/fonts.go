package lib

import (
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

type Fonts struct {
	Regular font.Face
	Small   font.Face
	Tiny    font.Face
}

func LoadFonts() (*Fonts, error) {
	tt, err := opentype.Parse(fonts.MPlus1pRegular_ttf)
	if err != nil {
		return nil, err
	}

	const dpi = 72
	regular, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    24,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	small, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    18,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	tiny, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size: 14,
		DPI:  dpi,
	})
	if err != nil {
		return nil, err
	}

	return &Fonts{Regular: regular, Small: small, Tiny: tiny}, nil
}
