package lib

import "image/color"

var (
	ColorWhite      = color.White
	ColorTeal       = color.RGBA{0, 255, 255, 255}
	ColorGray       = color.RGBA{90, 90, 90, 255}
	ColorRed        = color.RGBA{255, 60, 60, 255}
	ColorPanel      = color.RGBA{20, 20, 20, 230}
	ColorToast      = color.RGBA{0, 0, 0, 200}
	ColorCheckLight = color.RGBA{200, 200, 200, 255}
	ColorCheckDark  = color.RGBA{150, 150, 150, 255}
)
