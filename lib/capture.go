package lib

import (
	"fmt"

	"github.com/kbinani/screenshot"
	"github.com/nvlled/screensnip/lib/selection"
)

// ScreenCapturer grabs one display. Display 0 is the primary one.
type ScreenCapturer struct {
	Display int
}

func (capturer *ScreenCapturer) CapturePrimary() (*selection.Frame, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("%w: no active displays found", selection.ErrCaptureUnavailable)
	}
	if capturer.Display < 0 || capturer.Display >= n {
		return nil, fmt.Errorf("%w: display %v out of range, %v active", selection.ErrCaptureUnavailable, capturer.Display, n)
	}

	bounds := screenshot.GetDisplayBounds(capturer.Display)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", selection.ErrCaptureUnavailable, err)
	}

	return selection.FrameFromImage(img)
}
