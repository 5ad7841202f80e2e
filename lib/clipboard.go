package lib

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.design/x/clipboard"
)

// ClipboardSink writes to the system clipboard. If the clipboard could not
// be initialized every write returns that error instead.
type ClipboardSink struct {
	initErr error
}

func NewClipboardSink() *ClipboardSink {
	sink := &ClipboardSink{}
	if err := clipboard.Init(); err != nil {
		sink.initErr = fmt.Errorf("clipboard unavailable: %w", err)
	}
	return sink
}

// WriteImage puts img on the clipboard as PNG, which is what
// clipboard.FmtImage expects.
func (sink *ClipboardSink) WriteImage(img *image.NRGBA) error {
	if sink.initErr != nil {
		return sink.initErr
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode image as PNG: %w", err)
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}

func (sink *ClipboardSink) WriteText(s string) error {
	if sink.initErr != nil {
		return sink.initErr
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}
