// Package selection holds the capture session: the captured frame, the
// drag-to-select state machine, and the overlay drawn on top of the frame.
// It knows nothing about windows or input devices; a host feeds it events
// and gives it a Surface to draw on.
package selection

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
)

type CaptureProvider interface {
	CapturePrimary() (*Frame, error)
}

// Saver asks the user where to put img and writes it there. A dismissed
// dialog is reported as ErrCancelled.
type Saver interface {
	Save(img *image.NRGBA) (path string, err error)
}

type Clipboard interface {
	WriteImage(img *image.NRGBA) error
	WriteText(s string) error
}

type Notifier interface {
	Notify(msg string)
	NotifyError(err error)
}

type Signal int

const (
	SignalNone Signal = iota
	SignalRepaint
	SignalClose
)

type EventKind int

const (
	EventPointerMove EventKind = iota
	EventPrimaryPress
	EventPrimaryRelease
	EventCancel
	EventCommitSave
	EventCommitCopy
	EventCopyColor
)

type Event struct {
	Kind EventKind
	Pos  image.Point
}

var (
	DefaultMagnifierSize = image.Pt(200, 100)
	DefaultPanelOffset   = image.Pt(10, 10)
	DefaultShadowColor   = color.NRGBA{0, 0, 0, 170}
)

// Options configures a Controller. Zero sizes, zoom and colors fall back
// to the defaults; PanelOffset is used as given, so start from
// DefaultOptions to get the usual offset.
type Options struct {
	Saver     Saver
	Clipboard Clipboard
	Notifier  Notifier

	// MagnifierSize is the on-screen size of the magnifier image.
	MagnifierSize image.Point
	// MagnifierZoom is how many screen pixels one sampled pixel covers.
	MagnifierZoom int
	PanelOffset   image.Point
	ShadowColor   color.Color
}

func DefaultOptions() Options {
	return Options{
		MagnifierSize: DefaultMagnifierSize,
		MagnifierZoom: 1,
		PanelOffset:   DefaultPanelOffset,
		ShadowColor:   DefaultShadowColor,
	}
}

type Controller struct {
	frame   *Frame
	pointer image.Point
	drag    drag

	opts Options
}

// New captures the screen through provider and starts an idle session.
func New(provider CaptureProvider, opts Options) (*Controller, error) {
	frame, err := provider.CapturePrimary()
	if err != nil {
		if errors.Is(err, ErrCaptureUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	if frame == nil {
		return nil, fmt.Errorf("%w: no frame", ErrCaptureUnavailable)
	}

	if opts.MagnifierSize.X <= 0 || opts.MagnifierSize.Y <= 0 {
		opts.MagnifierSize = DefaultMagnifierSize
	}
	if opts.MagnifierZoom < 1 {
		opts.MagnifierZoom = 1
	}
	if opts.ShadowColor == nil {
		opts.ShadowColor = DefaultShadowColor
	}
	if opts.Notifier == nil {
		opts.Notifier = logNotifier{}
	}

	return &Controller{frame: frame, opts: opts}, nil
}

func (c *Controller) Frame() *Frame        { return c.frame }
func (c *Controller) State() State         { return c.drag.state }
func (c *Controller) Pointer() image.Point { return c.pointer }

// Anchor returns the drag start, if any.
func (c *Controller) Anchor() (image.Point, bool) {
	return c.drag.anchor, c.drag.state != StateIdle
}

// Release returns the drag end, if the button has been released.
func (c *Controller) Release() (image.Point, bool) {
	return c.drag.release, c.drag.state == StateReleased
}

// Selection returns the normalized selection rectangle. While the button
// is still held the live pointer stands in for the release point.
func (c *Controller) Selection() (image.Rectangle, bool) {
	return c.drag.rect(c.pointer)
}

func (c *Controller) Handle(ev Event) Signal {
	switch ev.Kind {
	case EventPointerMove:
		c.OnPointerMove(ev.Pos)
	case EventPrimaryPress:
		c.OnPrimaryPress()
	case EventPrimaryRelease:
		c.OnPrimaryRelease()
	case EventCancel:
		return c.OnCancel()
	case EventCommitSave:
		c.OnCommitSave()
	case EventCommitCopy:
		c.OnCommitCopy()
	case EventCopyColor:
		c.OnCopyColor()
	}
	return SignalRepaint
}

func (c *Controller) OnPointerMove(p image.Point) {
	c.pointer = p
}

// OnPrimaryPress anchors a new selection at the pointer. Presses while a
// selection exists are ignored.
func (c *Controller) OnPrimaryPress() {
	c.drag.press(c.pointer)
}

func (c *Controller) OnPrimaryRelease() {
	c.drag.releaseAt(c.pointer)
}

// OnCancel drops the current selection, or asks the host to close the
// session when there is none.
func (c *Controller) OnCancel() Signal {
	if c.drag.state == StateIdle {
		return SignalClose
	}
	c.drag.clear()
	return SignalRepaint
}

// OnCommitSave hands the selected pixels to the saver. The selection is
// dropped only when the file was written.
func (c *Controller) OnCommitSave() {
	img, ok := c.committedCrop()
	if !ok {
		return
	}
	if c.opts.Saver == nil {
		return
	}

	path, err := c.opts.Saver.Save(img)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return
		}
		c.opts.Notifier.NotifyError(fmt.Errorf("save failed: %w", err))
		return
	}

	c.drag.clear()
	c.opts.Notifier.Notify(fmt.Sprintf("Saved %vx%v to %v", img.Rect.Dx(), img.Rect.Dy(), path))
}

// OnCommitCopy puts the selected pixels on the clipboard. The selection
// stays, so the same region can still be saved afterwards.
func (c *Controller) OnCommitCopy() {
	img, ok := c.committedCrop()
	if !ok {
		return
	}
	if c.opts.Clipboard == nil {
		return
	}

	if err := c.opts.Clipboard.WriteImage(img); err != nil {
		c.opts.Notifier.NotifyError(fmt.Errorf("copy failed: %w", err))
		return
	}
	c.opts.Notifier.Notify(fmt.Sprintf("Copied %vx%v to clipboard", img.Rect.Dx(), img.Rect.Dy()))
}

// OnCopyColor copies the hex code of the pixel under the pointer.
func (c *Controller) OnCopyColor() {
	px, ok := c.frame.PixelAt(c.pointer)
	if !ok || c.opts.Clipboard == nil {
		return
	}

	code := HexColor(px)
	if err := c.opts.Clipboard.WriteText(code); err != nil {
		c.opts.Notifier.NotifyError(fmt.Errorf("copy failed: %w", err))
		return
	}
	c.opts.Notifier.Notify("Copied " + code)
}

func (c *Controller) committedCrop() (*image.NRGBA, bool) {
	if c.drag.state != StateReleased {
		return nil, false
	}
	r, _ := c.drag.rect(c.pointer)
	img, err := c.frame.Crop(r)
	if err != nil {
		c.opts.Notifier.NotifyError(err)
		return nil, false
	}
	return img, true
}

func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

type logNotifier struct{}

func (logNotifier) Notify(msg string)     { log.Println(msg) }
func (logNotifier) NotifyError(err error) { log.Println("error:", err) }
