package selection

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

type fakeProvider struct {
	frame *Frame
	err   error
}

func (p fakeProvider) CapturePrimary() (*Frame, error) { return p.frame, p.err }

type fakeSaver struct {
	err   error
	saved []*image.NRGBA
}

func (s *fakeSaver) Save(img *image.NRGBA) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, img)
	return "capture.png", nil
}

type fakeClipboard struct {
	err    error
	images []*image.NRGBA
	texts  []string
}

func (c *fakeClipboard) WriteImage(img *image.NRGBA) error {
	if c.err != nil {
		return c.err
	}
	c.images = append(c.images, img)
	return nil
}

func (c *fakeClipboard) WriteText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, s)
	return nil
}

type fakeNotifier struct {
	messages []string
	errs     []error
}

func (n *fakeNotifier) Notify(msg string)     { n.messages = append(n.messages, msg) }
func (n *fakeNotifier) NotifyError(err error) { n.errs = append(n.errs, err) }

// gradientFrame encodes the coordinates of every pixel in its color.
func gradientFrame(t *testing.T, w, h int) *Frame {
	t.Helper()
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			pix[i+0] = byte(x)
			pix[i+1] = byte(y)
			pix[i+2] = byte(x + y)
			pix[i+3] = 255
		}
	}
	frame, err := NewFrame(w, h, pix)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	return frame
}

type session struct {
	*Controller
	saver     *fakeSaver
	clipboard *fakeClipboard
	notifier  *fakeNotifier
}

func newSession(t *testing.T, w, h int) session {
	t.Helper()
	s := session{
		saver:     &fakeSaver{},
		clipboard: &fakeClipboard{},
		notifier:  &fakeNotifier{},
	}
	opts := DefaultOptions()
	opts.Saver = s.saver
	opts.Clipboard = s.clipboard
	opts.Notifier = s.notifier
	ctrl, err := New(fakeProvider{frame: gradientFrame(t, w, h)}, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Controller = ctrl
	return s
}

func (s session) drag(a, b image.Point) {
	s.OnPointerMove(a)
	s.OnPrimaryPress()
	s.OnPointerMove(b)
	s.OnPrimaryRelease()
}

func TestNewCaptureFailure(t *testing.T) {
	_, err := New(fakeProvider{err: errors.New("no display")}, Options{})
	if !errors.Is(err, ErrCaptureUnavailable) {
		t.Errorf("expected: %v | got %v", ErrCaptureUnavailable, err)
	}

	_, err = New(fakeProvider{}, Options{})
	if !errors.Is(err, ErrCaptureUnavailable) {
		t.Errorf("expected: %v | got %v", ErrCaptureUnavailable, err)
	}
}

func TestSelectionIsNormalized(t *testing.T) {
	for _, entry := range []struct {
		a, b     image.Point
		expected image.Rectangle
	}{
		{image.Pt(100, 100), image.Pt(300, 50), image.Rect(100, 50, 300, 100)},
		{image.Pt(300, 50), image.Pt(100, 100), image.Rect(100, 50, 300, 100)},
		{image.Pt(10, 20), image.Pt(30, 40), image.Rect(10, 20, 30, 40)},
		{image.Pt(30, 40), image.Pt(10, 20), image.Rect(10, 20, 30, 40)},
		{image.Pt(30, 20), image.Pt(10, 40), image.Rect(10, 20, 30, 40)},
	} {
		s := newSession(t, 1920, 1080)
		s.drag(entry.a, entry.b)
		actual, ok := s.Selection()
		if !ok || actual != entry.expected {
			t.Errorf("expected: %v | got %v (ok=%v)", entry.expected, actual, ok)
		}
	}
}

func TestSelectionFollowsPointerWhileAnchored(t *testing.T) {
	s := newSession(t, 100, 100)
	s.OnPointerMove(image.Pt(50, 50))
	s.OnPrimaryPress()
	s.OnPointerMove(image.Pt(20, 70))

	actual, ok := s.Selection()
	expected := image.Rect(20, 50, 50, 70)
	if !ok || actual != expected {
		t.Errorf("expected: %v | got %v", expected, actual)
	}
	if s.State() != StateAnchored {
		t.Errorf("expected: %v | got %v", StateAnchored, s.State())
	}
}

func TestRepeatedPressKeepsAnchor(t *testing.T) {
	s := newSession(t, 100, 100)
	s.OnPointerMove(image.Pt(5, 5))
	s.OnPrimaryPress()
	s.OnPointerMove(image.Pt(60, 60))
	s.OnPrimaryPress()

	anchor, ok := s.Anchor()
	if !ok || anchor != image.Pt(5, 5) {
		t.Errorf("expected: %v | got %v", image.Pt(5, 5), anchor)
	}
}

func TestReleaseWithoutAnchorIsIgnored(t *testing.T) {
	s := newSession(t, 100, 100)
	s.OnPointerMove(image.Pt(5, 5))
	s.OnPrimaryRelease()

	if s.State() != StateIdle {
		t.Errorf("expected: %v | got %v", StateIdle, s.State())
	}
	if _, ok := s.Release(); ok {
		t.Error("release point must not be set without an anchor")
	}
}

func TestSecondReleaseKeepsReleasePoint(t *testing.T) {
	s := newSession(t, 100, 100)
	s.drag(image.Pt(5, 5), image.Pt(20, 20))
	s.OnPointerMove(image.Pt(90, 90))
	s.OnPrimaryRelease()

	release, ok := s.Release()
	if !ok || release != image.Pt(20, 20) {
		t.Errorf("expected: %v | got %v", image.Pt(20, 20), release)
	}
}

func TestCancel(t *testing.T) {
	s := newSession(t, 100, 100)
	if sig := s.OnCancel(); sig != SignalClose {
		t.Errorf("cancel while idle, expected: %v | got %v", SignalClose, sig)
	}

	s.OnPointerMove(image.Pt(5, 5))
	s.OnPrimaryPress()
	if sig := s.OnCancel(); sig != SignalRepaint {
		t.Errorf("cancel while anchored, expected: %v | got %v", SignalRepaint, sig)
	}
	if s.State() != StateIdle {
		t.Errorf("expected: %v | got %v", StateIdle, s.State())
	}

	s.drag(image.Pt(5, 5), image.Pt(20, 20))
	if sig := s.OnCancel(); sig != SignalRepaint {
		t.Errorf("cancel while released, expected: %v | got %v", SignalRepaint, sig)
	}
	if _, ok := s.Anchor(); ok {
		t.Error("anchor must be cleared")
	}
	if _, ok := s.Release(); ok {
		t.Error("release point must be cleared")
	}
	if sig := s.OnCancel(); sig != SignalClose {
		t.Errorf("second cancel, expected: %v | got %v", SignalClose, sig)
	}
}

func TestCommitSave(t *testing.T) {
	s := newSession(t, 1920, 1080)
	s.drag(image.Pt(100, 100), image.Pt(300, 50))
	s.OnCommitSave()

	if len(s.saver.saved) != 1 {
		t.Fatalf("expected one saved image, got %v", len(s.saver.saved))
	}
	img := s.saver.saved[0]
	if img.Rect.Dx() != 200 || img.Rect.Dy() != 50 {
		t.Errorf("expected: 200x50 | got %vx%v", img.Rect.Dx(), img.Rect.Dy())
	}
	if c := img.NRGBAAt(0, 0); c.R != 100 || c.G != 50 {
		t.Errorf("crop must start at (100, 50), got pixel %v", c)
	}
	if s.State() != StateIdle {
		t.Errorf("expected: %v | got %v", StateIdle, s.State())
	}
	if len(s.notifier.messages) != 1 {
		t.Errorf("expected a status message, got %v", s.notifier.messages)
	}
}

func TestCommitSaveWithoutSelection(t *testing.T) {
	s := newSession(t, 100, 100)
	s.OnCommitSave()

	s.OnPointerMove(image.Pt(5, 5))
	s.OnPrimaryPress()
	s.OnCommitSave()

	if len(s.saver.saved) != 0 {
		t.Errorf("nothing must be saved, got %v", len(s.saver.saved))
	}
	if s.State() != StateAnchored {
		t.Errorf("expected: %v | got %v", StateAnchored, s.State())
	}
}

func TestCommitSaveCancelledKeepsSelection(t *testing.T) {
	s := newSession(t, 100, 100)
	s.saver.err = ErrCancelled
	s.drag(image.Pt(5, 5), image.Pt(20, 20))
	s.OnCommitSave()

	if s.State() != StateReleased {
		t.Errorf("expected: %v | got %v", StateReleased, s.State())
	}
	if len(s.notifier.errs) != 0 {
		t.Errorf("a dismissed dialog is not an error, got %v", s.notifier.errs)
	}

	s.saver.err = nil
	s.OnCommitSave()
	if len(s.saver.saved) != 1 {
		t.Errorf("retry must save, got %v", len(s.saver.saved))
	}
}

func TestCommitSaveFailureKeepsSelection(t *testing.T) {
	s := newSession(t, 100, 100)
	s.saver.err = errors.New("disk full")
	s.drag(image.Pt(5, 5), image.Pt(20, 20))
	s.OnCommitSave()

	if s.State() != StateReleased {
		t.Errorf("expected: %v | got %v", StateReleased, s.State())
	}
	if len(s.notifier.errs) != 1 {
		t.Errorf("expected one reported error, got %v", s.notifier.errs)
	}
}

func TestCommitEmptySelection(t *testing.T) {
	s := newSession(t, 100, 100)
	s.drag(image.Pt(5, 5), image.Pt(5, 30))
	s.OnCommitSave()
	s.OnCommitCopy()

	if len(s.saver.saved) != 0 || len(s.clipboard.images) != 0 {
		t.Error("an empty selection must not be committed")
	}
	if len(s.notifier.errs) != 2 || !errors.Is(s.notifier.errs[0], ErrEmptySelection) {
		t.Errorf("expected: %v | got %v", ErrEmptySelection, s.notifier.errs)
	}
}

func TestCommitCopyKeepsSelection(t *testing.T) {
	s := newSession(t, 100, 100)
	s.drag(image.Pt(30, 40), image.Pt(10, 20))
	s.OnCommitCopy()

	if len(s.clipboard.images) != 1 {
		t.Fatalf("expected one copied image, got %v", len(s.clipboard.images))
	}
	img := s.clipboard.images[0]
	if img.Rect.Dx() != 20 || img.Rect.Dy() != 20 {
		t.Errorf("expected: 20x20 | got %vx%v", img.Rect.Dx(), img.Rect.Dy())
	}
	if len(img.Pix) != 20*20*4 {
		t.Errorf("expected: %v bytes | got %v", 20*20*4, len(img.Pix))
	}
	if s.State() != StateReleased {
		t.Errorf("expected: %v | got %v", StateReleased, s.State())
	}
}

func TestCommitCopyFailure(t *testing.T) {
	s := newSession(t, 100, 100)
	s.clipboard.err = errors.New("clipboard busy")
	s.drag(image.Pt(10, 10), image.Pt(20, 20))
	s.OnCommitCopy()

	if len(s.notifier.errs) != 1 {
		t.Errorf("expected one reported error, got %v", s.notifier.errs)
	}
	if s.State() != StateReleased {
		t.Errorf("expected: %v | got %v", StateReleased, s.State())
	}
}

func TestCommitCopyWhileAnchored(t *testing.T) {
	s := newSession(t, 100, 100)
	s.OnPointerMove(image.Pt(10, 10))
	s.OnPrimaryPress()
	s.OnPointerMove(image.Pt(20, 20))
	s.OnCommitCopy()

	if len(s.clipboard.images) != 0 {
		t.Error("copy is only valid after release")
	}
}

func TestCopyColor(t *testing.T) {
	s := newSession(t, 100, 100)
	s.OnPointerMove(image.Pt(16, 32))
	s.OnCopyColor()

	if len(s.clipboard.texts) != 1 || s.clipboard.texts[0] != "#102030FF" {
		t.Errorf("expected: %v | got %v", "#102030FF", s.clipboard.texts)
	}

	s.OnPointerMove(image.Pt(-1, 5))
	s.OnCopyColor()
	if len(s.clipboard.texts) != 1 {
		t.Errorf("pointer outside the frame must not copy, got %v", s.clipboard.texts)
	}
}

func TestHandleDispatch(t *testing.T) {
	s := newSession(t, 100, 100)
	for _, ev := range []Event{
		{Kind: EventPointerMove, Pos: image.Pt(10, 10)},
		{Kind: EventPrimaryPress},
		{Kind: EventPointerMove, Pos: image.Pt(40, 30)},
		{Kind: EventPrimaryRelease},
		{Kind: EventCommitCopy},
		{Kind: EventCommitSave},
	} {
		if sig := s.Handle(ev); sig != SignalRepaint {
			t.Errorf("expected: %v | got %v", SignalRepaint, sig)
		}
	}

	if len(s.clipboard.images) != 1 || len(s.saver.saved) != 1 {
		t.Errorf("expected one copy and one save, got %v and %v", len(s.clipboard.images), len(s.saver.saved))
	}
	if sig := s.Handle(Event{Kind: EventCancel}); sig != SignalClose {
		t.Errorf("expected: %v | got %v", SignalClose, sig)
	}
}

func TestNewFrameValidation(t *testing.T) {
	if _, err := NewFrame(0, 10, nil); err == nil {
		t.Error("expected error for empty frame")
	}
	if _, err := NewFrame(2, 2, make([]byte, 15)); err == nil {
		t.Error("expected error for short buffer")
	}
}

func TestFrameFromImageMovesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(1920, 0, 1930, 10))
	src.SetRGBA(1921, 2, color.RGBA{1, 2, 3, 255})

	frame, err := FrameFromImage(src)
	if err != nil {
		t.Fatalf("FrameFromImage failed: %v", err)
	}
	if frame.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Errorf("expected: %v | got %v", image.Rect(0, 0, 10, 10), frame.Bounds())
	}
	if c, _ := frame.PixelAt(image.Pt(1, 2)); c != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("expected: %v | got %v", color.NRGBA{1, 2, 3, 255}, c)
	}
}
