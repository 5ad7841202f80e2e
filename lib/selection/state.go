package selection

import "image"

type State int

const (
	StateIdle State = iota
	StateAnchored
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnchored:
		return "anchored"
	case StateReleased:
		return "released"
	}
	return "invalid-state"
}

// drag holds the points of the current selection. Which of them are
// meaningful is decided by state alone, so a release point without an
// anchor cannot be observed.
type drag struct {
	state   State
	anchor  image.Point
	release image.Point
}

func (d *drag) press(p image.Point) bool {
	if d.state != StateIdle {
		return false
	}
	d.state = StateAnchored
	d.anchor = p
	return true
}

func (d *drag) releaseAt(p image.Point) bool {
	if d.state != StateAnchored {
		return false
	}
	d.state = StateReleased
	d.release = p
	return true
}

func (d *drag) clear() {
	*d = drag{}
}

// rect returns the normalized rectangle between the anchor and either the
// release point or, while still dragging, the live pointer.
func (d *drag) rect(pointer image.Point) (image.Rectangle, bool) {
	switch d.state {
	case StateAnchored:
		return image.Rect(d.anchor.X, d.anchor.Y, pointer.X, pointer.Y), true
	case StateReleased:
		return image.Rect(d.anchor.X, d.anchor.Y, d.release.X, d.release.Y), true
	}
	return image.Rectangle{}, false
}
