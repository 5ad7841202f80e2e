package lib

import (
	"image"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/nvlled/carrot"
)

type toastMessage struct {
	text  string
	isErr bool
}

// Toast shows short status lines over the overlay. It implements
// selection.Notifier. The newest message replaces the one on screen.
type Toast struct {
	duration time.Duration
	script   *carrot.Script

	mu      sync.Mutex
	pending *toastMessage
	current *toastMessage
}

func NewToast(duration time.Duration) *Toast {
	toast := &Toast{duration: duration}
	toast.script = carrot.Start(toast.coroutine)
	return toast
}

func (toast *Toast) Notify(msg string) {
	log.Println(msg)
	toast.push(toastMessage{text: msg})
}

func (toast *Toast) NotifyError(err error) {
	log.Println("error:", err)
	toast.push(toastMessage{text: err.Error(), isErr: true})
}

func (toast *Toast) push(msg toastMessage) {
	toast.mu.Lock()
	defer toast.mu.Unlock()
	toast.pending = &msg
}

func (toast *Toast) hasPending() bool {
	toast.mu.Lock()
	defer toast.mu.Unlock()
	return toast.pending != nil
}

func (toast *Toast) show() {
	toast.mu.Lock()
	defer toast.mu.Unlock()
	toast.current, toast.pending = toast.pending, nil
}

func (toast *Toast) hide() {
	toast.mu.Lock()
	defer toast.mu.Unlock()
	toast.current = nil
}

// Current returns the message on screen, if any.
func (toast *Toast) Current() (text string, isErr bool, ok bool) {
	toast.mu.Lock()
	defer toast.mu.Unlock()
	if toast.current == nil {
		return "", false, false
	}
	return toast.current.text, toast.current.isErr, true
}

// Update advances the toast by one tick. Call it from the game's Update.
func (toast *Toast) Update() {
	toast.script.Update()
}

func (toast *Toast) coroutine(in *carrot.Invoker) {
	for {
		in.UntilFunc(toast.hasPending)
		toast.show()

		deadline := time.Now().Add(toast.duration)
		in.UntilFunc(func() bool {
			return toast.hasPending() || time.Now().After(deadline)
		})
		if !toast.hasPending() {
			toast.hide()
		}
	}
}

// Draw paints the current message centered near the bottom of the screen.
func (toast *Toast) Draw(screen *ebiten.Image, scrp *ScreenPrint) {
	msg, isErr, ok := toast.Current()
	if !ok {
		return
	}

	b := screen.Bounds()
	size := scrp.Measure(msg)
	area := image.Rect(0, 0, size.X, size.Y).Add(image.Pt(
		b.Min.X+b.Dx()/2-size.X/2,
		b.Max.Y-size.Y-b.Dy()/10,
	))
	ebitenutil.DrawRect(screen, float64(area.Min.X), float64(area.Min.Y), float64(area.Dx()), float64(area.Dy()), ColorToast)

	scrp.Reset(screen, area)
	scrp.AlignX = 0b11
	scrp.Color = ColorWhite
	if isErr {
		scrp.Color = ColorRed
	}
	scrp.Println(msg)
}
