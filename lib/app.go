package lib

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/nvlled/screensnip/lib/selection"
)

const helpText = "Drag to select    Ctrl+S save    Ctrl+C copy    Ctrl+Shift+C copy color    Esc / right click back    F1 hide help"

// InputState is the input polled for a single tick.
type InputState struct {
	Cursor image.Point

	PrimaryPressed   bool
	PrimaryReleased  bool
	SecondaryRelease bool
	EscapeReleased   bool

	Ctrl  bool
	Shift bool
	KeyS  bool
	KeyC  bool
	KeyF1 bool
}

func pollInput() InputState {
	x, y := ebiten.CursorPosition()
	return InputState{
		Cursor:           image.Pt(x, y),
		PrimaryPressed:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		PrimaryReleased:  inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		SecondaryRelease: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight),
		EscapeReleased:   inpututil.IsKeyJustReleased(ebiten.KeyEscape),
		Ctrl:             ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		Shift:            ebiten.IsKeyPressed(ebiten.KeyShift),
		KeyS:             inpututil.IsKeyJustPressed(ebiten.KeyS),
		KeyC:             inpututil.IsKeyJustPressed(ebiten.KeyC),
		KeyF1:            inpututil.IsKeyJustPressed(ebiten.KeyF1),
	}
}

// Events turns one tick of input into controller events. The pointer
// moves first so that a press or release lands where the cursor is now.
func (in InputState) Events(lastCursor image.Point, first bool) []selection.Event {
	var events []selection.Event
	if first || in.Cursor != lastCursor {
		events = append(events, selection.Event{Kind: selection.EventPointerMove, Pos: in.Cursor})
	}
	if in.PrimaryPressed {
		events = append(events, selection.Event{Kind: selection.EventPrimaryPress})
	}
	if in.PrimaryReleased {
		events = append(events, selection.Event{Kind: selection.EventPrimaryRelease})
	}
	if in.EscapeReleased || in.SecondaryRelease {
		events = append(events, selection.Event{Kind: selection.EventCancel})
	}
	if in.Ctrl && in.KeyS {
		events = append(events, selection.Event{Kind: selection.EventCommitSave})
	}
	if in.Ctrl && in.KeyC {
		kind := selection.EventCommitCopy
		if in.Shift {
			kind = selection.EventCopyColor
		}
		events = append(events, selection.Event{Kind: kind})
	}
	return events
}

// App is the full-screen capture window. It owns nothing but plumbing:
// input goes to the controller, the controller draws through the surface.
type App struct {
	tickCounter int

	ctrl   *selection.Controller
	events Queue[selection.Event]

	fonts     *Fonts
	scrp      *ScreenPrint
	toastScrp *ScreenPrint
	surface   *Surface
	toast     *Toast

	lastCursor image.Point
	showHelp   bool
}

func NewApp(ctrl *selection.Controller, toast *Toast) (*App, error) {
	fonts, err := LoadFonts()
	if err != nil {
		return nil, err
	}
	return &App{
		ctrl:      ctrl,
		events:    CreateQueue[selection.Event](16),
		fonts:     fonts,
		scrp:      NewScreenPrint(fonts.Small),
		toastScrp: NewScreenPrint(fonts.Regular),
		surface:   NewSurface(NewScreenPrint(fonts.Tiny)),
		toast:     toast,
		showHelp:  true,
	}, nil
}

func (g *App) Update() error {
	in := pollInput()
	if in.KeyF1 {
		g.showHelp = !g.showHelp
	}
	for _, ev := range in.Events(g.lastCursor, g.tickCounter == 0) {
		g.events.Push(ev)
	}
	g.lastCursor = in.Cursor
	g.tickCounter++

	closing := false
	g.events.Drain(func(ev selection.Event) bool {
		closing = g.ctrl.Handle(ev) == selection.SignalClose
		return !closing
	})
	if closing {
		g.events.Clear()
		return ebiten.Termination
	}

	g.toast.Update()
	return nil
}

func (g *App) Draw(screen *ebiten.Image) {
	g.surface.Reset(screen)
	g.ctrl.Render(g.surface)

	if g.showHelp && g.ctrl.State() == selection.StateIdle {
		g.drawHelp(screen)
	}
	g.toast.Draw(screen, g.toastScrp)
}

func (g *App) drawHelp(screen *ebiten.Image) {
	b := screen.Bounds()
	size := g.scrp.Measure(helpText)
	area := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+size.Y)
	ebitenutil.DrawRect(screen, float64(area.Min.X), float64(area.Min.Y), float64(area.Dx()), float64(area.Dy()), color.RGBA{0, 0, 0, 150})

	g.scrp.Reset(screen, area)
	g.scrp.AlignX = 0b11
	g.scrp.Color = ColorTeal
	g.scrp.Println(helpText)
}

// Layout keeps the logical screen at the captured resolution, so cursor
// positions are frame pixels whatever the device scale is.
func (g *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	frame := g.ctrl.Frame()
	return frame.Width(), frame.Height()
}
