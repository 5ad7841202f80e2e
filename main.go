package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nvlled/screensnip/lib"
	"github.com/nvlled/screensnip/lib/selection"
	"github.com/sqweek/dialog"
)

func main() {
	args, err := lib.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	settingsFile := args.SettingsPath()
	settings, err := lib.LoadSettings(settingsFile, args.EnvPath(), args)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}

	logFile, err := lib.SetupLogging(settings.LogFile)
	if err != nil {
		log.Println("error: opening log file:", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	toast := lib.NewToast(settings.ToastDuration())
	saver := lib.NewDialogSaver(&settings, settingsFile)
	clip := lib.NewClipboardSink()

	// capture before the overlay window exists, so it is not in the shot
	ctrl, err := selection.New(
		&lib.ScreenCapturer{Display: settings.Display},
		settings.ControllerOptions(saver, clip, toast),
	)
	if err != nil {
		fatal(err)
	}

	app, err := lib.NewApp(ctrl, toast)
	if err != nil {
		fatal(err)
	}

	frame := ctrl.Frame()
	ebiten.SetWindowTitle("screensnip")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowSize(frame.Width(), frame.Height())
	lib.ShowOnDisplay(settings.Display)
	ebiten.SetFullscreen(true)
	ebiten.SetCursorShape(ebiten.CursorShapeCrosshair)

	if err := ebiten.RunGame(app); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	log.Println("error:", err.Error())
	debug.PrintStack()
	dialog.Message("%v", err).Title("screensnip").Error()
	os.Exit(1)
}
