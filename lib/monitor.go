package lib

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func monitorAt(monitors []*ebiten.MonitorType, display int) *ebiten.MonitorType {
	if display < 0 || display >= len(monitors) {
		return nil
	}
	return monitors[display]
}

// ShowOnDisplay moves the window to the monitor with the same index the
// screen was captured from. Both lists start with the primary display.
func ShowOnDisplay(display int) {
	m := monitorAt(ebiten.AppendMonitors(nil), display)
	if m == nil {
		log.Printf("error: no monitor for display %v, staying on the current one", display)
		return
	}
	ebiten.SetMonitor(m)
}
