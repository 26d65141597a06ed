package game

// DebugState holds the overlay toggles
type DebugState struct {
	ShowHUD   bool // scene indicator and velocity readout
	ShowStats bool // engine internals below the HUD
}

// ToggleHUD cycles hidden -> HUD -> HUD with stats -> hidden
func (d *DebugState) ToggleHUD() {
	switch {
	case !d.ShowHUD:
		d.ShowHUD = true
	case !d.ShowStats:
		d.ShowStats = true
	default:
		d.ShowHUD = false
		d.ShowStats = false
	}
}
