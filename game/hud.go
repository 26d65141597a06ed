package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"voidgeometry/engine"
	"voidgeometry/host"
)

const (
	hudMargin     = 12
	hudLineHeight = 16
)

var (
	hudFace  = text.NewGoXFace(basicfont.Face7x13)
	hudColor = color.NRGBA{200, 200, 200, 200}
)

// hudLines builds the overlay text
func hudLines(status host.Status, stats engine.Stats, fps float64, debug DebugState) []string {
	if !debug.ShowHUD {
		return nil
	}
	lines := status.Lines()
	if debug.ShowStats {
		lines = append(lines,
			fmt.Sprintf("mode %s  fps %.0f  frame %d", stats.Mode, fps, stats.Frame),
			fmt.Sprintf("mood %.3f -> %.2f  preset %s", stats.Mood, stats.MoodTarget, stats.Params.Preset),
			fmt.Sprintf("scroll %.3f -> %.2f", stats.ScrollVelocity, stats.ScrollTarget),
			fmt.Sprintf("fog %.4f  opacity %.2f  color %s", stats.FogDensity, stats.Params.Opacity, stats.Color),
			fmt.Sprintf("segments %d", stats.Segments),
		)
	}
	return lines
}

// drawHUD writes lines in the top left corner
func drawHUD(screen *ebiten.Image, lines []string) {
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(hudMargin, float64(hudMargin+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(hudColor)
		text.Draw(screen, line, hudFace, op)
	}
}
