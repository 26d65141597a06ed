package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"voidgeometry/host"
)

// action is something a key press asks the page to do
type action int

const (
	actionNone action = iota
	actionLineDown
	actionLineUp
	actionPageDown
	actionPageUp
	actionFirst
	actionLast
	actionToggleHUD
	actionQuit
)

// keyActions maps keys to actions. Digit keys jump to sections and are
// handled separately.
var keyActions = map[ebiten.Key]action{
	ebiten.KeyArrowDown: actionLineDown,
	ebiten.KeyJ:         actionLineDown,
	ebiten.KeyArrowUp:   actionLineUp,
	ebiten.KeyK:         actionLineUp,
	ebiten.KeyPageDown:  actionPageDown,
	ebiten.KeySpace:     actionPageDown,
	ebiten.KeyPageUp:    actionPageUp,
	ebiten.KeyHome:      actionFirst,
	ebiten.KeyEnd:       actionLast,
	ebiten.KeyF1:        actionToggleHUD,
	ebiten.KeyEscape:    actionQuit,
	ebiten.KeyQ:         actionQuit,
}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Pointer receives cursor positions in window pixels
type Pointer interface {
	SetPointer(px, py float64)
}

// Input polls ebiten for pointer, wheel and key events
type Input struct {
	pointer Pointer
	page    *host.Page
	debug   *DebugState

	lastX, lastY int
	hasCursor    bool
}

// NewInput creates the input handler
func NewInput(pointer Pointer, page *host.Page, debug *DebugState) *Input {
	return &Input{pointer: pointer, page: page, debug: debug}
}

// Update reads this tick's input. It returns ebiten.Termination when the
// user asks to quit.
func (in *Input) Update() error {
	x, y := ebiten.CursorPosition()
	if !in.hasCursor || x != in.lastX || y != in.lastY {
		in.pointer.SetPointer(float64(x), float64(y))
		in.lastX, in.lastY, in.hasCursor = x, y, true
	}

	// Wheel up is positive; the page scrolls down for positive notches
	if _, dy := ebiten.Wheel(); dy != 0 {
		in.page.Wheel(-dy)
	}

	for key, a := range keyActions {
		if inpututil.IsKeyJustPressed(key) {
			if in.apply(a) {
				return ebiten.Termination
			}
		}
	}
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			in.jumpToIndex(i)
		}
	}
	return nil
}

// apply performs a and reports whether it asked to quit
func (in *Input) apply(a action) bool {
	sections := in.page.Sections()
	switch a {
	case actionLineDown:
		in.page.Wheel(1)
	case actionLineUp:
		in.page.Wheel(-1)
	case actionPageDown:
		in.page.PageBy(1)
	case actionPageUp:
		in.page.PageBy(-1)
	case actionFirst:
		in.page.JumpTo(sections[0].ID)
	case actionLast:
		in.page.JumpTo(sections[len(sections)-1].ID)
	case actionToggleHUD:
		in.debug.ToggleHUD()
	case actionQuit:
		return true
	}
	return false
}

func (in *Input) jumpToIndex(i int) {
	sections := in.page.Sections()
	if i < len(sections) {
		in.page.JumpTo(sections[i].ID)
	}
}
