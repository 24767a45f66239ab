package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the per-frame pointer and keyboard state the panel reacts to.
type Input interface {
	CursorPosition() (x, y int)
	MouseJustPressed() bool
	MousePressed() bool
	MouseJustReleased() bool
	// OpenJustPressed reports the "open file" shortcut.
	OpenJustPressed() bool
}

type ebitenInput struct{}

// EbitenInput reads input from the running ebiten game.
func EbitenInput() Input {
	return ebitenInput{}
}

func (ebitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) MouseJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) MousePressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) MouseJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

func (ebitenInput) OpenJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyO)
}
