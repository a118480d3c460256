// Package render defines the seam between the simulation and a display
// backend. Frames are produced in software as RGBA bytes; a backend only has to
// present them, report input and drive the loop.
package render

import "errors"

// ErrQuit is returned from Game.Update to end the loop cleanly.
var ErrQuit = errors.New("quit requested")

// Screen is a presentation surface that accepts whole RGBA frames.
type Screen interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)
	// WritePixels replaces the surface contents with pix, which holds
	// width*height*4 bytes in row-major RGBA order.
	WritePixels(pix []byte)
}

// InputManager handles input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	// CursorPosition is the pointer position; with a captured cursor only
	// differences between frames are meaningful.
	CursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
	IsMouseButtonJustPressed(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reads.
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Game is driven by an Engine once per tick.
type Game interface {
	// Update advances the game. Returning ErrQuit stops the engine without error.
	Update() error

	// Draw presents the current frame.
	Draw(screen Screen)

	// Layout accepts the outside size and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window (or terminal) and runs the loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)
	// SetCursorCaptured hides and locks the pointer for mouse look.
	SetCursorCaptured(captured bool)
	SetFullscreen(fullscreen bool)
	SetVsyncEnabled(enabled bool)

	// RunGame blocks until the game quits or fails.
	RunGame(game Game) error
}
