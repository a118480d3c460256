// Package menu implements the level selection screen.
package menu

import (
	"fmt"
	"path/filepath"

	"chosenoffset.com/lucid/internal/render"
	"chosenoffset.com/lucid/internal/world/level"
)

// Selection is the level the player picked.
type Selection struct {
	Name string
	Path string
}

// MainMenu lists the available levels. Up/Down (or W/S) move the cursor,
// Enter or Space starts the highlighted level.
type MainMenu struct {
	levels   []level.Entry
	selected int
	input    render.InputManager
}

// NewMainMenu creates a menu over levels.
func NewMainMenu(levels []level.Entry, input render.InputManager) *MainMenu {
	return &MainMenu{levels: levels, input: input}
}

// SetLevels replaces the list, keeping the cursor in range.
func (m *MainMenu) SetLevels(levels []level.Entry) {
	m.levels = levels
	if m.selected >= len(levels) {
		m.selected = max(len(levels)-1, 0)
	}
}

// Select moves the cursor to the level at path and reports whether it is listed.
func (m *MainMenu) Select(path string) bool {
	for i, e := range m.levels {
		if filepath.Clean(e.Path) == filepath.Clean(path) {
			m.selected = i
			return true
		}
	}
	return false
}

// Selected returns the highlighted level.
func (m *MainMenu) Selected() (Selection, bool) {
	if len(m.levels) == 0 {
		return Selection{}, false
	}
	e := m.levels[m.selected]
	return Selection{Name: e.Name, Path: e.Path}, true
}

// Update handles navigation. It returns true with the selection when the
// player starts a level.
func (m *MainMenu) Update() (selected bool, selection Selection) {
	if len(m.levels) == 0 {
		return false, Selection{}
	}

	if m.input.IsKeyJustPressed(render.KeyUp) || m.input.IsKeyJustPressed(render.KeyW) {
		m.selected = (m.selected + len(m.levels) - 1) % len(m.levels)
	}
	if m.input.IsKeyJustPressed(render.KeyDown) || m.input.IsKeyJustPressed(render.KeyS) {
		m.selected = (m.selected + 1) % len(m.levels)
	}

	if m.input.IsKeyJustPressed(render.KeyEnter) || m.input.IsKeyJustPressed(render.KeySpace) {
		sel, _ := m.Selected()
		return true, sel
	}
	return false, Selection{}
}

// Lines returns the menu body, one line per level with the cursor marked.
func (m *MainMenu) Lines() []string {
	if len(m.levels) == 0 {
		return []string{"No levels found"}
	}
	lines := make([]string, 0, len(m.levels)+2)
	for i, e := range m.levels {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s", marker, e.Name))
	}
	lines = append(lines, "", "Enter to start, Q to quit")
	return lines
}
