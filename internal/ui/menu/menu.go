// Package menu is the world selection screen shown before play.
package menu

import (
	"image/color"

	"chosenoffset.com/thornvale/internal/gamescanner"
	"chosenoffset.com/thornvale/internal/render"
)

// GameState represents the current state of the game.
type GameState int

const (
	StateMainMenu GameState = iota
	StatePlaying
)

// MainMenu represents the main menu screen.
type MainMenu struct {
	worlds       []gamescanner.WorldEntry
	selected     int
	renderer     render.Renderer
	input        render.InputManager
	screenWidth  int
	screenHeight int
	status       string
}

// NewMainMenu creates a new main menu.
func NewMainMenu(worlds []gamescanner.WorldEntry, r render.Renderer, input render.InputManager, width, height int) *MainMenu {
	return &MainMenu{
		worlds:       worlds,
		renderer:     r,
		input:        input,
		screenWidth:  width,
		screenHeight: height,
	}
}

// Update updates the menu state based on user input.
// Returns true if a world was chosen, false otherwise.
func (m *MainMenu) Update() (chosen bool, world gamescanner.WorldEntry) {
	if len(m.worlds) == 0 {
		return false, gamescanner.WorldEntry{}
	}

	// Keyboard navigation wraps around the list
	if m.input.IsKeyJustPressed(render.KeyUp) || m.input.IsKeyJustPressed(render.KeyW) {
		m.selected = (m.selected - 1 + len(m.worlds)) % len(m.worlds)
	}
	if m.input.IsKeyJustPressed(render.KeyDown) || m.input.IsKeyJustPressed(render.KeyS) {
		m.selected = (m.selected + 1) % len(m.worlds)
	}

	if m.input.IsKeyJustPressed(render.KeyEnter) || m.input.IsKeyJustPressed(render.KeySpace) ||
		m.input.IsButtonJustPressed(render.ButtonStart) || m.input.IsButtonJustPressed(render.ButtonAttack) {
		return true, m.worlds[m.selected]
	}

	return false, gamescanner.WorldEntry{}
}

// Selected returns the highlighted world index
func (m *MainMenu) Selected() int {
	return m.selected
}

// SetStatus shows a line under the list, e.g. a load error
func (m *MainMenu) SetStatus(status string) {
	m.status = status
}

// SetSize updates the screen size used for layout.
func (m *MainMenu) SetSize(width, height int) {
	m.screenWidth = width
	m.screenHeight = height
}

// Draw renders the menu to the screen.
func (m *MainMenu) Draw(screen render.Image) {
	// Clear screen with dark background
	screen.Fill(color.RGBA{20, 20, 30, 255})

	// Draw title
	titleColor := color.RGBA{255, 255, 255, 255}
	m.renderer.DrawText(screen, "THORNVALE", 50, 30, titleColor, 3.0)
	m.renderer.DrawText(screen, "Select a World", 50, 70, titleColor, 1.5)

	if len(m.worlds) == 0 {
		noWorldsColor := color.RGBA{255, 100, 100, 255}
		m.renderer.DrawText(screen, "No worlds found in data directory!", 50, 120, noWorldsColor, 1.2)
		m.renderer.DrawText(screen, "Run genplaceholders to create a sample world.", 50, 145, noWorldsColor, 1.0)
		return
	}

	// Draw world list
	y := 110
	for i, world := range m.worlds {
		itemColor := color.RGBA{200, 200, 255, 255}
		if i == m.selected {
			itemColor = color.RGBA{255, 255, 100, 255}
			// Draw selection indicator
			m.renderer.DrawText(screen, ">", 50, y, itemColor, 1.2)
		}
		m.renderer.DrawText(screen, world.Name, 70, y, itemColor, 1.2)
		y += 30
	}

	if m.status != "" {
		m.renderer.DrawText(screen, m.status, 50, y+20, color.RGBA{255, 100, 100, 255}, 1.0)
	}

	// Draw instructions
	instructionY := m.screenHeight - 60
	instructionColor := color.RGBA{150, 150, 150, 255}
	m.renderer.DrawText(screen, "Up/Down to choose, ENTER or SPACE to start.", 20, instructionY, instructionColor, 1.0)
	m.renderer.DrawText(screen, "In game: WASD/arrows move (Shift walks), J attack, K block, M music, ESC back.", 20, instructionY+20, instructionColor, 1.0)
}
