package termui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg time.Time

// Model is a Bubble Tea model that shows a Board. Keys: x closes the newest
// toast, q or ctrl+c quits.
type Model struct {
	board  *Board
	height int
}

// NewModel returns a model drawing b.
func NewModel(b *Board) Model {
	return Model{board: b}
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(m.board.config.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frame()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		return m, m.frame()
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			m.board.mu.Lock()
			m.board.config.Width = min(msg.Width, 60)
			m.board.mu.Unlock()
		}
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "x", "esc":
			m.board.CloseNewest()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	return m.board.Render(m.height)
}
