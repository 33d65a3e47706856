package main

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pixgrid/pkg/resource"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PageDown, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Reload, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup/b", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn/space", "page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "top")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload images")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9e9e9e"))

type imagesLoadedMsg struct {
	changed bool
	err     error
}

type model struct {
	grid    *resource.Grid
	help    help.Model
	keys    keyMap
	loading bool
	err     error
}

func newModel(g *resource.Grid) model {
	return model{grid: g, help: help.New(), keys: keys}
}

func (m model) Init() tea.Cmd {
	return nil
}

// chrome is the number of terminal lines below the grid.
func (m model) chrome() int {
	if m.help.ShowAll {
		return 4
	}
	return 2
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	term := m.grid.Term
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		rows := max(msg.Height-m.chrome(), 1)
		m.grid.View.Resize(msg.Width*term.CellWidth, rows*term.CellHeight)
		return m, m.loadImages()

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			return m.scroll(term.CellHeight)
		case tea.MouseButtonWheelUp:
			return m.scroll(-term.CellHeight)
		}

	case tea.KeyMsg:
		page := m.grid.View.Height()
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Down):
			return m.scroll(term.CellHeight)
		case key.Matches(msg, m.keys.Up):
			return m.scroll(-term.CellHeight)
		case key.Matches(msg, m.keys.PageDown):
			return m.scroll(page)
		case key.Matches(msg, m.keys.PageUp):
			return m.scroll(-page)
		case key.Matches(msg, m.keys.Top):
			m.grid.View.ScrollToTop()
			return m, m.loadImages()
		case key.Matches(msg, m.keys.Reload):
			m.grid.Reload()
			m.err = nil
			return m, m.loadImages()
		}

	case imagesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.changed {
			return m, m.loadImages()
		}
	}
	return m, nil
}

func (m model) scroll(dy int) (tea.Model, tea.Cmd) {
	m.grid.View.ScrollBy(dy)
	return m, m.loadImages()
}

// loadImages asks the grid to load whatever the last frame was missing.
func (m *model) loadImages() tea.Cmd {
	if m.loading || m.grid.Photos == nil {
		return nil
	}
	m.loading = true
	g := m.grid
	return func() tea.Msg {
		changed, err := g.LoadImages(context.Background())
		return imagesLoadedMsg{changed: changed, err: err}
	}
}

func (m model) View() string {
	status := m.grid.Status()
	if m.err != nil {
		status = "error: " + m.err.Error()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.grid.RenderText(),
		statusStyle.Render(status),
		m.help.View(m.keys),
	)
}
