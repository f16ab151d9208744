// Package ui holds the terminal views: a styled roadmap overview and an
// interactive prompt session built on bubbletea.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HendryAvila/navigate/internal/navigator"
	"github.com/HendryAvila/navigate/internal/ui/keys"
	"github.com/HendryAvila/navigate/internal/ui/styles"
)

// maxExchanges bounds the transcript kept on screen.
const maxExchanges = 50

// Roadmap is what the session needs from the navigator.
type Roadmap interface {
	Process(prompt string) navigator.Outcome
	Snapshot() navigator.Overview
}

// exchange is one prompt and its answer.
type exchange struct {
	prompt   string
	response string
	failed   bool
}

// processedMsg carries the outcome of a prompt back into Update.
type processedMsg struct {
	prompt  string
	outcome navigator.Outcome
}

// Session is the interactive prompt loop.
type Session struct {
	roadmap     Roadmap
	input       textinput.Model
	styles      *styles.Styles
	keys        keys.KeyMap
	log         []exchange
	overview    navigator.Overview
	showRoadmap bool
	busy        bool
	width       int
	height      int
}

// NewSession creates a session over roadmap.
func NewSession(roadmap Roadmap, maxPromptLength int) *Session {
	input := textinput.New()
	input.Placeholder = "What are you working on?"
	input.Prompt = "> "
	if maxPromptLength > 0 {
		input.CharLimit = maxPromptLength
	}
	input.Focus()

	return &Session{
		roadmap:     roadmap,
		input:       input,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		overview:    roadmap.Snapshot(),
		showRoadmap: true,
	}
}

func (m *Session) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = styles.ContentWidth(msg.Width) - 6
		return m, nil

	case processedMsg:
		m.busy = false
		m.log = append(m.log, exchange{
			prompt:   msg.prompt,
			response: msg.outcome.Response,
			failed:   msg.outcome.Err != nil,
		})
		if len(m.log) > maxExchanges {
			m.log = m.log[len(m.log)-maxExchanges:]
		}
		m.overview = m.roadmap.Snapshot()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Roadmap):
			m.showRoadmap = !m.showRoadmap
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.log = nil
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the current input to the navigator off the update loop.
func (m *Session) submit() tea.Cmd {
	prompt := strings.TrimSpace(m.input.Value())
	if m.busy {
		return nil
	}
	switch strings.ToLower(prompt) {
	case "quit", "exit":
		return tea.Quit
	}
	m.input.Reset()
	m.busy = true
	roadmap := m.roadmap
	return func() tea.Msg {
		return processedMsg{prompt: prompt, outcome: roadmap.Process(prompt)}
	}
}

func (m *Session) View() string {
	s := m.styles
	width := styles.ContentWidth(m.width)

	var sections []string
	if m.showRoadmap {
		sections = append(sections, s.Panel.Width(width-2).Render(RenderOverview(m.overview, s)))
	}

	if len(m.log) > 0 {
		var b strings.Builder
		for _, e := range m.log {
			b.WriteString(s.Prompt.Render("> " + e.prompt))
			b.WriteString("\n")
			if e.failed {
				b.WriteString(s.Warning.Render(e.response))
			} else {
				b.WriteString(s.Response.Render(e.response))
			}
			b.WriteString("\n")
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}

	sections = append(sections, s.InputFocused.Width(width-2).Render(m.input.View()))
	sections = append(sections, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Session) renderHelp() string {
	s := m.styles
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, s.HelpKey.Render(h.Key)+" "+s.HelpDesc.Render(h.Desc))
	}
	return s.Help.Render(strings.Join(parts, "  "))
}
