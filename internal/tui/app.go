package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelar/chemlab/internal/config"
	"github.com/avelar/chemlab/internal/experiment"
)

const (
	stateMenu = iota
	stateBriefing
	stateLab
)

type appModel struct {
	state    int
	cfg      *config.Config
	theme    Theme
	st       styles
	registry *experiment.Registry
	ids      []string
	titles   map[string]string
	cursor   int
	chosen   *experiment.Experiment
	lab      labModel
}

// RunInteractive starts the full-screen lab: experiment menu, briefing,
// live bench.
func RunInteractive(cfg *config.Config) error {
	registry := experiment.NewRegistry()
	ids := registry.List()
	titles := make(map[string]string, len(ids))
	for _, id := range ids {
		exp, err := registry.Get(id)
		if err != nil {
			return err
		}
		titles[id] = exp.Title
	}

	theme := GetTheme(cfg.Theme)
	m := appModel{
		cfg:      cfg,
		theme:    theme,
		st:       newStyles(theme),
		registry: registry,
		ids:      ids,
		titles:   titles,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			return m, tea.Quit
		case "esc":
			switch m.state {
			case stateBriefing:
				m.state = stateMenu
				return m, nil
			case stateLab:
				m.state = stateMenu
				return m, nil
			}
		}
	}

	switch m.state {
	case stateMenu:
		return m.updateMenu(msg)
	case stateBriefing:
		return m.updateBriefing(msg)
	case stateLab:
		var cmd tea.Cmd
		m.lab, cmd = m.lab.Update(msg)
		m.theme = m.lab.theme
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ids)-1 {
			m.cursor++
		}
	case "enter", " ":
		exp, err := m.registry.Get(m.ids[m.cursor])
		if err != nil {
			return m, nil
		}
		m.chosen = exp
		m.state = stateBriefing
	}
	return m, nil
}

func (m appModel) updateBriefing(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "enter", " ":
		m.lab = newLabModel(m.chosen, m.cfg, m.theme)
		m.state = stateLab
		return m, m.lab.Init()
	}
	return m, nil
}

func (m appModel) View() string {
	switch m.state {
	case stateBriefing:
		return m.briefingView()
	case stateLab:
		return m.lab.View()
	}
	return m.menuView()
}

func (m appModel) menuView() string {
	var b strings.Builder
	b.WriteString(m.st.header.Render("CHEMLAB — VIRTUAL CHEMISTRY BENCH") + "\n\n")
	for i, id := range m.ids {
		line := fmt.Sprintf("%-14s %s", id, m.titles[id])
		if i == m.cursor {
			b.WriteString(m.st.highlight.Render("> "+line) + "\n")
		} else {
			b.WriteString(m.st.value.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n" + m.st.muted.Render("↑↓:select  enter:open  q:quit"))
	return m.st.panel.Render(b.String())
}

func (m appModel) briefingView() string {
	exp := m.chosen
	var b strings.Builder
	b.WriteString(m.st.header.Render(strings.ToUpper(exp.Title)) + "\n\n")
	b.WriteString(m.st.value.Render(exp.Description) + "\n\n")

	if len(exp.Equipment) > 0 {
		b.WriteString(m.st.header.Render("EQUIPMENT") + "\n")
		for _, item := range exp.Equipment {
			b.WriteString(m.st.value.Render("  • "+item) + "\n")
		}
		b.WriteString("\n")
	}

	if len(exp.Safety) > 0 {
		b.WriteString(m.st.warn.Render("SAFETY") + "\n")
		for _, note := range exp.Safety {
			b.WriteString(m.st.warn.Render("  ⚠ "+note) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.st.header.Render("PROCEDURE") + "\n")
	for i, step := range exp.Steps {
		b.WriteString(m.st.value.Render(fmt.Sprintf("  %d. %s", i+1, step.Title)) + "\n")
	}

	b.WriteString("\n" + m.st.muted.Render("enter:start  esc:back  q:quit"))
	return m.st.panel.Render(b.String())
}
