package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avelar/chemlab/internal/config"
	"github.com/avelar/chemlab/internal/experiment"
	"github.com/avelar/chemlab/internal/lab"
)

const (
	historyCap   = 300
	frameRate    = 10
	targetStride = 5.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// labModel is the live lab screen: one engine, ticked at the frame rate,
// mutated by key events.
type labModel struct {
	engine      *lab.Engine
	cfg         *config.Config
	theme       Theme
	st          styles
	canvas      *Canvas
	tempHistory []float64
	notice      string
	noticeUntil float64
	showHelp    bool
}

func newLabModel(exp *experiment.Experiment, cfg *config.Config, theme Theme) labModel {
	return labModel{
		engine: lab.NewEngine(exp, cfg.LabRates(), cfg.Ambient),
		cfg:    cfg,
		theme:  theme,
		st:     newStyles(theme),
		canvas: NewCanvas(canvasCols, canvasRows),
	}
}

func (m labModel) Init() tea.Cmd { return tick() }

func (m labModel) Update(msg tea.Msg) (labModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg.String())
		return m, nil
	case TickMsg:
		m.engine.Tick(m.cfg.Tick)
		st := m.engine.State()
		m.tempHistory = append(m.tempHistory, st.Temperature)
		if len(m.tempHistory) > historyCap {
			m.tempHistory = m.tempHistory[1:]
		}
		if m.notice != "" && st.Elapsed > m.noticeUntil {
			m.notice = ""
		}
		return m, tick()
	}
	return m, nil
}

func (m *labModel) handleKey(key string) {
	e := m.engine
	st := e.State()

	switch key {
	case "h":
		e.SetHeater(!st.HeaterOn)
	case "i":
		e.SetIceBath(!st.IceBath)
	case "up", "+":
		m.report(e.SetTargetTemp(st.TargetTemp + targetStride))
	case "down", "-":
		m.report(e.SetTargetTemp(st.TargetTemp - targetStride))
	case "s":
		next := (st.Stirring + 1) % 4
		m.report(e.SetStirring(next))
	case "t":
		if st.TimerRunning {
			e.StopTimer()
		} else {
			e.StartTimer()
		}
	case "n":
		m.report(e.Advance())
	case "r":
		e.Reset()
		m.tempHistory = m.tempHistory[:0]
	case "m":
		m.theme = NextTheme(m.theme)
		m.st = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			chems := e.Experiment().Chemicals
			if idx < len(chems) {
				m.report(e.AddChemical(chems[idx].ID))
			}
		}
	}
}

// report surfaces an event error as a transient notice line.
func (m *labModel) report(err error) {
	if err == nil {
		return
	}
	m.notice = err.Error()
	m.noticeUntil = m.engine.State().Elapsed + 3
}

func (m labModel) View() string {
	if m.showHelp {
		return m.helpView()
	}

	e := m.engine
	st := e.State()
	exp := e.Experiment()

	drawApparatus(m.canvas, st, len(st.Added))
	canvasPanel := m.st.panel.Render(m.canvas.String())

	var b strings.Builder
	if e.Done() {
		b.WriteString(m.st.good.Render("EXPERIMENT COMPLETE") + "\n\n")
		b.WriteString(m.st.value.Render("All steps finished. Press r to run again, esc for the menu.") + "\n")
	} else {
		step := e.Step()
		b.WriteString(m.st.header.Render(fmt.Sprintf("Step %d/%d  %s", st.StepIndex+1, len(exp.Steps), step.Title)) + "\n")
		b.WriteString(lipgloss.NewStyle().Width(46).Foreground(m.theme.Text).Render(step.Instructions) + "\n")
		if step.Safety != "" {
			b.WriteString(m.st.warn.Render("⚠ "+step.Safety) + "\n")
		}
		b.WriteString("\n")
		for _, c := range step.Conditions {
			if e.ConditionMet(c) {
				b.WriteString(m.st.good.Render("  ✓ "+c.Describe(exp)) + "\n")
			} else {
				b.WriteString(m.st.muted.Render("  ○ "+c.Describe(exp)) + "\n")
			}
		}
	}
	b.WriteString("\n")

	b.WriteString(m.st.label.Render("Temp") + m.st.value.Render(fmt.Sprintf("%5.1f °C  %s", st.Temperature, m.heatLabel(st))) + "\n")
	b.WriteString(m.st.label.Render("Stirring") + m.st.value.Render(st.Stirring.String()) + "\n")
	b.WriteString(m.st.label.Render("Timer") + m.st.value.Render(m.timerLabel(st)) + "\n")
	b.WriteString(m.st.label.Render("Reaction") + m.st.progressBar(st.Reaction, 24) + m.st.value.Render(fmt.Sprintf(" %3.0f%%", st.Reaction)) + "\n")
	if exp.Crystal != nil {
		b.WriteString(m.st.label.Render("Crystals") + m.st.progressBar(st.Crystal, 24) + m.st.value.Render(fmt.Sprintf(" %3.0f%%", st.Crystal)) + "\n")
	}

	if len(m.tempHistory) > 1 {
		chart := asciigraph.Plot(m.tempHistory,
			asciigraph.Height(4),
			asciigraph.Width(40),
			asciigraph.Caption("temperature"),
		)
		b.WriteString("\n" + m.st.muted.Render(chart) + "\n")
	}

	b.WriteString("\n" + m.st.header.Render("CHEMICALS") + "\n")
	for i, chem := range exp.Chemicals {
		mark := "  "
		if st.Has(chem.ID) {
			mark = m.st.good.Render("✓ ")
		}
		b.WriteString(fmt.Sprintf("  %d %s%s\n", i+1, mark, m.st.value.Render(chem.Name)))
	}

	if m.notice != "" {
		b.WriteString("\n" + m.st.bad.Render(m.notice) + "\n")
	}

	advance := "n:next (locked)"
	if e.CanAdvance() {
		advance = m.st.highlight.Render("n:NEXT STEP")
	}
	b.WriteString("\n" + m.st.muted.Render("1-9:add  h:heater  i:ice  ±:target  s:stir  t:timer  "+advance) + "\n")
	b.WriteString(m.st.muted.Render("r:reset  m:theme  ?:help  esc:menu  q:quit"))

	statsPanel := m.st.panel.Render(b.String())
	title := m.st.header.Render(strings.ToUpper(exp.Title))
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, canvasPanel, statsPanel)
}

func (m labModel) heatLabel(st *lab.State) string {
	switch {
	case st.IceBath:
		return "ice bath"
	case st.HeaterOn:
		return fmt.Sprintf("heating → %.0f °C", st.TargetTemp)
	default:
		return "off"
	}
}

func (m labModel) timerLabel(st *lab.State) string {
	state := "stopped"
	if st.TimerRunning {
		state = "running"
	}
	return fmt.Sprintf("%6.1fs (%s)", st.TimerSeconds, state)
}

func (m labModel) helpView() string {
	return m.st.panel.Render(strings.TrimSpace(`
KEYS

  1-9      add the numbered chemical (once each)
  h        toggle hot plate
  i        toggle ice bath
  up/+     raise target temperature
  down/-   lower target temperature
  s        cycle stirring off/low/medium/high
  t        start/stop the bench timer
  n        advance to the next step (when unlocked)
  r        reset the experiment
  m        cycle color theme
  ?        toggle this help
  esc      back to the experiment menu
  q        quit
`))
}
