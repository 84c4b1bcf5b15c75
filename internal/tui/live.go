package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/flipdeck/flipdeck/internal/config"
	"github.com/flipdeck/flipdeck/internal/flip"
)

const (
	canvasCols      = 62
	canvasRows      = 22
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	presetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives an interactive card flip in the terminal.
type Model struct {
	anim      flip.Config
	ctrl      *flip.Controller
	tick      time.Duration
	canvas    *Canvas
	preset    string
	presets   []string
	trail     []struct{ x, y int }
	angleHist []float64
	showHelp  bool
}

// NewModel builds the interactive state from an app config. The preset
// name is informational and may be empty for hand-tuned settings.
func NewModel(cfg *config.Config, preset string) (Model, error) {
	anim, err := cfg.Animation()
	if err != nil {
		return Model{}, err
	}
	ctrl, err := flip.New(anim)
	if err != nil {
		return Model{}, err
	}
	presets := config.ListPresets()
	sort.Strings(presets)

	return Model{
		anim:      anim,
		ctrl:      ctrl,
		tick:      cfg.Tick(),
		canvas:    NewCanvas(canvasCols, canvasRows),
		preset:    preset,
		presets:   presets,
		trail:     make([]struct{ x, y int }, 0, trailCapacity),
		angleHist: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles key presses and advances the flip on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "f", "enter":
			m.ctrl.Flip()
		case "a":
			next := m.anim
			if next.Axis == flip.Vertical {
				next.Axis = flip.Horizontal
			} else {
				next.Axis = flip.Vertical
			}
			if m.rebuild(next) {
				m.preset = ""
			}
		case "b":
			next := m.anim
			if next.Backface == flip.BackfaceTracking {
				next.Backface = flip.BackfacePinned
			} else {
				next.Backface = flip.BackfaceTracking
			}
			if m.rebuild(next) {
				m.preset = ""
			}
		case "p", "tab":
			m.cyclePreset()
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.ctrl.Advance(m.tick)
		fr := m.ctrl.Frame()
		m.angleHist = append(m.angleHist, fr.Angle)
		if len(m.angleHist) > historyCapacity {
			m.angleHist = m.angleHist[1:]
		}
		if m.ctrl.Animating() {
			x, y := m.projectCorner(fr, 2)
			m.trail = append(m.trail, struct{ x, y int }{x, y})
			if len(m.trail) > trailCapacity {
				m.trail = m.trail[1:]
			}
		}
		return m, tea.Tick(m.tick, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// rebuild swaps the controller for one carrying cfg, preserving the
// side the card currently rests on. Ignored mid-flip.
func (m *Model) rebuild(cfg flip.Config) bool {
	if m.ctrl.Animating() {
		return false
	}
	cfg.Orientation = m.ctrl.Orientation()
	ctrl, err := flip.New(cfg)
	if err != nil {
		return false
	}
	m.anim = cfg
	m.ctrl = ctrl
	m.trail = m.trail[:0]
	return true
}

func (m *Model) cyclePreset() {
	if len(m.presets) == 0 {
		return
	}
	idx := 0
	for i, name := range m.presets {
		if name == m.preset {
			idx = (i + 1) % len(m.presets)
			break
		}
	}
	cfg := config.GetPreset(m.presets[idx])
	if cfg == nil {
		return
	}
	anim, err := cfg.Animation()
	if err != nil {
		return
	}
	if m.rebuild(anim) {
		m.preset = m.presets[idx]
	}
}

// reset rebuilds the controller at its configured starting side and
// clears the visual history.
func (m *Model) reset() {
	ctrl, err := flip.New(m.anim)
	if err != nil {
		return
	}
	m.ctrl = ctrl
	m.trail = m.trail[:0]
	m.angleHist = m.angleHist[:0]
}

func (m Model) presetName() string {
	if m.preset == "" {
		return "custom"
	}
	return m.preset
}

// View renders the canvas beside a status panel.
func (m Model) View() string {
	m.draw()
	fr := m.ctrl.Frame()
	stats := m.ctrl.Stats()

	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("FLIPDECK") + "\n")
	status := "RESTING"
	if m.ctrl.Animating() {
		status = "FLIPPING"
	}
	s.WriteString(status + "\n\n")

	if len(m.angleHist) > 1 {
		chart := asciigraph.Plot(m.angleHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Angle (rad)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Preset") + presetStyle.Render(m.presetName()) + "\n")
	s.WriteString(labelStyle.Render("Axis") + valueStyle.Render(m.anim.Axis.String()) + "\n")
	s.WriteString(labelStyle.Render("Backface") + valueStyle.Render(m.anim.Backface.String()) + "\n")
	s.WriteString(labelStyle.Render("Face") + valueStyle.Render(fr.Face.String()) + "\n")
	s.WriteString(labelStyle.Render("Rest side") + valueStyle.Render(m.ctrl.Orientation().String()) + "\n")
	s.WriteString(labelStyle.Render("Progress") + valueStyle.Render(fmt.Sprintf("%s %.2f", progressBar(fr.Progress, 14), fr.Progress)) + "\n")
	s.WriteString(labelStyle.Render("Angle") + valueStyle.Render(fmt.Sprintf("%+.2f rad", fr.Angle)) + "\n")

	s.WriteString("\nCOUNTERS\n")
	s.WriteString(labelStyle.Render("Ticks") + valueStyle.Render(fmt.Sprintf("%d", stats.Ticks)) + "\n")
	s.WriteString(labelStyle.Render("Published") + valueStyle.Render(fmt.Sprintf("%d", stats.Published)) + "\n")
	s.WriteString(labelStyle.Render("Skipped") + valueStyle.Render(fmt.Sprintf("%d", stats.Skipped)) + "\n")
	s.WriteString(labelStyle.Render("Flips") + valueStyle.Render(fmt.Sprintf("%d", stats.Flips)) + "\n")
	s.WriteString(labelStyle.Render("Dropped") + valueStyle.Render(fmt.Sprintf("%d", stats.Dropped)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Flip A:Axis B:Backface\nP:Preset R:Reset Q:Quit ?:Help"))

	panelView := panelStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space/F  - Flip the card            ║
║  A        - Toggle flip axis         ║
║  B        - Toggle backface mode     ║
║  P/Tab    - Cycle presets            ║
║  R        - Reset to the start side  ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

func progressBar(p float64, width int) string {
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	filled := int(p * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
