package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tokentop/internal/model"
)

const (
	barWidth   = 20
	panelWidth = 44
)

var (
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	patternStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type snapshotMsg model.Snapshot

type doneMsg struct{}

// panelModel implements the Bubble Tea analysis panel.
type panelModel struct {
	cfg  model.Config
	snap model.Snapshot

	repBar  progress.Model
	confBar progress.Model

	width  int
	height int
}

func newPanelModel(cfg model.Config) *panelModel {
	newBar := func() progress.Model {
		return progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		)
	}
	return &panelModel{
		cfg:     cfg,
		repBar:  newBar(),
		confBar: newBar(),
	}
}

// Init implements tea.Model.
func (m *panelModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	case snapshotMsg:
		m.snap = model.Snapshot(msg)
		return m, nil
	case doneMsg:
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *panelModel) View() string {
	snap := m.snap
	lines := []string{titleStyle.Render("Token Statistics"), ""}

	lines = append(lines, m.statLine("Tokens/sec", fmt.Sprintf("%.1f", snap.TokensPerSecond)))
	if spark := Sparkline(snap.RateHistory); spark != "" {
		lines = append(lines, m.statLine("Rate", mutedStyle.Render(spark)))
	}

	perplexity := fmt.Sprintf("%.1f", snap.AvgPerplexity)
	if snap.AvgPerplexity > m.cfg.PerplexityThreshold {
		perplexity += warningStyle.Render(" ⚠")
	}
	lines = append(lines, m.statLine("Perplexity", perplexity))
	lines = append(lines, m.barLine("Repetition", m.repBar, snap.RepetitionRatio))
	lines = append(lines, m.barLine("Confidence", m.confBar, snap.AvgConfidence))

	if m.cfg.ShowPatterns {
		lines = append(lines, "")
		if len(snap.Patterns) == 0 {
			lines = append(lines, mutedStyle.Render("No patterns detected"))
		} else {
			lines = append(lines, labelStyle.Render("Live patterns detected:"))
			shown := snap.Patterns
			if len(shown) > maxPatternLines {
				shown = shown[:maxPatternLines]
			}
			for _, p := range shown {
				lines = append(lines, patternStyle.Render("- "+Truncate(p, panelWidth-4)))
			}
		}
	}

	if len(snap.Warnings) > 0 {
		lines = append(lines, "", warningStyle.Render("⚠ Warnings:"))
		for _, w := range snap.Warnings {
			lines = append(lines, warningStyle.Render("- "+Truncate(w, panelWidth-4)))
		}
	}

	out := panelStyle.Width(panelWidth).Render(strings.Join(lines, "\n"))
	if m.cfg.ShowPatterns && len(snap.Recent) > 0 {
		out += "\n" + m.renderRecent(snap.Recent)
	}
	return out + "\n"
}

func (m *panelModel) statLine(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-12s", label+":")) + valueStyle.Render(value)
}

func (m *panelModel) barLine(label string, bar progress.Model, value float64) string {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	percent := fmt.Sprintf(" %3.0f%%", value*100)
	return labelStyle.Render(fmt.Sprintf("%-12s", label+":")) + bar.ViewAs(value) + valueStyle.Render(percent)
}

func (m *panelModel) renderRecent(recent []model.Token) string {
	lines := []string{labelStyle.Render("Recent tokens:")}
	for _, t := range recent {
		line := fmt.Sprintf("%s %s (p:%.1f, c:%.2f)", Glyph(t.Confidence), t.Text, t.Perplexity, t.Confidence)
		lines = append(lines, mutedStyle.Render(Truncate(line, panelWidth)))
	}
	return strings.Join(lines, "\n")
}

// TUI drives the interactive panel. Snapshots arrive from the analysis
// loop via Render; Done requests a clean shutdown after the final one.
type TUI struct {
	program *tea.Program
}

// NewTUI constructs the interactive renderer. Keyboard input comes from
// the controlling terminal so that stdin stays free for the data stream;
// when no terminal is available input is disabled.
func NewTUI(cfg model.Config) *TUI {
	opts := []tea.ProgramOption{tea.WithInput(nil)}
	if tty, err := os.Open("/dev/tty"); err == nil {
		opts = []tea.ProgramOption{tea.WithInput(tty)}
	}
	return &TUI{program: tea.NewProgram(newPanelModel(cfg), opts...)}
}

// Render implements pipeline.Renderer.
func (t *TUI) Render(snap model.Snapshot) {
	t.program.Send(snapshotMsg(snap))
}

// Done asks the panel to quit once the stream is exhausted.
func (t *TUI) Done() {
	t.program.Send(doneMsg{})
}

// Run blocks until the panel exits.
func (t *TUI) Run() error {
	if _, err := t.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
