package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bbpcalc/internal/bbp"
	"github.com/agbru/bbpcalc/internal/config"
	"github.com/agbru/bbpcalc/internal/format"
	"github.com/agbru/bbpcalc/internal/orchestration"
	appprogress "github.com/agbru/bbpcalc/internal/progress"
	"github.com/agbru/bbpcalc/internal/sysmon"
)

// statsInterval is how often the host CPU/memory gauges refresh.
const statsInterval = 500 * time.Millisecond

type (
	progressMsg appprogress.ProgressUpdate
	resultsMsg  []orchestration.ExtractionResult
	statsMsg    sysmon.Stats
)

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Quit}} }

var defaultKeys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// model is the dashboard state: one progress bar per engine, host gauges,
// and the final results once the extraction finishes.
type model struct {
	cfg     config.AppConfig
	version string

	engineNames []string
	bars        []progress.Model
	values      []float64

	stats   sysmon.Stats
	results []orchestration.ExtractionResult
	done    bool
	start   time.Time

	keys keyMap
	help help.Model
}

func newModel(cfg config.AppConfig, extractors []bbp.Extractor, version string) model {
	names := make([]string, len(extractors))
	bars := make([]progress.Model, len(extractors))
	for i, ex := range extractors {
		names[i] = ex.Name()
		bars[i] = progress.New(progress.WithDefaultGradient())
	}
	return model{
		cfg:         cfg,
		version:     version,
		engineNames: names,
		bars:        bars,
		values:      make([]float64, len(extractors)),
		start:       time.Now(),
		keys:        defaultKeys,
		help:        help.New(),
	}
}

func statsTick() tea.Cmd {
	return tea.Tick(statsInterval, func(time.Time) tea.Msg {
		return statsMsg(sysmon.Sample())
	})
}

func (m model) Init() tea.Cmd {
	return statsTick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		barWidth := msg.Width - 32
		if barWidth < 10 {
			barWidth = 10
		}
		for i := range m.bars {
			m.bars[i].Width = barWidth
		}
		m.help.Width = msg.Width

	case progressMsg:
		if msg.CalculatorIndex >= 0 && msg.CalculatorIndex < len(m.values) {
			m.values[msg.CalculatorIndex] = msg.Value
		}

	case statsMsg:
		m.stats = sysmon.Stats(msg)
		if !m.done {
			return m, statsTick()
		}

	case resultsMsg:
		m.results = msg
		m.done = true
		for i := range m.values {
			m.values[i] = 1.0
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("bbpcalc %s — π hex digits at position %d", m.version, m.cfg.Position)))
	b.WriteString("\n")

	for i, name := range m.engineNames {
		b.WriteString(engineNameStyle.Render(name))
		b.WriteString(m.bars[i].ViewAs(m.values[i]))
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString("\n")
		for _, res := range m.results {
			if res.Err != nil {
				b.WriteString(fmt.Sprintf("%s %s  %s (%s)\n",
					statusFailStyle.Render("✗"), res.Name, res.Err, format.FormatExecutionDuration(res.Duration)))
				continue
			}
			b.WriteString(fmt.Sprintf("%s %s  %s (%s)\n",
				statusOKStyle.Render("✓"), res.Name,
				digitsStyle.Render(res.Digits), format.FormatExecutionDuration(res.Duration)))
		}
	}

	b.WriteString(statsStyle.Render(fmt.Sprintf("host  cpu %5.1f%%  mem %5.1f%%  elapsed %s",
		m.stats.CPUPercent, m.stats.MemPercent, time.Since(m.start).Round(time.Second))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}
