package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gapsim/internal/annotation"
	"github.com/san-kum/gapsim/internal/metrics"
	"github.com/san-kum/gapsim/internal/playback"
	"github.com/san-kum/gapsim/internal/scale"
	"github.com/san-kum/gapsim/internal/scene"
	"go.uber.org/zap"
)

const (
	width  = 80
	height = 24
	fps    = 60
)

// TickMsg advances interpolation to the carried time.
type TickMsg time.Time

// StepMsg advances playback by one frame.
type StepMsg time.Time

type Options struct {
	// Interval is the time between playback steps.
	Interval time.Duration
	Theme    string
	// Collector, when set, must already observe the scheduler. Its history
	// feeds the side panel.
	Collector *metrics.Collector
	Logger    *zap.Logger
}

// Model is the playback view. It owns no playback state of its own: the
// scheduler decides the frame and the scene decides what is drawn.
type Model struct {
	sched     *playback.Scheduler
	scene     *scene.Reconciler
	canvas    *Canvas
	interval  time.Duration
	theme     Theme
	styles    styleSet
	collector *metrics.Collector
	legend    []annotation.LegendEntry
	year      int
	last      time.Time
	showHelp  bool
	err       error
	logger    *zap.Logger
}

// NewModel starts the scheduler and renders its first frame.
func NewModel(s *playback.Scheduler, opts Options) (Model, error) {
	if opts.Interval <= 0 {
		opts.Interval = playback.DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	theme := GetTheme(opts.Theme)

	m := Model{
		sched:     s,
		scene:     s.Reconciler(),
		canvas:    NewCanvas(width, height),
		interval:  opts.Interval,
		theme:     theme,
		styles:    newStyles(theme),
		collector: opts.Collector,
		legend:    annotation.Legend(s.Reconciler().Scales().Color.Palette()),
		logger:    opts.Logger,
	}

	f, err := s.Start()
	if err != nil {
		return Model{}, err
	}
	m.year = f.Year
	m.draw()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.step())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) step() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return StepMsg(t) })
}

// Err is the error that ended playback, if any.
func (m Model) Err() error { return m.err }

// Year is the label of the frame on screen.
func (m Model) Year() int { return m.year }

func (m Model) Theme() Theme { return m.theme }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
			m.draw()
		}
	case TickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() && now.After(m.last) {
			m.scene.Advance(now.Sub(m.last))
		}
		m.last = now
		m.draw()
		return m, m.tick()
	case StepMsg:
		f, err := m.sched.Step()
		if err != nil {
			m.err = err
			m.logger.Error("playback step failed", zap.Error(err))
			return m, tea.Quit
		}
		m.year = f.Year
		return m, m.step()
	}
	return m, nil
}

// toCanvas maps plot coordinates to canvas dots.
func (m *Model) toCanvas(x, y float64) (float64, float64) {
	sc := m.scene.Scales()
	pw, ph := sc.X.Range.Max, sc.Y.Range.Min
	return x / pw * float64(m.canvas.SubWidth()-1), y / ph * float64(m.canvas.SubHeight()-1)
}

func (m *Model) draw() {
	m.canvas.Clear()
	axis := string(m.theme.Axis)
	w, h := m.canvas.SubWidth()-1, m.canvas.SubHeight()-1

	m.canvas.DrawLine(0, 0, 0, h, axis)
	m.canvas.DrawLine(0, h, w, h, axis)
	for _, v := range scale.XTickValues {
		x, _ := m.toCanvas(m.scene.Scales().X.Map(v), 0)
		m.canvas.DrawLine(int(x), h-2, int(x), h, axis)
	}

	glyphs := m.scene.Glyphs()
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].R > glyphs[j].R })
	sx := float64(m.canvas.SubWidth()-1) / m.scene.Scales().X.Range.Max
	for _, g := range glyphs {
		cx, cy := m.toCanvas(g.X, g.Y)
		m.canvas.FillCircle(cx, cy, g.R*sx, g.Fill)
	}
}

// xTicks lays the currency tick labels out under the canvas.
func (m Model) xTicks() string {
	line := []rune(strings.Repeat(" ", m.canvas.Width+8))
	for _, v := range scale.XTickValues {
		x, _ := m.toCanvas(m.scene.Scales().X.Map(v), 0)
		label := []rune(scale.FormatCurrency(v))
		start := int(x)/2 - len(label)/2
		for i, r := range label {
			if p := start + i; p >= 0 && p < len(line) {
				line[p] = r
			}
		}
	}
	return strings.TrimRight(string(line), " ")
}

func (m Model) View() string {
	st := m.styles
	state := m.sched.State()

	var left strings.Builder
	left.WriteString(st.header.Render("GAPMINDER") + "  " + st.year.Render(fmt.Sprintf("%d", m.year)) + "\n")
	left.WriteString(st.muted.Render(ProgressBar(float64(state.Frame+1)/float64(max(state.Total, 1)), width)) + "\n")
	left.WriteString(m.canvas.String())
	left.WriteString(st.muted.Render(m.xTicks()) + "\n")
	left.WriteString(st.muted.Render(annotation.XLabel + "  ·  y: " + annotation.YLabel))

	var s strings.Builder
	s.WriteString(st.header.Render("LEGEND") + "\n")
	for _, e := range m.legend {
		s.WriteString(Swatch(e.Color) + " " + st.value.Render(e.Name) + "\n")
	}

	s.WriteString("\n" + st.header.Render("FRAME") + "\n")
	s.WriteString(st.label.Render("Countries") + st.value.Render(fmt.Sprintf("%d", m.scene.Len())) + "\n")
	if m.collector != nil {
		latest := m.collector.Latest()
		s.WriteString(st.label.Render("Life expectancy") + st.value.Render(fmt.Sprintf("%.1f", latest["mean_longevity"])) + "\n")
		s.WriteString(st.label.Render("Median income") + st.value.Render(scale.FormatCurrency(latest["median_wealth"])) + "\n")
		if hist := m.collector.Series("mean_longevity"); len(hist) > 1 {
			chart := asciigraph.Plot(hist, asciigraph.Height(5), asciigraph.Width(36), asciigraph.Caption("Life expectancy"))
			s.WriteString(st.graph.Render(chart) + "\n")
		}
	}

	s.WriteString("\n" + st.header.Render("SUMMARY") + "\n")
	narrative := lipgloss.NewStyle().Width(44).Foreground(m.theme.Text)
	for _, line := range annotation.Narrative {
		s.WriteString(narrative.Render("• "+line) + "\n")
	}
	s.WriteString(st.help.Render("Q:Quit  T:Theme (" + m.theme.Name + ")  ?:Help"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, left.String(), st.panel.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + main
	}
	return main
}
