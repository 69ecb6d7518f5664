// Package ui renders driver progress events as a Bubble Tea program.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tsxlower/internal/driver"
)

const labelWidth = 10

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	busyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// stageVerbs label a file that is inside a stage.
var stageVerbs = map[driver.Stage]string{
	driver.StageParse: "parsing",
	driver.StageLower: "lowering",
	driver.StagePrint: "printing",
	driver.StageWrite: "writing",
}

// stageShare is the part of a file's work finished when it enters a stage.
var stageShare = map[driver.Stage]float64{
	driver.StageParse: 0.1,
	driver.StageLower: 0.4,
	driver.StagePrint: 0.7,
	driver.StageWrite: 0.9,
}

type row struct {
	path    string
	stage   driver.Stage
	status  driver.Status
	elapsed time.Duration
}

func (r row) finished() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusCached || r.status == driver.StatusError
}

func (r row) share() float64 {
	if r.finished() {
		return 1
	}
	return stageShare[r.stage]
}

type model struct {
	title  string
	events <-chan driver.Event
	spin   spinner.Model
	bar    progress.Model
	rows   []row
	byPath map[string]int
	batch  string
	width  int
	done   bool
}

type eventMsg driver.Event

type doneMsg struct{}

// NewProgressModel lists files with their current stage and a bar for the
// whole batch. It quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &model{
		title:  title,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(busyStyle)),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:   make([]row, len(files)),
		byPath: make(map[string]int, len(files)),
		width:  80,
	}
	for i, f := range files {
		m.rows[i] = row{path: f, status: driver.StatusQueued}
		m.byPath[f] = i
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

// next waits for one driver event.
func (m *model) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply records ev and returns the bar animation it triggers.
func (m *model) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if label := statusLabel(ev.Stage, ev.Status); label != "" {
			m.batch = label
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok || statusLabel(ev.Stage, ev.Status) == "" {
		return nil
	}
	r := &m.rows[i]
	r.stage, r.status = ev.Stage, ev.Status
	if r.finished() {
		r.elapsed = ev.Elapsed
	}
	total := 0.0
	for _, r := range m.rows {
		total += r.share()
	}
	return m.bar.SetPercent(total / float64(len(m.rows)))
}

func (m *model) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	nameWidth := max(m.width-labelWidth-16, 20)
	for _, r := range m.rows {
		label := statusLabel(r.stage, r.status)
		fmt.Fprintf(&b, "  %s %s", styleFor(r.status).Render(fmt.Sprintf("%*s", labelWidth, label)), truncate(r.path, nameWidth))
		if r.finished() && r.elapsed > 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf("  %.1fms", float64(r.elapsed)/float64(time.Millisecond))))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *model) header() string {
	var finished, failed int
	for _, r := range m.rows {
		if r.finished() {
			finished++
		}
		if r.status == driver.StatusError {
			failed++
		}
	}
	h := m.title
	if m.batch != "" {
		h += " (" + m.batch + ")"
	}
	if m.done {
		h = "done: " + h
	} else {
		h = m.spin.View() + " " + h
	}
	counts := fmt.Sprintf("  %d/%d", finished, len(m.rows))
	if failed > 0 {
		counts += fmt.Sprintf(", %d failed", failed)
	}
	return titleStyle.Render(h) + faintStyle.Render(counts)
}

// statusLabel is the word shown for a file; "" for unknown statuses.
func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusWorking:
		return stageVerbs[stage]
	case driver.StatusQueued, driver.StatusCached, driver.StatusDone, driver.StatusError:
		return string(status)
	}
	return ""
}

func styleFor(status driver.Status) lipgloss.Style {
	switch status {
	case driver.StatusDone, driver.StatusCached:
		return okStyle
	case driver.StatusError:
		return failStyle
	case driver.StatusWorking:
		return busyStyle
	}
	return faintStyle
}

// truncate shortens s to width display cells, ending in "..." when there
// is room for it.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(s, width, tail)
}
