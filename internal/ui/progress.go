package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// StepStatus represents the status of one tracked URL.
type StepStatus int

const (
	StatusPending StepStatus = iota
	StatusRunning
	StatusComplete
	StatusFailed
	StatusSkipped
)

// Step is one row of the progress display.
type Step struct {
	Name    string
	Status  StepStatus
	Message string // score or error summary
}

// maxStepWidth truncates long URLs in the step list.
const maxStepWidth = 72

// ProgressModel is the Bubble Tea model for the scoring progress display.
type ProgressModel struct {
	spinner  spinner.Model
	steps    []Step
	title    string
	done     bool
	err      error
	width    int
	quitting bool
	started  time.Time
}

// ProgressOption configures the progress model.
type ProgressOption func(*ProgressModel)

// WithTitle sets the title for the progress display.
func WithTitle(title string) ProgressOption {
	return func(m *ProgressModel) {
		m.title = title
	}
}

// WithSteps initializes one pending row per name.
func WithSteps(names []string) ProgressOption {
	return func(m *ProgressModel) {
		m.steps = make([]Step, len(names))
		for i, name := range names {
			m.steps[i] = Step{Name: name, Status: StatusPending}
		}
	}
}

// NewProgressModel creates a new progress model.
func NewProgressModel(opts ...ProgressOption) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	m := ProgressModel{spinner: s, width: 80, started: time.Now()}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// ProgressMsg updates one row.
type ProgressMsg struct {
	StepIndex int
	Status    StepStatus
	Message   string
}

// DoneMsg signals that scoring has finished.
type DoneMsg struct {
	Err error
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.StepIndex >= 0 && msg.StepIndex < len(m.steps) {
			m.steps[msg.StepIndex].Status = msg.Status
			m.steps[msg.StepIndex].Message = msg.Message
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// Counts returns how many rows have finished and how many failed.
func (m ProgressModel) Counts() (finished, failed int) {
	for _, s := range m.steps {
		switch s.Status {
		case StatusComplete, StatusSkipped:
			finished++
		case StatusFailed:
			finished++
			failed++
		}
	}
	return finished, failed
}

func (m ProgressModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	return tea.NewView(m.render())
}

func (m ProgressModel) render() string {
	var b strings.Builder
	finished, failed := m.Counts()

	if m.title != "" {
		b.WriteString(Title.Render(m.title))
		b.WriteString(" ")
	}
	b.WriteString(Dim.Render(fmt.Sprintf("%d/%d", finished, len(m.steps))))
	b.WriteString("\n\n")

	for i, step := range m.steps {
		var icon string
		var style styleWrapper

		switch step.Status {
		case StatusPending:
			icon = Muted.Render("○")
			style = StepPending
		case StatusRunning:
			icon = m.spinner.View()
			style = StepRunning
		case StatusComplete:
			icon = GetCheckMark()
			style = StepComplete
		case StatusFailed:
			icon = GetCrossMark()
			style = StepFailed
		case StatusSkipped:
			icon = Warning.Render("⊘")
			style = StepSkipped
		}

		b.WriteString(icon + " " + style.Render(truncate(step.Name, maxStepWidth)))
		if step.Message != "" && step.Status != StatusPending && step.Status != StatusRunning {
			b.WriteString(Dim.Render(" → " + step.Message))
		}
		if i < len(m.steps)-1 {
			b.WriteString("\n")
		}
	}

	if m.done {
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(ErrorBox.Render(GetCrossMark() + " " + m.err.Error()))
		} else {
			elapsed := time.Since(m.started).Round(time.Millisecond)
			line := fmt.Sprintf("✓ Scored %d/%d URLs in %s", finished-failed, len(m.steps), elapsed)
			if failed > 0 {
				line += fmt.Sprintf(", %d failed", failed)
			}
			b.WriteString(Success.Render(line))
		}
	}

	return b.String()
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// ProgressTracker drives a ProgressModel without exposing Bubble Tea to the
// caller. All methods are safe for concurrent use.
type ProgressTracker struct {
	program *tea.Program
	title   string
	steps   []string
	mu      sync.Mutex
	running bool
	exited  chan struct{}
}

// NewProgressTracker creates a tracker with one row per step name.
func NewProgressTracker(title string, steps []string) *ProgressTracker {
	return &ProgressTracker{title: title, steps: steps}
}

// Start begins the progress display.
func (pt *ProgressTracker) Start() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if pt.running {
		return
	}

	model := NewProgressModel(WithTitle(pt.title), WithSteps(pt.steps))
	pt.program = tea.NewProgram(model, tea.WithoutSignalHandler())
	pt.running = true
	pt.exited = make(chan struct{})

	go func() {
		defer close(pt.exited)
		_, _ = pt.program.Run()
	}()
}

// UpdateStep updates a row's status.
func (pt *ProgressTracker) UpdateStep(index int, status StepStatus, message string) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if pt.program == nil || !pt.running {
		return
	}
	pt.program.Send(ProgressMsg{StepIndex: index, Status: status, Message: message})
}

// Complete renders the final state and waits for the program to exit.
func (pt *ProgressTracker) Complete(err error) {
	pt.mu.Lock()
	if pt.program == nil || !pt.running {
		pt.mu.Unlock()
		return
	}
	pt.program.Send(DoneMsg{Err: err})
	pt.running = false
	exited := pt.exited
	pt.mu.Unlock()

	select {
	case <-exited:
	case <-time.After(2 * time.Second):
	}
}

// Stop stops the progress display without marking it complete.
func (pt *ProgressTracker) Stop() {
	pt.mu.Lock()
	if pt.program == nil || !pt.running {
		pt.mu.Unlock()
		return
	}
	pt.program.Quit()
	pt.running = false
	exited := pt.exited
	pt.mu.Unlock()

	select {
	case <-exited:
	case <-time.After(2 * time.Second):
	}
}
