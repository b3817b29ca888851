// Package tui renders the live compile progress view and the end-of-run
// report.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/dailyreel/clip"
	"github.com/user/dailyreel/corpus"
	"github.com/user/dailyreel/pipeline"
	"github.com/user/dailyreel/tui/components"
)

// stageMsg is sent when the driver enters a new stage.
type stageMsg struct {
	stage pipeline.Stage
}

// planMsg carries the number of days selected for extraction.
type planMsg struct {
	days int
}

// clipStartMsg is sent before a day is extracted.
type clipStartMsg struct {
	label string
}

// clipDoneMsg is sent after a day was extracted and validated, or skipped.
type clipDoneMsg struct {
	err error
}

// finishMsg is the last message of a run.
type finishMsg struct {
	rep *pipeline.Report
	err error
}

// Observer forwards driver events to the progress view over a channel.
// Sends give up once done is closed, so a view that exits early never blocks
// the driver.
type Observer struct {
	ch   chan<- tea.Msg
	done <-chan struct{}
}

func (o *Observer) send(msg tea.Msg) {
	select {
	case o.ch <- msg:
	case <-o.done:
	}
}

func (o *Observer) OnStage(stage pipeline.Stage) { o.send(stageMsg{stage}) }
func (o *Observer) OnPlan(plan *pipeline.Plan)   { o.send(planMsg{len(plan.Selections)}) }

func (o *Observer) OnClipStart(_, _ int, sel corpus.Selection) {
	o.send(clipStartMsg{sel.Date.Format(corpus.DateLayout) + "  " + sel.File.Name})
}

func (o *Observer) OnClipDone(_, _ int, _ *clip.Clip, err error) { o.send(clipDoneMsg{err}) }

func (o *Observer) OnFinish(rep *pipeline.Report, err error) { o.send(finishMsg{rep, err}) }

// waitForMsg returns a tea.Cmd that waits for the next message on the channel.
func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// model is the bubbletea model of the progress view.
type model struct {
	msgs     <-chan tea.Msg
	cancel   context.CancelFunc
	width    int
	state    components.ProgressState
	finished bool
}

func newModel(msgs <-chan tea.Msg, cancel context.CancelFunc) model {
	return model{
		msgs:   msgs,
		cancel: cancel,
		width:  ReportWidth,
		state:  components.ProgressState{Active: true},
	}
}

func (m model) Init() tea.Cmd {
	return waitForMsg(m.msgs)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, ReportWidth)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// Keep draining events: the driver still reports how far it got.
			m.state.Cancelling = true
			m.cancel()
		}
		return m, nil
	case stageMsg:
		m.state.Stage = string(msg.stage)
	case planMsg:
		m.state.Total = msg.days
	case clipStartMsg:
		m.state.CurrentFile = msg.label
	case clipDoneMsg:
		m.state.Completed++
		if msg.err != nil {
			m.state.Errors++
		}
	case finishMsg:
		m.finished = true
		m.state.Active = false
		return m, tea.Quit
	}
	return m, waitForMsg(m.msgs)
}

func (m model) View() string {
	if m.finished {
		return ""
	}
	return components.Progress(m.state, m.width) + "\n"
}

// RunCompile runs d behind the live progress view and returns the driver's
// result. Observers already set on d still receive every event.
func RunCompile(ctx context.Context, d *pipeline.Driver, opts ...tea.ProgramOption) (*pipeline.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgs := make(chan tea.Msg, 8)
	done := make(chan struct{})
	view := &Observer{ch: msgs, done: done}
	if d.Observer != nil {
		d.Observer = pipeline.Observers{d.Observer, view}
	} else {
		d.Observer = view
	}

	type result struct {
		rep *pipeline.Report
		err error
	}
	results := make(chan result, 1)
	go func() {
		rep, err := d.Run(ctx)
		results <- result{rep, err}
	}()

	_, uiErr := tea.NewProgram(newModel(msgs, cancel), opts...).Run()
	close(done)
	if uiErr != nil {
		cancel()
	}
	res := <-results
	if uiErr != nil && res.err == nil {
		return res.rep, fmt.Errorf("progress view: %w", uiErr)
	}
	return res.rep, res.err
}
