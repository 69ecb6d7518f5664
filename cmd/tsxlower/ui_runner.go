package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tsxlower/internal/driver"
	"tsxlower/internal/ui"
)

type runOutcome struct {
	result *driver.Result
	err    error
}

// runWithUI runs files through a driver built from opts while a Bubble Tea
// model renders its progress events.
func runWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	opts.Progress = driver.ChannelSink{Ch: events}
	d, err := driver.New(opts)
	if err != nil {
		return nil, err
	}
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		res, err := d.RunFiles(ctx, files)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// the model stops reading when it quits early; keep the workers unblocked
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
