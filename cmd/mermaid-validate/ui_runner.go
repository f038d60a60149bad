package main

import (
	"bytes"
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"mermaid-validate/internal/runner"
	"mermaid-validate/internal/ui"
	"mermaid-validate/internal/validator"
)

type runOutcome struct {
	summary runner.Summary
	err     error
}

// runWithUI runs the validation behind a progress view. Text output is
// buffered and printed once the view has exited.
func runWithUI(ctx context.Context, title, input string, v *validator.Validator, opts runner.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := opts.Stdout
	var buf bytes.Buffer
	opts.Stdout = &buf

	events := make(chan runner.Event, 256)
	opts.Progress = runner.ChannelSink{Ch: events}
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		sum, err := runner.New(v, opts).Run(ctx, input)
		outcomeCh <- runOutcome{summary: sum, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()

	// ctrl+c в интерфейсе: останавливаем прогон и вычитываем оставшиеся события
	cancel()
	for range events {
	}
	outcome := <-outcomeCh

	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}
	if uiErr != nil && outcome.err == nil {
		return uiErr
	}
	return outcome.err
}
