package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/bnema/halo-bridge/internal/application"
	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type attachFunc func(context.Context, application.AttachCommand) (application.AttachResult, error)

type attachDoneMsg struct {
	result application.AttachResult
	err    error
}

var (
	attachOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	attachFailedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// attachProgressModel runs one attach and keeps its result; the last frame stays on the terminal.
type attachProgressModel struct {
	spinner  spinner.Model
	fileName string
	target   string
	run      tea.Cmd
	result   application.AttachResult
	err      error
	done     bool
}

func newAttachProgressModel(ctx context.Context, command application.AttachCommand, attach attachFunc) attachProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return attachProgressModel{
		spinner:  s,
		fileName: filepath.Base(command.FilePath),
		target:   command.AssessmentID,
		run: func() tea.Msg {
			result, err := attach(ctx, command)
			return attachDoneMsg{result: result, err: err}
		},
	}
}

func (m attachProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m attachProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case attachDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m attachProgressModel) View() string {
	if !m.done {
		return fmt.Sprintf("%s Uploading %s to %s...", m.spinner.View(), m.fileName, m.target)
	}

	if m.err != nil {
		var uploadErr *domain.UploadError
		if errors.As(m.err, &uploadErr) {
			return attachFailedStyle.Render(fmt.Sprintf("x %s stopped at %s", m.fileName, uploadErr.Stage)) + "\n"
		}
		return attachFailedStyle.Render(fmt.Sprintf("x %s was not attached", m.fileName)) + "\n"
	}

	return attachOKStyle.Render(fmt.Sprintf("+ %s attached (%d file(s) on submission %s)",
		m.fileName, m.result.TotalAttachedFiles, m.result.SubmissionID)) + "\n"
}

func runAttachProgress(ctx context.Context, output io.Writer, command application.AttachCommand, attach attachFunc) (application.AttachResult, error) {
	p := tea.NewProgram(
		newAttachProgressModel(ctx, command, attach),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return application.AttachResult{}, err
	}

	model, ok := finalModel.(attachProgressModel)
	if !ok {
		return application.AttachResult{}, fmt.Errorf("unexpected final attach model type %T", finalModel)
	}

	return model.result, model.err
}
