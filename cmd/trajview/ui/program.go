package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram wraps the model in a full-screen program bound to ctx.
// Extra options are applied after the defaults.
func NewProgram(ctx context.Context, m Model, opts ...tea.ProgramOption) *tea.Program {
	defaults := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	return tea.NewProgram(m, append(defaults, opts...)...)
}

// Run shows the viewer and blocks until the user quits or ctx is cancelled.
// Both count as a normal close.
func Run(p *tea.Program) error {
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
