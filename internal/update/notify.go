package update

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskquest/internal/reminder"
)

type messageSender interface {
	Send(msg tea.Msg)
}

// ProgramNotifier forwards delivered reminders into a running program. It
// drops notifications until Attach is called.
type ProgramNotifier struct {
	mu      sync.Mutex
	program messageSender
}

func (p *ProgramNotifier) Attach(program messageSender) {
	p.mu.Lock()
	p.program = program
	p.mu.Unlock()
}

func (p *ProgramNotifier) Send(_ context.Context, n reminder.Notification) error {
	p.mu.Lock()
	program := p.program
	p.mu.Unlock()
	if program == nil {
		return nil
	}
	program.Send(NotificationMsg{Title: n.Title, Body: n.Body})
	return nil
}
