package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskquest/internal/commands"
	"github.com/sandeepkv93/taskquest/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var pending *operation
	queue := func(op operation) (commands.Result, error) {
		pending = &op
		return commands.Result{Message: op.label}, nil
	}
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			in, err := a.NewTask(m.now())
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.CurrentView = ViewTasks
			return queue(addOp(m.backend, in))
		},
		Done: func(a commands.IDArgs) (commands.Result, error) {
			return queue(completeByIDOp(m.backend, a.ID))
		},
		Remove: func(a commands.IDArgs) (commands.Result, error) {
			return queue(deleteByIDOp(m.backend, a.ID))
		},
		Buy: func(a commands.IDArgs) (commands.Result, error) {
			m.CurrentView = ViewShop
			return queue(purchaseOp(m.backend, a.ID))
		},
		Name: func(a commands.NameArgs) (commands.Result, error) {
			return queue(renameOp(m.backend, a.Name))
		},
		Reward: func(a commands.RewardArgs) (commands.Result, error) {
			m.CurrentView = ViewShop
			return queue(addRewardOp(m.backend, a.Title, a.Cost))
		},
		Milestone: func(a commands.MilestoneArgs) (commands.Result, error) {
			m.CurrentView = ViewProfile
			return queue(addMilestoneOp(m.backend, a.Title, a.Target))
		},
		Step: func(a commands.IDArgs) (commands.Result, error) {
			m.CurrentView = ViewProfile
			return queue(advanceOp(m.backend, a.ID))
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	if pending != nil {
		return m.start(*pending)
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, nil
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, fmt.Sprintf("%s\nexamples: add stretch at:18:00 every:daily | buy 2 | step 1", m.commandInput.View()))
}
