package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/taskquest/internal/model"
)

// NewModel subscribes to backend and returns a model showing the quest list.
// Close releases the subscriptions.
func NewModel(ctx context.Context, backend Backend) Model {
	m := Model{
		CurrentView: ViewTasks,
		Profile:     model.DefaultProfile(),
		Cursors:     make(map[View]int),
		Keys: GlobalKeyMap{
			Tasks:   "1",
			History: "2",
			Shop:    "3",
			Profile: "4",
			Help:    "?",
			Quit:    "q",
		},
		ctx:     ctx,
		backend: backend,
		now:     time.Now,
	}
	if backend != nil {
		m.subs = &subscriptions{
			active:     backend.ActiveTasks(ctx),
			history:    backend.CompletedTasks(ctx),
			completed:  backend.CompletedCount(ctx),
			profile:    backend.ProfileUpdates(ctx),
			rewards:    backend.RewardUpdates(ctx),
			milestones: backend.MilestoneUpdates(ctx),
		}
	}
	m.initBubbleComponents()
	return m
}

func (m Model) Close() {
	m.subs.cancel()
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "When", Width: 16},
		{Title: "Quest", Width: 22},
		{Title: "Reward", Width: 10},
	}
	m.taskTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.levelProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

func (m *Model) syncBubbleData() {
	m.taskTable.SetRows(taskRows(m.Tasks))
	if len(m.Tasks) > 0 {
		m.taskTable.SetCursor(m.cursor(ViewTasks))
	}
}

func (m Model) cursor(v View) int {
	n := m.itemCount(v)
	c := m.Cursors[v]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func (m Model) itemCount(v View) int {
	switch v {
	case ViewTasks:
		return len(m.Tasks)
	case ViewHistory:
		return len(m.History)
	case ViewShop:
		return len(m.Rewards)
	case ViewProfile:
		return len(m.Milestones)
	}
	return 0
}

func (m *Model) moveCursor(delta int) {
	if m.Cursors == nil {
		m.Cursors = make(map[View]int)
	}
	m.Cursors[m.CurrentView] = m.cursor(m.CurrentView) + delta
	m.Cursors[m.CurrentView] = m.cursor(m.CurrentView)
}

func (m Model) selectedTask() (model.Task, bool) {
	if len(m.Tasks) == 0 {
		return model.Task{}, false
	}
	return m.Tasks[m.cursor(ViewTasks)], true
}

func (m Model) selectedHistory() (model.Task, bool) {
	if len(m.History) == 0 {
		return model.Task{}, false
	}
	return m.History[m.cursor(ViewHistory)], true
}

func (m Model) selectedReward() (model.RewardItem, bool) {
	if len(m.Rewards) == 0 {
		return model.RewardItem{}, false
	}
	return m.Rewards[m.cursor(ViewShop)], true
}

func (m Model) selectedMilestone() (model.Milestone, bool) {
	if len(m.Milestones) == 0 {
		return model.Milestone{}, false
	}
	return m.Milestones[m.cursor(ViewProfile)], true
}
