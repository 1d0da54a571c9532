package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/reward"
	"github.com/sandeepkv93/taskquest/internal/views"
)

const maxNotifications = 5

func (m Model) Init() tea.Cmd {
	if m.subs == nil {
		return nil
	}
	return tea.Batch(
		m.resubscribe(tasksMsg(nil)),
		m.resubscribe(historyMsg(nil)),
		m.resubscribe(completedCountMsg(0)),
		m.resubscribe(profileMsg{}),
		m.resubscribe(rewardsMsg(nil)),
		m.resubscribe(milestonesMsg(nil)),
	)
}

// resubscribe waits for the next snapshot of the stream that produced msg.
func (m Model) resubscribe(msg tea.Msg) tea.Cmd {
	if m.subs == nil {
		return nil
	}
	switch msg.(type) {
	case tasksMsg:
		return listen(m.subs.active, func(v []model.Task) tea.Msg { return tasksMsg(v) })
	case historyMsg:
		return listen(m.subs.history, func(v []model.Task) tea.Msg { return historyMsg(v) })
	case completedCountMsg:
		return listen(m.subs.completed, func(v int) tea.Msg { return completedCountMsg(v) })
	case profileMsg:
		return listen(m.subs.profile, func(v model.Profile) tea.Msg { return profileMsg(v) })
	case rewardsMsg:
		return listen(m.subs.rewards, func(v []model.RewardItem) tea.Msg { return rewardsMsg(v) })
	case milestonesMsg:
		return listen(m.subs.milestones, func(v []model.Milestone) tea.Msg { return milestonesMsg(v) })
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.History:
			m.CurrentView = ViewHistory
			return m, nil
		case m.Keys.Shop:
			m.CurrentView = ViewShop
			return m, nil
		case m.Keys.Profile:
			m.CurrentView = ViewProfile
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		case "j", "down":
			m.moveCursor(1)
			return m, nil
		case "k", "up":
			m.moveCursor(-1)
			return m, nil
		}
		return m.handleViewKey(typed)
	case tasksMsg:
		m.Tasks = typed
		return m, m.resubscribe(typed)
	case historyMsg:
		m.History = typed
		return m, m.resubscribe(typed)
	case completedCountMsg:
		m.CompletedCount = int(typed)
		return m, m.resubscribe(typed)
	case profileMsg:
		m.Profile = model.Profile(typed)
		return m, m.resubscribe(typed)
	case rewardsMsg:
		m.Rewards = typed
		return m, m.resubscribe(typed)
	case milestonesMsg:
		m.Milestones = typed
		return m, m.resubscribe(typed)
	case opResultMsg:
		if m.Busy > 0 {
			m.Busy--
		}
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: errorText(typed.Err), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: typed.Text, IsError: false}
		return m, nil
	case NotificationMsg:
		m.pushNotification("info", fmt.Sprintf("%s: %s", typed.Title, typed.Body))
		return m, nil
	case spinner.TickMsg:
		if m.Busy > 0 {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case SwitchViewMsg:
		m.CurrentView = typed.View
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleViewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.CurrentView {
	case ViewTasks:
		switch msg.String() {
		case "enter", " ":
			task, ok := m.selectedTask()
			if !ok {
				return m, nil
			}
			return m.start(completeOp(m.backend, task))
		case "x":
			task, ok := m.selectedTask()
			if !ok {
				return m, nil
			}
			return m.start(deleteOp(m.backend, task))
		}
	case ViewHistory:
		if msg.String() == "x" {
			task, ok := m.selectedHistory()
			if !ok {
				return m, nil
			}
			return m.start(deleteOp(m.backend, task))
		}
	case ViewShop:
		if msg.String() == "enter" {
			item, ok := m.selectedReward()
			if !ok {
				return m, nil
			}
			if item.Cost > m.Profile.Gold {
				m.Status = StatusBar{Text: errorText(&reward.InsufficientGoldError{Balance: m.Profile.Gold, Cost: item.Cost}), IsError: true}
				return m, nil
			}
			return m.start(purchaseOp(m.backend, item.ID))
		}
	case ViewProfile:
		if msg.String() == "+" || msg.String() == "enter" {
			ms, ok := m.selectedMilestone()
			if !ok {
				return m, nil
			}
			return m.start(advanceOp(m.backend, ms.ID))
		}
	}
	return m, nil
}

// start runs op in the background and shows the spinner until it reports.
func (m Model) start(op operation) (Model, tea.Cmd) {
	if m.backend == nil {
		m.Status = StatusBar{Text: "no backend attached", IsError: true}
		return m, nil
	}
	m.Busy++
	m.Status = StatusBar{Text: op.label, IsError: false}
	cmd := m.runOp(op)
	if m.Busy == 1 {
		return m, tea.Batch(cmd, m.syncSpinner.Tick)
	}
	return m, cmd
}

func (m *Model) pushNotification(level string, body string) {
	m.Notifications = append(m.Notifications, Notification{Level: level, Body: body, At: m.now()})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskDetail()
	case ViewHistory:
		leftPane = m.renderHistoryView()
	case ViewShop:
		leftPane = m.renderShopView()
	case ViewProfile:
		leftPane = m.renderProfileView()
	}
	rightPane = strings.TrimSpace(strings.Join([]string{rightPane, m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n"))

	notificationView := ""
	if len(m.Notifications) > 0 {
		last := m.Notifications[len(m.Notifications)-1]
		notificationView = views.RenderNotification(last.Level, last.Body+" @ "+last.At.Format(time.Kitchen))
	}
	if m.Busy > 0 {
		notificationView = strings.TrimSpace(notificationView + "\nsync: " + m.syncSpinner.View() + " running")
	}

	tabs := make([]string, 0, len(allViews))
	for _, v := range allViews {
		tabs = append(tabs, string(v))
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskquest | %s lv %d | %d gold", m.Profile.Name, m.Profile.Level, m.Profile.Gold),
		Tabs:         views.RenderTabs(tabs, string(m.CurrentView)),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s quests | %s history | %s shop | %s profile | / command | %s help | %s quit", m.Keys.Tasks, m.Keys.History, m.Keys.Shop, m.Keys.Profile, m.Keys.Help, m.Keys.Quit),
	})
}
