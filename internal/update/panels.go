package update

import (
	"strings"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/reward"
	"github.com/sandeepkv93/taskquest/internal/views"
)

const upcomingPreview = 3

func (m Model) renderTasksView() string {
	m.syncBubbleData()
	return views.RenderTasksPanel(views.TasksPanelData{
		TableView: m.taskTable.View(),
		Count:     len(m.Tasks),
	})
}

func (m Model) renderTaskDetail() string {
	task, ok := m.selectedTask()
	if !ok {
		return ""
	}
	data := views.TaskDetailData{
		ID:         task.ID,
		Title:      task.Label,
		When:       formatWhen(task.StartAt) + " - " + task.EndAt.Local().Format("15:04"),
		ExpReward:  task.ExpReward,
		GoldReward: task.GoldReward,
	}
	if task.HasCalendarEvent() {
		data.CalendarRef = *task.CalendarEventID
	}
	if task.Recurrence != "" {
		if rule, err := model.ParseRecurrence(task.Recurrence); err == nil {
			data.Recurrence = rule.Describe()
			if next, err := rule.Preview(task.StartAt, m.now(), upcomingPreview); err == nil {
				for _, at := range next {
					data.Upcoming = append(data.Upcoming, formatWhen(at))
				}
			}
		}
	}
	return views.RenderMarkdown(views.TaskDetailMarkdown(data))
}

func (m Model) renderHistoryView() string {
	items := make([]views.HistoryItemData, 0, len(m.History))
	for _, task := range m.History {
		items = append(items, views.HistoryItemData{
			ID:    task.ID,
			Title: strings.TrimSpace(strings.TrimPrefix(task.Label, model.CompletedMarker)),
			When:  formatWhen(task.StartAt),
			Gold:  task.GoldReward,
			Exp:   task.ExpReward,
		})
	}
	return views.RenderHistoryPanel(views.HistoryPanelData{
		Items:     items,
		Selected:  m.cursor(ViewHistory),
		Completed: m.CompletedCount,
	})
}

func (m Model) renderShopView() string {
	items := make([]views.ShopItemData, 0, len(m.Rewards))
	for _, item := range m.Rewards {
		items = append(items, views.ShopItemData{ID: item.ID, Title: item.Title, Cost: item.Cost})
	}
	return views.RenderShopPanel(views.ShopPanelData{
		Gold:     m.Profile.Gold,
		Items:    items,
		Selected: m.cursor(ViewShop),
	})
}

func (m Model) renderProfileView() string {
	milestones := make([]views.MilestoneData, 0, len(m.Milestones))
	for _, ms := range m.Milestones {
		milestones = append(milestones, views.MilestoneData{
			ID:           ms.ID,
			Title:        ms.Title,
			Progress:     ms.Progress,
			Target:       ms.Target,
			ProgressView: m.levelProgress.ViewAs(ms.Fraction()),
		})
	}
	return views.RenderProfilePanel(views.ProfilePanelData{
		Name:         m.Profile.Name,
		Level:        m.Profile.Level,
		Experience:   m.Profile.Experience,
		ExpPerLevel:  model.ExpPerLevel,
		Gold:         m.Profile.Gold,
		Completed:    m.CompletedCount,
		ProgressView: m.levelProgress.ViewAs(reward.Progress(m.Profile)),
		Milestones:   milestones,
		Selected:     m.cursor(ViewProfile),
	})
}
