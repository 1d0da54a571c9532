package views

import (
	"fmt"
	"strings"
)

type TasksPanelData struct {
	TableView string
	Count     int
}

type TaskDetailData struct {
	ID          int64
	Title       string
	When        string
	Recurrence  string
	ExpReward   int
	GoldReward  int
	CalendarRef string
	Upcoming    []string
}

type HistoryItemData struct {
	ID    int64
	Title string
	When  string
	Gold  int
	Exp   int
}

type HistoryPanelData struct {
	Items     []HistoryItemData
	Selected  int
	Completed int
}

type ShopItemData struct {
	ID    int64
	Title string
	Cost  int
}

type ShopPanelData struct {
	Gold     int
	Items    []ShopItemData
	Selected int
}

type MilestoneData struct {
	ID           int64
	Title        string
	Progress     int
	Target       int
	ProgressView string
}

type ProfilePanelData struct {
	Name         string
	Level        int
	Experience   int
	ExpPerLevel  int
	Gold         int
	Completed    int
	ProgressView string
	Milestones   []MilestoneData
	Selected     int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("quests (%d active):\n", data.Count))
	b.WriteString("actions: [j/k]move [enter]complete [x]delete [/]command\n")
	if data.Count == 0 {
		b.WriteString("(no active quests, try /add stretch at:18:00)")
		return b.String()
	}
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

// TaskDetailMarkdown describes the selected task for the markdown pane.
func TaskDetailMarkdown(data TaskDetailData) string {
	if data.ID == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("## #%d %s\n\n", data.ID, data.Title))
	b.WriteString(fmt.Sprintf("- **When:** %s\n", data.When))
	b.WriteString(fmt.Sprintf("- **Reward:** %d exp, %d gold\n", data.ExpReward, data.GoldReward))
	if data.Recurrence != "" {
		b.WriteString(fmt.Sprintf("- **Repeats:** %s\n", data.Recurrence))
	}
	if data.CalendarRef != "" {
		b.WriteString(fmt.Sprintf("- **Calendar:** `%s`\n", data.CalendarRef))
	} else {
		b.WriteString("- **Calendar:** not linked\n")
	}
	if len(data.Upcoming) > 0 {
		b.WriteString("\n### Upcoming\n\n")
		for _, u := range data.Upcoming {
			b.WriteString("- " + u + "\n")
		}
	}
	return b.String()
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("history (%d completed):\n", data.Completed))
	b.WriteString("actions: [j/k]move [x]delete\n")
	if len(data.Items) == 0 {
		b.WriteString("(nothing completed yet)")
		return b.String()
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s #%d %s %s +%dxp +%dg\n", cursor, item.ID, Done(item.Title), item.When, item.Exp, item.Gold))
	}
	return strings.TrimSpace(b.String())
}

func RenderShopPanel(data ShopPanelData) string {
	var b strings.Builder
	b.WriteString("shop:\n")
	b.WriteString("balance: " + Gold(fmt.Sprintf("%d gold", data.Gold)) + "\n")
	b.WriteString("actions: [j/k]move [enter]buy\n")
	if len(data.Items) == 0 {
		b.WriteString("(shop is empty, try /reward 300 movie night)")
		return b.String()
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Selected {
			cursor = ">"
		}
		affordable := ""
		if item.Cost > data.Gold {
			affordable = " (need more gold)"
		}
		b.WriteString(fmt.Sprintf("%s #%d %-24s %5d gold%s\n", cursor, item.ID, item.Title, item.Cost, affordable))
	}
	return strings.TrimSpace(b.String())
}

func RenderProfilePanel(data ProfilePanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("hero: %s\n", data.Name))
	b.WriteString(fmt.Sprintf("level %d  %d/%d exp\n", data.Level, data.Experience, data.ExpPerLevel))
	b.WriteString(data.ProgressView + "\n")
	b.WriteString("gold: " + Gold(fmt.Sprintf("%d", data.Gold)) + "\n")
	b.WriteString(fmt.Sprintf("quests completed: %d\n", data.Completed))
	b.WriteString("\nmilestones: [j/k]move [+]step\n")
	if len(data.Milestones) == 0 {
		b.WriteString("(none, try /milestone read 12 books target:12)")
		return b.String()
	}
	for i, ms := range data.Milestones {
		cursor := " "
		if i == data.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s #%d %s %d/%d\n  %s\n", cursor, ms.ID, ms.Title, ms.Progress, ms.Target, ms.ProgressView))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
