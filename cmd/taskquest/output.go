package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/reward"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	goldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const whenLayout = "Mon 02 Jan 15:04"

func printTasks(w io.Writer, heading string, tasks []model.Task) {
	fmt.Fprintln(w, titleStyle.Render(heading))
	if len(tasks) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  (none)"))
		return
	}
	for _, task := range tasks {
		repeat := ""
		if task.Recurrence != "" {
			if rule, err := model.ParseRecurrence(task.Recurrence); err == nil {
				repeat = " " + dimStyle.Render("("+rule.Describe()+")")
			}
		}
		fmt.Fprintf(w, "  #%-4d %s  %s  %s%s\n",
			task.ID,
			task.StartAt.Local().Format(whenLayout),
			task.Label,
			goldStyle.Render(fmt.Sprintf("+%dxp +%dg", task.ExpReward, task.GoldReward)),
			repeat,
		)
	}
}

func printProfile(w io.Writer, p model.Profile, completed int) {
	fmt.Fprintln(w, titleStyle.Render(p.Name))
	fmt.Fprintf(w, "  level %d  %d/%d exp  %s\n", p.Level, p.Experience, model.ExpPerLevel, progressBar(reward.Progress(p), 20))
	fmt.Fprintf(w, "  gold  %s\n", goldStyle.Render(fmt.Sprintf("%d", p.Gold)))
	fmt.Fprintf(w, "  quests completed: %d\n", completed)
}

func printRewards(w io.Writer, gold int, items []model.RewardItem) {
	fmt.Fprintln(w, titleStyle.Render("Shop")+"  balance "+goldStyle.Render(fmt.Sprintf("%d gold", gold)))
	if len(items) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  (empty)"))
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "  #%-4d %-28s %s\n", item.ID, item.Title, goldStyle.Render(fmt.Sprintf("%d gold", item.Cost)))
	}
}

func printMilestones(w io.Writer, items []model.Milestone) {
	fmt.Fprintln(w, titleStyle.Render("Milestones"))
	if len(items) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  (none)"))
		return
	}
	for _, ms := range items {
		mark := ""
		if ms.Done() {
			mark = " " + okStyle.Render("done")
		}
		fmt.Fprintf(w, "  #%-4d %-24s %d/%d %s%s\n", ms.ID, ms.Title, ms.Progress, ms.Target, progressBar(ms.Fraction(), 10), mark)
	}
}

func progressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
