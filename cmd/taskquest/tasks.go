package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/taskquest/internal/app"
	"github.com/sandeepkv93/taskquest/internal/commands"
	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/storage"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...> [at:WHEN] [for:DURATION] [every:FREQ] [exp:N] [gold:N]",
		Short: "Add a quest",
		Long: `Add a quest. Options are key:value tokens after the title:
  at:18:30, at:+90m, at:2026-03-01T07:15   start time
  for:45m                                  duration (default 1h)
  every:daily|weekly|monthly|yearly[/N]    repeat rule
  exp:N gold:N                             reward overrides`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := commands.Parse("add " + strings.Join(args, " "))
			if err != nil {
				return err
			}
			in, err := parsed.Add.NewTask(time.Now())
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				task, err := a.Engine.AddTask(ctx, in)
				if err != nil {
					return err
				}
				calendarNote := ""
				if task.HasCalendarEvent() {
					calendarNote = dimStyle.Render(" (on calendar)")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s%s\n", okStyle.Render("added"), task.ID, task.Label, calendarNote)
				return nil
			})
		},
	}
}

func listCmd() *cobra.Command {
	var (
		done   bool
		limit  int
		offset int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active quests, or completed ones with --done",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				filter := storage.ActiveFilter()
				heading := "Active quests"
				if done {
					filter = storage.CompletedFilter()
					heading = "Completed quests"
				}
				filter.Limit = limit
				filter.Offset = offset
				tasks, err := a.Engine.ListTasks(ctx, filter)
				if err != nil {
					return err
				}
				printTasks(cmd.OutOrStdout(), heading, tasks)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&done, "done", "d", false, "List completed quests")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many results")
	return cmd
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete"},
		Short:   "Complete a quest and collect its reward",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				task, err := a.Engine.Task(ctx, id)
				if err != nil {
					return err
				}
				p, err := a.Engine.CompleteTaskAndSync(ctx, task)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", okStyle.Render("quest complete:"), task.Label,
					goldStyle.Render(fmt.Sprintf("+%d exp +%d gold", task.ExpReward, task.GoldReward)))
				fmt.Fprintf(cmd.OutOrStdout(), "  level %d  %d/%d exp  %s\n", p.Level, p.Experience, model.ExpPerLevel, goldStyle.Render(fmt.Sprintf("%d gold", p.Gold)))
				return nil
			})
		},
	}
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a quest",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				task, err := a.Engine.Task(ctx, id)
				if err != nil {
					return err
				}
				if err := a.Engine.DeleteTask(ctx, task); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", okStyle.Render("deleted"), task.ID, task.Label)
				return nil
			})
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
