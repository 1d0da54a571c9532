package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskquest/internal/app"
	"github.com/sandeepkv93/taskquest/internal/commands"
	"github.com/sandeepkv93/taskquest/internal/storage"
	"github.com/spf13/cobra"
)

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show level, experience, gold and milestones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				p, err := a.Engine.Profile(ctx)
				if err != nil {
					return err
				}
				completed, err := a.Store.CountTasks(ctx, storage.CompletedFilter())
				if err != nil {
					return err
				}
				milestones, err := a.Engine.Milestones(ctx)
				if err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), p, completed)
				fmt.Fprintln(cmd.OutOrStdout())
				printMilestones(cmd.OutOrStdout(), milestones)
				return nil
			})
		},
	}
}

func renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rename <name...>",
		Aliases: []string{"name"},
		Short:   "Rename the hero",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				p, err := a.Engine.RenameProfile(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("hero renamed to"), p.Name)
				return nil
			})
		},
	}
}

func milestoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "milestone",
		Aliases: []string{"ms"},
		Short:   "Manage long-running milestones",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List milestones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				items, err := a.Engine.Milestones(ctx)
				if err != nil {
					return err
				}
				printMilestones(cmd.OutOrStdout(), items)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <title...> [target:N]",
		Short: "Add a milestone",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := commands.Parse("milestone " + strings.Join(args, " "))
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				ms, err := a.Engine.AddMilestone(ctx, parsed.Milestone.Title, parsed.Milestone.Target)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s 0/%d\n", okStyle.Render("added"), ms.ID, ms.Title, ms.Target)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "step <id>",
		Short: "Advance a milestone by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				ms, err := a.Engine.AdvanceMilestone(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d/%d %s\n", ms.Title, ms.Progress, ms.Target, progressBar(ms.Fraction(), 10))
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if err := a.Engine.DeleteMilestone(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s milestone #%d\n", okStyle.Render("deleted"), id)
				return nil
			})
		},
	})
	return cmd
}
