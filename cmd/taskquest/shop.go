package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskquest/internal/app"
	"github.com/sandeepkv93/taskquest/internal/commands"
	"github.com/spf13/cobra"
)

func shopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "List rewards you can buy with gold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				p, err := a.Engine.Profile(ctx)
				if err != nil {
					return err
				}
				items, err := a.Engine.Rewards(ctx)
				if err != nil {
					return err
				}
				printRewards(cmd.OutOrStdout(), p.Gold, items)
				return nil
			})
		},
	}
}

func buyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <id>",
		Short: "Spend gold on a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				p, item, err := a.Engine.PurchaseReward(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s, %s left\n", okStyle.Render("bought"), item.Title, goldStyle.Render(fmt.Sprintf("%d gold", p.Gold)))
				return nil
			})
		},
	}
}

func rewardCmd() *cobra.Command {
	var remove int64
	cmd := &cobra.Command{
		Use:   "reward <cost> <title...>",
		Short: "Add a reward to the shop, or remove one with --rm",
		RunE: func(cmd *cobra.Command, args []string) error {
			if remove > 0 {
				return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
					if err := a.Engine.DeleteReward(ctx, remove); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s reward #%d\n", okStyle.Render("removed"), remove)
					return nil
				})
			}
			parsed, err := commands.Parse("reward " + strings.Join(args, " "))
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				item, err := a.Engine.AddReward(ctx, parsed.Reward.Title, parsed.Reward.Cost)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n", okStyle.Render("added"), item.ID, item.Title, goldStyle.Render(fmt.Sprintf("%d gold", item.Cost)))
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&remove, "rm", 0, "Remove the reward with this id")
	return cmd
}
