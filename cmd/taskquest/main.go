package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskquest/internal/app"
	"github.com/sandeepkv93/taskquest/internal/config"
	"github.com/sandeepkv93/taskquest/internal/reminder"
	"github.com/sandeepkv93/taskquest/internal/update"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "taskquest",
		Short:         "Gamified task tracker with calendar sync and reminders",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runTUI,
	}

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(doneCmd())
	rootCmd.AddCommand(removeCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(renameCmd())
	rootCmd.AddCommand(shopCmd())
	rootCmd.AddCommand(buyCmd())
	rootCmd.AddCommand(rewardCmd())
	rootCmd.AddCommand(milestoneCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("taskquest: "+err.Error()))
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	relay := &update.ProgramNotifier{}
	return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
		m := update.NewModel(ctx, a.Engine)
		defer m.Close()

		program := tea.NewProgram(m, tea.WithContext(ctx))
		relay.Attach(program)
		a.RestoreReminders(ctx)
		_, err := program.Run()
		return err
	}, relay)
}

// withApp resolves the configuration, opens the log file and the app, and
// runs fn against it.
func withApp(ctx context.Context, fn func(context.Context, *app.App) error, extra ...reminder.Notifier) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, closer, err := app.OpenLog(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	a, err := app.Open(ctx, cfg, logger, extra...)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
