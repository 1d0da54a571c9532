package reminder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"strings"
)

type Notification struct {
	Title string
	Body  string
}

type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(context.Context, Notification) error { return nil }

// ExecNotifier shells out to the platform notification tool.
type ExecNotifier struct{}

func (ExecNotifier) Send(ctx context.Context, n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.CommandContext(ctx, "notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.CommandContext(ctx, "osascript", "-e", script).Run()
	default:
		return nil
	}
}

// LogNotifier writes notifications to a logger; used when desktop delivery is off.
type LogNotifier struct {
	Logger *log.Logger
}

func (l LogNotifier) Send(_ context.Context, n Notification) error {
	if l.Logger != nil {
		l.Logger.Printf("%s: %s", n.Title, n.Body)
	}
	return nil
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// QuestStarted is the notification shown when a task's reminder fires.
func QuestStarted(title string, rewardGold int) Notification {
	return Notification{
		Title: "New quest started",
		Body:  fmt.Sprintf("Task %q starts now. Reward: %d gold", title, rewardGold),
	}
}

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Send(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
