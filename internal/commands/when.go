package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
)

var absoluteLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseWhen resolves a start time relative to now. Accepted forms: "" (now),
// "+90m", "18:30" (today, or tomorrow once passed), "2026-03-01T09:00" and
// "2026-03-01" (09:00).
func ParseWhen(raw string, now time.Time) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return now, nil
	}
	if rest, ok := strings.CutPrefix(v, "+"); ok {
		d, err := time.ParseDuration(rest)
		if err != nil || d < 0 {
			return time.Time{}, fmt.Errorf("invalid offset %q", raw)
		}
		return now.Add(d), nil
	}
	if clock, err := time.ParseInLocation("15:04", v, now.Location()); err == nil {
		y, m, d := now.Date()
		out := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, now.Location())
		if !out.After(now) {
			out = out.AddDate(0, 0, 1)
		}
		return out, nil
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, v, now.Location()); err == nil {
			if layout == "2006-01-02" {
				t = t.Add(9 * time.Hour)
			}
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}

// NewTask converts parsed add arguments into a creation intent.
func (a AddArgs) NewTask(now time.Time) (model.NewTask, error) {
	start, err := ParseWhen(a.At, now)
	if err != nil {
		return model.NewTask{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	out := model.NewTask{
		Title:      a.Title,
		Start:      start,
		Recurrence: a.Recurrence,
		ExpReward:  a.ExpReward,
		GoldReward: a.GoldReward,
	}
	if a.For > 0 {
		out.End = start.Add(a.For)
	}
	return out, nil
}
