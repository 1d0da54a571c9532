package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

var (
	ErrInvalidFrequency    = errors.New("model: invalid recurrence frequency")
	ErrInvalidInterval     = errors.New("model: invalid recurrence interval")
	ErrMalformedRecurrence = errors.New("model: malformed recurrence rule")
)

// Recurrence is the parsed form of a FREQ=<f>;INTERVAL=<n> rule. It is display
// metadata only: nothing regenerates tasks from it.
type Recurrence struct {
	Frequency Frequency
	Interval  int
}

// ParseRecurrence parses a rule string. INTERVAL defaults to 1 when omitted.
func ParseRecurrence(raw string) (Recurrence, error) {
	out := Recurrence{Interval: 1}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Recurrence{}, fmt.Errorf("%w: empty", ErrMalformedRecurrence)
	}
	for _, part := range strings.Split(trimmed, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return Recurrence{}, fmt.Errorf("%w: %q", ErrMalformedRecurrence, part)
		}
		switch strings.ToUpper(strings.TrimSpace(name)) {
		case "FREQ":
			out.Frequency = Frequency(strings.ToUpper(strings.TrimSpace(value)))
		case "INTERVAL":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return Recurrence{}, fmt.Errorf("%w: %q", ErrInvalidInterval, value)
			}
			out.Interval = n
		default:
			return Recurrence{}, fmt.Errorf("%w: unknown part %q", ErrMalformedRecurrence, name)
		}
	}
	if err := out.Validate(); err != nil {
		return Recurrence{}, err
	}
	return out, nil
}

// RecurrenceFromLabel maps a short user label (daily, weekly, ...) to a rule.
// An empty label or "none" means no recurrence.
func RecurrenceFromLabel(label string, interval int) (string, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" || l == "none" {
		return "", nil
	}
	if interval <= 0 {
		interval = 1
	}
	r := Recurrence{Frequency: Frequency(strings.ToUpper(l)), Interval: interval}
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r.String(), nil
}

func (r Recurrence) Validate() error {
	if !r.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, r.Frequency)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, r.Interval)
	}
	return nil
}

func (r Recurrence) String() string {
	return fmt.Sprintf("FREQ=%s;INTERVAL=%d", r.Frequency, r.Interval)
}

// Describe is a short human label, e.g. "every 2 weeks".
func (r Recurrence) Describe() string {
	unit := map[Frequency]string{
		FrequencyDaily:   "day",
		FrequencyWeekly:  "week",
		FrequencyMonthly: "month",
		FrequencyYearly:  "year",
	}[r.Frequency]
	if r.Interval == 1 {
		return "every " + unit
	}
	return fmt.Sprintf("every %d %ss", r.Interval, unit)
}

// NextAfter returns the first occurrence of the series anchored at anchor that
// is strictly after from.
func (r Recurrence) NextAfter(anchor, from time.Time) (time.Time, error) {
	if err := r.Validate(); err != nil {
		return time.Time{}, err
	}
	if anchor.IsZero() {
		return time.Time{}, errors.New("model: recurrence anchor is required")
	}
	if from.Before(anchor) {
		return anchor, nil
	}
	// Step from the anchor so month/year rollover follows calendar arithmetic.
	for n := 1; ; n++ {
		next := r.step(anchor, n)
		if next.After(from) {
			return next, nil
		}
	}
}

func (r Recurrence) Preview(anchor, from time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return []time.Time{}, nil
	}
	out := make([]time.Time, 0, count)
	cursor := from
	for i := 0; i < count; i++ {
		next, err := r.NextAfter(anchor, cursor)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
		cursor = next
	}
	return out, nil
}

func (r Recurrence) step(anchor time.Time, n int) time.Time {
	k := n * r.Interval
	switch r.Frequency {
	case FrequencyDaily:
		return anchor.AddDate(0, 0, k)
	case FrequencyWeekly:
		return anchor.AddDate(0, 0, 7*k)
	case FrequencyMonthly:
		return anchor.AddDate(0, k, 0)
	default:
		return anchor.AddDate(k, 0, 0)
	}
}
