package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseRecurrenceRoundTrip(t *testing.T) {
	rule, err := ParseRecurrence("FREQ=WEEKLY;INTERVAL=2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if rule.Frequency != FrequencyWeekly || rule.Interval != 2 {
		t.Fatalf("unexpected rule: %+v", rule)
	}
	if rule.String() != "FREQ=WEEKLY;INTERVAL=2" {
		t.Fatalf("unexpected string: %s", rule.String())
	}
	if rule.Describe() != "every 2 weeks" {
		t.Fatalf("unexpected description: %s", rule.Describe())
	}
}

func TestParseRecurrenceDefaultsInterval(t *testing.T) {
	rule, err := ParseRecurrence("freq=daily")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if rule.Interval != 1 || rule.Frequency != FrequencyDaily {
		t.Fatalf("unexpected rule: %+v", rule)
	}
}

func TestParseRecurrenceRejectsInvalid(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"FREQ=HOURLY;INTERVAL=1", ErrInvalidFrequency},
		{"FREQ=DAILY;INTERVAL=0", ErrInvalidInterval},
		{"FREQ=DAILY;INTERVAL=x", ErrInvalidInterval},
		{"FREQ=DAILY;COUNT=3", ErrMalformedRecurrence},
		{"DAILY", ErrMalformedRecurrence},
		{"", ErrMalformedRecurrence},
	}
	for _, tc := range cases {
		if _, err := ParseRecurrence(tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("parse %q: expected %v, got %v", tc.in, tc.want, err)
		}
	}
}

func TestRecurrenceFromLabel(t *testing.T) {
	rule, err := RecurrenceFromLabel("monthly", 3)
	if err != nil {
		t.Fatalf("from label failed: %v", err)
	}
	if rule != "FREQ=MONTHLY;INTERVAL=3" {
		t.Fatalf("unexpected rule: %s", rule)
	}
	none, err := RecurrenceFromLabel("none", 1)
	if err != nil || none != "" {
		t.Fatalf("expected empty rule for none, got %q err=%v", none, err)
	}
	if _, err := RecurrenceFromLabel("hourly", 1); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestRecurrenceNextAfterMonthly(t *testing.T) {
	rule := Recurrence{Frequency: FrequencyMonthly, Interval: 1}
	anchor := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	next, err := rule.NextAfter(anchor, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("next after failed: %v", err)
	}
	if next.Format("2006-01-02 15:04") != "2026-04-15 09:00" {
		t.Fatalf("unexpected next occurrence: %s", next.Format(time.RFC3339))
	}
}

func TestRecurrenceNextAfterBeforeAnchor(t *testing.T) {
	rule := Recurrence{Frequency: FrequencyDaily, Interval: 1}
	anchor := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	next, err := rule.NextAfter(anchor, anchor.Add(-time.Hour))
	if err != nil {
		t.Fatalf("next after failed: %v", err)
	}
	if !next.Equal(anchor) {
		t.Fatalf("expected anchor, got %s", next.Format(time.RFC3339))
	}
}

func TestRecurrencePreview(t *testing.T) {
	rule := Recurrence{Frequency: FrequencyDaily, Interval: 3}
	anchor := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	list, err := rule.Preview(anchor, time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), 3)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	want := []string{"2026-02-07 09:00", "2026-02-10 09:00", "2026-02-13 09:00"}
	if len(list) != len(want) {
		t.Fatalf("expected %d preview items, got %d", len(want), len(list))
	}
	for i := range list {
		if got := list[i].Format("2006-01-02 15:04"); got != want[i] {
			t.Fatalf("preview[%d] got %s want %s", i, got, want[i])
		}
	}
}
