package views

import (
	"strings"
	"testing"
)

func TestTaskDetailMarkdown(t *testing.T) {
	md := TaskDetailMarkdown(TaskDetailData{
		ID:         3,
		Title:      "Run",
		When:       "Mon 09 Feb 18:00",
		Recurrence: "every week",
		ExpReward:  10,
		GoldReward: 50,
		Upcoming:   []string{"Mon 16 Feb 18:00"},
	})
	for _, want := range []string{"## #3 Run", "10 exp, 50 gold", "every week", "not linked", "### Upcoming"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in markdown:\n%s", want, md)
		}
	}
	if TaskDetailMarkdown(TaskDetailData{}) != "" {
		t.Fatal("expected empty markdown without a selection")
	}
}

func TestRenderShopPanelMarksUnaffordable(t *testing.T) {
	out := RenderShopPanel(ShopPanelData{
		Gold:  60,
		Items: []ShopItemData{{ID: 1, Title: "Bubble tea", Cost: 50}, {ID: 2, Title: "A good meal", Cost: 200}},
	})
	if !strings.Contains(out, "> #1 Bubble tea") {
		t.Fatalf("expected cursor on first item:\n%s", out)
	}
	if strings.Count(out, "need more gold") != 1 {
		t.Fatalf("expected exactly one unaffordable marker:\n%s", out)
	}
}

func TestRenderProfilePanelListsMilestones(t *testing.T) {
	out := RenderProfilePanel(ProfilePanelData{
		Name: "Hero", Level: 2, Experience: 40, ExpPerLevel: 100, Gold: 10,
		Milestones: []MilestoneData{{ID: 1, Title: "Books", Progress: 3, Target: 12}},
		Selected:   0,
	})
	if !strings.Contains(out, "level 2  40/100 exp") || !strings.Contains(out, "> #1 Books 3/12") {
		t.Fatalf("unexpected profile panel:\n%s", out)
	}
}

func TestRenderTabs(t *testing.T) {
	out := RenderTabs([]string{"Quests", "History"}, "History")
	if !strings.Contains(out, "[1] Quests") || !strings.Contains(out, "[2] History") {
		t.Fatalf("unexpected tabs: %q", out)
	}
}
