package model

import (
	"errors"
	"strings"
)

const (
	// ProfileKey is the fixed singleton key of the player profile.
	ProfileKey = "main"

	DefaultProfileName = "Hero"

	// ExpPerLevel is the experience needed to gain one level.
	ExpPerLevel = 100

	DefaultMilestoneTarget = 10
)

var (
	ErrEmptyName       = errors.New("model: profile name is required")
	ErrEmptyTitle      = errors.New("model: title is required")
	ErrInvalidCost     = errors.New("model: reward cost must be positive")
	ErrInvalidTarget   = errors.New("model: milestone target must be positive")
	ErrInvalidProgress = errors.New("model: milestone progress out of range")
)

type Profile struct {
	Level      int
	Experience int
	Gold       int
	Name       string
}

func DefaultProfile() Profile {
	return Profile{Level: 1, Experience: 0, Gold: 0, Name: DefaultProfileName}
}

type RewardItem struct {
	ID    int64
	Title string
	Cost  int
}

func (r RewardItem) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if r.Cost <= 0 {
		return ErrInvalidCost
	}
	return nil
}

// DefaultRewardCatalog is seeded into an empty shop.
func DefaultRewardCatalog() []RewardItem {
	return []RewardItem{
		{Title: "Half day off", Cost: 500},
		{Title: "A good meal", Cost: 200},
		{Title: "Buy a game you like", Cost: 1000},
		{Title: "Bubble tea", Cost: 50},
	}
}

type Milestone struct {
	ID       int64
	Title    string
	Progress int
	Target   int
}

func (m Milestone) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	if m.Target <= 0 {
		return ErrInvalidTarget
	}
	if m.Progress < 0 || m.Progress > m.Target {
		return ErrInvalidProgress
	}
	return nil
}

func (m Milestone) Done() bool {
	return m.Progress >= m.Target
}

// Fraction is the completed share in [0,1].
func (m Milestone) Fraction() float64 {
	if m.Target <= 0 {
		return 0
	}
	f := float64(m.Progress) / float64(m.Target)
	if f > 1 {
		return 1
	}
	return f
}
