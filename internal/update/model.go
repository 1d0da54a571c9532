package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/storage"
)

type View string

const (
	ViewTasks   View = "Quests"
	ViewHistory View = "History"
	ViewShop    View = "Shop"
	ViewProfile View = "Profile"
)

var allViews = []View{ViewTasks, ViewHistory, ViewShop, ViewProfile}

// Backend is the subset of the sync engine the UI drives.
type Backend interface {
	AddTask(ctx context.Context, in model.NewTask) (model.Task, error)
	DeleteTask(ctx context.Context, task model.Task) error
	CompleteTaskAndSync(ctx context.Context, task model.Task) (model.Profile, error)
	Task(ctx context.Context, id int64) (model.Task, error)
	RenameProfile(ctx context.Context, name string) (model.Profile, error)
	PurchaseReward(ctx context.Context, itemID int64) (model.Profile, model.RewardItem, error)
	AddReward(ctx context.Context, title string, cost int) (model.RewardItem, error)
	AddMilestone(ctx context.Context, title string, target int) (model.Milestone, error)
	AdvanceMilestone(ctx context.Context, id int64) (model.Milestone, error)

	ActiveTasks(ctx context.Context) *storage.Subscription[[]model.Task]
	CompletedTasks(ctx context.Context) *storage.Subscription[[]model.Task]
	CompletedCount(ctx context.Context) *storage.Subscription[int]
	ProfileUpdates(ctx context.Context) *storage.Subscription[model.Profile]
	RewardUpdates(ctx context.Context) *storage.Subscription[[]model.RewardItem]
	MilestoneUpdates(ctx context.Context) *storage.Subscription[[]model.Milestone]
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks   string
	History string
	Shop    string
	Profile string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Level string
	Body  string
	At    time.Time
}

type Model struct {
	CurrentView    View
	Tasks          []model.Task
	History        []model.Task
	CompletedCount int
	Profile        model.Profile
	Rewards        []model.RewardItem
	Milestones     []model.Milestone
	Cursors        map[View]int
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	Status         StatusBar
	Keys           GlobalKeyMap
	Busy           int
	Quitting       bool
	LastError      error

	ctx     context.Context
	backend Backend
	subs    *subscriptions
	now     func() time.Time

	taskTable     table.Model
	commandInput  textinput.Model
	levelProgress progress.Model
	syncSpinner   spinner.Model
	helpModel     help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// NotificationMsg surfaces a delivered reminder inside the UI.
type NotificationMsg struct {
	Title string
	Body  string
}

type tasksMsg []model.Task

type historyMsg []model.Task

type completedCountMsg int

type profileMsg model.Profile

type rewardsMsg []model.RewardItem

type milestonesMsg []model.Milestone

// opResultMsg reports the outcome of a backend call started from the UI.
type opResultMsg struct {
	Text string
	Err  error
}

type subscriptions struct {
	active     *storage.Subscription[[]model.Task]
	history    *storage.Subscription[[]model.Task]
	completed  *storage.Subscription[int]
	profile    *storage.Subscription[model.Profile]
	rewards    *storage.Subscription[[]model.RewardItem]
	milestones *storage.Subscription[[]model.Milestone]
}

func (s *subscriptions) cancel() {
	if s == nil {
		return
	}
	s.active.Cancel()
	s.history.Cancel()
	s.completed.Cancel()
	s.profile.Cancel()
	s.rewards.Cancel()
	s.milestones.Cancel()
}
