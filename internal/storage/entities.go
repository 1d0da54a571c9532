package storage

type TaskListFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}

func ActiveFilter() TaskListFilter {
	v := false
	return TaskListFilter{Completed: &v}
}

func CompletedFilter() TaskListFilter {
	v := true
	return TaskListFilter{Completed: &v}
}

type table string

const (
	tableTasks        table = "tasks"
	tableProfile      table = "profile"
	tableRewards      table = "reward_items"
	tableMilestones   table = "milestones"
	tableReminderJobs table = "reminder_jobs"
)
