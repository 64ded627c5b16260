package models

// Stats is the dashboard summary. InProgressTasks is derived, never counted:
// anything neither completed nor pending is in progress.
type Stats struct {
	TotalTasks      int64 `json:"totalTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
	PendingTasks    int64 `json:"pendingTasks"`
	TotalUsers      int64 `json:"totalUsers"`
	InProgressTasks int64 `json:"inProgressTasks"`
}

func NewStats(total, completed, pending, users int64) Stats {
	return Stats{
		TotalTasks:      total,
		CompletedTasks:  completed,
		PendingTasks:    pending,
		TotalUsers:      users,
		InProgressTasks: total - completed - pending,
	}
}

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{&User{}, &Task{}}
}
