package cache

const (
	KeyTasksAll = "tasks:all"
	KeyUsersAll = "users:all"
	KeyStats    = "stats"
)

// AllKeys lists every key the application caches.
func AllKeys() []string {
	return []string{KeyTasksAll, KeyUsersAll, KeyStats}
}
