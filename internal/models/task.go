package models

import "time"

// Task statuses. Create always starts a task at StatusToDo.
const (
	StatusToDo       = "TO_DO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is a single tracked item. Tasks are not owned by a user — any
// authenticated caller may act on any task.
type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ExpirationDate time.Time `json:"expirationDate"`
	Status         string    `json:"status"` // TO_DO | IN_PROGRESS | DONE
}
