package models

import "time"

const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusInReview   = "IN_REVIEW"
	StatusDone       = "DONE"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// statusRanks orders the board columns left to right.
var statusRanks = map[string]int{
	StatusTodo:       1,
	StatusInProgress: 2,
	StatusInReview:   3,
	StatusDone:       4,
}

var priorityRanks = map[string]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

func IsValidStatus(status string) bool {
	_, ok := statusRanks[status]
	return ok
}

func IsValidPriority(priority string) bool {
	_, ok := priorityRanks[priority]
	return ok
}

// StatusRank returns the fixed ordering rank of a task status,
// or 0 for an unknown status.
func StatusRank(status string) int {
	return statusRanks[status]
}

// PriorityRank returns the numeric rank of a task priority
// (URGENT=4 down to LOW=1), or 0 for an unknown priority.
func PriorityRank(priority string) int {
	return priorityRanks[priority]
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Position    int          `json:"position"`
	ProjectID   string       `json:"projectId"`
	OwnerID     string       `json:"ownerId"`
	Subtasks    []Subtask    `json:"subtasks,omitempty"`
	Comments    []Comment    `json:"comments,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Labels      []Label      `json:"labels,omitempty"`
	AssigneeIDs []string     `json:"assigneeIds,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// HasLabel reports whether the task carries the given label.
func (t *Task) HasLabel(labelID string) bool {
	for _, l := range t.Labels {
		if l.ID == labelID {
			return true
		}
	}
	return false
}

type Subtask struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"isDone"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Attachment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	FileName  string    `json:"fileName"`
	FileSize  int64     `json:"fileSize"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
