package models

import "time"

const (
	NotificationTaskAssigned    = "TASK_ASSIGNED"
	NotificationTaskUpdated     = "TASK_UPDATED"
	NotificationTaskCompleted   = "TASK_COMPLETED"
	NotificationCommentAdded    = "COMMENT_ADDED"
	NotificationProjectInvite   = "PROJECT_INVITE"
	NotificationDueDateReminder = "DUE_DATE_REMINDER"
)

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	UserID    string    `json:"userId"`
	EntityID  string    `json:"entityId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
