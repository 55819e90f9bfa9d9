package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskflow/taskflow-go/internal/models"
)

const (
	eventNewNotification   = "newNotification"
	eventUnreadCountUpdate = "unreadCountUpdate"
	eventNotificationRead  = "notificationRead"
)

// frame is the wire shape of a pushed event.
type frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// notificationPayload carries dates as serialized strings; they are
// parsed once here so the rest of the client only sees time values.
type notificationPayload struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"isRead"`
	UserID    string `json:"userId"`
	EntityID  string `json:"entityId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (p *notificationPayload) toModel() (*models.Notification, error) {
	createdAt, err := parseWireTime(p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid createdAt: %w", err)
	}
	updatedAt, err := parseWireTime(p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid updatedAt: %w", err)
	}

	return &models.Notification{
		ID:        p.ID,
		Type:      p.Type,
		Title:     p.Title,
		Message:   p.Message,
		IsRead:    p.IsRead,
		UserID:    p.UserID,
		EntityID:  p.EntityID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

type unreadCountPayload struct {
	Count int `json:"count"`
}

type notificationReadPayload struct {
	ID string `json:"id"`
}

func parseWireTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}
