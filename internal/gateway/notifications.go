package gateway

import (
	"context"
	"net/http"

	"github.com/taskflow/taskflow-go/internal/models"
)

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	err := c.do(ctx, http.MethodGet, "/notifications", nil, nil, &notifications)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount fetches the number of unread notifications. The
// notifications service polls this as a fallback while the realtime
// channel is down.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "/notifications/unread-count", nil, nil, &result)
	if err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.do(ctx, http.MethodPatch, "/notifications/"+notificationID+"/read", nil, nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/notifications/read-all", nil, nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, notificationID string) error {
	return c.do(ctx, http.MethodDelete, "/notifications/"+notificationID, nil, nil, nil)
}
