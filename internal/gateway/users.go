package gateway

import (
	"context"
	"net/http"

	"github.com/taskflow/taskflow-go/internal/models"
)

// ListUsers fetches all users. Admin-only; the backend enforces it.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

type UpdateUserRoleParams struct {
	Role string `json:"role"`
}

func (c *Client) UpdateUserRole(ctx context.Context, userID, role string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPatch, "/admin/users/"+userID+"/role", nil,
		UpdateUserRoleParams{Role: role}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+userID, nil, nil, nil)
}
