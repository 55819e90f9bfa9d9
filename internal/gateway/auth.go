package gateway

import (
	"context"
	"net/http"

	"github.com/taskflow/taskflow-go/internal/models"
)

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	AccessToken string      `json:"accessToken"`
	User        models.User `json:"user"`
}

// Login authenticates against the backend and stores the returned
// bearer token for subsequent requests.
func (c *Client) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, params, &result)
	if err != nil {
		return nil, err
	}
	c.tokens.Set(result.AccessToken)

	c.logger.Info().
		Str("user_id", result.User.ID).
		Msg("logged in")
	return &result, nil
}

// Logout invalidates the session server-side and drops the local token.
// The token is cleared even when the request fails: local state must
// not outlive a logout.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	c.tokens.Clear()
	if err != nil {
		return err
	}

	c.logger.Info().Msg("logged out")
	return nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
