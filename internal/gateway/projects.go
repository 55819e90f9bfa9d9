package gateway

import (
	"context"
	"net/http"

	"github.com/taskflow/taskflow-go/internal/models"
)

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &projects)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

type CreateProjectParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

func (c *Client) CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodPost, "/projects", nil, params, &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

type UpdateProjectParams struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsArchived  *bool   `json:"isArchived,omitempty"`
}

func (c *Client) UpdateProject(ctx context.Context, projectID string, params UpdateProjectParams) (*models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodPatch, "/projects/"+projectID, nil, params, &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+projectID, nil, nil, nil)
}

type AddProjectMemberParams struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (c *Client) AddProjectMember(ctx context.Context, projectID string, params AddProjectMemberParams) (*models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodPost, "/projects/"+projectID+"/members", nil, params, &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+projectID+"/members/"+userID, nil, nil, nil)
}
