package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taskflow/taskflow-go/internal/models"
)

func (c *Client) SearchTasks(ctx context.Context, query string) ([]models.Task, error) {
	var tasks []models.Task
	err := c.do(ctx, http.MethodGet, "/search/tasks", url.Values{"q": {query}}, nil, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) SearchProjects(ctx context.Context, query string) ([]models.Project, error) {
	var projects []models.Project
	err := c.do(ctx, http.MethodGet, "/search/projects", url.Values{"q": {query}}, nil, &projects)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) SearchComments(ctx context.Context, query string) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.do(ctx, http.MethodGet, "/search/comments", url.Values{"q": {query}}, nil, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}
