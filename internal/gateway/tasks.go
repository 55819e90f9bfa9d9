package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/taskflow/taskflow-go/internal/models"
)

type ListTasksParams struct {
	ProjectID string
	Status    string
	Page      int
	Limit     int
}

// ListTasks fetches a page of tasks. The zero params value lists
// everything the backend will hand out on its first page.
func (c *Client) ListTasks(ctx context.Context, params ListTasksParams) ([]models.Task, PageMeta, error) {
	query := url.Values{}
	if params.ProjectID != "" {
		query.Set("projectId", params.ProjectID)
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	var tasks []models.Task
	meta, err := c.doPaged(ctx, "/tasks", query, &tasks)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return tasks, meta, nil
}

func (c *Client) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodGet, "/tasks/"+taskID, nil, nil, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

type CreateTaskParams struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	ProjectID   string     `json:"projectId"`
	LabelIDs    []string   `json:"labelIds,omitempty"`
	AssigneeIDs []string   `json:"assigneeIds,omitempty"`
}

func (c *Client) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPost, "/tasks", nil, params, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskParams carries a partial update; nil fields are left alone.
type UpdateTaskParams struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Position    *int       `json:"position,omitempty"`
	LabelIDs    []string   `json:"labelIds,omitempty"`
	AssigneeIDs []string   `json:"assigneeIds,omitempty"`
}

func (c *Client) UpdateTask(ctx context.Context, taskID string, params UpdateTaskParams) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPatch, "/tasks/"+taskID, nil, params, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil, nil)
}
