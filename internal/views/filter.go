package views

import (
	"strings"

	"github.com/taskflow/taskflow-go/internal/models"
)

// TaskFilter holds the transient UI filter criteria. Zero-valued
// fields are inactive; active predicates are conjoined.
type TaskFilter struct {
	Search    string
	Status    string
	Priority  string
	ProjectID string
	LabelID   string
}

func (f TaskFilter) matches(task *models.Task) bool {
	// Predicate order is fixed: search, status, priority, project, label.
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(task.Title), needle) &&
			!strings.Contains(strings.ToLower(task.Description), needle) {
			return false
		}
	}
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	if f.ProjectID != "" && task.ProjectID != f.ProjectID {
		return false
	}
	if f.LabelID != "" && !task.HasLabel(f.LabelID) {
		return false
	}
	return true
}

func filterTasks(tasks []models.Task, filter TaskFilter) []models.Task {
	filtered := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		if filter.matches(&tasks[i]) {
			filtered = append(filtered, tasks[i])
		}
	}
	return filtered
}
