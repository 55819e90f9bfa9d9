package views

import (
	"sort"
	"strings"

	"github.com/taskflow/taskflow-go/internal/models"
)

type SortField string

const (
	SortByPosition  SortField = "position"
	SortByTitle     SortField = "title"
	SortByPriority  SortField = "priority"
	SortByStatus    SortField = "status"
	SortByDueDate   SortField = "dueDate"
	SortByCreatedAt SortField = "createdAt"
)

type TaskSort struct {
	Field      SortField
	Descending bool
}

// DefaultSort orders by priority, most urgent first.
func DefaultSort() TaskSort {
	return TaskSort{Field: SortByPriority, Descending: true}
}

// compare returns a three-way comparison in ascending terms for the
// given field. Descending order flips the sign at the call site, which
// also flips the missing-due-date placement: missing dates sort last
// ascending and first descending.
func compare(a, b *models.Task, field SortField) int {
	switch field {
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByPriority:
		return models.PriorityRank(a.Priority) - models.PriorityRank(b.Priority)
	case SortByStatus:
		return models.StatusRank(a.Status) - models.StatusRank(b.Status)
	case SortByDueDate:
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		case a.DueDate.Before(*b.DueDate):
			return -1
		case b.DueDate.Before(*a.DueDate):
			return 1
		}
		return 0
	case SortByCreatedAt:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case b.CreatedAt.Before(a.CreatedAt):
			return 1
		}
		return 0
	default:
		return a.Position - b.Position
	}
}

// sortTasks sorts in place and must be handed a copy. Equal keys keep
// the original collection order, so the sort must be stable.
func sortTasks(tasks []models.Task, order TaskSort) []models.Task {
	sort.SliceStable(tasks, func(i, j int) bool {
		c := compare(&tasks[i], &tasks[j], order.Field)
		if order.Descending {
			return c > 0
		}
		return c < 0
	})
	return tasks
}
