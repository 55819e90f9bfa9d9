package views

import (
	"fmt"
	"sync"

	"github.com/taskflow/taskflow-go/internal/models"
)

// cacheCapacity bounds the memo cache. Overflow clears the whole cache
// rather than evicting a single entry; with one active filter per view
// the cache rarely fills within a collection version.
const cacheCapacity = 20

// Engine computes filtered, sorted views over a task collection and
// memoizes them by collection version + filter + sort. A cache hit
// returns the identical slice instance, so subscribers can detect
// unchanged views by identity.
type Engine struct {
	mu    sync.Mutex
	cache map[string][]models.Task
}

func NewEngine() *Engine {
	return &Engine{
		cache: make(map[string][]models.Task, cacheCapacity),
	}
}

// FilterAndSort returns the view of tasks for the given criteria.
// version must change whenever the backing collection changes; stale
// entries are never served because the version is part of the key.
func (e *Engine) FilterAndSort(
	version uint64,
	tasks []models.Task,
	filter TaskFilter,
	order TaskSort,
) []models.Task {
	key := cacheKey(version, filter, order)

	e.mu.Lock()
	if cached, ok := e.cache[key]; ok {
		e.mu.Unlock()
		return cached
	}
	e.mu.Unlock()

	result := sortTasks(filterTasks(tasks, filter), order)

	e.mu.Lock()
	if len(e.cache) >= cacheCapacity {
		e.cache = make(map[string][]models.Task, cacheCapacity)
	}
	e.cache[key] = result
	e.mu.Unlock()

	return result
}

// Flush drops every memoized view.
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string][]models.Task, cacheCapacity)
}

func cacheKey(version uint64, filter TaskFilter, order TaskSort) string {
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s|%s|%t",
		version,
		filter.Search, filter.Status, filter.Priority,
		filter.ProjectID, filter.LabelID,
		order.Field, order.Descending)
}
