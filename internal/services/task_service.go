package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/gateway"
	"github.com/taskflow/taskflow-go/internal/models"
	"github.com/taskflow/taskflow-go/internal/views"
)

type taskServiceImpl struct {
	broadcaster

	logger  zerolog.Logger
	gateway TaskGateway
	expired SessionExpiredHandler
	engine  *views.Engine

	mu      sync.RWMutex
	tasks   []models.Task
	meta    gateway.PageMeta
	filter  views.TaskFilter
	order   views.TaskSort
	version uint64
	loading bool
	err     error
}

func NewTaskService(
	logger zerolog.Logger,
	gw TaskGateway,
	expired SessionExpiredHandler,
) TasksService {
	return &taskServiceImpl{
		logger:  logger,
		gateway: gw,
		expired: expired,
		engine:  views.NewEngine(),
		order:   views.DefaultSort(),
	}
}

func (s *taskServiceImpl) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

// fail records the operation error, leaving the held collection
// untouched. A 401 is escalated through the session-expired hook
// instead of the error field.
func (s *taskServiceImpl) fail(err error, msg string) {
	s.logger.Error().
		Err(err).
		Msg(msg)

	s.mu.Lock()
	s.loading = false
	if !errors.Is(err, gateway.ErrSessionExpired) {
		s.err = err
	}
	s.mu.Unlock()
	s.notify()

	if errors.Is(err, gateway.ErrSessionExpired) && s.expired != nil {
		s.expired()
	}
}

func (s *taskServiceImpl) LoadTasks(ctx context.Context, params gateway.ListTasksParams) error {
	s.begin()

	tasks, meta, err := s.gateway.ListTasks(ctx, params)
	if err != nil {
		s.fail(err, "failed to load tasks")
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.meta = meta
	s.version++
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Int("count", len(tasks)).
		Msg("loaded tasks")
	return nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params gateway.CreateTaskParams) (*models.Task, error) {
	if params.Priority != "" && !models.IsValidPriority(params.Priority) {
		return nil, ErrInvalidPriority
	}

	s.begin()

	task, err := s.gateway.CreateTask(ctx, params)
	if err != nil {
		s.fail(err, "failed to create task")
		return nil, err
	}

	s.mu.Lock()
	next := make([]models.Task, 0, len(s.tasks)+1)
	next = append(next, s.tasks...)
	next = append(next, *task)
	s.tasks = next
	s.version++
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, taskID string, params gateway.UpdateTaskParams) (*models.Task, error) {
	if params.Status != nil && !models.IsValidStatus(*params.Status) {
		return nil, ErrInvalidStatus
	}
	if params.Priority != nil && !models.IsValidPriority(*params.Priority) {
		return nil, ErrInvalidPriority
	}

	s.begin()

	task, err := s.gateway.UpdateTask(ctx, taskID, params)
	if err != nil {
		s.fail(err, "failed to update task")
		return nil, err
	}

	s.mu.Lock()
	next := make([]models.Task, len(s.tasks))
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			next[i] = *task
		} else {
			next[i] = s.tasks[i]
		}
	}
	s.tasks = next
	s.version++
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	s.begin()

	err := s.gateway.DeleteTask(ctx, taskID)
	if err != nil {
		s.fail(err, "failed to delete task")
		return err
	}

	s.mu.Lock()
	next := make([]models.Task, 0, len(s.tasks))
	for i := range s.tasks {
		if s.tasks[i].ID != taskID {
			next = append(next, s.tasks[i])
		}
	}
	s.tasks = next
	s.version++
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Str("task_id", taskID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks
}

func (s *taskServiceImpl) PageMeta() gateway.PageMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

func (s *taskServiceImpl) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *taskServiceImpl) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *taskServiceImpl) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *taskServiceImpl) SetFilter(filter views.TaskFilter) {
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	s.notify()
}

func (s *taskServiceImpl) SetSort(order views.TaskSort) {
	s.mu.Lock()
	s.order = order
	s.mu.Unlock()
	s.notify()
}

func (s *taskServiceImpl) Filter() views.TaskFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *taskServiceImpl) Sort() views.TaskSort {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order
}

func (s *taskServiceImpl) FilteredAndSortedTasks() []models.Task {
	s.mu.RLock()
	version := s.version
	tasks := s.tasks
	filter := s.filter
	order := s.order
	s.mu.RUnlock()

	return s.engine.FilterAndSort(version, tasks, filter, order)
}

func (s *taskServiceImpl) Reset() {
	s.mu.Lock()
	s.tasks = nil
	s.meta = gateway.PageMeta{}
	s.filter = views.TaskFilter{}
	s.order = views.DefaultSort()
	s.version++
	s.loading = false
	s.err = nil
	s.mu.Unlock()
	s.engine.Flush()
	s.notify()
}
