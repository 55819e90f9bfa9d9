package services

import (
	"context"
	"errors"

	"github.com/taskflow/taskflow-go/internal/gateway"
	"github.com/taskflow/taskflow-go/internal/models"
	"github.com/taskflow/taskflow-go/internal/views"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrInvalidRole      = errors.New("invalid user role")
	ErrSearchFailed     = errors.New("search failed")
)

// TaskGateway is the slice of the remote gateway the tasks container
// needs. *gateway.Client satisfies it.
type TaskGateway interface {
	ListTasks(ctx context.Context, params gateway.ListTasksParams) ([]models.Task, gateway.PageMeta, error)
	CreateTask(ctx context.Context, params gateway.CreateTaskParams) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID string, params gateway.UpdateTaskParams) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

type ProjectGateway interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, params gateway.CreateProjectParams) (*models.Project, error)
	UpdateProject(ctx context.Context, projectID string, params gateway.UpdateProjectParams) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

type NotificationGateway interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, notificationID string) error
}

type SearchGateway interface {
	SearchTasks(ctx context.Context, query string) ([]models.Task, error)
	SearchProjects(ctx context.Context, query string) ([]models.Project, error)
	SearchComments(ctx context.Context, query string) ([]models.Comment, error)
}

type UserGateway interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, userID, role string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type AuthGateway interface {
	Login(ctx context.Context, params gateway.LoginParams) (*gateway.LoginResult, error)
	Logout(ctx context.Context) error
}

// RealtimeStatus is what the notifications service needs from the push
// channel to arbitrate poll results against pushed updates.
type RealtimeStatus interface {
	Connected() bool
	Seq() uint64
}

// RealtimeChannel is the auth service's view of the push channel.
type RealtimeChannel interface {
	Reconnect(ctx context.Context, token string) error
	Disconnect()
}

// SessionExpiredHandler is invoked when any operation hits a 401.
// Session expiry is escalated instead of stored as a container error.
type SessionExpiredHandler func()

// Resettable is implemented by containers whose state must be dropped
// on logout.
type Resettable interface {
	Reset()
}

type TasksService interface {
	// LoadTasks replaces the held collection with a fresh page from
	// the backend. Concurrent loads overwrite rather than merge.
	LoadTasks(ctx context.Context, params gateway.ListTasksParams) error

	// CreateTask appends the created task to the held collection.
	// It returns ErrInvalidStatus or ErrInvalidPriority before any
	// request is made when the params carry an unknown enum value.
	CreateTask(ctx context.Context, params gateway.CreateTaskParams) (*models.Task, error)

	// UpdateTask replaces the matching task by id with the server's
	// response. A response for an id no longer held is dropped.
	UpdateTask(ctx context.Context, taskID string, params gateway.UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task by id. Removing an id that is not
	// held is a no-op on the collection.
	DeleteTask(ctx context.Context, taskID string) error

	// Tasks returns the held collection. The returned slice is never
	// mutated afterwards; every change replaces the backing array.
	Tasks() []models.Task
	PageMeta() gateway.PageMeta
	Loading() bool
	Err() error
	Version() uint64

	SetFilter(filter views.TaskFilter)
	SetSort(order views.TaskSort)
	Filter() views.TaskFilter
	Sort() views.TaskSort

	// FilteredAndSortedTasks returns the memoized derived view for the
	// current filter and sort. Re-invoking with unchanged filter state
	// and collection version yields the identical slice instance.
	FilteredAndSortedTasks() []models.Task

	Subscribe() (string, <-chan struct{})
	Unsubscribe(id string)
	Resettable
}

type ProjectsService interface {
	LoadProjects(ctx context.Context) error
	CreateProject(ctx context.Context, params gateway.CreateProjectParams) (*models.Project, error)
	UpdateProject(ctx context.Context, projectID string, params gateway.UpdateProjectParams) (*models.Project, error)

	// ArchiveProject flips isArchived on the backend and map-replaces
	// the project locally; archived projects stay in the collection.
	ArchiveProject(ctx context.Context, projectID string, archived bool) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID string) error

	Projects() []models.Project
	ActiveProjects() []models.Project
	Loading() bool
	Err() error

	Subscribe() (string, <-chan struct{})
	Unsubscribe(id string)
	Resettable
}

type NotificationsService interface {
	// Start launches the unread-count poll loop. The first poll fires
	// immediately; subsequent polls run on the configured interval
	// until ctx is cancelled or Stop is called.
	Start(ctx context.Context)
	Stop()

	LoadNotifications(ctx context.Context) error

	// MarkAsRead marks one notification read. IsRead is monotonic on
	// the client: once true it never flips back except via a full
	// reload. The unread count drops by exactly one, floored at zero.
	MarkAsRead(ctx context.Context, notificationID string) error

	// MarkAllAsRead is idempotent; a second call leaves the unread
	// count at zero and does not error.
	MarkAllAsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, notificationID string) error

	// HandleNewNotification prepends a pushed notification, keeping
	// most-recent-first order.
	HandleNewNotification(notification *models.Notification)

	// HandleUnreadCount unconditionally overwrites the unread count;
	// pushed counts are authoritative.
	HandleUnreadCount(count int)

	// HandleNotificationRead marks the matching id read; unknown ids
	// are ignored.
	HandleNotificationRead(notificationID string)

	Notifications() []models.Notification
	UnreadCount() int
	Loading() bool
	Err() error

	Subscribe() (string, <-chan struct{})
	Unsubscribe(id string)
	Resettable
}

type UsersService interface {
	LoadUsers(ctx context.Context) error
	UpdateUserRole(ctx context.Context, userID, role string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error

	Users() []models.User
	Loading() bool
	Err() error

	Subscribe() (string, <-chan struct{})
	Unsubscribe(id string)
	Resettable
}

// SearchBundle is one cached composite search result.
type SearchBundle struct {
	Query    string
	Tasks    []models.Task
	Projects []models.Project
	Comments []models.Comment
}

type SearchService interface {
	// Search returns the bundle for query, from cache when the exact
	// query was searched before in this session. A miss fans out to
	// tasks, projects and comments in parallel; a failed branch is
	// substituted with an empty result unless every branch failed.
	Search(ctx context.Context, query string) (*SearchBundle, error)

	ClearCache()
	Resettable
}

type AuthService interface {
	// Login authenticates, stores the bearer token, and forces the
	// realtime channel to reconnect with the fresh credentials.
	Login(ctx context.Context, email, password string) (*models.Session, error)

	// Logout tears down the session: backend logout (best effort),
	// channel disconnect, and a reset of every registered container.
	Logout(ctx context.Context) error

	Session() *models.Session
	CurrentUser() *models.User

	// HandleSessionExpired is wired as the containers' 401 hook.
	HandleSessionExpired()
}
