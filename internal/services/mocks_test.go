package services

import (
	"context"
	"errors"

	"github.com/taskflow/taskflow-go/internal/gateway"
	"github.com/taskflow/taskflow-go/internal/models"
)

var errBackend = errors.New("backend unavailable")

type fakeTaskGateway struct {
	listFn   func(ctx context.Context, params gateway.ListTasksParams) ([]models.Task, gateway.PageMeta, error)
	createFn func(ctx context.Context, params gateway.CreateTaskParams) (*models.Task, error)
	updateFn func(ctx context.Context, taskID string, params gateway.UpdateTaskParams) (*models.Task, error)
	deleteFn func(ctx context.Context, taskID string) error
}

func (f *fakeTaskGateway) ListTasks(ctx context.Context, params gateway.ListTasksParams) ([]models.Task, gateway.PageMeta, error) {
	return f.listFn(ctx, params)
}

func (f *fakeTaskGateway) CreateTask(ctx context.Context, params gateway.CreateTaskParams) (*models.Task, error) {
	return f.createFn(ctx, params)
}

func (f *fakeTaskGateway) UpdateTask(ctx context.Context, taskID string, params gateway.UpdateTaskParams) (*models.Task, error) {
	return f.updateFn(ctx, taskID, params)
}

func (f *fakeTaskGateway) DeleteTask(ctx context.Context, taskID string) error {
	return f.deleteFn(ctx, taskID)
}

type fakeProjectGateway struct {
	listFn   func(ctx context.Context) ([]models.Project, error)
	createFn func(ctx context.Context, params gateway.CreateProjectParams) (*models.Project, error)
	updateFn func(ctx context.Context, projectID string, params gateway.UpdateProjectParams) (*models.Project, error)
	deleteFn func(ctx context.Context, projectID string) error
}

func (f *fakeProjectGateway) ListProjects(ctx context.Context) ([]models.Project, error) {
	return f.listFn(ctx)
}

func (f *fakeProjectGateway) CreateProject(ctx context.Context, params gateway.CreateProjectParams) (*models.Project, error) {
	return f.createFn(ctx, params)
}

func (f *fakeProjectGateway) UpdateProject(ctx context.Context, projectID string, params gateway.UpdateProjectParams) (*models.Project, error) {
	return f.updateFn(ctx, projectID, params)
}

func (f *fakeProjectGateway) DeleteProject(ctx context.Context, projectID string) error {
	return f.deleteFn(ctx, projectID)
}

type fakeUserGateway struct {
	listFn       func(ctx context.Context) ([]models.User, error)
	updateRoleFn func(ctx context.Context, userID, role string) (*models.User, error)
	deleteFn     func(ctx context.Context, userID string) error
}

func (f *fakeUserGateway) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.listFn(ctx)
}

func (f *fakeUserGateway) UpdateUserRole(ctx context.Context, userID, role string) (*models.User, error) {
	return f.updateRoleFn(ctx, userID, role)
}

func (f *fakeUserGateway) DeleteUser(ctx context.Context, userID string) error {
	return f.deleteFn(ctx, userID)
}

type fakeNotificationGateway struct {
	listFn        func(ctx context.Context) ([]models.Notification, error)
	unreadFn      func(ctx context.Context) (int, error)
	markReadFn    func(ctx context.Context, notificationID string) error
	markAllReadFn func(ctx context.Context) error
	deleteFn      func(ctx context.Context, notificationID string) error
}

func (f *fakeNotificationGateway) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	return f.listFn(ctx)
}

func (f *fakeNotificationGateway) UnreadCount(ctx context.Context) (int, error) {
	return f.unreadFn(ctx)
}

func (f *fakeNotificationGateway) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return f.markReadFn(ctx, notificationID)
}

func (f *fakeNotificationGateway) MarkAllNotificationsRead(ctx context.Context) error {
	return f.markAllReadFn(ctx)
}

func (f *fakeNotificationGateway) DeleteNotification(ctx context.Context, notificationID string) error {
	return f.deleteFn(ctx, notificationID)
}

type fakeSearchGateway struct {
	taskCalls    int
	projectCalls int
	commentCalls int

	tasksFn    func(ctx context.Context, query string) ([]models.Task, error)
	projectsFn func(ctx context.Context, query string) ([]models.Project, error)
	commentsFn func(ctx context.Context, query string) ([]models.Comment, error)
}

func (f *fakeSearchGateway) SearchTasks(ctx context.Context, query string) ([]models.Task, error) {
	f.taskCalls++
	if f.tasksFn != nil {
		return f.tasksFn(ctx, query)
	}
	return []models.Task{{ID: "t-" + query}}, nil
}

func (f *fakeSearchGateway) SearchProjects(ctx context.Context, query string) ([]models.Project, error) {
	f.projectCalls++
	if f.projectsFn != nil {
		return f.projectsFn(ctx, query)
	}
	return []models.Project{{ID: "p-" + query}}, nil
}

func (f *fakeSearchGateway) SearchComments(ctx context.Context, query string) ([]models.Comment, error) {
	f.commentCalls++
	if f.commentsFn != nil {
		return f.commentsFn(ctx, query)
	}
	return []models.Comment{{ID: "c-" + query}}, nil
}

type fakeAuthGateway struct {
	loginFn   func(ctx context.Context, params gateway.LoginParams) (*gateway.LoginResult, error)
	logoutErr error
	logouts   int
}

func (f *fakeAuthGateway) Login(ctx context.Context, params gateway.LoginParams) (*gateway.LoginResult, error) {
	return f.loginFn(ctx, params)
}

func (f *fakeAuthGateway) Logout(ctx context.Context) error {
	f.logouts++
	return f.logoutErr
}

// fakeChannelStatus stands in for the push channel in poll arbitration
// tests. seqFn, when set, lets a test advance the sequence mid-poll.
type fakeChannelStatus struct {
	connected bool
	seq       uint64
	seqFn     func() uint64
}

func (f *fakeChannelStatus) Connected() bool {
	return f.connected
}

func (f *fakeChannelStatus) Seq() uint64 {
	if f.seqFn != nil {
		return f.seqFn()
	}
	return f.seq
}

type fakeRealtimeChannel struct {
	reconnects   int
	disconnects  int
	reconnectErr error
	lastToken    string
}

func (f *fakeRealtimeChannel) Reconnect(_ context.Context, token string) error {
	f.reconnects++
	f.lastToken = token
	return f.reconnectErr
}

func (f *fakeRealtimeChannel) Disconnect() {
	f.disconnects++
}

type fakeResettable struct {
	resets int
}

func (f *fakeResettable) Reset() {
	f.resets++
}
