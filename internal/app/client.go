package app

import (
	"github.com/taskflow/taskflow-go/internal/config"
	"github.com/taskflow/taskflow-go/internal/gateway"
	"github.com/taskflow/taskflow-go/internal/models"
	"github.com/taskflow/taskflow-go/internal/realtime"
	"github.com/taskflow/taskflow-go/internal/services"
)

var (
	globalGateway *gateway.Client
	globalChannel *realtime.Channel

	globalAuth          services.AuthService
	globalTasks         services.TasksService
	globalProjects      services.ProjectsService
	globalNotifications services.NotificationsService
	globalUsers         services.UsersService
	globalSearch        services.SearchService
)

// MustBuildClient wires the gateway, the realtime channel and every
// state container. Construction order matters only for the closures:
// the channel handlers and the expiry hook close over package vars
// that are assigned further down, and fire only after everything is
// built.
func MustBuildClient() {
	cfg := config.Global()

	tokens := gateway.NewTokenStore()
	globalGateway = gateway.NewClient(
		globalLogger,
		cfg.API.BaseURL,
		cfg.API.RequestTimeout,
		tokens,
	)

	globalChannel = realtime.NewChannel(
		globalLogger,
		cfg.Realtime.URL,
		cfg.Realtime.HandshakeTimeout,
		realtime.Handlers{
			OnNewNotification: func(n *models.Notification) {
				globalNotifications.HandleNewNotification(n)
			},
			OnUnreadCount: func(count int) {
				globalNotifications.HandleUnreadCount(count)
			},
			OnNotificationRead: func(id string) {
				globalNotifications.HandleNotificationRead(id)
			},
		},
	)

	expired := func() {
		globalAuth.HandleSessionExpired()
	}

	globalTasks = services.NewTaskService(globalLogger, globalGateway, expired)
	globalProjects = services.NewProjectService(globalLogger, globalGateway, expired)
	globalNotifications = services.NewNotificationService(
		globalLogger,
		globalGateway,
		globalChannel,
		expired,
		cfg.Notifications.PollInterval,
	)
	globalUsers = services.NewUserService(globalLogger, globalGateway, expired)
	globalSearch = services.NewSearchService(globalLogger, globalGateway)

	globalAuth = services.NewAuthService(
		globalLogger,
		globalGateway,
		globalChannel,
		globalTasks,
		globalProjects,
		globalNotifications,
		globalUsers,
		globalSearch,
	)

	globalLogger.Info().
		Str("api", cfg.API.BaseURL).
		Str("realtime", cfg.Realtime.URL).
		Msg("built taskflow client")
}
