package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/taskflow/taskflow-go/internal/config"
	"github.com/taskflow/taskflow-go/internal/gateway"
)

// MustRun logs in, primes the containers, starts the notification
// poll loop and blocks until an interrupt, then tears the session
// down. kill (no params) by default sends syscall.SIGTERM,
// kill -2 is syscall.SIGINT.
func MustRun() {
	cfg := config.Global()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := globalAuth.Login(ctx, cfg.Credentials.Email, cfg.Credentials.Password)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to login")
		panic(err)
	}

	loadInitialState(ctx)
	globalNotifications.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().Msg("shutting down")
	globalNotifications.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err = globalAuth.Logout(shutdownCtx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to logout")
	}
	globalLogger.Info().Msg("shut down")
}

// loadInitialState primes tasks, projects and notifications in
// parallel. A failed branch only costs its own data: the containers
// keep the error in their state and the rest still loads.
func loadInitialState(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		_ = globalTasks.LoadTasks(ctx, gateway.ListTasksParams{})
	}()
	go func() {
		defer wg.Done()
		_ = globalProjects.LoadProjects(ctx)
	}()
	go func() {
		defer wg.Done()
		_ = globalNotifications.LoadNotifications(ctx)
	}()
	wg.Wait()

	globalLogger.Info().
		Int("tasks", len(globalTasks.Tasks())).
		Int("projects", len(globalProjects.Projects())).
		Int("notifications", len(globalNotifications.Notifications())).
		Msg("loaded initial state")
}
