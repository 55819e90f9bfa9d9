package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/gateway"
	"github.com/taskflow/taskflow-go/internal/models"
)

type notificationServiceImpl struct {
	broadcaster

	logger       zerolog.Logger
	gateway      NotificationGateway
	channel      RealtimeStatus
	expired      SessionExpiredHandler
	pollInterval time.Duration

	mu            sync.RWMutex
	notifications []models.Notification
	unread        int
	loading       bool
	err           error
	stop          chan struct{}
}

func NewNotificationService(
	logger zerolog.Logger,
	gw NotificationGateway,
	channel RealtimeStatus,
	expired SessionExpiredHandler,
	pollInterval time.Duration,
) NotificationsService {
	return &notificationServiceImpl{
		logger:       logger,
		gateway:      gw,
		channel:      channel,
		expired:      expired,
		pollInterval: pollInterval,
	}
}

func (s *notificationServiceImpl) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

func (s *notificationServiceImpl) fail(err error, msg string) {
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

func (s *notificationServiceImpl) Start(ctx context.Context) {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	s.stop = stop
	s.mu.Unlock()

	s.logger.Info().
		Dur("interval", s.pollInterval).
		Msg("starting unread count poll loop")
	go s.pollLoop(ctx, stop)
}

func (s *notificationServiceImpl) Stop() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		s.logger.Info().Msg("stopped unread count poll loop")
	}
}

func (s *notificationServiceImpl) pollLoop(ctx context.Context, stop chan struct{}) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.pollUnreadCount(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.pollUnreadCount(ctx)
		}
	}
}

// pollUnreadCount fetches the unread count as a fallback for the push
// channel. The push channel is authoritative: the poll result is
// discarded when the channel is connected at response arrival or when
// any push event landed while the poll was in flight. The in-flight
// check closes the window where a disconnect-and-reconnect mid-request
// would let a stale poll overwrite a fresher push.
func (s *notificationServiceImpl) pollUnreadCount(ctx context.Context) {
	seqBefore := s.channel.Seq()

	count, err := s.gateway.UnreadCount(ctx)
	if err != nil {
		if errors.Is(err, gateway.ErrSessionExpired) {
			if s.expired != nil {
				s.expired()
			}
			return
		}
		// Poll failures are quiet: the next tick retries anyway.
		s.logger.Warn().
			Err(err).
			Msg("failed to poll unread count")
		return
	}

	if s.channel.Connected() || s.channel.Seq() != seqBefore {
		s.logger.Debug().
			Int("count", count).
			Msg("discarded poll result in favor of push channel")
		return
	}

	s.mu.Lock()
	s.unread = count
	s.mu.Unlock()
	s.notify()

	s.logger.Debug().
		Int("count", count).
		Msg("applied polled unread count")
}

func (s *notificationServiceImpl) LoadNotifications(ctx context.Context) error {
	s.begin()

	notifications, err := s.gateway.ListNotifications(ctx)
	if err != nil {
		s.fail(err, "failed to load notifications")
		return err
	}

	unread := 0
	for i := range notifications {
		if !notifications[i].IsRead {
			unread++
		}
	}

	s.mu.Lock()
	s.notifications = notifications
	s.unread = unread
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Int("count", len(notifications)).
		Int("unread", unread).
		Msg("loaded notifications")
	return nil
}

func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, notificationID string) error {
	s.begin()

	err := s.gateway.MarkNotificationRead(ctx, notificationID)
	if err != nil {
		s.fail(err, "failed to mark notification read")
		return err
	}

	s.mu.Lock()
	next := make([]models.Notification, len(s.notifications))
	transitioned := false
	for i := range s.notifications {
		next[i] = s.notifications[i]
		if next[i].ID == notificationID && !next[i].IsRead {
			next[i].IsRead = true
			transitioned = true
		}
	}
	s.notifications = next
	if transitioned && s.unread > 0 {
		s.unread--
	}
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Str("notification_id", notificationID).
		Msg("marked notification read")
	return nil
}

func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context) error {
	s.begin()

	err := s.gateway.MarkAllNotificationsRead(ctx)
	if err != nil {
		s.fail(err, "failed to mark all notifications read")
		return err
	}

	s.mu.Lock()
	next := make([]models.Notification, len(s.notifications))
	for i := range s.notifications {
		next[i] = s.notifications[i]
		next[i].IsRead = true
	}
	s.notifications = next
	s.unread = 0
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().Msg("marked all notifications read")
	return nil
}

func (s *notificationServiceImpl) DeleteNotification(ctx context.Context, notificationID string) error {
	s.begin()

	err := s.gateway.DeleteNotification(ctx, notificationID)
	if err != nil {
		s.fail(err, "failed to delete notification")
		return err
	}

	s.mu.Lock()
	next := make([]models.Notification, 0, len(s.notifications))
	for i := range s.notifications {
		if s.notifications[i].ID == notificationID {
			if !s.notifications[i].IsRead && s.unread > 0 {
				s.unread--
			}
			continue
		}
		next = append(next, s.notifications[i])
	}
	s.notifications = next
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Str("notification_id", notificationID).
		Msg("deleted notification")
	return nil
}

func (s *notificationServiceImpl) HandleNewNotification(notification *models.Notification) {
	if notification == nil {
		return
	}

	s.mu.Lock()
	next := make([]models.Notification, 0, len(s.notifications)+1)
	next = append(next, *notification)
	next = append(next, s.notifications...)
	s.notifications = next
	s.mu.Unlock()
	s.notify()

	s.logger.Debug().
		Str("notification_id", notification.ID).
		Str("type", notification.Type).
		Msg("received pushed notification")
}

func (s *notificationServiceImpl) HandleUnreadCount(count int) {
	s.mu.Lock()
	s.unread = count
	s.mu.Unlock()
	s.notify()

	s.logger.Debug().
		Int("count", count).
		Msg("received pushed unread count")
}

func (s *notificationServiceImpl) HandleNotificationRead(notificationID string) {
	s.mu.Lock()
	next := make([]models.Notification, len(s.notifications))
	for i := range s.notifications {
		next[i] = s.notifications[i]
		if next[i].ID == notificationID {
			next[i].IsRead = true
		}
	}
	s.notifications = next
	s.mu.Unlock()
	s.notify()

	s.logger.Debug().
		Str("notification_id", notificationID).
		Msg("received pushed read event")
}

func (s *notificationServiceImpl) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notifications
}

func (s *notificationServiceImpl) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

func (s *notificationServiceImpl) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *notificationServiceImpl) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *notificationServiceImpl) Reset() {
	s.mu.Lock()
	s.notifications = nil
	s.unread = 0
	s.loading = false
	s.err = nil
	s.mu.Unlock()
	s.notify()
}
