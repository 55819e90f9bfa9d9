package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/gateway"
	"github.com/taskflow/taskflow-go/internal/models"
)

type userServiceImpl struct {
	broadcaster

	logger  zerolog.Logger
	gateway UserGateway
	expired SessionExpiredHandler

	mu      sync.RWMutex
	users   []models.User
	loading bool
	err     error
}

func NewUserService(
	logger zerolog.Logger,
	gw UserGateway,
	expired SessionExpiredHandler,
) UsersService {
	return &userServiceImpl{
		logger:  logger,
		gateway: gw,
		expired: expired,
	}
}

func (s *userServiceImpl) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

func (s *userServiceImpl) fail(err error, msg string) {
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

func (s *userServiceImpl) LoadUsers(ctx context.Context) error {
	s.begin()

	users, err := s.gateway.ListUsers(ctx)
	if err != nil {
		s.fail(err, "failed to load users")
		return err
	}

	s.mu.Lock()
	s.users = users
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Int("count", len(users)).
		Msg("loaded users")
	return nil
}

func (s *userServiceImpl) UpdateUserRole(ctx context.Context, userID, role string) (*models.User, error) {
	if role != models.UserRoleAdmin && role != models.UserRoleMember {
		return nil, ErrInvalidRole
	}

	s.begin()

	user, err := s.gateway.UpdateUserRole(ctx, userID, role)
	if err != nil {
		s.fail(err, "failed to update user role")
		return nil, err
	}

	s.mu.Lock()
	next := make([]models.User, len(s.users))
	for i := range s.users {
		if s.users[i].ID == user.ID {
			next[i] = *user
		} else {
			next[i] = s.users[i]
		}
	}
	s.users = next
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", role).
		Msg("updated user role")
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	s.begin()

	err := s.gateway.DeleteUser(ctx, userID)
	if err != nil {
		s.fail(err, "failed to delete user")
		return err
	}

	s.mu.Lock()
	next := make([]models.User, 0, len(s.users))
	for i := range s.users {
		if s.users[i].ID != userID {
			next = append(next, s.users[i])
		}
	}
	s.users = next
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Str("user_id", userID).
		Msg("deleted user")
	return nil
}

func (s *userServiceImpl) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users
}

func (s *userServiceImpl) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *userServiceImpl) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *userServiceImpl) Reset() {
	s.mu.Lock()
	s.users = nil
	s.loading = false
	s.err = nil
	s.mu.Unlock()
	s.notify()
}
