package services

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/gateway"
	"github.com/taskflow/taskflow-go/internal/models"
)

type authServiceImpl struct {
	logger      zerolog.Logger
	gateway     AuthGateway
	channel     RealtimeChannel
	resettables []Resettable

	mu      sync.RWMutex
	session *models.Session
	user    *models.User
}

func NewAuthService(
	logger zerolog.Logger,
	gw AuthGateway,
	channel RealtimeChannel,
	resettables ...Resettable,
) AuthService {
	return &authServiceImpl{
		logger:      logger,
		gateway:     gw,
		channel:     channel,
		resettables: resettables,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.Session, error) {
	result, err := s.gateway.Login(ctx, gateway.LoginParams{
		Email:    email,
		Password: password,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to login")
		return nil, err
	}

	now := time.Now()
	session := &models.Session{
		UserID:      result.User.ID,
		AccessToken: result.AccessToken,
		ExpiresAt:   tokenExpiry(result.AccessToken),
		CreatedAt:   now,
	}

	user := result.User
	s.mu.Lock()
	s.session = session
	s.user = &user
	s.mu.Unlock()

	// Fresh credentials force the push channel to re-handshake.
	err = s.channel.Reconnect(ctx, result.AccessToken)
	if err != nil {
		// The session is still usable over HTTP; polling covers
		// notifications until the channel comes back.
		s.logger.Warn().
			Err(err).
			Msg("failed to reconnect realtime channel after login")
	}

	s.logger.Info().
		Str("user_id", session.UserID).
		Time("expires_at", session.ExpiresAt).
		Msg("logged in")
	return session, nil
}

func (s *authServiceImpl) Logout(ctx context.Context) error {
	err := s.gateway.Logout(ctx)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("backend logout failed, clearing local state anyway")
	}

	s.teardown()
	s.logger.Info().Msg("logged out")
	return nil
}

// HandleSessionExpired is the containers' 401 hook: the session is
// gone server-side, so everything local is torn down.
func (s *authServiceImpl) HandleSessionExpired() {
	s.logger.Warn().Msg("session expired, clearing local state")
	s.teardown()
}

func (s *authServiceImpl) teardown() {
	s.channel.Disconnect()

	s.mu.Lock()
	s.session = nil
	s.user = nil
	s.mu.Unlock()

	for _, r := range s.resettables {
		r.Reset()
	}
}

func (s *authServiceImpl) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *authServiceImpl) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// tokenExpiry reads the exp claim without verifying the signature; the
// backend owns verification, the client only schedules around expiry.
func tokenExpiry(token string) time.Time {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
