package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/gateway"
	"github.com/taskflow/taskflow-go/internal/models"
)

func signedTestToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestAuthService_LoginStoresSessionAndReconnects(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedTestToken(t, expiresAt)

	gw := &fakeAuthGateway{
		loginFn: func(_ context.Context, params gateway.LoginParams) (*gateway.LoginResult, error) {
			if params.Email != "dev@taskflow.io" {
				t.Errorf("unexpected email %s", params.Email)
			}
			return &gateway.LoginResult{
				AccessToken: token,
				User:        models.User{ID: "u1", Email: params.Email},
			}, nil
		},
	}
	channel := &fakeRealtimeChannel{}
	svc := NewAuthService(zerolog.Nop(), gw, channel)

	session, err := svc.Login(context.Background(), "dev@taskflow.io", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.UserID != "u1" {
		t.Errorf("expected user u1, got %s", session.UserID)
	}
	if !session.ExpiresAt.Equal(expiresAt) {
		t.Errorf("expected expiry %v from the token claims, got %v", expiresAt, session.ExpiresAt)
	}
	if svc.Session() == nil || svc.CurrentUser() == nil {
		t.Fatal("expected session and user stored")
	}
	if channel.reconnects != 1 || channel.lastToken != token {
		t.Errorf("expected one reconnect with the fresh token, got %d (%q)",
			channel.reconnects, channel.lastToken)
	}
}

func TestAuthService_LoginSurvivesChannelFailure(t *testing.T) {
	gw := &fakeAuthGateway{
		loginFn: func(_ context.Context, _ gateway.LoginParams) (*gateway.LoginResult, error) {
			return &gateway.LoginResult{
				AccessToken: "not-a-jwt",
				User:        models.User{ID: "u1"},
			}, nil
		},
	}
	channel := &fakeRealtimeChannel{reconnectErr: errBackend}
	svc := NewAuthService(zerolog.Nop(), gw, channel)

	session, err := svc.Login(context.Background(), "dev@taskflow.io", "secret")
	if err != nil {
		t.Fatalf("a channel failure must not fail login: %v", err)
	}
	if !session.ExpiresAt.IsZero() {
		t.Errorf("an unparseable token yields a zero expiry, got %v", session.ExpiresAt)
	}
}

func TestAuthService_LoginFailure(t *testing.T) {
	gw := &fakeAuthGateway{
		loginFn: func(_ context.Context, _ gateway.LoginParams) (*gateway.LoginResult, error) {
			return nil, errBackend
		},
	}
	channel := &fakeRealtimeChannel{}
	svc := NewAuthService(zerolog.Nop(), gw, channel)

	if _, err := svc.Login(context.Background(), "dev@taskflow.io", "wrong"); !errors.Is(err, errBackend) {
		t.Fatalf("expected errBackend, got %v", err)
	}
	if svc.Session() != nil {
		t.Error("failed login must not store a session")
	}
	if channel.reconnects != 0 {
		t.Error("failed login must not touch the channel")
	}
}

func TestAuthService_LogoutTearsDown(t *testing.T) {
	gw := &fakeAuthGateway{
		loginFn: func(_ context.Context, _ gateway.LoginParams) (*gateway.LoginResult, error) {
			return &gateway.LoginResult{AccessToken: "t", User: models.User{ID: "u1"}}, nil
		},
	}
	channel := &fakeRealtimeChannel{}
	tasks := &fakeResettable{}
	search := &fakeResettable{}
	svc := NewAuthService(zerolog.Nop(), gw, channel, tasks, search)

	_, _ = svc.Login(context.Background(), "dev@taskflow.io", "secret")
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if svc.Session() != nil || svc.CurrentUser() != nil {
		t.Error("logout must drop the session and user")
	}
	if channel.disconnects != 1 {
		t.Errorf("expected one disconnect, got %d", channel.disconnects)
	}
	if tasks.resets != 1 || search.resets != 1 {
		t.Errorf("expected every container reset once, got %d/%d", tasks.resets, search.resets)
	}
	if gw.logouts != 1 {
		t.Errorf("expected one backend logout, got %d", gw.logouts)
	}
}

func TestAuthService_LogoutClearsStateOnBackendFailure(t *testing.T) {
	gw := &fakeAuthGateway{
		loginFn: func(_ context.Context, _ gateway.LoginParams) (*gateway.LoginResult, error) {
			return &gateway.LoginResult{AccessToken: "t", User: models.User{ID: "u1"}}, nil
		},
		logoutErr: errBackend,
	}
	channel := &fakeRealtimeChannel{}
	svc := NewAuthService(zerolog.Nop(), gw, channel)

	_, _ = svc.Login(context.Background(), "dev@taskflow.io", "secret")
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("backend logout failure is best effort, got %v", err)
	}
	if svc.Session() != nil {
		t.Error("local state must be cleared even when backend logout fails")
	}
}

func TestAuthService_HandleSessionExpired(t *testing.T) {
	gw := &fakeAuthGateway{
		loginFn: func(_ context.Context, _ gateway.LoginParams) (*gateway.LoginResult, error) {
			return &gateway.LoginResult{AccessToken: "t", User: models.User{ID: "u1"}}, nil
		},
	}
	channel := &fakeRealtimeChannel{}
	tasks := &fakeResettable{}
	svc := NewAuthService(zerolog.Nop(), gw, channel, tasks)

	_, _ = svc.Login(context.Background(), "dev@taskflow.io", "secret")
	svc.HandleSessionExpired()

	if svc.Session() != nil {
		t.Error("expired session must be dropped")
	}
	if channel.disconnects != 1 {
		t.Errorf("expected one disconnect, got %d", channel.disconnects)
	}
	if tasks.resets != 1 {
		t.Errorf("expected container reset, got %d", tasks.resets)
	}
	if gw.logouts != 0 {
		t.Error("expiry must not call backend logout")
	}
}
