package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func newTestBackend(t *testing.T, register func(r *gin.Engine)) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	register(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return NewClient(zerolog.Nop(), srv.URL, 5*time.Second, NewTokenStore())
}

func TestClient_LoginStoresToken(t *testing.T) {
	var gotAuth string
	client := newTestBackend(t, func(r *gin.Engine) {
		r.POST("/auth/login", func(c *gin.Context) {
			var params LoginParams
			if err := c.ShouldBindJSON(&params); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"statusCode": http.StatusOK,
				"message":    "ok",
				"data": gin.H{
					"accessToken": "token-123",
					"user":        gin.H{"id": "u1", "email": params.Email},
				},
			})
		})
		r.GET("/auth/me", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			c.JSON(http.StatusOK, gin.H{"id": "u1"})
		})
	})

	result, err := client.Login(context.Background(), LoginParams{
		Email:    "dev@taskflow.io",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AccessToken != "token-123" || result.User.ID != "u1" {
		t.Errorf("unexpected login result: %+v", result)
	}

	if _, err = client.Me(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("expected bearer header with the stored token, got %q", gotAuth)
	}
}

func TestClient_NormalizesResponseShapes(t *testing.T) {
	client := newTestBackend(t, func(r *gin.Engine) {
		// Documented envelope.
		r.GET("/tasks/enveloped", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"statusCode": http.StatusOK,
				"message":    "ok",
				"data":       gin.H{"id": "enveloped", "title": "A"},
				"timestamp":  time.Now().Format(time.RFC3339),
			})
		})
		// Bare entity.
		r.GET("/tasks/bare", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": "bare", "title": "B"})
		})
		// Plain {data} wrapper without the envelope fields.
		r.GET("/tasks/wrapped", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"data": gin.H{"id": "wrapped", "title": "C"},
			})
		})
	})

	for _, id := range []string{"enveloped", "bare", "wrapped"} {
		t.Run(id, func(t *testing.T) {
			task, err := client.GetTask(context.Background(), id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if task.ID != id {
				t.Errorf("expected id %s, got %s", id, task.ID)
			}
		})
	}
}

func TestClient_ListTasksPagination(t *testing.T) {
	client := newTestBackend(t, func(r *gin.Engine) {
		r.GET("/tasks", func(c *gin.Context) {
			if c.Query("projectId") == "p1" {
				c.JSON(http.StatusOK, gin.H{
					"data": []gin.H{{"id": "1"}, {"id": "2"}},
					"meta": gin.H{"total": 12, "page": 2, "limit": 2, "totalPages": 6},
				})
				return
			}
			// Legacy endpoints answer with a bare array.
			c.JSON(http.StatusOK, []gin.H{{"id": "3"}})
		})
	})

	tasks, meta, err := client.ListTasks(context.Background(), ListTasksParams{
		ProjectID: "p1",
		Page:      2,
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(tasks))
	}
	want := PageMeta{Total: 12, Page: 2, Limit: 2, TotalPages: 6}
	if meta != want {
		t.Errorf("expected meta %+v, got %+v", want, meta)
	}

	tasks, meta, err = client.ListTasks(context.Background(), ListTasksParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "3" {
		t.Errorf("expected [3], got %v", tasks)
	}
	if meta != (PageMeta{}) {
		t.Errorf("bare array must yield zero meta, got %+v", meta)
	}
}

func TestClient_UnauthorizedBecomesSessionExpired(t *testing.T) {
	client := newTestBackend(t, func(r *gin.Engine) {
		r.GET("/tasks/:id", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "token expired"})
		})
	})

	_, err := client.GetTask(context.Background(), "1")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestClient_APIErrorMessages(t *testing.T) {
	client := newTestBackend(t, func(r *gin.Engine) {
		r.GET("/tasks/message", func(c *gin.Context) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"statusCode": http.StatusUnprocessableEntity,
				"message":    "title must not be empty",
			})
		})
		r.GET("/tasks/error-field", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"error": "task already exists"})
		})
		r.GET("/tasks/empty", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})
	})

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantMsg    string
	}{
		{"envelope message", "message", http.StatusUnprocessableEntity, "title must not be empty"},
		{"error field", "error-field", http.StatusConflict, "task already exists"},
		{"empty body falls back to status text", "empty", http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.GetTask(context.Background(), tt.id)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, apiErr.StatusCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, apiErr.Message)
			}
		})
	}
}

func TestClient_LogoutClearsTokenEvenOnFailure(t *testing.T) {
	client := newTestBackend(t, func(r *gin.Engine) {
		r.POST("/auth/logout", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
		})
	})
	client.Tokens().Set("stale-token")

	if err := client.Logout(context.Background()); err == nil {
		t.Fatal("expected an error from the failed logout")
	}
	if _, ok := client.Tokens().Get(); ok {
		t.Error("token must be cleared even when the backend logout fails")
	}
}

func TestClient_UnreadCount(t *testing.T) {
	client := newTestBackend(t, func(r *gin.Engine) {
		r.GET("/notifications/unread-count", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"statusCode": http.StatusOK,
				"data":       gin.H{"count": 4},
			})
		})
	})

	count, err := client.UnreadCount(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4, got %d", count)
	}
}

func TestClient_UpdateTaskSendsPartialBody(t *testing.T) {
	client := newTestBackend(t, func(r *gin.Engine) {
		r.PATCH("/tasks/:id", func(c *gin.Context) {
			var body map[string]any
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if _, ok := body["title"]; ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unset fields must be omitted"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": body["status"]})
		})
	})

	status := "DONE"
	task, err := client.UpdateTask(context.Background(), "1", UpdateTaskParams{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != "DONE" {
		t.Errorf("expected DONE, got %s", task.Status)
	}
}
