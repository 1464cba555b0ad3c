package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "task-assignment.com/task-assignment/internal/errors"
)

func TestMemoryLimiter_WindowResets(t *testing.T) {
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(2, time.Minute)
	limiter.now = func() time.Time { return current }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if ok, _ := limiter.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("third request in the window should be rejected")
	}
	if ok, _ := limiter.Allow(ctx, "5.6.7.8"); !ok {
		t.Fatal("other clients have their own bucket")
	}

	current = current.Add(time.Minute + time.Second)
	if ok, _ := limiter.Allow(ctx, "1.2.3.4"); !ok {
		t.Fatal("request after the window should be allowed")
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func serve(t *testing.T, limiter Limiter) error {
	t.Helper()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	return RateLimiter(limiter)(func(c echo.Context) error { return nil })(c)
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)

	if err := serve(t, limiter); err != nil {
		t.Fatalf("first request should pass, got %v", err)
	}
	if err := serve(t, limiter); !errors.Is(err, apperrors.ErrRateLimited) {
		t.Fatalf("want rate limited, got %v", err)
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	if err := serve(t, failingLimiter{}); err != nil {
		t.Fatalf("limiter errors should not block requests, got %v", err)
	}
}
