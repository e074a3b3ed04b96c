package api

import (
	"net/http"
	"testing"
	"time"
)

func TestLoginLimiterBlocksAfterRepeatedFailures(t *testing.T) {
	app, _, _ := newTestApp(t)
	registerTestUser(t, app, "cook@example.com", "StrongPass1")

	for attempt := 0; attempt < loginAttemptLimit; attempt++ {
		response := performRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "cook@example.com",
			"password": "WrongPass1",
		}, ""))
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected status 401, got %d", attempt, response.StatusCode)
		}
	}

	blocked := performRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "cook@example.com",
		"password": "StrongPass1",
	}, ""))
	if blocked.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 after %d failures, got %d", loginAttemptLimit, blocked.StatusCode)
	}
}

func TestLoginLimiterForgetsAfterSuccess(t *testing.T) {
	app, _, _ := newTestApp(t)
	registerTestUser(t, app, "cook@example.com", "StrongPass1")

	for attempt := 0; attempt < loginAttemptLimit-1; attempt++ {
		performRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "cook@example.com",
			"password": "WrongPass1",
		}, ""))
	}
	loginAndExtractAuthCookie(t, app, "cook@example.com", "StrongPass1")

	for attempt := 0; attempt < loginAttemptLimit-1; attempt++ {
		response := performRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "cook@example.com",
			"password": "WrongPass1",
		}, ""))
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected failures to start counting from zero again, got %d", response.StatusCode)
		}
	}
}

func TestAttemptLimiterWindowExpires(t *testing.T) {
	limiter := newAttemptLimiter(2, time.Minute)
	base := time.Now()

	limiter.recordFailure("key", base)
	limiter.recordFailure("key", base)
	if !limiter.blocked("key", base.Add(time.Second)) {
		t.Fatal("expected key to be blocked inside the window")
	}
	if limiter.blocked("key", base.Add(2*time.Minute)) {
		t.Fatal("expected key to be unblocked after the window")
	}
}
