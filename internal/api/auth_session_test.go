package api

import (
	"net/http"
	"testing"
)

func TestRegisterCreatesSessionCookie(t *testing.T) {
	app, _, _ := newTestApp(t)

	cookie := registerTestUser(t, app, "cook@example.com", "StrongPass1")
	if cookie == "" {
		t.Fatal("expected auth cookie after register")
	}

	response := performRequest(t, app, jsonRequest(t, http.MethodGet, "/api/recipes", nil, cookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected authenticated request to pass, got %d", response.StatusCode)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app, _, _ := newTestApp(t)
	registerTestUser(t, app, "cook@example.com", "StrongPass1")

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":            "Cook@Example.com",
		"password":         "OtherPass1",
		"confirm_password": "OtherPass1",
	}, "")
	response := performRequest(t, app, request)
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409 for duplicate email, got %d", response.StatusCode)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	app, _, _ := newTestApp(t)

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"missing email", map[string]any{"password": "StrongPass1", "confirm_password": "StrongPass1"}},
		{"malformed email", map[string]any{"email": "not-an-email", "password": "StrongPass1", "confirm_password": "StrongPass1"}},
		{"missing confirmation", map[string]any{"email": "a@example.com", "password": "StrongPass1"}},
		{"password mismatch", map[string]any{"email": "a@example.com", "password": "StrongPass1", "confirm_password": "StrongPass2"}},
		{"weak password", map[string]any{"email": "a@example.com", "password": "weakweak", "confirm_password": "weakweak"}},
	}
	for _, testCase := range cases {
		response := performRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/register", testCase.payload, ""))
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", testCase.name, response.StatusCode)
		}
	}
}

func TestLoginAcceptsUnnormalizedEmail(t *testing.T) {
	app, _, _ := newTestApp(t)
	registerTestUser(t, app, "cook@example.com", "StrongPass1")

	cookie := loginAndExtractAuthCookie(t, app, "  Cook@Example.COM  ", "StrongPass1")
	if cookie == "" {
		t.Fatal("expected auth cookie")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app, _, _ := newTestApp(t)
	registerTestUser(t, app, "cook@example.com", "StrongPass1")

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "cook@example.com",
		"password": "WrongPass1",
	}, "")
	response := performRequest(t, app, request)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
	if message := readAPIError(t, response.Body); message != "invalid credentials" {
		t.Fatalf("unexpected error message %q", message)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	app, _, _ := newTestApp(t)

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ghost@example.com",
		"password": "StrongPass1",
	}, "")
	response := performRequest(t, app, request)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "cook@example.com", "StrongPass1")

	response := performRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/logout", nil, cookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected logout status 200, got %d", response.StatusCode)
	}

	cleared := responseCookie(response.Cookies(), authCookieName)
	if cleared == nil || cleared.Value != "" {
		t.Fatal("expected logout response to clear the auth cookie")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app, _, _ := newTestApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/recipes"},
		{http.MethodGet, "/api/plans/2026-03-02"},
		{http.MethodGet, "/api/plans/2026-03-02/groceries"},
		{http.MethodPost, "/api/auth/logout"},
	}
	for _, route := range paths {
		response := performRequest(t, app, jsonRequest(t, route.method, route.path, nil, ""))
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected status 401, got %d", route.method, route.path, response.StatusCode)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	app, _, _ := newTestApp(t)

	response := performRequest(t, app, jsonRequest(t, http.MethodGet, "/healthz", nil, ""))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := decodeJSONMap(t, response.Body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected health payload %v", body)
	}
}

func TestGarbageAuthCookieIsRejected(t *testing.T) {
	app, _, _ := newTestApp(t)

	request := jsonRequest(t, http.MethodGet, "/api/recipes", nil, authCookieName+"=not-a-token")
	response := performRequest(t, app, request)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}
