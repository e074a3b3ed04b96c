package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/db"
	"github.com/hollyoak/plateful/internal/imagestore"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *Handler) {
	t.Helper()
	return newTestAppWithOptions(t, false, false)
}

func newTestAppWithOptions(t *testing.T, cookieSecure bool, publicImages bool) (*fiber.App, *gorm.DB, *Handler) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "plateful-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	images, err := imagestore.NewStore(filepath.Join(t.TempDir(), "images"))
	if err != nil {
		t.Fatalf("init image store: %v", err)
	}

	handler, err := NewHandler(database, "test-secret-key", images, time.UTC, cookieSecure, publicImages)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.ResolveSession)
	RegisterRoutes(app, handler)
	return app, database, handler
}

func jsonRequest(t *testing.T, method string, path string, payload any, authCookie string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}
	return request
}

func performRequest(t *testing.T, app *fiber.App, request *http.Request) *http.Response {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func decodeJSONMap(t *testing.T, body io.Reader) map[string]any {
	t.Helper()

	payload := map[string]any{}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
	return payload
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
	return payload["error"]
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func registerTestUser(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":            email,
		"password":         password,
		"confirm_password": password,
	}, "")
	response := performRequest(t, app, request)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d: %s", response.StatusCode, readAPIError(t, response.Body))
	}

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("auth cookie is missing in register response")
	}
	return cookie.Name + "=" + cookie.Value
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	response := performRequest(t, app, request)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d: %s", response.StatusCode, readAPIError(t, response.Body))
	}

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("auth cookie is missing in login response")
	}
	return cookie.Name + "=" + cookie.Value
}

func createTestRecipe(t *testing.T, app *fiber.App, authCookie string, payload map[string]any) uint {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/recipes", payload, authCookie)
	response := performRequest(t, app, request)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected recipe create status 201, got %d: %s", response.StatusCode, readAPIError(t, response.Body))
	}

	body := decodeJSONMap(t, response.Body)
	id, ok := body["id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("expected numeric recipe id in response, got %v", body)
	}
	return uint(id)
}

func multipartImageRequest(t *testing.T, path string, filename string, content []byte, authCookie string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, path, &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}
	return request
}
