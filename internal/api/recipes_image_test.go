package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func fetchRecipeImageURL(t *testing.T, app *fiber.App, recipeID uint, cookie string) string {
	t.Helper()

	detail := decodeJSONMap(t, performRequest(t, app, jsonRequest(t, http.MethodGet, urlForRecipe(recipeID), nil, cookie)).Body)
	imageURL, _ := detail["image_url"].(string)
	return imageURL
}

func TestUploadImageAndServeSigned(t *testing.T) {
	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "cook@example.com", "StrongPass1")
	recipeID := createTestRecipe(t, app, cookie, map[string]any{"title": "Lentil Soup"})
	content := []byte("jpeg bytes")

	upload := performRequest(t, app, multipartImageRequest(t, urlForRecipe(recipeID)+"/image", "soup.jpg", content, cookie))
	if upload.StatusCode != http.StatusOK {
		t.Fatalf("expected upload status 200, got %d: %s", upload.StatusCode, readAPIError(t, upload.Body))
	}

	imageURL := fetchRecipeImageURL(t, app, recipeID, cookie)
	if !strings.HasPrefix(imageURL, "/images/") {
		t.Fatalf("expected /images/ delivery url, got %q", imageURL)
	}
	if !strings.Contains(imageURL, "?token=") {
		t.Fatalf("expected signed url in signed mode, got %q", imageURL)
	}

	served := performRequest(t, app, httptest.NewRequest(http.MethodGet, imageURL, nil))
	if served.StatusCode != http.StatusOK {
		t.Fatalf("expected image status 200, got %d", served.StatusCode)
	}
	body, err := io.ReadAll(served.Body)
	if err != nil {
		t.Fatalf("read image body: %v", err)
	}
	if string(body) != string(content) {
		t.Fatal("served image bytes differ from uploaded bytes")
	}
}

func TestServeImageRequiresTokenInSignedMode(t *testing.T) {
	app, _, handler := newTestApp(t)
	cookie := registerTestUser(t, app, "cook@example.com", "StrongPass1")
	recipeID := createTestRecipe(t, app, cookie, map[string]any{"title": "Lentil Soup"})
	performRequest(t, app, multipartImageRequest(t, urlForRecipe(recipeID)+"/image", "soup.jpg", []byte("x"), cookie))

	imageURL := fetchRecipeImageURL(t, app, recipeID, cookie)
	bareURL := strings.SplitN(imageURL, "?", 2)[0]

	bare := performRequest(t, app, httptest.NewRequest(http.MethodGet, bareURL, nil))
	if bare.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403 without token, got %d", bare.StatusCode)
	}

	garbage := performRequest(t, app, httptest.NewRequest(http.MethodGet, bareURL+"?token=garbage", nil))
	if garbage.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403 for garbage token, got %d", garbage.StatusCode)
	}

	key := strings.TrimPrefix(bareURL, "/images/")
	expired := expiredImageToken(t, handler, key)
	stale := performRequest(t, app, httptest.NewRequest(http.MethodGet, bareURL+"?token="+expired, nil))
	if stale.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403 for expired token, got %d", stale.StatusCode)
	}

	otherKeyToken, err := handler.buildImageToken("0b5c3a90-8f4e-4c9f-9a15-1f2d3c4b5a69.jpg", time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	mismatched := performRequest(t, app, httptest.NewRequest(http.MethodGet, bareURL+"?token="+otherKeyToken, nil))
	if mismatched.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403 for token signed for another key, got %d", mismatched.StatusCode)
	}
}

func expiredImageToken(t *testing.T, handler *Handler, key string) string {
	t.Helper()

	claims := imageTokenClaims{
		Key:     key,
		Purpose: imageTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	return signed
}

func TestServeImagePublicMode(t *testing.T) {
	app, _, _ := newTestAppWithOptions(t, false, true)
	cookie := registerTestUser(t, app, "cook@example.com", "StrongPass1")
	recipeID := createTestRecipe(t, app, cookie, map[string]any{"title": "Lentil Soup"})
	performRequest(t, app, multipartImageRequest(t, urlForRecipe(recipeID)+"/image", "soup.png", []byte("png"), cookie))

	imageURL := fetchRecipeImageURL(t, app, recipeID, cookie)
	if strings.Contains(imageURL, "?token=") {
		t.Fatalf("expected bare url in public mode, got %q", imageURL)
	}

	served := performRequest(t, app, httptest.NewRequest(http.MethodGet, imageURL, nil))
	if served.StatusCode != http.StatusOK {
		t.Fatalf("expected public image status 200, got %d", served.StatusCode)
	}
}

func TestUploadImageRejectsUnsupportedType(t *testing.T) {
	app, _, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "cook@example.com", "StrongPass1")
	recipeID := createTestRecipe(t, app, cookie, map[string]any{"title": "Lentil Soup"})

	upload := performRequest(t, app, multipartImageRequest(t, urlForRecipe(recipeID)+"/image", "notes.txt", []byte("text"), cookie))
	if upload.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", upload.StatusCode)
	}
}

func TestDeleteImageClearsKeyAndObject(t *testing.T) {
	app, _, handler := newTestApp(t)
	cookie := registerTestUser(t, app, "cook@example.com", "StrongPass1")
	recipeID := createTestRecipe(t, app, cookie, map[string]any{"title": "Lentil Soup"})
	performRequest(t, app, multipartImageRequest(t, urlForRecipe(recipeID)+"/image", "soup.webp", []byte("webp"), cookie))

	imageURL := fetchRecipeImageURL(t, app, recipeID, cookie)
	key := strings.TrimPrefix(strings.SplitN(imageURL, "?", 2)[0], "/images/")

	removal := performRequest(t, app, jsonRequest(t, http.MethodDelete, urlForRecipe(recipeID)+"/image", nil, cookie))
	if removal.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", removal.StatusCode)
	}

	if url := fetchRecipeImageURL(t, app, recipeID, cookie); url != "" {
		t.Fatalf("expected cleared image url, got %q", url)
	}

	token, err := handler.buildImageToken(key, time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	gone := performRequest(t, app, httptest.NewRequest(http.MethodGet, "/images/"+key+"?token="+token, nil))
	if gone.StatusCode != http.StatusNotFound {
		t.Fatalf("expected removed object to 404, got %d", gone.StatusCode)
	}
}

func TestDeleteRecipeRemovesStoredImage(t *testing.T) {
	app, _, handler := newTestApp(t)
	cookie := registerTestUser(t, app, "cook@example.com", "StrongPass1")
	recipeID := createTestRecipe(t, app, cookie, map[string]any{"title": "Lentil Soup"})
	performRequest(t, app, multipartImageRequest(t, urlForRecipe(recipeID)+"/image", "soup.gif", []byte("gif"), cookie))

	imageURL := fetchRecipeImageURL(t, app, recipeID, cookie)
	key := strings.TrimPrefix(strings.SplitN(imageURL, "?", 2)[0], "/images/")

	performRequest(t, app, jsonRequest(t, http.MethodDelete, urlForRecipe(recipeID), nil, cookie))

	token, err := handler.buildImageToken(key, time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	gone := performRequest(t, app, httptest.NewRequest(http.MethodGet, "/images/"+key+"?token="+token, nil))
	if gone.StatusCode != http.StatusNotFound {
		t.Fatalf("expected image removed with its recipe, got %d", gone.StatusCode)
	}
}
