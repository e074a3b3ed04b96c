package services

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/hollyoak/plateful/internal/models"
)

func decodeRecipePatch(t *testing.T, body string) RecipePatch {
	t.Helper()

	var patch RecipePatch
	if err := json.Unmarshal([]byte(body), &patch); err != nil {
		t.Fatalf("unmarshal patch %q: %v", body, err)
	}
	return patch
}

func TestPatchFieldDistinguishesAbsentNullAndValue(t *testing.T) {
	t.Parallel()

	patch := decodeRecipePatch(t, `{"description":null,"cook_time_minutes":25}`)

	if patch.Title.Defined {
		t.Fatal("expected absent title to stay undefined")
	}
	if !patch.Description.Defined || !patch.Description.Null {
		t.Fatalf("expected null description to be defined and null, got %+v", patch.Description)
	}
	if !patch.CookTimeMinutes.Defined || patch.CookTimeMinutes.Null {
		t.Fatalf("expected cook time value to be defined and non-null, got %+v", patch.CookTimeMinutes)
	}
	if patch.CookTimeMinutes.Value != 25 {
		t.Fatalf("expected cook time 25, got %d", patch.CookTimeMinutes.Value)
	}
}

func TestApplyRecipePatchLeavesAbsentFieldsUntouched(t *testing.T) {
	t.Parallel()

	minutes := 40
	recipe := models.Recipe{
		Title:           "Minestrone",
		Description:     "hearty",
		CookTimeMinutes: &minutes,
		Tags:            []string{"soup"},
		Ingredients:     []string{"beans"},
	}
	snapshot := recipe

	if err := ApplyRecipePatch(&recipe, decodeRecipePatch(t, `{}`)); err != nil {
		t.Fatalf("empty patch failed: %v", err)
	}
	if !reflect.DeepEqual(recipe, snapshot) {
		t.Fatalf("empty patch changed the recipe: %+v", recipe)
	}
}

func TestApplyRecipePatchSetsAndClears(t *testing.T) {
	t.Parallel()

	minutes := 40
	recipe := models.Recipe{
		Title:           "Minestrone",
		Description:     "hearty",
		CookTimeMinutes: &minutes,
		Tags:            []string{"soup"},
		SourceURLs:      []string{"https://example.com/minestrone"},
		Ingredients:     []string{"beans"},
	}

	patch := decodeRecipePatch(t, `{
		"title": "  Winter Minestrone ",
		"description": null,
		"cook_time_minutes": null,
		"tags": [" soup ", "", "dinner"],
		"source_urls": null,
		"ingredients": ["  beans ", "kale", "   "]
	}`)
	if err := ApplyRecipePatch(&recipe, patch); err != nil {
		t.Fatalf("patch failed: %v", err)
	}

	if recipe.Title != "Winter Minestrone" {
		t.Fatalf("expected trimmed title, got %q", recipe.Title)
	}
	if recipe.Description != "" {
		t.Fatalf("expected cleared description, got %q", recipe.Description)
	}
	if recipe.CookTimeMinutes != nil {
		t.Fatalf("expected cleared cook time, got %v", *recipe.CookTimeMinutes)
	}
	if !reflect.DeepEqual(recipe.Tags, []string{"soup", "dinner"}) {
		t.Fatalf("expected normalized tags, got %v", recipe.Tags)
	}
	if !reflect.DeepEqual(recipe.SourceURLs, []string{}) {
		t.Fatalf("expected cleared source urls, got %v", recipe.SourceURLs)
	}
	if !reflect.DeepEqual(recipe.Ingredients, []string{"beans", "kale"}) {
		t.Fatalf("expected normalized ingredients, got %v", recipe.Ingredients)
	}
}

func TestApplyRecipePatchRejectsClearedTitle(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"title":null}`, `{"title":""}`, `{"title":"   "}`} {
		recipe := models.Recipe{Title: "Minestrone"}
		err := ApplyRecipePatch(&recipe, decodeRecipePatch(t, body))
		if !errors.Is(err, ErrRecipeTitleRequired) {
			t.Fatalf("patch %q: expected ErrRecipeTitleRequired, got %v", body, err)
		}
		if recipe.Title != "Minestrone" {
			t.Fatalf("patch %q: title changed despite error, got %q", body, recipe.Title)
		}
	}
}

func TestApplyRecipePatchRejectsNonPositiveCookTime(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"cook_time_minutes":0}`, `{"cook_time_minutes":-5}`} {
		recipe := models.Recipe{Title: "Minestrone"}
		err := ApplyRecipePatch(&recipe, decodeRecipePatch(t, body))
		if !errors.Is(err, ErrRecipeCookTimeInvalid) {
			t.Fatalf("patch %q: expected ErrRecipeCookTimeInvalid, got %v", body, err)
		}
	}
}
