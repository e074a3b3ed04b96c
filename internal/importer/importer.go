package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrImportURLInvalid    = errors.New("import url invalid")
	ErrImportFetchFailed   = errors.New("import fetch failed")
	ErrImportNoRecipeFound = errors.New("no recipe found on page")
)

// ImportedRecipe is the recipe data recovered from a source page.
type ImportedRecipe struct {
	Title           string
	Description     string
	CookTimeMinutes *int
	Ingredients     []string
	SourceURL       string
}

// Fetcher retrieves the HTML document behind a URL. Tests substitute a
// canned fetcher.
type Fetcher func(pageURL string) (io.ReadCloser, error)

type Importer struct {
	fetch Fetcher
}

func New() *Importer {
	return &Importer{fetch: fetchOverHTTP}
}

func NewWithFetcher(fetch Fetcher) *Importer {
	return &Importer{fetch: fetch}
}

func fetchOverHTTP(pageURL string) (io.ReadCloser, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	response, err := client.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFetchFailed, err)
	}
	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d", ErrImportFetchFailed, response.StatusCode)
	}
	return response.Body, nil
}

// Import fetches pageURL and recovers the recipe it describes.
// Structured schema.org Recipe data wins; pages without it fall back to
// microdata attributes and page metadata.
func (importer *Importer) Import(pageURL string) (ImportedRecipe, error) {
	normalized, err := normalizeImportURL(pageURL)
	if err != nil {
		return ImportedRecipe{}, err
	}

	body, err := importer.fetch(normalized)
	if err != nil {
		return ImportedRecipe{}, err
	}
	defer body.Close()

	document, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return ImportedRecipe{}, fmt.Errorf("%w: %v", ErrImportFetchFailed, err)
	}

	recipe, found := recipeFromStructuredData(document)
	if !found {
		recipe, found = recipeFromMarkup(document)
	}
	if !found || strings.TrimSpace(recipe.Title) == "" {
		return ImportedRecipe{}, ErrImportNoRecipeFound
	}
	recipe.SourceURL = normalized
	return recipe, nil
}

func normalizeImportURL(pageURL string) (string, error) {
	trimmed := strings.TrimSpace(pageURL)
	if trimmed == "" {
		return "", ErrImportURLInvalid
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", ErrImportURLInvalid
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", ErrImportURLInvalid
	}
	return parsed.String(), nil
}

// recipeFromStructuredData reads JSON-LD script blocks and returns the
// first schema.org Recipe node.
func recipeFromStructuredData(document *goquery.Document) (ImportedRecipe, bool) {
	var recipe ImportedRecipe
	found := false

	document.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(script.Text()), &payload); err != nil {
			return true
		}
		node, ok := findRecipeNode(payload)
		if !ok {
			return true
		}
		recipe = recipeFromNode(node)
		found = true
		return false
	})
	return recipe, found
}

// findRecipeNode walks a decoded JSON-LD payload. Publishers wrap the
// recipe in arrays or an @graph container, so both are searched.
func findRecipeNode(payload any) (map[string]any, bool) {
	switch value := payload.(type) {
	case map[string]any:
		if nodeHasType(value, "Recipe") {
			return value, true
		}
		if graph, ok := value["@graph"]; ok {
			return findRecipeNode(graph)
		}
	case []any:
		for _, item := range value {
			if node, ok := findRecipeNode(item); ok {
				return node, true
			}
		}
	}
	return nil, false
}

func nodeHasType(node map[string]any, wanted string) bool {
	switch typed := node["@type"].(type) {
	case string:
		return strings.EqualFold(typed, wanted)
	case []any:
		for _, entry := range typed {
			if name, ok := entry.(string); ok && strings.EqualFold(name, wanted) {
				return true
			}
		}
	}
	return false
}

func recipeFromNode(node map[string]any) ImportedRecipe {
	recipe := ImportedRecipe{
		Title:       nodeString(node, "name"),
		Description: nodeString(node, "description"),
		Ingredients: nodeStrings(node, "recipeIngredient"),
	}
	if len(recipe.Ingredients) == 0 {
		recipe.Ingredients = nodeStrings(node, "ingredients")
	}
	for _, field := range []string{"totalTime", "cookTime", "prepTime"} {
		if minutes, ok := parseISODurationMinutes(nodeString(node, field)); ok {
			recipe.CookTimeMinutes = &minutes
			break
		}
	}
	return recipe
}

func nodeString(node map[string]any, field string) string {
	value, ok := node[field].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func nodeStrings(node map[string]any, field string) []string {
	collected := []string{}
	switch value := node[field].(type) {
	case string:
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			collected = append(collected, trimmed)
		}
	case []any:
		for _, entry := range value {
			text, ok := entry.(string)
			if !ok {
				continue
			}
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				collected = append(collected, trimmed)
			}
		}
	}
	return collected
}

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseISODurationMinutes converts the schema.org duration format, for
// example PT1H30M, to whole minutes. Seconds are ignored.
func parseISODurationMinutes(value string) (int, bool) {
	match := isoDurationPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0, false
	}
	days := durationComponent(match[1])
	hours := durationComponent(match[2])
	minutes := durationComponent(match[3])

	total := days*24*60 + hours*60 + minutes
	if total <= 0 {
		return 0, false
	}
	return total, true
}

func durationComponent(raw string) int {
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return parsed
}

// recipeFromMarkup scrapes microdata ingredient attributes and page
// metadata when no structured recipe block exists.
func recipeFromMarkup(document *goquery.Document) (ImportedRecipe, bool) {
	recipe := ImportedRecipe{
		Title:       pageTitle(document),
		Description: pageDescription(document),
		Ingredients: markupIngredients(document),
	}
	if len(recipe.Ingredients) == 0 {
		return ImportedRecipe{}, false
	}
	return recipe, true
}

func markupIngredients(document *goquery.Document) []string {
	collected := []string{}
	for _, selector := range []string{`[itemprop="recipeIngredient"]`, `[itemprop="ingredients"]`} {
		document.Find(selector).Each(func(_ int, element *goquery.Selection) {
			if trimmed := strings.TrimSpace(element.Text()); trimmed != "" {
				collected = append(collected, trimmed)
			}
		})
		if len(collected) > 0 {
			break
		}
	}
	return collected
}

func pageTitle(document *goquery.Document) string {
	if content, ok := document.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			return trimmed
		}
	}
	if trimmed := strings.TrimSpace(document.Find("title").First().Text()); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(document.Find("h1").First().Text())
}

func pageDescription(document *goquery.Document) string {
	for _, selector := range []string{`meta[property="og:description"]`, `meta[name="description"]`} {
		if content, ok := document.Find(selector).Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
