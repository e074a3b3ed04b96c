package services

import (
	"sort"
	"strings"

	"github.com/hollyoak/plateful/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AggregateGroceries flattens the ingredient lines of recipes into one
// shopping list. Lines are trimmed, blank lines dropped, duplicates
// collapsed case-insensitively with the first occurrence's casing kept,
// and the survivors sorted with locale-aware collation. An empty input
// yields an empty list.
func AggregateGroceries(recipes []models.Recipe) []string {
	seen := make(map[string]struct{})
	items := make([]string, 0)
	for _, recipe := range recipes {
		for _, line := range recipe.Ingredients {
			item := strings.TrimSpace(line)
			if item == "" {
				continue
			}
			key := strings.ToLower(item)
			if _, duplicate := seen[key]; duplicate {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, item)
		}
	}

	collator := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		return collator.CompareString(items[i], items[j]) < 0
	})
	return items
}
