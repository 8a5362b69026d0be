// Package palette assigns stable display labels and colors to discovered
// series categories. Assignment is purely positional over the discovery
// order, so re-aggregating the same data never changes a category's color.
package palette

import (
	"strings"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

// colors is the fixed chart palette, cycled when there are more categories
// than entries.
var colors = []string{
	"#4285f4", // blue
	"#ea4335", // red
	"#34a853", // green
	"#fbbc05", // yellow
	"#7d56f4", // purple
	"#cc785c", // terracotta
	"#00acc1", // cyan
	"#f06292", // pink
	"#8d6e63", // brown
	"#9e9e9e", // gray
}

// Assign attaches a label and a palette color to every category key, in the
// order the keys were discovered. The same ordered key sequence always
// produces the identical assignment.
func Assign(keys []models.CategoryKey) []models.Category {
	categories := make([]models.Category, len(keys))
	for i, key := range keys {
		categories[i] = models.Category{
			Key:   key,
			Label: Label(key),
			Color: colors[i%len(colors)],
		}
	}
	return categories
}

// Label derives the display label for a category key. Composite gender:age
// keys render as "Male 20-29"; simple keys are title-cased.
func Label(key models.CategoryKey) string {
	s := string(key)
	if gender, age, ok := strings.Cut(s, ":"); ok {
		return titleWord(gender) + " " + age
	}
	switch s {
	case string(models.CategoryTotal):
		return "Total"
	case string(models.GenderMale), string(models.GenderFemale), string(models.GenderOther):
		return titleWord(s)
	default:
		return s
	}
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
