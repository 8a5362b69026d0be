package aggregate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

// Sentinel brackets mark an undeterminable age and never become categories.
var sentinelBrackets = map[string]bool{
	"inconclusive":   true,
	"not_determined": true,
}

var bracketPattern = regexp.MustCompile(`(\d+)\s*\D\s*(\d+)`)

// NormalizeAgeBracket canonicalizes a raw age bracket by extracting its two
// numeric boundaries and re-emitting them joined by a hyphen, so cosmetic
// variants like "20–29 " and "20-29" collapse to one category. Sentinel
// values and brackets without two numeric boundaries yield ok == false.
func NormalizeAgeBracket(raw string) (bracket string, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" || sentinelBrackets[strings.ToLower(s)] {
		return "", false
	}

	m := bracketPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1] + "-" + m[2], true
}

// discoverAges returns the distinct normalized age brackets present in the
// events, sorted ascending by lower boundary.
func discoverAges(events []models.RawEvent) []string {
	seen := make(map[string]bool)
	var ages []string
	for _, ev := range events {
		age, ok := NormalizeAgeBracket(ev.AgeGroup)
		if !ok || seen[age] {
			continue
		}
		seen[age] = true
		ages = append(ages, age)
	}

	sort.Slice(ages, func(i, j int) bool {
		return lowerBound(ages[i]) < lowerBound(ages[j])
	})
	return ages
}

func lowerBound(bracket string) int {
	low, _, _ := strings.Cut(bracket, "-")
	n, _ := strconv.Atoi(low)
	return n
}
