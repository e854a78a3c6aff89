package grocery

import (
	"regexp"
	"strings"
)

var orSplitRe = regexp.MustCompile(`\s+or\s+`)

// PantrySet builds the lookup set for MatchesPantry from staple names,
// lowercasing and trimming each.
func PantrySet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	return set
}

// MatchesPantry reports whether an ingredient is already covered by the
// pantry. Besides a direct case-insensitive match, it understands
// disjunctive recipe phrasing: "coconut oil or vegetable oil" matches when
// either alternative is stocked.
func MatchesPantry(ingredientName string, pantry map[string]struct{}) bool {
	lower := strings.ToLower(strings.TrimSpace(ingredientName))

	if _, ok := pantry[lower]; ok {
		return true
	}

	if strings.Contains(lower, " or ") {
		for _, part := range orSplitRe.Split(lower, -1) {
			if _, ok := pantry[strings.TrimSpace(part)]; ok {
				return true
			}
		}
	}

	return false
}
