// Package grocery implements grocery-list generation: merging the week's
// recipe ingredients into one deduplicated list, categorizing each line,
// and flagging items the pantry already covers.
package grocery

import (
	"strings"

	"github.com/oxtailbadger/mise/internal/quantity"
)

// RawIngredient is an ingredient line as copied from a recipe at generation
// time.
type RawIngredient struct {
	Name         string
	Quantity     string
	Unit         *string
	IsGlutenFlag bool
}

// ConsolidatedIngredient is one merged grocery line. Quantity is nil when
// no member of the group carried one.
type ConsolidatedIngredient struct {
	Name         string
	Quantity     *string
	Unit         *string
	IsGlutenFlag bool
}

// Consolidate merges a flat list of recipe ingredients, grouping by
// normalized (name, unit). Numeric quantities are summed; if any member of
// a group resists parsing, the originals are joined with " + " instead so
// no information is dropped. Name casing and unit come from the first
// member seen, and output follows first-encounter order of the groups.
func Consolidate(ingredients []RawIngredient) []ConsolidatedIngredient {
	groups := make(map[string][]RawIngredient)
	var order []string

	for _, ing := range ingredients {
		unit := ""
		if ing.Unit != nil {
			unit = *ing.Unit
		}
		key := strings.ToLower(strings.TrimSpace(ing.Name)) + "\x00" + strings.ToLower(strings.TrimSpace(unit))
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], ing)
	}

	out := make([]ConsolidatedIngredient, 0, len(order))
	for _, key := range order {
		group := groups[key]
		first := group[0]

		if len(group) == 1 {
			out = append(out, ConsolidatedIngredient{
				Name:         first.Name,
				Quantity:     nilIfBlank(first.Quantity),
				Unit:         first.Unit,
				IsGlutenFlag: first.IsGlutenFlag,
			})
			continue
		}

		flagged := false
		for _, ing := range group {
			flagged = flagged || ing.IsGlutenFlag
		}

		total := 0.0
		allNumeric := true
		for _, ing := range group {
			n, ok := quantity.Parse(ing.Quantity)
			if !ok {
				allNumeric = false
				break
			}
			total += n
		}

		var qty *string
		if allNumeric {
			formatted := quantity.Format(total)
			qty = &formatted
		} else {
			// Blank quantities drop out of the join rather than
			// appearing as empty segments.
			var parts []string
			for _, ing := range group {
				if strings.TrimSpace(ing.Quantity) != "" {
					parts = append(parts, ing.Quantity)
				}
			}
			if len(parts) > 0 {
				joined := strings.Join(parts, " + ")
				qty = &joined
			}
		}

		out = append(out, ConsolidatedIngredient{
			Name:         first.Name,
			Quantity:     qty,
			Unit:         first.Unit,
			IsGlutenFlag: flagged,
		})
	}

	return out
}

func nilIfBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
