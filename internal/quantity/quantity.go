// Package quantity parses and formats the free-text quantity strings found
// on recipe ingredients ("1 1/2", "¾", "2-3", "to taste"). Parsing is a
// partial function: strings with no numeric reading report ok=false, which
// is distinct from a quantity of zero.
package quantity

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var unicodeFractions = map[string]float64{
	"¼": 0.25, "½": 0.5, "¾": 0.75,
	"⅓": 1.0 / 3, "⅔": 2.0 / 3,
	"⅛": 0.125, "⅜": 0.375, "⅝": 0.625, "⅞": 0.875,
}

// Ordered so Format prefers the quarters/halves people actually write.
var commonFractions = []struct {
	value float64
	glyph string
}{
	{0.25, "¼"}, {0.5, "½"}, {0.75, "¾"},
	{1.0 / 3, "⅓"}, {2.0 / 3, "⅔"},
	{0.125, "⅛"}, {0.375, "⅜"}, {0.625, "⅝"}, {0.875, "⅞"},
}

var (
	mixedRe      = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)$`)
	mixedGlyphRe = regexp.MustCompile(`^(\d+)\s*([¼½¾⅓⅔⅛⅜⅝⅞])$`)
	fractionRe   = regexp.MustCompile(`^(\d+)/(\d+)$`)
	leadingRe    = regexp.MustCompile(`^(\d*\.?\d+)`)
)

// Parse extracts a numeric value from a quantity string. It recognizes
// unicode fraction glyphs, mixed numbers ("1 1/2", "1 ½"), simple fractions
// ("3/4"), and leading decimals; a range like "2-3" yields only its first
// number. Anything else ("to taste", "") reports ok=false.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if v, ok := unicodeFractions[s]; ok {
		return v, true
	}

	if m := mixedRe.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		return whole + num/den, true
	}

	// Format writes mixed values as "<whole> <glyph>", e.g. "1 ½".
	if m := mixedGlyphRe.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		return whole + unicodeFractions[m[2]], true
	}

	if m := fractionRe.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		return num / den, true
	}

	if m := leadingRe.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return v, true
		}
	}

	return 0, false
}

// Format renders a numeric quantity back to a human-friendly string. Whole
// numbers drop the decimals, fractional parts within 0.02 of a common
// fraction render as a glyph, and everything else falls back to two decimal
// places with trailing zeros stripped.
func Format(n float64) string {
	if n == math.Floor(n) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	whole := math.Floor(n)
	decimal := n - whole

	for _, f := range commonFractions {
		if math.Abs(decimal-f.value) < 0.02 {
			if whole > 0 {
				return fmt.Sprintf("%d %s", int64(whole), f.glyph)
			}
			return f.glyph
		}
	}

	s := strconv.FormatFloat(n, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// Scale multiplies a quantity string by desiredServings/originalServings.
// Unparseable quantities come back unchanged rather than being dropped.
func Scale(q string, originalServings, desiredServings int) string {
	ratio := float64(desiredServings) / float64(originalServings)
	n, ok := Parse(q)
	if !ok {
		return q
	}
	return Format(n * ratio)
}
