package importer

import (
	"regexp"
	"strings"
)

var (
	scriptRe = regexp.MustCompile(`(?is)<script.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style.*?</style>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s{2,}`)

	openFenceRe  = regexp.MustCompile("(?i)^```(?:json)?\n?")
	closeFenceRe = regexp.MustCompile("\n?```$")
)

// htmlToText reduces an HTML page to whitespace-collapsed visible text,
// truncated to max characters.
func htmlToText(html string, max int) string {
	text := scriptRe.ReplaceAllString(html, "")
	text = styleRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, " ")

	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
	)
	text = replacer.Replace(text)
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))

	if len(text) > max {
		return text[:max]
	}
	return text
}

// stripFences removes a markdown code fence the model sometimes wraps
// around its JSON despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = openFenceRe.ReplaceAllString(s, "")
	s = closeFenceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
