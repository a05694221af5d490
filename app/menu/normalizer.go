package menu

import (
	"html"
	"regexp"
	"strings"
)

var (
	// tagRe matches any flat tag-delimited markup. The source feed never
	// nests tags, so a single greedy left-to-right pass is enough.
	tagRe = regexp.MustCompile(`<[^>]*>`)

	// dietaryRe matches ::keyword:: dietary markers.
	dietaryRe = regexp.MustCompile(`::([^:]*)::`)
)

// dietaryAbbrevs maps dietary marker keywords to their display abbreviations.
// Unrecognized keywords collapse to the empty string.
var dietaryAbbrevs = map[string]string{
	"vegan":       "(v)",
	"vegetarian":  "(vg)",
	"kosher":      "(k)",
	"halal":       "(h)",
	"gluten-free": "(gf)",
}

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run turns raw feed text into text safe for direct display: markup is
// stripped, HTML entities are decoded, dietary markers become abbreviations
// and surrounding whitespace is trimmed.
func (n *Normalizer) Run(text string) string {
	text = tagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = dietaryRe.ReplaceAllStringFunc(text, func(marker string) string {
		keyword := dietaryRe.FindStringSubmatch(marker)[1]
		return dietaryAbbrevs[strings.ToLower(keyword)]
	})
	return strings.TrimSpace(text)
}
