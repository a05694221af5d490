package menu

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// naiveLayout is the timezone-naive ISO-8601 layout the feed uses.
const naiveLayout = "2006-01-02T15:04:05"

// ItemSplitter breaks a raw meal description into item segments. The feed has
// shipped two interchangeable description formats over the years, so the
// strategy is selected by source configuration rather than sniffed from
// content.
type ItemSplitter interface {
	Split(description string) []string
}

// lineBreakRe matches the <br>/<li> variants the current feed uses as item
// delimiters: open, close or self-closing, case and space tolerant.
var lineBreakRe = regexp.MustCompile(`(?i)<\s*/?\s*(?:br|li)\s*/?\s*>`)

// TagSplitter splits on tag-delimited line breaks (current feed format).
type TagSplitter struct{}

func (TagSplitter) Split(description string) []string {
	return lineBreakRe.Split(description, -1)
}

// SemicolonSplitter splits on plain semicolons (legacy feed format).
type SemicolonSplitter struct{}

func (SemicolonSplitter) Split(description string) []string {
	return strings.Split(description, ";")
}

// Parser converts raw feed entries into normalized Meals.
type Parser struct {
	loc        *time.Location
	splitter   ItemSplitter
	normalizer *Normalizer
}

func NewParser(loc *time.Location, splitter ItemSplitter) *Parser {
	return &Parser{
		loc:        loc,
		splitter:   splitter,
		normalizer: NewNormalizer(),
	}
}

// Run builds a Meal from one raw feed entry. A timestamp that fails to parse
// is a hard error for the record.
func (p *Parser) Run(raw RawMeal) (Meal, error) {
	start, err := p.parseTimestamp(raw.StartDate)
	if err != nil {
		return Meal{}, fmt.Errorf("invalid start date for %q: %w", raw.Title, err)
	}

	end, err := p.parseTimestamp(raw.EndDate)
	if err != nil {
		return Meal{}, fmt.Errorf("invalid end date for %q: %w", raw.Title, err)
	}

	return Meal{
		Title:     raw.Title,
		Start:     start,
		End:       end,
		TimeLabel: fmt.Sprintf("%s to %s", start.Format("3:04"), end.Format("3:04")),
		DayLabel:  start.Format("Mon 1/2"),
		Items:     p.splitItems(raw.Description),
	}, nil
}

// parseTimestamp interprets a feed timestamp in the configured zone. The feed
// normally sends timezone-naive timestamps; zoned ones are accepted too and
// converted.
func (p *Parser) parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation(naiveLayout, raw, p.loc); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(p.loc), nil
	}

	return time.Time{}, fmt.Errorf("cannot parse timestamp %q", raw)
}

// splitItems breaks the description into normalized item strings, dropping
// segments that come out empty.
func (p *Parser) splitItems(description string) []string {
	segments := p.splitter.Split(description)

	items := make([]string, 0, len(segments))
	for _, segment := range segments {
		item := p.normalizer.Run(segment)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	return items
}
