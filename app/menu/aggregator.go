package menu

import (
	"regexp"
	"strings"
)

var servingPeriods = map[string]bool{
	PeriodBrunch: true,
	PeriodLunch:  true,
	PeriodDinner: true,
}

// boldOpenRe matches <b> open markers, attribute and case tolerant. The
// special feed wraps its section headings in bold tags.
var boldOpenRe = regexp.MustCompile(`(?i)<b[^>]*>`)

// specialRe matches the literal word "special" case-insensitively.
var specialRe = regexp.MustCompile(`(?i)special`)

// Aggregator turns raw sub-feeds into the grouped structures the menu page
// renders.
type Aggregator struct {
	parser     *Parser
	normalizer *Normalizer
}

func NewAggregator(parser *Parser) *Aggregator {
	return &Aggregator{
		parser:     parser,
		normalizer: NewNormalizer(),
	}
}

// FilterMeals parses every record and keeps only recognized serving periods
// that still have at least one item after normalization. Input order is
// preserved. Any record that fails to parse fails the whole call.
func (a *Aggregator) FilterMeals(raws []RawMeal) ([]Meal, error) {
	meals := make([]Meal, 0, len(raws))
	for _, raw := range raws {
		meal, err := a.parser.Run(raw)
		if err != nil {
			return nil, err
		}

		if !servingPeriods[meal.Title] {
			continue
		}
		if len(meal.Items) == 0 {
			continue
		}

		meals = append(meals, meal)
	}

	return meals, nil
}

// GroupByDay buckets meals by short day label, in first-occurrence order.
// Brunch and Lunch share the lunch slot; when both land on one day the later
// entry wins. Dinner fills the dinner slot the same way.
func (a *Aggregator) GroupByDay(meals []Meal) []Day {
	days := make([]Day, 0, len(meals))
	index := make(map[string]int, len(meals))

	for _, meal := range meals {
		meal := meal
		if !servingPeriods[meal.Title] {
			continue
		}

		i, ok := index[meal.DayLabel]
		if !ok {
			days = append(days, Day{Label: meal.DayLabel})
			i = len(days) - 1
			index[meal.DayLabel] = i
		}

		switch meal.Title {
		case PeriodBrunch, PeriodLunch:
			days[i].Lunch = &meal
		case PeriodDinner:
			days[i].Dinner = &meal
		}
	}

	return days
}

// ExtractSpecial pulls the highlighted item out of the secondary feed. The
// first bold-delimited segment mentioning "special" carries it; everything
// after the word is the item. The second return value reports whether a
// qualifying segment was found at all - a special may legitimately be empty.
func (a *Aggregator) ExtractSpecial(raws []RawMeal) (string, bool) {
	if len(raws) == 0 {
		return "", false
	}

	segments := boldOpenRe.Split(raws[0].Description, -1)
	for _, segment := range segments {
		if !strings.Contains(strings.ToLower(segment), "special") {
			continue
		}

		parts := specialRe.Split(segment, 2)
		rest := ""
		if len(parts) > 1 {
			rest = parts[1]
		}

		rest = a.normalizer.Run(rest)
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		return rest, true
	}

	return "", false
}
