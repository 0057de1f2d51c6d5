// Package suggest provides the deterministic classification tables consumed
// after a command has been interpreted: item categorization, substitute
// lookup, and seasonal recommendations.
//
// Tables are built once at startup from built-in defaults plus optional
// config overrides, and are read-only afterwards. All lookups are pure.
package suggest

import (
	"strings"
	"time"

	"github.com/cartkeeper/cartkeeper/internal/config"
)

// Season is one quarter of the year under the fixed 3-month banding.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// SeasonOf maps a point in time to its season: Dec–Feb winter, Mar–May
// spring, Jun–Aug summer, Sep–Nov autumn. The mapping uses the time's own
// location; no timezone normalization is applied.
func SeasonOf(t time.Time) Season {
	switch m := t.Month(); {
	case m >= time.March && m <= time.May:
		return SeasonSpring
	case m >= time.June && m <= time.August:
		return SeasonSummer
	case m >= time.September && m <= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// DefaultCategory is assigned when no category rule matches an item name.
const DefaultCategory = "General"

// Tables holds the classification lookup tables.
type Tables struct {
	categories  []config.CategoryRule
	substitutes map[string][]string
	seasonal    map[Season][]string
}

// defaultCategories is the built-in keyword -> category table. Order matters:
// the first keyword contained in the item name wins.
var defaultCategories = []config.CategoryRule{
	{Keyword: "milk", Category: "Dairy"},
	{Keyword: "cheese", Category: "Dairy"},
	{Keyword: "yogurt", Category: "Dairy"},
	{Keyword: "leche", Category: "Lácteos"},
	{Keyword: "bread", Category: "Bakery"},
	{Keyword: "pan", Category: "Panadería"},
	{Keyword: "apple", Category: "Produce"},
	{Keyword: "banana", Category: "Produce"},
	{Keyword: "manzana", Category: "Frutas"},
	{Keyword: "chicken", Category: "Meat"},
	{Keyword: "pollo", Category: "Carne"},
	{Keyword: "rice", Category: "Pantry"},
	{Keyword: "arroz", Category: "Despensa"},
}

var defaultSubstitutes = map[string][]string{
	"milk":  {"almond milk", "soy milk", "oat milk"},
	"sugar": {"honey", "stevia"},
	"leche": {"leche de almendras", "leche de soya"},
}

var defaultSeasonal = map[Season][]string{
	SeasonSummer: {"watermelon", "corn on the cob", "iced tea"},
	SeasonWinter: {"oranges", "soup mix", "hot chocolate"},
}

// NewTables builds the tables from built-in defaults, replaced wholesale by
// any non-empty override in cfg.
func NewTables(cfg config.TablesConfig) *Tables {
	t := &Tables{
		categories:  defaultCategories,
		substitutes: defaultSubstitutes,
		seasonal:    defaultSeasonal,
	}

	if len(cfg.Categories) > 0 {
		rules := make([]config.CategoryRule, 0, len(cfg.Categories))
		for _, r := range cfg.Categories {
			r.Keyword = strings.ToLower(strings.TrimSpace(r.Keyword))
			if r.Keyword == "" || r.Category == "" {
				continue
			}
			rules = append(rules, r)
		}
		t.categories = rules
	}

	if len(cfg.Substitutes) > 0 {
		subs := make(map[string][]string, len(cfg.Substitutes))
		for name, list := range cfg.Substitutes {
			subs[strings.ToLower(strings.TrimSpace(name))] = list
		}
		t.substitutes = subs
	}

	if len(cfg.Seasonal) > 0 {
		seasonal := make(map[Season][]string, len(cfg.Seasonal))
		for name, list := range cfg.Seasonal {
			seasonal[Season(strings.ToLower(strings.TrimSpace(name)))] = list
		}
		t.seasonal = seasonal
	}

	return t
}

// Categorize assigns a category to an item name. The name is lowercased and
// each rule's keyword is tested as a substring in table order; the first
// match wins, DefaultCategory if none does.
func (t *Tables) Categorize(itemName string) string {
	lower := strings.ToLower(itemName)
	for _, rule := range t.categories {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Category
		}
	}
	return DefaultCategory
}

// SubstitutesFor returns suggested replacements for an item, empty when the
// exact lowercase name has no entry.
func (t *Tables) SubstitutesFor(itemName string) []string {
	return t.substitutes[strings.ToLower(itemName)]
}

// SeasonalItems returns the recommendation list for a season, empty when the
// season has no entry.
func (t *Tables) SeasonalItems(season Season) []string {
	return t.seasonal[season]
}
