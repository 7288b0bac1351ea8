package report

import (
	"log/slog"
	"strings"
	"unicode"
)

// Category is one of the fixed expense buckets of the paper form
type Category string

const (
	CategoryHotel         Category = "HOTEL/MOTEL"
	CategoryMeals         Category = "MEALS"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryTransport     Category = "TRANSPORT/AIR-RAIL"
	CategoryComputer      Category = "COMPUTER SUPPLIES"
	CategoryCellPhone     Category = "CELL PHONE"
	CategoryGas           Category = "GAS"
	CategoryCopies        Category = "COPIES"
	CategoryDues          Category = "DUES"
	CategoryPostage       Category = "POSTAGE"
	CategoryOffice        Category = "OFFICE SUPPLIES"
	CategoryMisc          Category = "MISC"
)

// Categories lists every category in column order
var Categories = []Category{
	CategoryHotel,
	CategoryMeals,
	CategoryEntertainment,
	CategoryTransport,
	CategoryComputer,
	CategoryCellPhone,
	CategoryGas,
	CategoryCopies,
	CategoryDues,
	CategoryPostage,
	CategoryOffice,
	CategoryMisc,
}

// Column returns the 1-based sheet column of c
func (c Category) Column() int {
	for i, cat := range Categories {
		if cat == c {
			return firstCategoryColumn + i
		}
	}
	return firstCategoryColumn + len(Categories) - 1
}

// classificationRule matches when any category token starts with one of
// keywords or ends with one of suffixes. Rules are evaluated in order and
// the first match wins.
type classificationRule struct {
	category Category
	keywords []string
	suffixes []string
	merchant []string
	match    func(tokens map[string]bool) bool
}

var classificationRules = []classificationRule{
	{category: CategoryHotel, keywords: []string{"hotel", "lodging", "motel"}},
	{category: CategoryMeals, keywords: []string{"food", "meal", "restaurant"}, merchant: []string{"restaurant"}},
	{category: CategoryEntertainment, keywords: []string{"entertainment"}},
	{category: CategoryTransport, keywords: []string{"transport", "uber", "lyft", "taxi", "air", "rail"}},
	{
		category: CategoryComputer,
		keywords: []string{"computer"},
		// bare "supplies" is computer supplies, "office supplies" is not
		match: func(tokens map[string]bool) bool {
			return tokens["supplies"] && !tokens["office"]
		},
	},
	{category: CategoryCellPhone, keywords: []string{"cell", "phone"}, suffixes: []string{"phone", "phones"}},
	{category: CategoryGas, keywords: []string{"gas", "mileage", "fuel"}},
	{category: CategoryCopies, keywords: []string{"copies", "printing"}},
	{category: CategoryDues, keywords: []string{"dues", "membership"}},
	{category: CategoryPostage, keywords: []string{"postage", "shipping"}},
	{category: CategoryOffice, keywords: []string{"office"}},
}

// Classify maps a receipt's free-text category, falling back to its
// merchant, to one expense category and its sheet column.
func Classify(r Receipt) (Category, int) {
	label := strings.ToUpper(strings.TrimSpace(r.Category))
	for _, c := range Categories {
		if label == string(c) {
			return c, c.Column()
		}
	}

	tokens := tokenize(r.Category)
	merchant := strings.ToLower(r.Merchant)
	for _, rule := range classificationRules {
		if rule.matches(tokens, merchant) {
			return rule.category, rule.category.Column()
		}
	}

	if label != "" {
		slog.Warn("Unrecognized category, using MISC", "category", r.Category, "merchant", r.Merchant)
	}
	return CategoryMisc, CategoryMisc.Column()
}

func (rule classificationRule) matches(tokens map[string]bool, merchant string) bool {
	for token := range tokens {
		for _, kw := range rule.keywords {
			if strings.HasPrefix(token, kw) {
				return true
			}
		}
		for _, suffix := range rule.suffixes {
			if strings.HasSuffix(token, suffix) {
				return true
			}
		}
	}
	for _, kw := range rule.merchant {
		if strings.Contains(merchant, kw) {
			return true
		}
	}
	return rule.match != nil && rule.match(tokens)
}

// tokenize splits s into lower-case words on anything that is not a letter
func tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, f := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		tokens[f] = true
	}
	return tokens
}
