// Package domain contains core business entities and rules.
package domain

import "strings"

// CategoryAll is the pseudo-category that matches every quote.
const CategoryAll = "all"

// Quote represents a quotation and the category it is filed under.
// This is a domain entity - it has no knowledge of external systems.
// Quotes carry no identifier; identity for reconciliation is derived from Text
// (see MergeKey).
type Quote struct {
	// Text is the quotation itself.
	Text string `json:"text"`

	// Category groups quotes for filtering. Compared case-insensitively.
	Category string `json:"category"`
}

// IsValid reports whether both Text and Category are non-empty after trimming.
func (q Quote) IsValid() bool {
	return strings.TrimSpace(q.Text) != "" && strings.TrimSpace(q.Category) != ""
}

// MergeKey returns the identity of the quote used during reconciliation.
func (q Quote) MergeKey() string {
	return MergeKey(q.Text)
}

// MergeKey normalizes quote text into a reconciliation key (trimmed, lower-cased).
// Two quotes with the same key are the same quote regardless of category.
func MergeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// IsValidRecord reports whether v is a structured record with string-typed,
// non-blank "text" and "category" fields. v is expected to be the result of
// decoding JSON into an any (so objects arrive as map[string]any).
func IsValidRecord(v any) bool {
	_, ok := QuoteFromRecord(v)
	return ok
}

// QuoteFromRecord converts a decoded JSON record into a Quote.
// Returns false for anything that is not an object with valid text and category.
// Field values are kept as-is; only the validity check trims.
func QuoteFromRecord(v any) (Quote, bool) {
	record, ok := v.(map[string]any)
	if !ok {
		return Quote{}, false
	}

	text, ok := record["text"].(string)
	if !ok {
		return Quote{}, false
	}

	category, ok := record["category"].(string)
	if !ok {
		return Quote{}, false
	}

	q := Quote{Text: text, Category: category}
	if !q.IsValid() {
		return Quote{}, false
	}

	return q, true
}

// FilterValid keeps the records that pass the validator, in order.
// Invalid records are dropped silently.
func FilterValid(records []any) []Quote {
	quotes := make([]Quote, 0, len(records))

	for _, record := range records {
		if q, ok := QuoteFromRecord(record); ok {
			quotes = append(quotes, q)
		}
	}

	return quotes
}

// ValidQuotes keeps the typed quotes that pass IsValid, in order.
func ValidQuotes(quotes []Quote) []Quote {
	valid := make([]Quote, 0, len(quotes))

	for _, q := range quotes {
		if q.IsValid() {
			valid = append(valid, q)
		}
	}

	return valid
}

// Categories returns "all" followed by the lower-cased categories of quotes
// in first-seen order, without duplicates.
func Categories(quotes []Quote) []string {
	seen := map[string]struct{}{CategoryAll: {}}
	categories := []string{CategoryAll}

	for _, q := range quotes {
		c := strings.ToLower(q.Category)
		if _, ok := seen[c]; ok {
			continue
		}

		seen[c] = struct{}{}
		categories = append(categories, c)
	}

	return categories
}

// FilterByCategory returns the quotes in category (case-insensitive).
// CategoryAll and the empty string return every quote.
func FilterByCategory(quotes []Quote, category string) []Quote {
	if category == "" || category == CategoryAll {
		return append([]Quote(nil), quotes...)
	}

	filtered := make([]Quote, 0, len(quotes))

	for _, q := range quotes {
		if strings.EqualFold(q.Category, category) {
			filtered = append(filtered, q)
		}
	}

	return filtered
}

// SeedQuotes returns the collection used when nothing has been persisted yet.
func SeedQuotes() []Quote {
	return []Quote{
		{Text: "The best way to predict the future is to invent it.", Category: "inspiration"},
		{Text: "Simplicity is the soul of efficiency.", Category: "productivity"},
		{Text: "Code is like humor. When you have to explain it, it’s bad.", Category: "programming"},
		{Text: "The only way to do great work is to love what you do.", Category: "inspiration"},
		{Text: "First, solve the problem. Then, write the code.", Category: "programming"},
	}
}
