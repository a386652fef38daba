package marksheet

import (
	"regexp"
	"strings"

	"marksight/internal/domain"
)

// PlaceholderField substitutes subject names that clean to nothing.
const PlaceholderField = "Unknown_Field"

var (
	identifierRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	marksRe      = regexp.MustCompile(`^\d+$|^\d+/\d+$|^\d+\.\d+$`)
	numericRe    = regexp.MustCompile(`\d+(?:\.\d+)?`)

	nonIdentRe   = regexp.MustCompile(`[^A-Za-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	underscoreRe = regexp.MustCompile(`_+`)
)

// ValidateIdentifier reports whether value is a plain alphanumeric token.
// Sentinel values are never valid identifiers.
func ValidateIdentifier(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || value == domain.NotAvailable {
		return false
	}
	return identifierRe.MatchString(value)
}

// ValidateMarks reports whether value looks like a mark: an integer ("85"),
// a fraction ("85/100"), or a decimal ("92.5"). Sentinels are invalid.
func ValidateMarks(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || value == domain.NotAvailable || value == "N/A" {
		return false
	}
	return marksRe.MatchString(value)
}

// CleanNumeric extracts the first numeric substring from noisy text
// ("scored 85 pts" → "85"). Returns "0" when no digits are present.
func CleanNumeric(value string) string {
	if m := numericRe.FindString(value); m != "" {
		return m
	}
	return "0"
}

// CleanIdentifier turns an arbitrary subject name into a safe column-name
// fragment: strip everything outside letters, digits and whitespace, collapse
// whitespace runs to single underscores, collapse repeated underscores, trim
// edge underscores. An empty result falls back to PlaceholderField.
func CleanIdentifier(text string) string {
	cleaned := nonIdentRe.ReplaceAllString(text, "")
	cleaned = whitespaceRe.ReplaceAllString(strings.TrimSpace(cleaned), "_")
	cleaned = underscoreRe.ReplaceAllString(cleaned, "_")
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		return PlaceholderField
	}
	return cleaned
}
