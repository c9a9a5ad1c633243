package resolution

import "strings"

// Normalize canonicalizes a mention for comparison: lowercase, trim,
// hyphen and underscore folded to space, internal whitespace collapsed to
// single spaces. The result is only used for matching and is never stored
// as the canonical form.
func Normalize(text string) string {
	normalized := strings.ToLower(text)
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = strings.ReplaceAll(normalized, "_", " ")
	return strings.Join(strings.Fields(normalized), " ")
}
