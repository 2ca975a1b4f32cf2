package query

import "strings"

// minTermLength drops tokens too short to carry intent.
const minTermLength = 3

// stopWords are articles, conjunctions, and filler common in natural-language
// intents ("find a server that can read files"). Tokens shorter than
// minTermLength are dropped before this set is consulted.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {},
	"from": {}, "into": {}, "can": {}, "will": {}, "are": {}, "was": {},
	"were": {}, "been": {}, "have": {}, "has": {}, "had": {}, "but": {},
	"nor": {}, "not": {}, "yet": {}, "its": {}, "any": {}, "all": {},
	"some": {}, "want": {}, "need": {}, "find": {}, "able": {},
}

// Tokenize lowercases text, splits on whitespace, strips stop words and
// short tokens, and deduplicates while preserving first-seen order.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, `.,;:!?"'()[]{}`)
		if len(f) < minTermLength {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}
