package generate

import (
	"regexp"
	"sort"
	"strings"

	"content-optimizer/internal/models"
)

var wordRe = regexp.MustCompile(`\b[a-z]{3,15}\b`)

// ExtractKeywords tokenizes text and returns up to topN words ranked by
// frequency. Ties keep first-seen order so output is stable for a given text.
func ExtractKeywords(text string, topN int) []models.KeywordCount {
	freq := make(map[string]int)
	var order []string

	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if _, seen := freq[w]; !seen {
			order = append(order, w)
		}
		freq[w]++
	}

	out := make([]models.KeywordCount, 0, len(order))
	for _, w := range order {
		out = append(out, models.KeywordCount{Word: w, Count: freq[w]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// RepeatedKeywords returns the words appearing more than once, in rank order.
func RepeatedKeywords(text string, topN int) []string {
	var words []string
	for _, kw := range ExtractKeywords(text, topN) {
		if kw.Count > 1 {
			words = append(words, kw.Word)
		}
	}
	return words
}
