package extract

import (
	"regexp"

	"github.com/ppiankov/lexaudit/internal/model"
)

const maxMetadataItems = 5

var (
	datePattern   = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	amountPattern = regexp.MustCompile(`[₹$€£]\s*\d+(?:,\d{3})*(?:\.\d{2})?`)
	partyPattern  = regexp.MustCompile(`(?i)(?:Party\s+[AB]|Company|Corporation|LLC|Pvt\.?\s+Ltd\.?)`)
)

// ExtractMetadata pulls dates, currency amounts and party markers out of the text.
// Absent matches yield empty lists.
func ExtractMetadata(text string) model.Metadata {
	return model.Metadata{
		Dates:   firstN(datePattern.FindAllString(text, -1), maxMetadataItems),
		Amounts: firstN(amountPattern.FindAllString(text, -1), maxMetadataItems),
		Parties: firstN(unique(partyPattern.FindAllString(text, -1)), maxMetadataItems),
	}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	if items == nil {
		return []string{}
	}
	return items
}

// unique drops repeated items, keeping first occurrences
func unique(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}
