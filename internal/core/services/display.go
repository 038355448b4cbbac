package services

import "github.com/custodia-labs/bookfetch/internal/core/domain"

// truncationMarker is appended to labels cut to the maximum length.
const truncationMarker = "..."

// TruncateLabel cuts label to at most maxLen runes, ending in "..." when cut.
func TruncateLabel(label string, maxLen int) string {
	runes := []rune(label)
	if maxLen <= len(truncationMarker) || len(runes) <= maxLen {
		return label
	}
	return string(runes[:maxLen-len(truncationMarker)]) + truncationMarker
}

// DisplayLabels returns one label per candidate, index aligned, in result order.
// Selections must be resolved by index: two candidates may share a label.
func DisplayLabels(candidates []domain.CandidateFile, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = domain.DefaultLabelMaxLength
	}

	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = TruncateLabel(c.Label(), maxLen)
	}
	return labels
}
