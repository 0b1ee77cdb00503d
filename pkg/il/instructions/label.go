package instructions

import "strings"

// Symbolic jump target. Bound to exactly one instruction of a stream
type LabelID string

// Returns the labels joined by the given separator
func JoinLabels(labels []LabelID, separator string) string {
	names := make([]string, len(labels))
	for i, label := range labels {
		names[i] = string(label)
	}

	return strings.Join(names, separator)
}
