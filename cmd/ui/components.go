package ui

import (
	"fmt"
	"strings"
)

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconCheck), Green(message)}
	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}
	return strings.Join(parts, " ")
}

// BranchInfo formats a branch name with an icon.
func BranchInfo(name string) string {
	return fmt.Sprintf("%s %s", Cyan(IconBranch), Blue(name))
}

// ShortID colors an abbreviated commit id, marking merge commits.
func ShortID(id string, merge bool) string {
	if merge {
		return Yellow(id) + " " + Magenta(IconMerge)
	}
	return Yellow(id)
}

// KeyValue formats one configuration setting.
func KeyValue(key, value string) string {
	return fmt.Sprintf("%s = %s", KeyStyle.Render(key), value)
}
