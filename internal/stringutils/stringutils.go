package stringutils

import "strings"

// IndentString prefixes each line of the string with indent.
func IndentString(str, indent string) string {
	spl := strings.SplitAfter(str, "\n")
	return strings.Join(append([]string{""}, spl...), indent)
}

// Truncate shortens str to maxLen bytes, truncated strings end with "...".
func Truncate(str string, maxLen int) string {
	const suffix = "..."

	if len(str) <= maxLen {
		return str
	}

	if maxLen <= len(suffix) {
		return str[:maxLen]
	}

	return str[:maxLen-len(suffix)] + suffix
}
