package utils

import "strings"

// TruncateString keeps borderSizeToKeep characters on each side of str and joins them with "...".
func TruncateString(str string, borderSizeToKeep int) string {
	if len(str) <= 2*borderSizeToKeep {
		return str
	}
	return str[:borderSizeToKeep] + "..." + str[len(str)-borderSizeToKeep:]
}

// IsBlank reports whether s is empty or only contains whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
