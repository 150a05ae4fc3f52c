package utils

import (
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseOptionalInt returns nil for an empty or malformed value.
func ParseOptionalInt(value string) *int {
	if value == "" {
		return nil
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}

	return &result
}

// SplitList flattens repeated and comma separated query values, dropping blanks.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
