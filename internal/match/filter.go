package match

import "strings"

// Filter returns the options whose label contains query, ignoring case, in their
// original order. An empty query returns options unchanged.
func Filter(options []string, query string) []string {
	if query == "" {
		return options
	}

	needle := Fold(query)
	result := make([]string, 0, len(options))
	for _, option := range options {
		if strings.Contains(Fold(option), needle) {
			result = append(result, option)
		}
	}
	return result
}

// Contains reports whether option matches query under the same rules as Filter.
func Contains(option, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(Fold(option), Fold(query))
}
