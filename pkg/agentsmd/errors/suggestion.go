package errors

import "fmt"

// maxSuggestionDistance is the largest edit distance still worth suggesting.
const maxSuggestionDistance = 2

// SuggestKey returns a "Did you mean" hint for an unknown directive key, or ""
// when no valid key is close enough.
func SuggestKey(unknown string, validKeys []string) string {
	if len(validKeys) == 0 {
		return ""
	}

	minDistance := maxSuggestionDistance + 1
	var bestMatch string

	for _, key := range validKeys {
		dist := levenshteinDistance(unknown, key)
		if dist < minDistance {
			minDistance = dist
			bestMatch = key
		}
	}

	if bestMatch == "" {
		return ""
	}
	return fmt.Sprintf("Did you mean '%s'?", bestMatch)
}

// SuggestMissingKey suggests adding a required directive.
func SuggestMissingKey(key, exampleValue string) string {
	if exampleValue != "" {
		return fmt.Sprintf("Add '- %s: %s' to the section", key, exampleValue)
	}
	return fmt.Sprintf("Add a '- %s:' directive to the section", key)
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	// Two rolling rows are enough.
	prev := make([]int, len2+1)
	curr := make([]int, len2+1)
	for j := 0; j <= len2; j++ {
		prev[j] = j
	}

	for i := 1; i <= len1; i++ {
		curr[0] = i
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // Deletion
				curr[j-1]+1,    // Insertion
				prev[j-1]+cost, // Substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len2]
}
