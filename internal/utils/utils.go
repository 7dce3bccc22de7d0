// Package utils contains general helper functions used across the dirmap tool.
package utils

// DeduplicateNames removes duplicate names from a slice while preserving order.
// The first occurrence of each unique name is kept.
func DeduplicateNames(names []string) []string {
	encounteredNames := make(map[string]struct{})
	result := make([]string, 0, len(names))
	for _, name := range names {
		if _, exists := encounteredNames[name]; !exists {
			encounteredNames[name] = struct{}{}
			result = append(result, name)
		}
	}
	return result
}
