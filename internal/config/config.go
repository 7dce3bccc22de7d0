// Package config holds traversal configuration and application configuration loading.
package config

// UnlimitedLimit is the sentinel for limits that are not applied.
const UnlimitedLimit = -1

// TraversalConfig is the immutable configuration for one rendering operation.
// It is constructed once at the top level and shared read-only down the
// recursion.
type TraversalConfig struct {
	MaxDepth             int
	MaxFilesPerDirectory int
	IgnoreSet            map[string]struct{}
}

// NewTraversalConfig builds a TraversalConfig from resolved option values.
// Negative limit values are normalized to UnlimitedLimit.
func NewTraversalConfig(maxDepth int, maxFilesPerDirectory int, ignoreNames []string) TraversalConfig {
	if maxDepth < 0 {
		maxDepth = UnlimitedLimit
	}
	if maxFilesPerDirectory < 0 {
		maxFilesPerDirectory = UnlimitedLimit
	}
	ignoreSet := make(map[string]struct{}, len(ignoreNames))
	for _, ignoreName := range ignoreNames {
		if ignoreName == "" {
			continue
		}
		ignoreSet[ignoreName] = struct{}{}
	}
	return TraversalConfig{
		MaxDepth:             maxDepth,
		MaxFilesPerDirectory: maxFilesPerDirectory,
		IgnoreSet:            ignoreSet,
	}
}

// IsIgnored reports whether an entry name is present in the ignore set.
// The match is exact and applies uniformly to files and directories.
func (traversalConfig TraversalConfig) IsIgnored(entryName string) bool {
	_, ignored := traversalConfig.IgnoreSet[entryName]
	return ignored
}

// DepthLimited reports whether a finite depth limit is configured.
func (traversalConfig TraversalConfig) DepthLimited() bool {
	return traversalConfig.MaxDepth != UnlimitedLimit
}

// FileCountLimited reports whether a finite per-directory file limit is configured.
func (traversalConfig TraversalConfig) FileCountLimited() bool {
	return traversalConfig.MaxFilesPerDirectory != UnlimitedLimit
}
