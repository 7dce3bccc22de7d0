// Package commands contains the core traversal and rendering logic for dirmap.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/SakibAhmedShuva/dirmap/internal/annotate"
	"github.com/SakibAhmedShuva/dirmap/internal/config"
	"github.com/SakibAhmedShuva/dirmap/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	// directorySuffix marks directory lines; "/" is used on every platform so
	// rendered output stays byte-identical across runs and hosts.
	directorySuffix = "/"
	// annotationSeparator joins an entry name and its annotation comment.
	annotationSeparator = "  # "

	// truncatedFilesLineFormat is the synthetic line replacing files omitted by the per-directory limit.
	truncatedFilesLineFormat = "... %d more file(s) not shown  # Use --max-files option to change limit"
	// permissionDeniedLabel is the inline line rendered under a forbidden subdirectory.
	permissionDeniedLabel = "[Permission denied]"
	// unreadableDirectoryLineFormat is the inline line rendered under an unreadable subdirectory.
	unreadableDirectoryLineFormat = "[Error reading directory: %v]"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorNilLineHandlerMessage is returned when StreamTree is invoked without a handler.
	errorNilLineHandlerMessage = "tree line handler is nil"
)

// TreeBuilder renders a filesystem subtree as a stream of annotated text lines.
type TreeBuilder struct {
	Config config.TraversalConfig
}

// NewTreeBuilder constructs a TreeBuilder for the provided traversal configuration.
func NewTreeBuilder(traversalConfig config.TraversalConfig) *TreeBuilder {
	return &TreeBuilder{Config: traversalConfig}
}

// lineSink forwards produced lines to the caller's handler and counts them,
// so consumers can report line totals without materializing the sequence.
type lineSink struct {
	emit     func(string) error
	produced int
}

func (sink *lineSink) write(line string) error {
	if emitError := sink.emit(line); emitError != nil {
		return emitError
	}
	sink.produced++
	return nil
}

// renderItem is one row of a directory listing after truncation decisions:
// either a surviving entry or the synthetic truncation summary.
type renderItem struct {
	entry        types.Entry
	isTruncation bool
	hiddenCount  int
}

// StreamTree walks rootPath depth-first and produces each formatted line
// through emitLine, in output order. It returns the number of lines produced.
//
// Root-level failures (missing root, root not a directory, forbidden root
// listing) are returned as *types.TraversalError before any line is emitted.
// Listing failures deeper in the tree degrade to a single inline diagnostic
// line and traversal continues with the remaining siblings.
func (treeBuilder *TreeBuilder) StreamTree(rootPath string, emitLine func(string) error) (int, error) {
	if emitLine == nil {
		return 0, fmt.Errorf(errorNilLineHandlerMessage)
	}

	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return 0, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}

	rootInfo, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		return 0, classifyRootError(absoluteRootPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return 0, &types.TraversalError{Kind: types.TraversalErrorRootNotADirectory, Path: absoluteRootPath}
	}

	rootEntries, rootListError := treeBuilder.listEntries(absoluteRootPath)
	if rootListError != nil {
		return 0, classifyListingError(absoluteRootPath, rootListError)
	}

	sink := &lineSink{emit: emitLine}
	if writeError := sink.write(absoluteRootPath); writeError != nil {
		return sink.produced, writeError
	}
	if renderError := treeBuilder.renderListing(rootEntries, "", 0, sink); renderError != nil {
		return sink.produced, renderError
	}
	return sink.produced, nil
}

// RenderTree materializes the full line sequence for rootPath. It is a
// convenience wrapper over StreamTree for callers that need the whole output.
func (treeBuilder *TreeBuilder) RenderTree(rootPath string) ([]string, error) {
	var lines []string
	_, streamError := treeBuilder.StreamTree(rootPath, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	if streamError != nil {
		return nil, streamError
	}
	return lines, nil
}

// listEntries reads one directory, drops ignored names, and returns the
// remaining entries in the established order: case-insensitive lexicographic
// by name, ties broken case-sensitive, files and directories interleaved.
func (treeBuilder *TreeBuilder) listEntries(directoryPath string) ([]types.Entry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, readDirectoryError
	}

	entries := make([]types.Entry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if treeBuilder.Config.IsIgnored(entryName) {
			continue
		}
		entries = append(entries, types.Entry{
			Name:         entryName,
			IsDirectory:  directoryEntry.IsDir(),
			AbsolutePath: filepath.Join(directoryPath, entryName),
		})
	}

	sort.SliceStable(entries, func(leftIndex, rightIndex int) bool {
		leftName := strings.ToLower(entries[leftIndex].Name)
		rightName := strings.ToLower(entries[rightIndex].Name)
		if leftName != rightName {
			return leftName < rightName
		}
		return entries[leftIndex].Name < entries[rightIndex].Name
	})
	return entries, nil
}

// applyFileLimit converts sorted entries into render items, replacing files
// beyond the per-directory limit with one truncation summary item placed at
// the position of the first omitted file. Directories are never truncated.
func (treeBuilder *TreeBuilder) applyFileLimit(entries []types.Entry) []renderItem {
	totalFiles := 0
	for _, entry := range entries {
		if !entry.IsDirectory {
			totalFiles++
		}
	}

	limited := treeBuilder.Config.FileCountLimited() && totalFiles > treeBuilder.Config.MaxFilesPerDirectory
	hiddenCount := 0
	if limited {
		hiddenCount = totalFiles - treeBuilder.Config.MaxFilesPerDirectory
	}

	items := make([]renderItem, 0, len(entries))
	shownFiles := 0
	truncationEmitted := false
	for _, entry := range entries {
		if entry.IsDirectory {
			items = append(items, renderItem{entry: entry})
			continue
		}
		if limited && shownFiles == treeBuilder.Config.MaxFilesPerDirectory {
			if !truncationEmitted {
				items = append(items, renderItem{isTruncation: true, hiddenCount: hiddenCount})
				truncationEmitted = true
			}
			continue
		}
		items = append(items, renderItem{entry: entry})
		shownFiles++
	}
	return items
}

// renderListing emits one directory's children and recurses into
// subdirectories within the depth limit. currentDepth is the depth of the
// listing producing these lines; the root listing is depth zero.
func (treeBuilder *TreeBuilder) renderListing(entries []types.Entry, prefix string, currentDepth int, sink *lineSink) error {
	items := treeBuilder.applyFileLimit(entries)

	for itemIndex, item := range items {
		isLast := itemIndex == len(items)-1
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if isLast {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}

		if item.isTruncation {
			if writeError := sink.write(prefix + connector + fmt.Sprintf(truncatedFilesLineFormat, item.hiddenCount)); writeError != nil {
				return writeError
			}
			continue
		}

		if !item.entry.IsDirectory {
			line := prefix + connector + item.entry.Name
			if annotation, annotated := annotate.Describe(item.entry.Name); annotated {
				line += annotationSeparator + annotation
			}
			if writeError := sink.write(line); writeError != nil {
				return writeError
			}
			continue
		}

		if writeError := sink.write(prefix + connector + item.entry.Name + directorySuffix); writeError != nil {
			return writeError
		}

		if treeBuilder.Config.DepthLimited() && currentDepth+1 > treeBuilder.Config.MaxDepth {
			continue
		}

		childEntries, listError := treeBuilder.listEntries(item.entry.AbsolutePath)
		if listError != nil {
			if writeError := sink.write(childPrefix + treeLastConnector + unreadableDirectoryLine(listError)); writeError != nil {
				return writeError
			}
			continue
		}
		if renderError := treeBuilder.renderListing(childEntries, childPrefix, currentDepth+1, sink); renderError != nil {
			return renderError
		}
	}
	return nil
}

// unreadableDirectoryLine formats the inline diagnostic rendered beneath a
// directory whose listing failed mid-traversal.
func unreadableDirectoryLine(listError error) string {
	if os.IsPermission(listError) {
		return permissionDeniedLabel
	}
	return fmt.Sprintf(unreadableDirectoryLineFormat, listError)
}

// classifyRootError maps a root stat failure to a fatal traversal error.
func classifyRootError(rootPath string, statError error) *types.TraversalError {
	kind := types.TraversalErrorSubdirectoryUnreadable
	if os.IsNotExist(statError) {
		kind = types.TraversalErrorRootNotFound
	} else if os.IsPermission(statError) {
		kind = types.TraversalErrorPermissionDenied
	}
	return &types.TraversalError{Kind: kind, Path: rootPath, Err: statError}
}

// classifyListingError maps a root listing failure to a fatal traversal error.
func classifyListingError(rootPath string, listError error) *types.TraversalError {
	kind := types.TraversalErrorSubdirectoryUnreadable
	if os.IsPermission(listError) {
		kind = types.TraversalErrorPermissionDenied
	}
	return &types.TraversalError{Kind: kind, Path: rootPath, Err: listError}
}
