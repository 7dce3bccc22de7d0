// Package types defines every cross-package data structure used by the dirmap CLI.
package types

import "fmt"

// Entry is a single filesystem node discovered while listing a directory.
// Entries live only for the duration of one listing; AbsolutePath is used
// for recursion and never printed.
type Entry struct {
	Name         string
	IsDirectory  bool
	AbsolutePath string
}

// TraversalErrorKind classifies traversal failures.
type TraversalErrorKind int

const (
	// TraversalErrorRootNotFound indicates the root path does not exist.
	TraversalErrorRootNotFound TraversalErrorKind = iota
	// TraversalErrorRootNotADirectory indicates the root path exists but is not a directory.
	TraversalErrorRootNotADirectory
	// TraversalErrorPermissionDenied indicates a listing was forbidden.
	TraversalErrorPermissionDenied
	// TraversalErrorSubdirectoryUnreadable indicates any other mid-traversal listing failure.
	TraversalErrorSubdirectoryUnreadable
)

// String returns a stable human-readable name for the kind.
func (kind TraversalErrorKind) String() string {
	switch kind {
	case TraversalErrorRootNotFound:
		return "root not found"
	case TraversalErrorRootNotADirectory:
		return "root is not a directory"
	case TraversalErrorPermissionDenied:
		return "permission denied"
	case TraversalErrorSubdirectoryUnreadable:
		return "subdirectory unreadable"
	default:
		return "unknown traversal error"
	}
}

// TraversalError reports a failure to traverse a path. Root-level kinds are
// fatal to the whole rendering operation; subdirectory failures are recovered
// inline by the renderer.
type TraversalError struct {
	Kind TraversalErrorKind
	Path string
	Err  error
}

// Error implements the error interface.
func (traversalError *TraversalError) Error() string {
	if traversalError.Err != nil {
		return fmt.Sprintf("%s: %s: %v", traversalError.Kind, traversalError.Path, traversalError.Err)
	}
	return fmt.Sprintf("%s: %s", traversalError.Kind, traversalError.Path)
}

// Unwrap exposes the underlying filesystem error.
func (traversalError *TraversalError) Unwrap() error {
	return traversalError.Err
}
