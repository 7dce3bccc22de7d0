package commands_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/SakibAhmedShuva/dirmap/internal/commands"
	"github.com/SakibAhmedShuva/dirmap/internal/config"
	"github.com/SakibAhmedShuva/dirmap/internal/types"
)

const truncationNoticeSuffix = "more file(s) not shown  # Use --max-files option to change limit"

// writeTestFile creates a file with placeholder content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte("x"), 0o644); writeError != nil {
		testingHandle.Fatalf("writing %s: %v", filePath, writeError)
	}
}

// makeTestDirectory creates a directory, failing the test on error.
func makeTestDirectory(testingHandle *testing.T, directoryPath string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(directoryPath, 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir %s: %v", directoryPath, makeDirError)
	}
}

func renderForTest(testingHandle *testing.T, rootDirectory string, traversalConfig config.TraversalConfig) []string {
	testingHandle.Helper()
	lines, renderError := commands.NewTreeBuilder(traversalConfig).RenderTree(rootDirectory)
	if renderError != nil {
		testingHandle.Fatalf("RenderTree error: %v", renderError)
	}
	return lines
}

// TestStreamTreeRendersAnnotatedTree verifies ordering, connectors, prefixes,
// directory suffixes, and annotations over a small fixture tree.
func TestStreamTreeRendersAnnotatedTree(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "docs"))
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "zeta"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "app.py"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "README.md"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "notes"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "docs", "guide.md"))

	lines := renderForTest(testingHandle, rootDirectory, config.NewTraversalConfig(config.UnlimitedLimit, config.UnlimitedLimit, nil))

	expectedLines := []string{
		rootDirectory,
		"├── app.py  # Python script",
		"├── docs/",
		"│   └── guide.md  # Markdown documentation",
		"├── notes",
		"├── README.md  # Markdown documentation",
		"└── zeta/",
	}
	if !reflect.DeepEqual(lines, expectedLines) {
		testingHandle.Fatalf("unexpected output:\n got: %q\nwant: %q", lines, expectedLines)
	}
}

// TestStreamTreeFileLimit reproduces the documented truncation example: one
// shown file, one hidden file, an ignored directory producing no line.
func TestStreamTreeFileLimit(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.py"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b.txt"))
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, ".git"))

	lines := renderForTest(testingHandle, rootDirectory, config.NewTraversalConfig(config.UnlimitedLimit, 1, []string{".git"}))

	expectedLines := []string{
		rootDirectory,
		"├── a.py  # Python script",
		"└── ... 1 " + truncationNoticeSuffix,
	}
	if !reflect.DeepEqual(lines, expectedLines) {
		testingHandle.Fatalf("unexpected output:\n got: %q\nwant: %q", lines, expectedLines)
	}
}

// TestStreamTreeTruncationBeforeDirectory verifies the truncation notice takes
// the position of the first omitted file, so a directory sorting after the
// omitted files still follows it and keeps the elbow connector.
func TestStreamTreeTruncationBeforeDirectory(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.csv"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b.csv"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "c.csv"))
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "zdir"))

	lines := renderForTest(testingHandle, rootDirectory, config.NewTraversalConfig(config.UnlimitedLimit, 1, nil))

	expectedLines := []string{
		rootDirectory,
		"├── a.csv  # CSV data",
		"├── ... 2 " + truncationNoticeSuffix,
		"└── zdir/",
	}
	if !reflect.DeepEqual(lines, expectedLines) {
		testingHandle.Fatalf("unexpected output:\n got: %q\nwant: %q", lines, expectedLines)
	}
}

// TestStreamTreeDepthLimit verifies directories at the depth boundary are
// listed with a trailing slash but never recursed into.
func TestStreamTreeDepthLimit(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	subDirectory := filepath.Join(rootDirectory, "sub")
	makeTestDirectory(testingHandle, filepath.Join(subDirectory, "deep"))
	writeTestFile(testingHandle, filepath.Join(subDirectory, "x.py"))
	writeTestFile(testingHandle, filepath.Join(subDirectory, "deep", "y.py"))

	testCases := []struct {
		name          string
		maxDepth      int
		expectedLines []string
	}{
		{
			name:     "depth zero lists root children only",
			maxDepth: 0,
			expectedLines: []string{
				rootDirectory,
				"└── sub/",
			},
		},
		{
			name:     "depth one recurses one level",
			maxDepth: 1,
			expectedLines: []string{
				rootDirectory,
				"└── sub/",
				"    ├── deep/",
				"    └── x.py  # Python script",
			},
		},
		{
			name:     "unlimited depth",
			maxDepth: config.UnlimitedLimit,
			expectedLines: []string{
				rootDirectory,
				"└── sub/",
				"    ├── deep/",
				"    │   └── y.py  # Python script",
				"    └── x.py  # Python script",
			},
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			lines := renderForTest(subTest, rootDirectory, config.NewTraversalConfig(testCase.maxDepth, config.UnlimitedLimit, nil))
			if !reflect.DeepEqual(lines, testCase.expectedLines) {
				subTest.Fatalf("unexpected output:\n got: %q\nwant: %q", lines, testCase.expectedLines)
			}
		})
	}
}

// TestStreamTreeIgnore verifies ignored files and directories (including their
// subtrees) produce no lines at any depth.
func TestStreamTreeIgnore(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "node_modules", "pkg"))
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "src"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "node_modules", "pkg", "index.js"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "src", "secret.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "src", "main.go"))

	lines := renderForTest(testingHandle, rootDirectory, config.NewTraversalConfig(config.UnlimitedLimit, config.UnlimitedLimit, []string{"node_modules", "secret.txt"}))

	expectedLines := []string{
		rootDirectory,
		"└── src/",
		"    └── main.go  # Go source code",
	}
	if !reflect.DeepEqual(lines, expectedLines) {
		testingHandle.Fatalf("unexpected output:\n got: %q\nwant: %q", lines, expectedLines)
	}
}

// TestStreamTreeIdempotence verifies rendering the same tree twice yields
// identical output.
func TestStreamTreeIdempotence(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "lib"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "lib", "core.rs"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "run.sh"))

	traversalConfig := config.NewTraversalConfig(config.UnlimitedLimit, config.UnlimitedLimit, nil)
	firstLines := renderForTest(testingHandle, rootDirectory, traversalConfig)
	secondLines := renderForTest(testingHandle, rootDirectory, traversalConfig)
	if !reflect.DeepEqual(firstLines, secondLines) {
		testingHandle.Fatalf("output not idempotent:\nfirst: %q\nsecond: %q", firstLines, secondLines)
	}
}

// TestStreamTreeCaseInsensitiveOrdering verifies the documented ordering:
// case-insensitive lexicographic, ties broken case-sensitive.
func TestStreamTreeCaseInsensitiveOrdering(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "Beta.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "alpha.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "beta.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "Gamma.txt"))

	lines := renderForTest(testingHandle, rootDirectory, config.NewTraversalConfig(config.UnlimitedLimit, config.UnlimitedLimit, nil))

	expectedLines := []string{
		rootDirectory,
		"├── alpha.txt  # Text file",
		"├── Beta.txt  # Text file",
		"├── beta.txt  # Text file",
		"└── Gamma.txt  # Text file",
	}
	if !reflect.DeepEqual(lines, expectedLines) {
		testingHandle.Fatalf("unexpected ordering:\n got: %q\nwant: %q", lines, expectedLines)
	}
}

// TestStreamTreeLineCount verifies the returned count matches the number of
// lines delivered to the handler.
func TestStreamTreeLineCount(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "pkg"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "pkg", "a.go"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b.go"))

	treeBuilder := commands.NewTreeBuilder(config.NewTraversalConfig(config.UnlimitedLimit, config.UnlimitedLimit, nil))
	deliveredLines := 0
	producedLines, streamError := treeBuilder.StreamTree(rootDirectory, func(string) error {
		deliveredLines++
		return nil
	})
	if streamError != nil {
		testingHandle.Fatalf("StreamTree error: %v", streamError)
	}
	if producedLines != deliveredLines {
		testingHandle.Fatalf("expected produced count %d to match delivered count %d", producedLines, deliveredLines)
	}
	if producedLines != 4 {
		testingHandle.Fatalf("expected 4 lines, got %d", producedLines)
	}
}

// TestStreamTreeLineCountExcludesFailedEmit verifies a line rejected by the
// handler is not counted as produced.
func TestStreamTreeLineCountExcludesFailedEmit(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.go"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b.go"))

	sinkFailure := errors.New("sink rejected the line")
	treeBuilder := commands.NewTreeBuilder(config.NewTraversalConfig(config.UnlimitedLimit, config.UnlimitedLimit, nil))
	deliveredLines := 0
	producedLines, streamError := treeBuilder.StreamTree(rootDirectory, func(string) error {
		deliveredLines++
		if deliveredLines == 2 {
			return sinkFailure
		}
		return nil
	})
	if !errors.Is(streamError, sinkFailure) {
		testingHandle.Fatalf("expected the handler error, got %v", streamError)
	}
	if producedLines != 1 {
		testingHandle.Fatalf("expected 1 produced line before the failure, got %d", producedLines)
	}
}

// TestStreamTreeRootErrors verifies fatal root failures are classified and no
// lines are produced before they are reported.
func TestStreamTreeRootErrors(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	filePath := filepath.Join(rootDirectory, "plain.txt")
	writeTestFile(testingHandle, filePath)

	testCases := []struct {
		name         string
		rootPath     string
		expectedKind types.TraversalErrorKind
	}{
		{
			name:         "missing root",
			rootPath:     filepath.Join(rootDirectory, "missing"),
			expectedKind: types.TraversalErrorRootNotFound,
		},
		{
			name:         "root is a file",
			rootPath:     filePath,
			expectedKind: types.TraversalErrorRootNotADirectory,
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			treeBuilder := commands.NewTreeBuilder(config.NewTraversalConfig(config.UnlimitedLimit, config.UnlimitedLimit, nil))
			producedLines, streamError := treeBuilder.StreamTree(testCase.rootPath, func(string) error {
				subTest.Fatalf("no lines expected before a fatal root error")
				return nil
			})
			if streamError == nil {
				subTest.Fatalf("expected an error")
			}
			var traversalError *types.TraversalError
			if !errors.As(streamError, &traversalError) {
				subTest.Fatalf("expected *types.TraversalError, got %T", streamError)
			}
			if traversalError.Kind != testCase.expectedKind {
				subTest.Fatalf("expected kind %v, got %v", testCase.expectedKind, traversalError.Kind)
			}
			if producedLines != 0 {
				subTest.Fatalf("expected zero lines, got %d", producedLines)
			}
		})
	}
}

// TestStreamTreeRootPermissionDenied verifies a forbidden root listing is a
// fatal permission-denied error producing no lines.
func TestStreamTreeRootPermissionDenied(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced for root")
	}

	parentDirectory := testingHandle.TempDir()
	lockedRoot := filepath.Join(parentDirectory, "locked")
	makeTestDirectory(testingHandle, lockedRoot)
	if chmodError := os.Chmod(lockedRoot, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	testingHandle.Cleanup(func() {
		_ = os.Chmod(lockedRoot, 0o755)
	})

	treeBuilder := commands.NewTreeBuilder(config.NewTraversalConfig(config.UnlimitedLimit, config.UnlimitedLimit, nil))
	producedLines, streamError := treeBuilder.StreamTree(lockedRoot, func(string) error {
		testingHandle.Fatalf("no lines expected before a fatal root error")
		return nil
	})
	var traversalError *types.TraversalError
	if !errors.As(streamError, &traversalError) {
		testingHandle.Fatalf("expected *types.TraversalError, got %v", streamError)
	}
	if traversalError.Kind != types.TraversalErrorPermissionDenied {
		testingHandle.Fatalf("expected kind %v, got %v", types.TraversalErrorPermissionDenied, traversalError.Kind)
	}
	if producedLines != 0 {
		testingHandle.Fatalf("expected zero lines, got %d", producedLines)
	}
}

// TestStreamTreeUnreadableSubdirectory verifies mid-traversal listing failures
// degrade to one inline diagnostic line while siblings keep rendering.
func TestStreamTreeUnreadableSubdirectory(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced for root")
	}

	rootDirectory := testingHandle.TempDir()
	lockedDirectory := filepath.Join(rootDirectory, "locked")
	makeTestDirectory(testingHandle, lockedDirectory)
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "visible.txt"))
	if chmodError := os.Chmod(lockedDirectory, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	testingHandle.Cleanup(func() {
		_ = os.Chmod(lockedDirectory, 0o755)
	})

	lines := renderForTest(testingHandle, rootDirectory, config.NewTraversalConfig(config.UnlimitedLimit, config.UnlimitedLimit, nil))

	expectedLines := []string{
		rootDirectory,
		"├── locked/",
		"│   └── [Permission denied]",
		"└── visible.txt  # Text file",
	}
	if !reflect.DeepEqual(lines, expectedLines) {
		testingHandle.Fatalf("unexpected output:\n got: %q\nwant: %q", lines, expectedLines)
	}
}
