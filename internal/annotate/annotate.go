// Package annotate maps file names to short human-readable descriptions.
//
// Two lookup tables drive the mapping: exact file names (case-sensitive, for
// well-known files such as Dockerfile and dotfile configuration) and file
// extensions (case-insensitive, keyed by the lowercase extension including the
// leading dot). Exact-filename matches always win over extension matches.
// Both tables are process-wide constants and are never mutated at runtime.
package annotate

import "strings"

// annotationsByFileName holds case-sensitive whole-filename annotations.
// These take precedence over extension lookups.
var annotationsByFileName = map[string]string{
	".env":          "Environment variables",
	".gitignore":    "Git ignore rules",
	".dockerignore": "Docker ignore rules",
	"Dockerfile":    "Docker build instructions",
}

// annotationsByExtension holds annotations keyed by lowercase extension with
// the leading dot.
var annotationsByExtension = map[string]string{
	".py":         "Python script",
	".js":         "JavaScript code",
	".jsx":        "React component",
	".tsx":        "React component",
	".ts":         "TypeScript code",
	".html":       "HTML template",
	".css":        "CSS styles",
	".json":       "JSON data",
	".md":         "Markdown documentation",
	".yml":        "YAML configuration",
	".yaml":       "YAML configuration",
	".txt":        "Text file",
	".csv":        "CSV data",
	".sh":         "Shell script",
	".java":       "Java source code",
	".cpp":        "C++ source code",
	".cc":         "C++ source code",
	".c":          "C source code",
	".h":          "Header file",
	".hpp":        "Header file",
	".go":         "Go source code",
	".rs":         "Rust source code",
	".php":        "PHP script",
	".rb":         "Ruby script",
	".sql":        "SQL query",
	".xml":        "XML data",
	".dockerfile": "Docker build instructions",
}

// Describe returns the annotation for the given entry name and whether one
// exists. It is a pure function and is total over all string inputs.
func Describe(entryName string) (string, bool) {
	if annotation, known := annotationsByFileName[entryName]; known {
		return annotation, true
	}
	extensionIndex := strings.LastIndex(entryName, ".")
	if extensionIndex < 0 {
		return "", false
	}
	extension := strings.ToLower(entryName[extensionIndex:])
	annotation, known := annotationsByExtension[extension]
	return annotation, known
}
