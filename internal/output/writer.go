// Package output writes rendered tree lines to their destinations.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// LineWriter appends newline-terminated lines to a destination and counts
// them. It is the single append-only sink of a rendering operation.
type LineWriter struct {
	destination io.Writer
	lines       int
}

// NewLineWriter constructs a LineWriter over the provided destination.
func NewLineWriter(destination io.Writer) *LineWriter {
	return &LineWriter{destination: destination}
}

// WriteLine appends one line followed by a newline.
func (lineWriter *LineWriter) WriteLine(line string) error {
	if _, writeError := fmt.Fprintln(lineWriter.destination, line); writeError != nil {
		return writeError
	}
	lineWriter.lines++
	return nil
}

// WriteRaw appends text without counting it as a rendered line. It is used for
// the trailing timing summary, which is not part of the tree itself.
func (lineWriter *LineWriter) WriteRaw(text string) error {
	_, writeError := fmt.Fprint(lineWriter.destination, text)
	return writeError
}

// Lines returns the number of rendered lines written so far.
func (lineWriter *LineWriter) Lines() int {
	return lineWriter.lines
}

// CaptureWriter tees written bytes into a buffer so the rendered text can be
// reused after streaming, for example for clipboard copying.
type CaptureWriter struct {
	forward io.Writer
	buffer  strings.Builder
}

// NewCaptureWriter constructs a CaptureWriter forwarding to the given writer.
func NewCaptureWriter(forward io.Writer) *CaptureWriter {
	return &CaptureWriter{forward: forward}
}

// Write implements io.Writer.
func (captureWriter *CaptureWriter) Write(data []byte) (int, error) {
	captureWriter.buffer.Write(data)
	return captureWriter.forward.Write(data)
}

// Captured returns everything written so far.
func (captureWriter *CaptureWriter) Captured() string {
	return captureWriter.buffer.String()
}

// OpenDestination returns the writer for rendered output and a close function.
// An empty path selects standard output.
func OpenDestination(outputPath string) (io.Writer, func() error, error) {
	if outputPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return nil, nil, fmt.Errorf("creating output file %s: %w", outputPath, createError)
	}
	return outputFile, outputFile.Close, nil
}
