package report

import (
	"context"
	"fmt"
	"io"
	"os"
)

// SummaryWriter delivers a rendered report to one destination
type SummaryWriter interface {
	// Write delivers the report text
	Write(ctx context.Context, markdown string) error

	// Close flushes and releases the destination
	Close() error
}

// StdoutWriter prints the report on stdout, the payload stream.
// Diagnostics never share this stream.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a stdout writer
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{out: os.Stdout}
}

// Write prints the report
func (w *StdoutWriter) Write(_ context.Context, markdown string) error {
	if _, err := fmt.Fprint(w.out, markdown); err != nil {
		return fmt.Errorf("failed to write report to stdout: %w", err)
	}
	return nil
}

// Close is a no-op for stdout
func (w *StdoutWriter) Close() error {
	return nil
}

// FileWriter appends reports to a summary file, the shape CI step
// summaries expect. The file opens lazily on first write.
type FileWriter struct {
	path string
	file *os.File
}

// NewFileWriter creates a file writer for the given path
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Write appends the report to the summary file
func (w *FileWriter) Write(_ context.Context, markdown string) error {
	if w.file == nil {
		f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G304 -- path is intentional user input
		if err != nil {
			return fmt.Errorf("failed to open summary file %s: %w", w.path, err)
		}
		w.file = f
	}
	if _, err := w.file.WriteString(markdown); err != nil {
		return fmt.Errorf("failed to write summary file %s: %w", w.path, err)
	}
	return nil
}

// Close closes the summary file if it was opened
func (w *FileWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	if err != nil {
		return fmt.Errorf("failed to close summary file %s: %w", w.path, err)
	}
	return nil
}

// MultiWriter fans a report out to several destinations
type MultiWriter struct {
	writers []SummaryWriter
}

// NewMultiWriter creates a writer that delivers to all given writers
func NewMultiWriter(writers ...SummaryWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write delivers to every destination, returning the first error
func (m *MultiWriter) Write(ctx context.Context, markdown string) error {
	var firstErr error
	for _, w := range m.writers {
		if err := w.Write(ctx, markdown); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes every destination, returning the first error
func (m *MultiWriter) Close() error {
	var firstErr error
	for _, w := range m.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
