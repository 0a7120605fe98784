// Package notes is the append-only note log behind add_summary and read_summary.
package notes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"financetools/internal/tool"
)

const (
	// Added is returned after a successful append.
	Added = "Summary added successfully"
	// Empty is returned when the log has no content.
	Empty = "No summary found"
)

// Log appends lines to a text file. The mutex serialises callers in this
// process only; other processes writing the same file may interleave.
type Log struct {
	path string
	mu   sync.Mutex
}

// New returns a Log backed by the file at path. The file is created on first use.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the backing file path.
func (l *Log) Path() string {
	return l.path
}

func (l *Log) ensure() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create note directory: %w", err)
		}
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create note file: %w", err)
	}
	return f.Close()
}

// Append writes text followed by a newline.
func (l *Log) Append(text string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensure(); err != nil {
		return "", err
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open note file: %w", err)
	}
	if _, err := f.WriteString(text + "\n"); err != nil {
		f.Close()
		return "", fmt.Errorf("append note: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close note file: %w", err)
	}
	return Added, nil
}

// ReadAll returns the whole log, or Empty when nothing has been written.
func (l *Log) ReadAll() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensure(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(l.path)
	if err != nil {
		return "", fmt.Errorf("read note file: %w", err)
	}
	if len(b) == 0 {
		return Empty, nil
	}
	return string(b), nil
}

// Tools returns add_summary and read_summary bound to l.
func (l *Log) Tools() []tool.Tool {
	return []tool.Tool{
		{
			Definition: tool.Definition{
				Name:        "add_summary",
				Description: "Add a summary of the last message to the summary file",
				InputSchema: tool.Object(map[string]any{
					"message": tool.StringProp("The message to add to the summary file"),
				}, "message"),
			},
			Handler: tool.WrapText("Add summary", tool.Hints{}, func(_ context.Context, args tool.Args) (string, error) {
				msg, _ := args["message"].(string)
				return l.Append(msg)
			}),
		},
		{
			Definition: tool.Definition{
				Name:        "read_summary",
				Description: "Read the accumulated summaries from the summary file",
				InputSchema: tool.Object(map[string]any{}),
			},
			Handler: tool.WrapText("Read summary", tool.Hints{}, func(_ context.Context, _ tool.Args) (string, error) {
				return l.ReadAll()
			}),
		},
	}
}
