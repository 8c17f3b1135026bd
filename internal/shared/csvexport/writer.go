// Package csvexport writes report rows with every field double-quoted.
package csvexport

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Writer emits CRLF-terminated records. encoding/csv only quotes when a field
// requires it, so quoting is done here.
type Writer struct {
	w   *bufio.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) Write(record []string) error {
	if w.err != nil {
		return w.err
	}
	for i, field := range record {
		if i > 0 {
			if w.err = w.w.WriteByte(','); w.err != nil {
				return w.err
			}
		}
		if _, w.err = w.w.WriteString(Quote(field)); w.err != nil {
			return w.err
		}
	}
	_, w.err = w.w.WriteString("\r\n")
	return w.err
}

func (w *Writer) WriteAll(records [][]string) error {
	for _, r := range records {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Quote wraps s in double quotes and doubles any embedded quote.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
