// Package corpus reads labeled SMS training data. The on-disk format is one
// message per line: label, a tab, then the message text (the layout of the
// classic SMSSpamCollection dataset).
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// Load reads a labeled corpus from a TSV file
func Load(path string) ([]core.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()

	msgs, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus from %s: %w", path, err)
	}
	return msgs, nil
}

// LoadReader reads a labeled corpus from a reader. Blank lines are skipped;
// malformed rows and unknown labels fail with a DataError.
func LoadReader(r io.Reader) ([]core.RawMessage, error) {
	var msgs []core.RawMessage

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, &core.DataError{
				Reason: fmt.Sprintf("line %d: expected label<TAB>text", lineNo),
			}
		}
		label, ok := core.ParseLabel(strings.TrimSpace(parts[0]))
		if !ok {
			return nil, &core.DataError{
				Reason: fmt.Sprintf("line %d: unknown label %q", lineNo, parts[0]),
			}
		}
		msgs = append(msgs, core.RawMessage{Text: parts[1], Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	if len(msgs) == 0 {
		return nil, &core.DataError{Reason: "corpus is empty"}
	}
	return msgs, nil
}
