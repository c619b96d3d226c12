package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"lockstream/internal/domain/event"
)

// Cursor is a restartable sequential reader over the log. Next returns io.EOF
// at the end of the log, and an error wrapping event.ErrCorruptRecord for a
// malformed line; the cursor remains usable after a corrupt record so replay
// can continue with the records that follow it.
type Cursor struct {
	file    *os.File
	scanner *bufio.Scanner
	after   int64
	line    int
}

func newCursor(path string, after int64) (*Cursor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Cursor{file: file, scanner: scanner, after: after}, nil
}

func (c *Cursor) Next() (*event.Event, error) {
	for c.scanner.Scan() {
		c.line++
		raw := c.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev event.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", event.ErrCorruptRecord, c.line, err)
		}
		if ev.EventID == "" {
			return nil, fmt.Errorf("%w: line %d: record has no event_id", event.ErrCorruptRecord, c.line)
		}
		if ev.Sequence <= c.after {
			continue
		}
		return &ev, nil
	}
	if err := c.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (c *Cursor) Close() error {
	return c.file.Close()
}
