package logging

import (
	"fmt"
	"strings"
	"time"

	"charm.land/log/v2"
)

// Entry is one line in the log viewer.
type Entry struct {
	Time    time.Time
	Level   log.Level
	Message string
}

// Ring keeps the last N entries of one desktop. It is owned by the desktop's
// update loop and is not safe for concurrent use.
type Ring struct {
	entries []Entry
	max     int
}

// NewRing returns a ring holding at most n entries.
func NewRing(n int) *Ring {
	return &Ring{max: max(n, 1)}
}

// Add appends an entry, formatting keyvals the way the text logger does.
func (r *Ring) Add(now time.Time, level log.Level, msg string, keyvals ...any) {
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(keyvals); i += 2 {
		sb.WriteByte(' ')
		if i+1 < len(keyvals) {
			fmt.Fprintf(&sb, "%v=%v", keyvals[i], keyvals[i+1])
		} else {
			fmt.Fprintf(&sb, "%v", keyvals[i])
		}
	}

	r.entries = append(r.entries, Entry{Time: now, Level: level, Message: sb.String()})
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
}

// Entries returns the kept entries, oldest first.
func (r *Ring) Entries() []Entry {
	return r.entries
}

// Len returns the number of kept entries.
func (r *Ring) Len() int {
	return len(r.entries)
}
