package game

import (
	"fmt"
	"strings"
)

// PassLogEntry is one recorded event of a session.
type PassLogEntry struct {
	Pass     int    // passes started so far, 0 before the first
	Category string // field, extract, scenario, trigger, clipboard
	Key      string
	Value    string
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[P=003] field     done             border_cells=4212
func (e PassLogEntry) String() string {
	return fmt.Sprintf("[P=%03d] %-9s %-16s %s", e.Pass, e.Category, e.Key, e.Value)
}

// PassLog collects structured events for a session, in order. Unlike
// EventLog it is unbounded and meant for tests and reports.
type PassLog struct {
	entries []PassLogEntry
}

// NewPassLog creates an empty log.
func NewPassLog() *PassLog {
	return &PassLog{}
}

// Add records a new entry.
func (pl *PassLog) Add(pass int, category, key, value string, numVal float64) {
	pl.entries = append(pl.entries, PassLogEntry{pass, category, key, value, numVal})
}

// Entries returns all recorded entries.
func (pl *PassLog) Entries() []PassLogEntry {
	return pl.entries
}

// ForPass returns the entries recorded while pass was the latest pass.
// Entries are appended with non-decreasing pass numbers, so the result is
// one contiguous run.
func (pl *PassLog) ForPass(pass int) []PassLogEntry {
	lo := len(pl.entries)
	for i, e := range pl.entries {
		if e.Pass == pass {
			lo = i
			break
		}
	}
	hi := lo
	for hi < len(pl.entries) && pl.entries[hi].Pass == pass {
		hi++
	}
	return pl.entries[lo:hi]
}

// Count returns how many entries have category and key; an empty key
// matches any key.
func (pl *PassLog) Count(category, key string) int {
	n := 0
	for _, e := range pl.entries {
		if e.Category == category && (key == "" || e.Key == key) {
			n++
		}
	}
	return n
}

// HasEntry reports whether an entry has category and key and a value
// containing valueSubstr.
func (pl *PassLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range pl.entries {
		if e.Category == category && e.Key == key && strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format returns the full log, one entry per line.
func (pl *PassLog) Format() string {
	var sb strings.Builder
	for _, e := range pl.entries {
		fmt.Fprintln(&sb, e)
	}
	return sb.String()
}
