package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
	logTitleH     = 16
)

// EventLevel grades an EventLog line.
type EventLevel int

const (
	EventInfo EventLevel = iota
	EventWarn
	EventError
)

// EventEntry is a single line in the event log.
type EventEntry struct {
	Pass    int
	Level   EventLevel
	Message string
}

// EventLog keeps the most recent logMaxEntries session events, oldest first,
// for the side panel.
type EventLog struct {
	lines []EventEntry
}

// NewEventLog creates an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{lines: make([]EventEntry, 0, logMaxEntries)}
}

// Add appends an entry, dropping the oldest once full.
func (el *EventLog) Add(pass int, level EventLevel, msg string) {
	if len(el.lines) == logMaxEntries {
		n := copy(el.lines, el.lines[1:])
		el.lines = el.lines[:n]
	}
	el.lines = append(el.lines, EventEntry{Pass: pass, Level: level, Message: msg})
}

// Len returns the number of entries held.
func (el *EventLog) Len() int { return len(el.lines) }

// Recent returns a copy of the entries, oldest first.
func (el *EventLog) Recent() []EventEntry {
	return append([]EventEntry(nil), el.lines...)
}

// tail returns the newest entries that fit in rows lines.
func (el *EventLog) tail(rows int) []EventEntry {
	if rows <= 0 {
		return nil
	}
	if len(el.lines) > rows {
		return el.lines[len(el.lines)-rows:]
	}
	return el.lines
}

var levelColors = [...]color.RGBA{
	EventInfo:  {R: 70, G: 160, B: 90, A: 255},
	EventWarn:  {R: 230, G: 180, B: 40, A: 255},
	EventError: {R: 210, G: 70, B: 70, A: 255},
}

// Draw renders the panel at panelX, newest line at the bottom. Warnings and
// errors get a tinted row.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	x, w := float32(panelX), float32(logPanelWidth)
	vector.FillRect(screen, x, 0, w, float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.FillRect(screen, x, 0, w, logTitleH, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	vector.StrokeLine(screen, x, 0, x, float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("EVENTS (%d)", len(el.lines)), panelX+8, 2)

	y := logTitleH + 4
	for _, e := range el.tail((panelH - y) / logLineHeight) {
		c := levelColors[e.Level]
		if e.Level != EventInfo {
			tint := c
			tint.A = 40
			vector.FillRect(screen, x+2, float32(y), w-4, logLineHeight, tint, false)
		}
		vector.FillRect(screen, x+5, float32(y+3), 3, 5, c, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%3d %s", e.Pass, e.Message), panelX+12, y)
		y += logLineHeight
	}
}
