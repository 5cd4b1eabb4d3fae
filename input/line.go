package input

import (
	"strings"
	"unicode"
)

// Line is a single-line rune editor with a length cap
// Not safe for concurrent use, the event loop owns it
type Line struct {
	runes []rune
	limit int
}

// NewLine creates an editor accepting at most limit runes, limit <= 0 means unbounded
func NewLine(limit int) *Line {
	return &Line{limit: limit}
}

// Insert appends r, reporting false when the line is full or r is not printable
func (l *Line) Insert(r rune) bool {
	if !unicode.IsPrint(r) {
		return false
	}
	if l.limit > 0 && len(l.runes) >= l.limit {
		return false
	}
	l.runes = append(l.runes, r)
	return true
}

// Backspace removes the last rune
func (l *Line) Backspace() {
	if len(l.runes) > 0 {
		l.runes = l.runes[:len(l.runes)-1]
	}
}

// Clear empties the line
func (l *Line) Clear() {
	l.runes = l.runes[:0]
}

// Take returns the trimmed contents and clears the line
func (l *Line) Take() string {
	s := strings.TrimSpace(string(l.runes))
	l.Clear()
	return s
}

// String returns the raw contents
func (l *Line) String() string {
	return string(l.runes)
}

// Len returns the rune count
func (l *Line) Len() int {
	return len(l.runes)
}

// Blank reports whether the line holds only whitespace
func (l *Line) Blank() bool {
	for _, r := range l.runes {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
