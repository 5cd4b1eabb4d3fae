package input

import (
	"strings"
	"testing"
)

func TestLineEditing(t *testing.T) {
	l := NewLine(0)
	for _, r := range "hi there" {
		l.Insert(r)
	}
	l.Backspace()
	l.Backspace()
	if got := l.String(); got != "hi the" {
		t.Errorf("String() = %q, want %q", got, "hi the")
	}
	if l.Len() != 6 {
		t.Errorf("Len() = %d, want 6", l.Len())
	}

	l.Clear()
	if l.Len() != 0 || !l.Blank() {
		t.Error("Clear did not empty the line")
	}
	l.Backspace()
	if l.Len() != 0 {
		t.Error("Backspace on empty line changed length")
	}
}

func TestLineRejectsControlRunes(t *testing.T) {
	l := NewLine(0)
	if l.Insert('\n') || l.Insert('\x1b') {
		t.Error("control rune accepted")
	}
	if !l.Insert('é') {
		t.Error("printable rune rejected")
	}
}

func TestLineLimit(t *testing.T) {
	l := NewLine(280)
	for i := 0; i < 300; i++ {
		l.Insert('a')
	}
	if l.Len() != 280 {
		t.Errorf("Len() = %d, want 280", l.Len())
	}
}

func TestLineTake(t *testing.T) {
	l := NewLine(0)
	for _, r := range "  What is stillness?  " {
		l.Insert(r)
	}
	if got := l.Take(); got != "What is stillness?" {
		t.Errorf("Take() = %q", got)
	}
	if l.Len() != 0 {
		t.Error("Take did not clear the line")
	}

	for _, r := range strings.Repeat(" ", 3) {
		l.Insert(r)
	}
	if !l.Blank() {
		t.Error("whitespace line not blank")
	}
}
