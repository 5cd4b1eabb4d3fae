package input

import "github.com/gdamore/tcell/v2"

// Machine parses tcell events into Intents and owns the input line
type Machine struct {
	mode     InputMode
	keyTable *KeyTable
	line     *Line
}

// NewMachine creates a machine in landing mode
func NewMachine(maxLen int) *Machine {
	return &Machine{
		mode:     ModeLanding,
		keyTable: DefaultKeyTable(),
		line:     NewLine(maxLen),
	}
}

// SetMode updates the parser's mode context
// Leaving text mode discards the partial line
func (m *Machine) SetMode(mode InputMode) {
	if m.mode == ModeText && mode != ModeText {
		m.line.Clear()
	}
	m.mode = mode
}

// Mode returns the current mode
func (m *Machine) Mode() InputMode {
	return m.mode
}

// Line returns the current input text for display
func (m *Machine) Line() string {
	return m.line.String()
}

// Process converts one event into an Intent, editing the line as a side effect
func (m *Machine) Process(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	}
	return Intent{}
}

func (m *Machine) processKey(ev *tcell.EventKey) Intent {
	if it, ok := m.keyTable.System[ev.Key()]; ok {
		return Intent{Type: it}
	}

	switch m.mode {
	case ModeLanding:
		if it, ok := m.keyTable.Landing[ev.Key()]; ok {
			return Intent{Type: it}
		}
		if ev.Key() == tcell.KeyRune {
			if it, ok := m.keyTable.LandingRunes[ev.Rune()]; ok {
				return Intent{Type: it}
			}
		}
		return Intent{}

	case ModeText:
		return m.processText(ev)
	}
	return Intent{}
}

func (m *Machine) processText(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		if m.line.Insert(ev.Rune()) {
			return Intent{Type: IntentTextChar, Char: ev.Rune()}
		}
		return Intent{}
	}

	switch m.keyTable.Text[ev.Key()] {
	case IntentTextBackspace:
		m.line.Backspace()
		return Intent{Type: IntentTextBackspace}
	case IntentTextClear:
		m.line.Clear()
		return Intent{Type: IntentTextClear}
	case IntentTextSubmit:
		if m.line.Blank() {
			m.line.Clear()
			return Intent{}
		}
		return Intent{Type: IntentTextSubmit, Text: m.line.Take()}
	}
	return Intent{}
}
