package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit      // Esc, Ctrl+C
	IntentToggleHUD // Ctrl+D
	IntentResize    // Terminal resize event

	// Landing
	IntentActivate // Enter or Space while the landing scene waits

	// Text entry
	IntentTextChar      // Printable character
	IntentTextBackspace // Backspace
	IntentTextClear     // Ctrl+U
	IntentTextSubmit    // Enter with a non-empty line
)

var intentNames = [...]string{
	IntentNone:          "none",
	IntentQuit:          "quit",
	IntentToggleHUD:     "toggle_hud",
	IntentResize:        "resize",
	IntentActivate:      "activate",
	IntentTextChar:      "text_char",
	IntentTextBackspace: "text_backspace",
	IntentTextClear:     "text_clear",
	IntentTextSubmit:    "text_submit",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is the semantic result of one terminal event
// Text carries the submitted line for IntentTextSubmit
type Intent struct {
	Type IntentType
	Char rune
	Text string
}
