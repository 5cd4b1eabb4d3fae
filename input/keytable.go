package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps special keys to intents per mode
type KeyTable struct {
	// System keys apply in every mode
	System map[tcell.Key]IntentType

	// Landing keys, plus runes that activate
	Landing      map[tcell.Key]IntentType
	LandingRunes map[rune]IntentType

	// Text mode editing keys
	Text map[tcell.Key]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		System: map[tcell.Key]IntentType{
			tcell.KeyEsc:   IntentQuit,
			tcell.KeyCtrlC: IntentQuit,
			tcell.KeyCtrlD: IntentToggleHUD,
		},
		Landing: map[tcell.Key]IntentType{
			tcell.KeyEnter: IntentActivate,
		},
		LandingRunes: map[rune]IntentType{
			' ': IntentActivate,
		},
		Text: map[tcell.Key]IntentType{
			tcell.KeyEnter:      IntentTextSubmit,
			tcell.KeyBackspace:  IntentTextBackspace,
			tcell.KeyBackspace2: IntentTextBackspace,
			tcell.KeyCtrlU:      IntentTextClear,
		},
	}
}
