package input

// InputMode is the parser context, selected by the current scene
type InputMode uint8

const (
	// ModeLanding waits for the activation key, typing is ignored
	ModeLanding InputMode = iota
	// ModeWaiting ignores keys during the scene transition
	ModeWaiting
	// ModeText edits and submits the input line
	ModeText
)
