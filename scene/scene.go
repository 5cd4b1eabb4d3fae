package scene

import "fmt"

// Scene is the top-level presentation state
type Scene uint8

const (
	Landing Scene = iota
	Transitioning
	Active
)

var sceneNames = [...]string{"landing", "transitioning", "active"}

func (s Scene) String() string {
	if int(s) < len(sceneNames) {
		return sceneNames[s]
	}
	return fmt.Sprintf("scene(%d)", uint8(s))
}

// stateScene maps scene graph state names to scenes
var stateScene = map[string]Scene{
	"Landing":       Landing,
	"Transitioning": Transitioning,
	"Active":        Active,
}
