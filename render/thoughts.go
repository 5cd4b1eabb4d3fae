package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/aether/parameter"
	"github.com/lixenwraith/aether/thought"
)

// thoughtAlpha returns the drawn opacity: the newest thought is fully visible,
// older responses keep a readable floor, questions show their own fade
func thoughtAlpha(s *thought.Snapshot) float64 {
	if s.Latest {
		return 1
	}
	if s.Kind == thought.KindQuestion {
		return s.Opacity
	}
	return math.Max(parameter.MinThoughtAlpha, s.Opacity)
}

func thoughtStyle(s *thought.Snapshot) (RGB, tcell.AttrMask) {
	var attrs tcell.AttrMask
	fg := RgbThought
	if s.Kind == thought.KindQuestion {
		fg = RgbQuestion
		attrs |= tcell.AttrItalic
	}
	// Still swelling from spawn, or the current focus
	if s.Latest || s.Centered || s.Scale > 1.02 {
		attrs |= tcell.AttrBold
	}
	return fg, attrs
}

// drawThoughts paints oldest first so newer text lands on top
func drawThoughts(c *Canvas, thoughts []thought.Snapshot, width int) {
	for i := len(thoughts) - 1; i >= 0; i-- {
		s := &thoughts[i]
		alpha := thoughtAlpha(s)
		if alpha <= 0 {
			continue
		}
		fg, attrs := thoughtStyle(s)

		lines := wrapText(s.Text, width)
		cx := cellOf(s.X)
		top := cellOf(s.Y/2) - len(lines)/2
		for j, line := range lines {
			putCentered(c, cx, top+j, line, fg, alpha, attrs)
		}
	}
}
