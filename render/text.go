package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// wrapText splits s into lines of at most width display columns, breaking on spaces
// Words wider than a line are split hard
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var (
		lines []string
		line  strings.Builder
		lw    int
	)
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lw = 0
	}

	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)

		if ww > width {
			if lw > 0 {
				flush()
			}
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if lw+rw > width {
					flush()
				}
				line.WriteRune(r)
				lw += rw
			}
			continue
		}

		if lw > 0 && lw+1+ww > width {
			flush()
		}
		if lw > 0 {
			line.WriteByte(' ')
			lw++
		}
		line.WriteString(word)
		lw += ww
	}
	if lw > 0 {
		flush()
	}
	return lines
}

// putText writes s starting at column x; wide runes occupy two cells
// Returns the column after the last written rune
func putText(c *Canvas, x, y int, s string, fg RGB, alpha float64, attrs tcell.AttrMask) int {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		c.SetGlyph(x, y, r, fg, alpha, attrs)
		if rw == 2 {
			c.SetGlyph(x+1, y, 0, fg, alpha, attrs)
		}
		x += rw
	}
	return x
}

// putCentered writes s centered on column cx
func putCentered(c *Canvas, cx, y int, s string, fg RGB, alpha float64, attrs tcell.AttrMask) {
	putText(c, cx-runewidth.StringWidth(s)/2, y, s, fg, alpha, attrs)
}
