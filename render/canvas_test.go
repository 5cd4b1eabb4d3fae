package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// rowText reads one screen row back as a string
func rowText(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		if rs := cells[y*w+x].Runes; len(rs) > 0 {
			out = append(out, rs[0])
		}
	}
	return string(out)
}

func TestCanvasSetModes(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetBgOnly(1, 1, RGB{100, 0, 0})

	c.Set(1, 1, 0, RGB{}, RGB{100, 50, 0}, BlendAddBg, 1, 0)
	if got := c.Cell(1, 1); got.Bg != (RGB{200, 50, 0}) || got.Rune != ' ' {
		t.Errorf("add bg = %+v", got)
	}

	c.Set(1, 1, 'x', RGB{255, 255, 255}, RGB{}, BlendAlphaFg, 0.5, tcell.AttrBold)
	got := c.Cell(1, 1)
	if got.Rune != 'x' || got.Attrs != tcell.AttrBold || got.Bg != (RGB{200, 50, 0}) {
		t.Errorf("alpha fg = %+v", got)
	}
	if got.Fg != (RGB{127, 127, 127}) {
		t.Errorf("alpha fg color = %v", got.Fg)
	}

	c.Set(9, 9, 'y', RGB{}, RGB{}, BlendReplace, 1, 0)
	if c.Cell(9, 9) != (Cell{}) {
		t.Error("out of bounds write visible")
	}
}

func TestCanvasGlyphFadesOverBackground(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetBgOnly(0, 0, RGB{0, 100, 0})
	c.SetGlyph(0, 0, '•', RGB{200, 200, 200}, 0, 0)
	if got := c.Cell(0, 0).Fg; got != (RGB{0, 100, 0}) {
		t.Errorf("transparent glyph fg = %v, want background", got)
	}
}

func TestCanvasClearAndResize(t *testing.T) {
	c := NewCanvas(3, 3)
	c.SetGlyph(2, 2, 'z', RGB{1, 2, 3}, 1, 0)
	c.Clear()
	if got := c.Cell(2, 2); got.Rune != ' ' || got.Fg != RGBBlack {
		t.Errorf("cell after Clear = %+v", got)
	}

	c.Resize(5, 1)
	if w, h := c.Size(); w != 5 || h != 1 {
		t.Errorf("Size() = %d,%d", w, h)
	}
	if c.Cell(4, 0).Rune != ' ' {
		t.Error("resized canvas not cleared")
	}
}

func TestCanvasFlush(t *testing.T) {
	scr := newSimScreen(t, 6, 2)
	c := NewCanvas(6, 2)
	putText(c, 1, 1, "calm", RGB{255, 255, 255}, 1, 0)

	if !c.Flush(scr) {
		t.Fatal("Flush dropped a matching frame")
	}
	if got := rowText(scr, 1); got != " calm " {
		t.Errorf("row 1 = %q", got)
	}

	cells, w, _ := scr.GetContents()
	fg, _, _ := cells[1*w+1].Style.Decompose()
	if r, g, b := fg.RGB(); r != 255 || g != 255 || b != 255 {
		t.Errorf("fg = %d,%d,%d", r, g, b)
	}
}

func TestCanvasFlushSizeMismatch(t *testing.T) {
	scr := newSimScreen(t, 6, 2)
	if NewCanvas(5, 2).Flush(scr) {
		t.Error("Flush accepted a canvas of the wrong size")
	}
}
