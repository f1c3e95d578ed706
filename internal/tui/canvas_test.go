package tui

import (
	"strings"
	"testing"
)

func TestCanvasDimensions(t *testing.T) {
	c := NewCanvas(10, 4)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if got := len([]rune(line)); got != 10 {
			t.Errorf("row %d: expected 10 cells, got %d", i, got)
		}
	}
}

func TestCanvasDot(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Dot(0, 0)

	first := []rune(c.String())[0]
	if first == 0x2800 {
		t.Error("dot did not set any braille bit")
	}
	if first != 0x2801 {
		t.Errorf("expected top-left bit 0x2801, got %#x", first)
	}
}

func TestCanvasDotOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	before := c.String()
	c.Dot(-1, 0)
	c.Dot(0, -1)
	c.Dot(100, 0)
	c.Dot(0, 100)
	if c.String() != before {
		t.Error("out-of-bounds dots mutated the canvas")
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Line(0, 0, 19, 39)

	runes := []rune(strings.ReplaceAll(c.String(), "\n", ""))
	if runes[0] == 0x2800 {
		t.Error("line start missing")
	}
	if runes[len(runes)-1] == 0x2800 {
		t.Error("line end missing")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(4, 4)
	c.FillRect(0, 0, 7, 15)
	c.Clear()
	for _, r := range strings.ReplaceAll(c.String(), "\n", "") {
		if r != 0x2800 {
			t.Fatalf("clear left a set cell %#x", r)
		}
	}
}
