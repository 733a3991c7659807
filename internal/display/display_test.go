package display

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	out := Table("Full name", "Phone number", [][2]string{
		{"Alice", "0991234567"},
		{"Bob", "0501234567"},
	})

	for _, want := range []string{"Full name", "Phone number", "Alice", "0991234567", "Bob", "0501234567", "╔", "╝"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "Alice") > strings.Index(out, "Bob") {
		t.Errorf("rows out of order:\n%s", out)
	}
}

func TestTableEmptyCell(t *testing.T) {
	out := Table("Full name", "Phone number", [][2]string{{"Alice", ""}})
	if !strings.Contains(out, "Alice") {
		t.Errorf("table missing row:\n%s", out)
	}
}

func TestTableLinesAligned(t *testing.T) {
	out := Table("Date", "Users", [][2]string{{"17.03.2025", "Alice, Bob"}})

	lines := strings.Split(out, "\n")
	width := len([]rune(lines[0]))
	for i, l := range lines {
		if n := len([]rune(l)); n != width {
			t.Errorf("line %d width %d, want %d:\n%s", i, n, width, out)
		}
	}
}
