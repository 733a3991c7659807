// Package display renders address book listings as box-drawn tables.
package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/zarlcorp/core/pkg/zstyle"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	// right column is right-aligned, like a phone book
	rightStyle = cellStyle.Align(lipgloss.Right)
)

// Table renders rows under a two-column header with a double border.
func Table(left, right string, rows [][2]string) string {
	t := table.New().
		Border(lipgloss.DoubleBorder()).
		BorderStyle(zstyle.MutedText).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return rightStyle
			}
			return cellStyle
		}).
		Headers(left, right)

	for _, r := range rows {
		t.Row(r[0], r[1])
	}

	return t.Render()
}
