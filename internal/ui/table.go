package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one styled table cell.
type Cell struct {
	Text  string
	Style lipgloss.Style
}

// renderTable draws a box table with the given headers, column widths
// and styled rows.
func renderTable(headers []string, widths []int, rows [][]Cell) string {
	var sb strings.Builder

	border := func(left, mid, right string) {
		sb.WriteString(BorderStyle.Render(left))
		for i, w := range widths {
			sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
			if i < len(widths)-1 {
				sb.WriteString(BorderStyle.Render(mid))
			}
		}
		sb.WriteString(BorderStyle.Render(right))
		sb.WriteString("\n")
	}

	border(TopLeft, TopT, TopRight)

	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range headers {
		cell := " " + padRight(h, widths[i]) + " "
		sb.WriteString(HeaderStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	border(LeftT, Cross, RightT)

	for _, row := range rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i, c := range row {
			cell := " " + padRight(c.Text, widths[i]) + " "
			sb.WriteString(c.Style.Render(cell))
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	border(BottomLeft, BottomT, BottomRight)

	return sb.String()
}

// PrintTable renders the table to stdout.
func PrintTable(headers []string, widths []int, rows [][]Cell) {
	fmt.Print(renderTable(headers, widths, rows))
}
