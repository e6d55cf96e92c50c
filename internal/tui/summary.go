package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SummaryRow struct {
	Label string
	Value string
}

// RenderSummary draws the end-of-scan results table: one label/value row
// per metric, framed by rules sized to the widest entries.
func RenderSummary(rows []SummaryRow) string {
	labelWidth, valueWidth := 0, 0
	for _, row := range rows {
		labelWidth = max(labelWidth, len(row.Label))
		valueWidth = max(valueWidth, len(row.Value))
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, hline)
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s | %s",
			labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, row.Label)),
			valueStyle.Render(fmt.Sprintf("%-*s", valueWidth, row.Value))))
	}
	lines = append(lines, hline)

	return strings.Join(lines, "\n")
}

var (
	valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
)
