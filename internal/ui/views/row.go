package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"campushub/internal/campus"
)

// RowRenderer handles rendering of entity rows
type RowRenderer struct {
	styles     *Styles
	showScores bool
}

// NewRowRenderer creates a new row renderer
func NewRowRenderer(styles *Styles, showScores bool) *RowRenderer {
	return &RowRenderer{
		styles:     styles,
		showScores: showScores,
	}
}

// RenderRow renders one entity line. numericLabel names the page's numeric
// field; query is highlighted in the title.
func (r *RowRenderer) RenderRow(row campus.Row, isSelected bool, numericLabel, query string, width int) string {
	bgColor := ""
	if isSelected {
		bgColor = "238"
	}
	base := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))

	var parts []string

	cursor := "  "
	if isSelected {
		cursor = "▸ "
	}
	parts = append(parts, base.Render(cursor))

	title := truncate(row.Title, 40)
	if query = strings.TrimSpace(query); query != "" {
		title = r.highlightMatch(title, query, base.Foreground(lipgloss.Color("226")).Bold(true), base)
	} else {
		title = base.Bold(isSelected).Render(title)
	}
	parts = append(parts, title)

	parts = append(parts, base.Render("  "), r.styles.Category.Background(lipgloss.Color(bgColor)).Render(row.Category))

	if dates := FormatDates(row.Dates); dates != "" {
		parts = append(parts, base.Render("  "+dates))
	}

	if r.showScores && row.Score != nil {
		parts = append(parts, base.Render("  "), r.styles.Score.Background(lipgloss.Color(bgColor)).Render(fmt.Sprintf("★%.1f", *row.Score)))
	}

	if row.Numeric != nil && numericLabel != "" {
		parts = append(parts, base.Render(fmt.Sprintf("  %s %s", numericLabel, FormatNumber(*row.Numeric))))
	}

	if row.Counts != nil {
		parts = append(parts, base.Render("  "+FormatCounts(row.Counts.Participants, row.Counts.Max)))
	}

	for _, flag := range row.Flags {
		flagStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(GetFlagColor(flag))).Background(lipgloss.Color(bgColor))
		parts = append(parts, base.Render(" "), flagStyle.Render("["+flag+"]"))
	}

	line := strings.Join(parts, "")
	if width > 0 {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}

// highlightMatch highlights the first case-insensitive match of query
func (r *RowRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	index := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if index == -1 || index+len(query) > len(text) {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}

// FormatDates renders one date, or a start and end
func FormatDates(dates []time.Time) string {
	switch len(dates) {
	case 0:
		return ""
	case 1:
		return formatDate(dates[0])
	default:
		return formatDate(dates[0]) + " → " + formatDate(dates[len(dates)-1])
	}
}

func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format("Mon 02 Jan 2006")
	}
	return t.Format("Mon 02 Jan 15:04")
}

// FormatNumber renders a numeric field without trailing zeros
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCounts renders participants against capacity
func FormatCounts(participants, capacity int) string {
	if capacity > 0 {
		return fmt.Sprintf("%d/%d", participants, capacity)
	}
	return fmt.Sprintf("%d going", participants)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
