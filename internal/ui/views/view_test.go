package views

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/stretchr/testify/assert"

	"campushub/internal/campus"
	"campushub/internal/domain"
	"campushub/internal/ui/input/modes"
)

func ptr(v float64) *float64 { return &v }

func sampleRows(n int) []campus.Row {
	rows := make([]campus.Row, n)
	for i := range rows {
		rows[i] = campus.Row{
			ID:       "evt",
			Title:    "Event " + string(rune('A'+i)),
			Category: "Technical",
		}
	}
	return rows
}

func TestRenderList(t *testing.T) {
	r := NewRenderer(true)
	rows := []campus.Row{{
		ID:       "evt-1",
		Title:    "Tech Summit 2023",
		Category: "Technical",
		Score:    ptr(4.6),
		Dates:    []time.Time{time.Date(2023, time.October, 20, 9, 0, 0, 0, time.UTC)},
		Flags:    []string{"registered"},
		Counts:   &domain.Counts{Participants: 121, Max: 200},
		Numeric:  ptr(0),
	}}

	out := r.Render(ViewState{
		Width: 120, Height: 30,
		Tabs:      []string{"Events", "Clubs"},
		PageTitle: "Events", NumericLabel: "price",
		Rows: rows, Total: 5, View: "all",
		Criteria:  `"tech"`,
		Toast:     "Registration confirmed",
		HelpModel: help.New(), Keys: modes.DefaultKeyMap,
	})

	for _, want := range []string{"campushub", "1 Events", "2 Clubs", "Events · all · 1 of 5", "Tech Summit 2023",
		"★4.6", "121/200", "[registered]", "price 0", "Fri 20 Oct 09:00", `["tech"]`, "Registration confirmed"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderScoresHidden(t *testing.T) {
	out := NewRenderer(false).Render(ViewState{
		Rows: []campus.Row{{Title: "Quiet", Score: ptr(3)}},
	})
	assert.NotContains(t, out, "★")
}

func TestRenderScrollIndicators(t *testing.T) {
	out := NewRenderer(true).Render(ViewState{
		Height: 60, Rows: sampleRows(10),
		SelectedIndex: 4, ViewportOffset: 3, ViewportHeight: 4,
	})
	assert.Contains(t, out, "↑ 3 more above ↑")
	assert.Contains(t, out, "↓ 3 more below ↓")
	assert.Contains(t, out, "Event D")
	assert.NotContains(t, out, "Event C")
	assert.NotContains(t, out, "Event H")
}

func TestRenderErrorWinsOverToast(t *testing.T) {
	out := NewRenderer(true).Render(ViewState{
		Toast: "Saved", StatusMessage: "not a number", StatusIsError: true,
	})
	assert.Contains(t, out, "not a number")
	assert.NotContains(t, out, "● Saved")
}

func TestRenderChat(t *testing.T) {
	out := NewRenderer(true).Render(ViewState{
		Width: 100, Height: 30,
		InputMode: "ask", InputPrompt: "Ask: ",
		Chat: []ChatLine{
			{Question: "Where is the library?", Reply: "North block."},
			{Question: "And the canteen?", Err: "assistant not configured"},
		},
	})
	assert.Contains(t, out, "Campus assistant")
	assert.Contains(t, out, "North block.")
	assert.Contains(t, out, "error: assistant not configured")
	assert.Contains(t, out, "Ask: ")
}

func TestFormatting(t *testing.T) {
	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	assert.Equal(t, "", FormatDates(nil))
	assert.Equal(t, "Fri 15 Mar 2024", FormatDates([]time.Time{start}))
	assert.Equal(t, "Fri 15 Mar 2024 → Sun 17 Mar 2024", FormatDates([]time.Time{start, end}))
	assert.Equal(t, "12000", FormatNumber(12000))
	assert.Equal(t, "4.5", FormatNumber(4.5))
	assert.Equal(t, "3/10", FormatCounts(3, 10))
	assert.Equal(t, "3 going", FormatCounts(3, 0))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "short", truncate("short", 10))
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "plain", StripANSI("\x1b[1;33mplain\x1b[0m"))
	assert.False(t, strings.Contains(StripANSI("\x1b[0m"), "\x1b"))
}
