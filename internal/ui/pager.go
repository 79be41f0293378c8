package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"campushub/internal/campus"
	"campushub/internal/ui/views"
)

// pagerCommand shows text in ov. Bubble Tea releases the terminal while it
// runs.
type pagerCommand struct {
	content string
}

func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// showInPager returns a command that pages content and reports back with
// pagerDoneMsg
func showInPager(content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return pagerDoneMsg{err: err}
	})
}

// renderDetail formats every field of a row for the pager
func renderDetail(pageTitle string, row campus.Row, numericLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", row.Title, strings.Repeat("=", len([]rune(row.Title))))
	if row.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", row.Description)
	}

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-14s %s\n", label+":", value)
		}
	}
	field("Page", pageTitle)
	field("Category", row.Category)
	field("When", views.FormatDates(row.Dates))
	if row.Score != nil {
		field("Score", fmt.Sprintf("%.1f", *row.Score))
	}
	if row.Numeric != nil && numericLabel != "" {
		field(numericLabel, views.FormatNumber(*row.Numeric))
	}
	if row.Counts != nil {
		field("Participants", views.FormatCounts(row.Counts.Participants, row.Counts.Max))
	}
	for _, d := range row.Details {
		field(d.Label, d.Value)
	}
	field("Tags", strings.Join(row.Tags, ", "))
	field("Status", strings.Join(row.Flags, ", "))
	field("ID", row.ID)
	return b.String()
}
