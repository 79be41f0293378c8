package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"campushub/internal/campus"
	"campushub/internal/catalog"
	"campushub/internal/ui/views"
)

type listOptions struct {
	page      string
	text      string
	category  string
	bucket    string
	threshold string
	flags     []string
	view      string
	limit     int
	json      bool
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered list of a page",
		Example: `  campushub list --page events --text tech
  campushub list --page jobs --threshold 40000 --flag '!applied'
  campushub list --page events --view upcoming --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.page, "page", "p", "", "Page name (default: the configured start page)")
	f.StringVarP(&opts.text, "text", "t", "", "Case-insensitive text search")
	f.StringVar(&opts.category, "category", "", "Category, or \"all\"")
	f.StringVar(&opts.bucket, "bucket", "", "Date bucket: today, this-week or this-month")
	f.StringVar(&opts.threshold, "threshold", "", "Bound for the page's numeric field")
	f.StringSliceVar(&opts.flags, "flag", nil, "Require a flag (saved) or its absence (!saved); repeatable")
	f.StringVar(&opts.view, "view", "all", "View: all, top, upcoming or mine")
	f.IntVarP(&opts.limit, "limit", "n", 0, "Print at most n rows")
	f.BoolVar(&opts.json, "json", false, "Print JSON instead of a table")
	return cmd
}

func (a *app) runList(w io.Writer, opts listOptions) error {
	if opts.page == "" {
		opts.page = a.cfg.StartPage
	}
	view, ok := catalog.ParseViewKind(opts.view)
	if !ok {
		return fmt.Errorf("unknown view %q (want all, top, upcoming or mine)", opts.view)
	}
	if _, ok := catalog.ParseDateBucket(opts.bucket); !ok {
		return fmt.Errorf("unknown date bucket %q (want today, this-week or this-month)", opts.bucket)
	}
	if opts.threshold != "" {
		if _, err := strconv.ParseFloat(opts.threshold, 64); err != nil {
			return fmt.Errorf("threshold %q is not a number", opts.threshold)
		}
	}

	registry, err := campus.NewRegistry(campus.Options{Clock: a.clock, Logger: a.logger})
	if err != nil {
		return err
	}
	board, err := registry.Board(opts.page)
	if err != nil {
		return err
	}

	board.SetCriteria(catalog.ParseCriteria(catalog.RawCriteria{
		Text:      opts.text,
		Category:  opts.category,
		Bucket:    opts.bucket,
		Threshold: opts.threshold,
		Flags:     opts.flags,
	}))
	rows := board.Derived(view, campus.ViewOptions{
		TopN:         a.cfg.UI.TopN,
		UpcomingDays: a.cfg.UI.UpcomingDays,
	})
	if opts.limit > 0 && len(rows) > opts.limit {
		rows = rows[:opts.limit]
	}
	a.logger.Debug("listed", "page", board.Name(), "view", view, "rows", len(rows))

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no matches")
		return err
	}
	_, err = fmt.Fprintln(w, rowTable(board, rows, a.cfg.UI.ShowScores))
	return err
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func rowTable(board campus.Board, rows []campus.Row, showScores bool) string {
	headers := []string{"ID", "TITLE", "CATEGORY", "WHEN"}
	if showScores {
		headers = append(headers, "SCORE")
	}
	headers = append(headers, strings.ToUpper(board.NumericLabel()), "STATUS")

	t := newTable(headers...)
	for _, r := range rows {
		cells := []string{r.ID, r.Title, r.Category, views.FormatDates(r.Dates)}
		if showScores {
			score := ""
			if r.Score != nil {
				score = strconv.FormatFloat(*r.Score, 'f', 1, 64)
			}
			cells = append(cells, score)
		}
		numeric := ""
		if r.Numeric != nil {
			numeric = views.FormatNumber(*r.Numeric)
		}
		status := strings.Join(r.Flags, ", ")
		if r.Counts != nil {
			status = strings.TrimSpace(views.FormatCounts(r.Counts.Participants, r.Counts.Max) + " " + status)
		}
		t.Row(append(cells, numeric, status)...)
	}
	return t.String()
}
