package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"campushub/internal/campus"
	"campushub/internal/catalog"
	"campushub/internal/domain"
)

func newPagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List pages with their categories and actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := campus.NewRegistry(campus.Options{Clock: a.clock, Logger: a.logger})
			if err != nil {
				return err
			}

			t := newTable("PAGE", "TITLE", "ITEMS", "CATEGORIES", "ACTIONS", "THRESHOLD")
			for _, b := range registry.Boards() {
				actions := lo.FilterMap(b.Transitions(), func(k domain.TransitionKind, _ int) (string, bool) {
					flag, ok := catalog.FlagFor(k)
					return flag.String(), ok
				})
				threshold := ""
				if b.NumericLabel() != "" {
					threshold = b.NumericLabel() + " " + b.Bound().String()
				}
				t.Row(b.Name(), b.Title(), fmt.Sprint(b.Len()), strings.Join(b.Categories(), ", "), strings.Join(actions, ", "), threshold)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return err
		},
	}
}
