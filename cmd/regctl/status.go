package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/JaimeStill/regdesk/internal/registrations"
	"github.com/JaimeStill/regdesk/pkg/pagination"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Count registrations by payment status",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tCOUNT")

	total := 0
	for _, s := range []registrations.Status{registrations.StatusPending, registrations.StatusConfirmed} {
		page, err := e.registrations.List(ctx,
			pagination.PageRequest{Page: 1, PageSize: 1},
			registrations.Filters{Status: &s},
		)
		if err != nil {
			return fmt.Errorf("count %s: %w", s, err)
		}
		fmt.Fprintf(w, "%s\t%d\n", s, page.Total)
		total += page.Total
	}
	fmt.Fprintf(w, "total\t%d\n", total)

	return w.Flush()
}
