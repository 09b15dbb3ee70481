package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/JaimeStill/regdesk/internal/payments"
	"github.com/spf13/cobra"
)

func orphansCmd() *cobra.Command {
	var (
		prune   bool
		grace   time.Duration
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "Report stored screenshots that no registration references",
		Long: `Compare stored screenshots with the locations saved on registrations.

An orphan is left behind when a screenshot upload succeeds and the record
write that follows it fails. Objects younger than --grace are reported as
recent and never pruned. Nothing is deleted unless --prune is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			locations, err := e.registrations.ProofLocations(ctx)
			if err != nil {
				return err
			}

			report, err := payments.Reconcile(ctx, e.infra.Storage, locations, e.cfg.Payments, grace, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(out, report)
			}

			if !prune {
				return nil
			}

			removed, err := payments.Prune(ctx, e.infra.Storage, report)
			for _, key := range removed {
				e.infra.Logger.Info("orphan pruned", "key", key)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "pruned %d of %d orphans\n", len(removed), len(report.Orphans))
			return err
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "delete reported orphans")
	cmd.Flags().DurationVar(&grace, "grace", time.Hour, "ignore objects uploaded more recently than this")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")

	return cmd
}

func printReport(w io.Writer, r *payments.Report) {
	fmt.Fprintf(w, "orphans: %d\n", len(r.Orphans))
	for _, o := range r.Orphans {
		fmt.Fprintf(w, "  %s  registration=%s  uploaded=%s\n", o.Key, o.RegistrationID, o.UploadedAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "recent (within grace): %d\n", len(r.Recent))
	for _, o := range r.Recent {
		fmt.Fprintf(w, "  %s\n", o.Key)
	}
	fmt.Fprintf(w, "missing objects: %d\n", len(r.Missing))
	for _, loc := range r.Missing {
		fmt.Fprintf(w, "  %s\n", loc)
	}
	if len(r.Unrecognized) > 0 {
		fmt.Fprintf(w, "unrecognized keys: %d\n", len(r.Unrecognized))
		for _, k := range r.Unrecognized {
			fmt.Fprintf(w, "  %s\n", k)
		}
	}
}
