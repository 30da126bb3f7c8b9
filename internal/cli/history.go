package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"notary-crawler/internal/export"
	"notary-crawler/internal/store"
)

func historyCmd(g *globalFlags) *cobra.Command {
	var limit int
	var pruneDays int
	var show int64

	c := &cobra.Command{
		Use:   "history",
		Short: "List archived crawl runs, or print one run's records as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(*g)
			if err != nil {
				return err
			}
			if !cfg.Archive.Enabled {
				return fmt.Errorf("archive is disabled (archive.enabled=false)")
			}

			db, err := store.Open(cfg.Archive.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if show > 0 {
				ns, err := store.RunNotaries(cmd.Context(), db.Pool, show)
				if errors.Is(err, store.ErrRunNotFound) {
					return fmt.Errorf("run %d: %w", show, err)
				}
				if err != nil {
					return err
				}
				return export.Write(out, ns)
			}

			if pruneDays > 0 {
				n, err := store.CleanupOldRuns(cmd.Context(), db.Pool, time.Duration(pruneDays)*24*time.Hour)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "pruned %d run(s)\n", n)
			}

			runs, err := store.ListRuns(cmd.Context(), db.Pool, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs archived yet")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tCITY\tPAGES\tFOUND\tKEPT\tSKIPPED\tDURATION")
			for _, r := range runs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					r.ID,
					r.StartedAt.Local().Format("2006-01-02 15:04:05"),
					r.City,
					r.Pages,
					r.Candidates,
					r.Kept,
					r.Skipped,
					r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
				)
			}
			return tw.Flush()
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	c.Flags().Int64Var(&show, "show", 0, "print the records archived for this run id")
	c.Flags().IntVar(&pruneDays, "prune-days", 0, "delete runs older than this many days first")
	return c
}
