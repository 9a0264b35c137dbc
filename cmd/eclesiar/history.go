package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	ingestionDI "github.com/fd1az/eclesiar-analyzer/business/ingestion/di"
)

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored report summaries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx, false)
			if err != nil {
				return err
			}
			defer a.close(ctx)
			if err := a.start(ctx); err != nil {
				return err
			}

			runs, err := ingestionDI.GetStore(a.mono.Services()).ReportHistory(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No reports stored yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "GENERATED\tRUN\tOPPORTUNITIES\tTOP NET %\tREGIONS RANKED")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n",
					r.GeneratedAt.Local().Format(time.DateTime),
					r.RunID.String()[:8],
					r.Opportunities,
					r.TopProfitPct.StringFixed(2),
					r.RegionsRanked,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs to show")
	return cmd
}
