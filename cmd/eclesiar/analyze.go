package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	reportDI "github.com/fd1az/eclesiar-analyzer/business/report/di"
)

func newAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Run one analysis cycle, print and export it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, false)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if err := a.start(ctx); err != nil {
				return err
			}
			_, err = reportDI.GetRunner(a.mono.Services()).Once(ctx)
			return err
		},
	}
}
