package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	ingestionDI "github.com/fd1az/eclesiar-analyzer/business/ingestion/di"
	productionApp "github.com/fd1az/eclesiar-analyzer/business/production/app"
	productionDI "github.com/fd1az/eclesiar-analyzer/business/production/di"
	"github.com/fd1az/eclesiar-analyzer/business/production/domain"
)

func newRegionsCommand() *cobra.Command {
	var (
		item string
		top  int
	)

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Rank regions for an item from the latest stored snapshot",
		Example: `  eclesiar regions --item WEAPON --top 10
  eclesiar regions --item iron`,
		RunE: func(cmd *cobra.Command, args []string) error {
			itemType, err := domain.ParseItemType(item)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := bootstrap(ctx, false)
			if err != nil {
				return err
			}
			defer a.close(ctx)
			if err := a.start(ctx); err != nil {
				return err
			}

			snap, err := ingestionDI.GetStore(a.mono.Services()).LatestSnapshot(ctx)
			if err != nil {
				return err
			}
			ranked, err := productionDI.GetRanker(a.mono.Services()).RankRegions(snap.Regions, itemType, top)
			if err != nil {
				return err
			}

			fmt.Printf("%s regions from snapshot %s (%s)\n\n", itemType.Label(), snap.ID, snap.FetchedAt.Format(time.DateTime))
			printRegions(os.Stdout, ranked)
			fmt.Println()
			printCountries(os.Stdout, productionApp.CountriesRanking(snap.Regions, itemType), 5)
			return nil
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "Item type (e.g. WEAPON, IRON, FOOD)")
	cmd.Flags().IntVar(&top, "top", 10, "Number of regions to show")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func printRegions(out io.Writer, ranked []domain.RankedRegion) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tREGION\tCOUNTRY\tEFFICIENCY\tBONUS\tOUTPUT\tPOLLUTION\tNPC WAGE")
	for _, r := range ranked {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s%%\t%d\t%s\t%s\n",
			r.Rank,
			r.Result.RegionName,
			r.Result.CountryName,
			r.Result.Efficiency.StringFixed(2),
			r.Result.TotalBonus().Shift(2).StringFixed(0),
			r.Result.Output(),
			r.Result.Pollution.StringFixed(1),
			r.Result.NPCWageGold.StringFixed(2),
		)
	}
	w.Flush()
}

func printCountries(out io.Writer, countries []domain.CountryBonusInfo, limit int) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUNTRY\tREGIONS\tREGIONAL\tCOUNTRY BONUS")
	for i, c := range countries {
		if i == limit {
			break
		}
		fmt.Fprintf(w, "%s\t%d\t%s%%\t%s%%\n",
			c.CountryName, c.Regions, c.TotalRegionalPct.StringFixed(0), c.CountryBonusPct.StringFixed(0))
	}
	w.Flush()
}
