package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/export"
	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/fin-tools/stock-atlas/pkg/services/clean"
	"github.com/fin-tools/stock-atlas/pkg/services/symbol"
	"github.com/fin-tools/stock-atlas/pkg/store/duckdb"
	duckdbprice "github.com/fin-tools/stock-atlas/pkg/store/duckdb/price"
	"github.com/spf13/cobra"
)

type CleanCmd struct {
	dbPath     string
	symbolCode string
	from       string
	to         string
	outPath    string
	output     io.Writer
}

func NewCleanCmd(output io.Writer) *cobra.Command {
	cc := &CleanCmd{output: output}
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean a price series and export rolling indicators",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.dbPath, "db", "stock-atlas.db", "Path to the local DuckDB database")
	cmd.Flags().StringVar(&cc.symbolCode, "symbol", "", "Stock code, e.g. 600000 or sh600000")
	cmd.Flags().StringVar(&cc.from, "from", "", "Start trade date (YYYY-MM-DD), defaults to one year ago")
	cmd.Flags().StringVar(&cc.to, "to", "", "End trade date (YYYY-MM-DD, exclusive), defaults to today")
	cmd.Flags().StringVar(&cc.outPath, "out", "", "Parquet output path (defaults to <symbol>_indicators.parquet)")

	_ = cmd.MarkFlagRequired("symbol")

	return cmd
}

func (cc *CleanCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	from, to, err := parsePeriod(cc.from, cc.to)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database %q: %w", cc.dbPath, err)
	}
	defer db.Close()

	priceStore, err := duckdbprice.NewStore(db)
	if err != nil {
		return err
	}

	sym := symbol.FullSymbol(cc.symbolCode)
	records, err := priceStore.GetSeries(ctx, sym, from, to)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no price bars for %s between %s and %s",
			sym, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	bars := make([]domain.PriceBar, len(records))
	for i, r := range records {
		bars[i] = domain.PriceBar{
			Symbol:    r.Symbol,
			TradeDate: r.TradeDate,
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
			Amount:    r.Amount,
		}
	}

	indicators := clean.PriceSeries(ctx, bars)

	outPath := cc.outPath
	if outPath == "" {
		outPath = fmt.Sprintf("%s_indicators.parquet", sym)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", outPath, err)
	}
	defer f.Close()

	if err := export.WriteIndicatorsParquet(f, indicators); err != nil {
		return err
	}

	fmt.Fprintf(cc.output, "wrote %d bars to %s\n", len(indicators), outPath)
	return nil
}
