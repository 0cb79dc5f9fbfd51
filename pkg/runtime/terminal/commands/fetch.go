package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/models/store"
	"github.com/fin-tools/stock-atlas/pkg/services/fetch"
	"github.com/fin-tools/stock-atlas/pkg/services/symbol"
	"github.com/fin-tools/stock-atlas/pkg/store/duckdb"
	duckdbprice "github.com/fin-tools/stock-atlas/pkg/store/duckdb/price"
	"github.com/fin-tools/stock-atlas/pkg/store/filecache"
	"github.com/spf13/cobra"
)

type FetchCmd struct {
	dbPath      string
	symbolCode  string
	from        string
	to          string
	providerURL string
	cacheDir    string
	output      io.Writer
}

func NewFetchCmd(output io.Writer) *cobra.Command {
	fc := &FetchCmd{output: output}
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch daily price bars from the provider into the local database",
		RunE:  fc.run,
	}

	cmd.Flags().StringVar(&fc.dbPath, "db", "stock-atlas.db", "Path to the local DuckDB database")
	cmd.Flags().StringVar(&fc.symbolCode, "symbol", "", "Stock code, e.g. 600000 or sh600000")
	cmd.Flags().StringVar(&fc.from, "from", "", "Start trade date (YYYY-MM-DD), defaults to one year ago")
	cmd.Flags().StringVar(&fc.to, "to", "", "End trade date (YYYY-MM-DD, exclusive), defaults to today")
	cmd.Flags().StringVar(&fc.providerURL, "provider", "", "Price provider endpoint URL")
	cmd.Flags().StringVar(&fc.cacheDir, "cache", "cache", "Directory for cached provider responses")

	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}

func (fc *FetchCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	from, to, err := parsePeriod(fc.from, fc.to)
	if err != nil {
		return err
	}

	cache, err := filecache.New(fc.cacheDir)
	if err != nil {
		return err
	}

	fetcher := fetch.NewPriceFetcher(fetch.NewClient(fetch.Options{}), cache, fc.providerURL)

	sym := symbol.FullSymbol(fc.symbolCode)
	bars, err := fetcher.DailyBars(ctx, sym, from, to)
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		return fmt.Errorf("provider returned no bars for %s", sym)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: fc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database %q: %w", fc.dbPath, err)
	}
	defer db.Close()

	priceStore, err := duckdbprice.NewStore(db)
	if err != nil {
		return err
	}

	records := make([]store.PriceBar, len(bars))
	for i, bar := range bars {
		records[i] = store.PriceBar{
			Symbol:    bar.Symbol,
			TradeDate: bar.TradeDate,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    bar.Volume,
			Amount:    bar.Amount,
		}
	}

	if err := priceStore.Add(ctx, records); err != nil {
		return err
	}

	fmt.Fprintf(fc.output, "stored %d bars for %s\n", len(records), sym)
	return nil
}
