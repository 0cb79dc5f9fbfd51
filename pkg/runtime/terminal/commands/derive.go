package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/export"
	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/fin-tools/stock-atlas/pkg/services/config"
	"github.com/fin-tools/stock-atlas/pkg/services/derive"
	statementsvc "github.com/fin-tools/stock-atlas/pkg/services/statement"
	"github.com/fin-tools/stock-atlas/pkg/services/symbol"
	duckdbstatement "github.com/fin-tools/stock-atlas/pkg/store/duckdb/statement"
	"github.com/fin-tools/stock-atlas/pkg/store/warehouse"
	warehousestatement "github.com/fin-tools/stock-atlas/pkg/store/warehouse/statement"
	"github.com/spf13/cobra"
)

type DeriveCmd struct {
	profilesPath string
	profileName  string
	symbolCode   string
	from         string
	to           string
	fieldsPath   string
	format       string
	output       io.Writer
}

func NewDeriveCmd(output io.Writer) *cobra.Command {
	dc := &DeriveCmd{output: output}
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Evaluate derived balance-sheet totals for a symbol",
		RunE:  dc.run,
	}

	cmd.Flags().StringVar(&dc.profilesPath, "profiles", "profiles.ini", "Path to the warehouse profiles file")
	cmd.Flags().StringVar(&dc.profileName, "profile", "local", "Profile to query")
	cmd.Flags().StringVar(&dc.symbolCode, "symbol", "", "Stock code, e.g. 600000 or sh600000")
	cmd.Flags().StringVar(&dc.from, "from", "", "Start report date (YYYY-MM-DD), defaults to one year ago")
	cmd.Flags().StringVar(&dc.to, "to", "", "End report date (YYYY-MM-DD, exclusive), defaults to today")
	cmd.Flags().StringVar(&dc.fieldsPath, "fields", "", "Optional derived-field definitions file")
	cmd.Flags().StringVar(&dc.format, "format", "table", "Output format: table or csv")

	_ = cmd.MarkFlagRequired("symbol")

	return cmd
}

func (dc *DeriveCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	from, to, err := parsePeriod(dc.from, dc.to)
	if err != nil {
		return err
	}

	fields := derive.Defaults()
	if dc.fieldsPath != "" {
		fields, err = derive.LoadFields(dc.fieldsPath)
		if err != nil {
			return err
		}
	}

	registry, err := config.NewRegistry(dc.profilesPath)
	if err != nil {
		return err
	}
	profile, err := registry.GetProfile(ctx, dc.profileName)
	if err != nil {
		return err
	}

	db, err := warehouse.Open(*profile)
	if err != nil {
		return fmt.Errorf("failed to open warehouse %q: %w", profile.Name, err)
	}
	defer db.Close()

	var store statementsvc.Store
	if profile.Type == "duckdb" {
		store, err = duckdbstatement.NewStore(db)
	} else {
		store, err = warehousestatement.NewStore(db, "")
	}
	if err != nil {
		return err
	}

	explorer := statementsvc.NewExplorer(store, fields)

	statements, err := explorer.GetDerived(ctx, symbol.FullSymbol(dc.symbolCode), from, to)
	if err != nil {
		return err
	}

	columns := statementColumns(fields)
	switch dc.format {
	case "csv":
		return export.WriteStatementsCSV(dc.output, columns, statements)
	case "table":
		export.RenderStatementsTable(dc.output, columns, statements)
		return nil
	default:
		return fmt.Errorf("unsupported format %q, expected table or csv", dc.format)
	}
}

// statementColumns orders output as source columns first, derived
// totals last, without repeating shared sources.
func statementColumns(fields []domain.DerivedField) []string {
	seen := make(map[string]struct{})
	columns := make([]string, 0)
	for _, f := range fields {
		for _, src := range f.Fields {
			if _, ok := seen[src]; ok {
				continue
			}
			seen[src] = struct{}{}
			columns = append(columns, src)
		}
	}
	for _, f := range fields {
		columns = append(columns, f.Name)
	}
	return columns
}

func parsePeriod(fromRaw, toRaw string) (time.Time, time.Time, error) {
	to := time.Now()
	from := to.AddDate(-1, 0, 0)

	if fromRaw != "" {
		parsed, err := time.Parse("2006-01-02", fromRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'from' date %q, expected YYYY-MM-DD", fromRaw)
		}
		from = parsed
	}
	if toRaw != "" {
		parsed, err := time.Parse("2006-01-02", toRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'to' date %q, expected YYYY-MM-DD", toRaw)
		}
		to = parsed
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("'from' date must be before 'to' date")
	}
	return from, to, nil
}
