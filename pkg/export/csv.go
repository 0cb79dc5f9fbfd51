package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fin-tools/stock-atlas/pkg/models/domain"
)

// WriteStatementsCSV writes evaluated rows as CSV in the given column
// order. Null fields become empty cells.
func WriteStatementsCSV(w io.Writer, columns []string, statements []domain.Statement) error {
	cw := csv.NewWriter(w)

	header := append([]string{"symbol", "report_date"}, columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, st := range statements {
		record := make([]string, 0, len(header))
		record = append(record, st.Symbol, st.ReportDate.Format("2006-01-02"))
		for _, col := range columns {
			if v, ok := st.Fields.Get(col); ok {
				record = append(record, v.String())
			} else {
				record = append(record, "")
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
