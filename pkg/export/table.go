package export

import (
	"io"

	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/olekukonko/tablewriter"
)

// RenderStatementsTable prints evaluated rows as an ASCII table for
// terminal inspection.
func RenderStatementsTable(w io.Writer, columns []string, statements []domain.Statement) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"symbol", "report_date"}, columns...))
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)

	for _, st := range statements {
		row := make([]string, 0, len(columns)+2)
		row = append(row, st.Symbol, st.ReportDate.Format("2006-01-02"))
		for _, col := range columns {
			if v, ok := st.Fields.Get(col); ok {
				row = append(row, v.String())
			} else {
				row = append(row, "")
			}
		}
		table.Append(row)
	}

	table.Render()
}
