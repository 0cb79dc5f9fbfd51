package api

// Statement is the wire shape of one evaluated balance-sheet row.
// Field values are decimal strings; null fields are nil.
type Statement struct {
	Symbol     string             `json:"symbol"`
	ReportDate string             `json:"report_date"`
	CompType   string             `json:"comp_type,omitempty"`
	Fields     map[string]*string `json:"fields"`
}

// DerivedField is the wire shape of one configured derived total.
type DerivedField struct {
	Name   string   `json:"name"`
	Label  string   `json:"label,omitempty"`
	Fields []string `json:"fields"`
}
