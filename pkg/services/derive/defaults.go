package derive

import "github.com/fin-tools/stock-atlas/pkg/models/domain"

// Defaults returns the builtin balance-sheet subtotals. Column names
// follow the upstream provider's balance_sheets schema.
func Defaults() []domain.DerivedField {
	return []domain.DerivedField{
		{
			Name:   "quick_assets",
			Label:  "速动资产",
			Fields: []string{"money_cap", "trad_asset", "notes_receiv", "accounts_receiv"},
		},
		{
			Name:   "interest_bearing_debt",
			Label:  "有息负债",
			Fields: []string{"st_borr", "non_cur_liab_due_1y", "lt_borr", "bond_payable"},
		},
		{
			Name:   "operating_payables",
			Label:  "经营性应付",
			Fields: []string{"notes_payable", "acct_payable", "adv_receipts"},
		},
		{
			Name:   "long_term_operating_assets",
			Label:  "长期经营资产",
			Fields: []string{"fix_assets", "cip", "intan_assets", "r_and_d", "goodwill"},
		},
	}
}
