package statement

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/models/api"
	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/fin-tools/stock-atlas/pkg/services/statement"
	"github.com/fin-tools/stock-atlas/pkg/services/symbol"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultLookbackYears = 1

type Handler struct {
	explorer statement.Explorer
}

func NewHandler(explorer statement.Explorer) *Handler {
	return &Handler{explorer: explorer}
}

// GetStatements returns evaluated balance-sheet rows for a symbol.
// Bare 6-digit codes are accepted and prefixed with their exchange.
func (h *Handler) GetStatements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sym := symbol.FullSymbol(chi.URLParam(r, "symbol"))

	to := time.Now()
	from := to.AddDate(-defaultLookbackYears, 0, 0)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "invalid 'from' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "invalid 'to' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to = parsed
	}

	statements, err := h.explorer.GetDerived(ctx, sym, from, to)
	if err != nil {
		logger.Error().Err(err).Str("symbol", sym).Msg("failed to resolve statements")
		http.Error(w, "failed to resolve statements", http.StatusInternalServerError)
		return
	}

	response := make([]api.Statement, 0, len(statements))
	for _, st := range statements {
		response = append(response, toAPIStatement(st))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Str("symbol", sym).Msg("failed to encode statements")
	}
}

// ListDerivedFields returns the configured derived totals.
func (h *Handler) ListDerivedFields(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	fields := h.explorer.DerivedFields()
	response := make([]api.DerivedField, 0, len(fields))
	for _, f := range fields {
		response = append(response, api.DerivedField{
			Name:   f.Name,
			Label:  f.Label,
			Fields: f.Fields,
		})
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode derived fields")
	}
}

func toAPIStatement(st domain.Statement) api.Statement {
	fields := make(map[string]*string, len(st.Fields))
	for name, v := range st.Fields {
		if v.Valid {
			s := v.Decimal.String()
			fields[name] = &s
		} else {
			fields[name] = nil
		}
	}
	return api.Statement{
		Symbol:     st.Symbol,
		ReportDate: st.ReportDate.Format("2006-01-02"),
		CompType:   st.CompType,
		Fields:     fields,
	}
}
