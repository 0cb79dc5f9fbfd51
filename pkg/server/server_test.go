package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/models/api"
	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) GetDerived(
	ctx context.Context,
	symbol string,
	from, to time.Time,
) ([]domain.Statement, error) {
	args := m.Called(ctx, symbol, from, to)
	return args.Get(0).([]domain.Statement), args.Error(1)
}

func (m *mockExplorer) DerivedFields() []domain.DerivedField {
	args := m.Called()
	return args.Get(0).([]domain.DerivedField)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	mockExp := new(mockExplorer)

	router := ConfigureRouter(Config{
		Addr: ":8080",
		Dependencies: Dependencies{
			Statements: mockExp,
			Logger:     logger,
		},
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	expectedFrom, _ := time.Parse("2006-01-02", "2023-01-01")
	expectedTo, _ := time.Parse("2006-01-02", "2024-01-01")

	quick := "150.5"
	moneyCap := "150.5"

	tests := []struct {
		name           string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name: "GetStatements",
			path: "/api/v1/symbols/600000/statements?from=2023-01-01&to=2024-01-01",
			setupMocks: func() {
				row := domain.Row{}
				row.Set("money_cap", decimal.RequireFromString("150.5"))
				row.Set("quick_assets", decimal.RequireFromString("150.5"))

				mockExp.On("GetDerived", mock.Anything, "sh600000", expectedFrom, expectedTo).
					Return([]domain.Statement{{
						Symbol:     "sh600000",
						ReportDate: time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC),
						Fields:     row,
					}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: []api.Statement{{
				Symbol:     "sh600000",
				ReportDate: "2023-03-31",
				Fields: map[string]*string{
					"money_cap":    &moneyCap,
					"quick_assets": &quick,
				},
			}},
			parseResponse: unmarshalResponse[[]api.Statement](),
		},
		{
			name: "GetStatements_InvalidFromDate",
			path: "/api/v1/symbols/600000/statements?from=invalid-date",
			setupMocks: func() {
			},
			expectedStatus: http.StatusBadRequest,
			expected:       "invalid 'from' date format. Expected format: YYYY-MM-DD\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name: "GetStatements_InvalidToDate",
			path: "/api/v1/symbols/600000/statements?to=invalid-date",
			setupMocks: func() {
			},
			expectedStatus: http.StatusBadRequest,
			expected:       "invalid 'to' date format. Expected format: YYYY-MM-DD\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name: "ListDerivedFields",
			path: "/api/v1/derived-fields",
			setupMocks: func() {
				mockExp.On("DerivedFields").
					Return([]domain.DerivedField{{
						Name:   "quick_assets",
						Label:  "速动资产",
						Fields: []string{"money_cap", "trad_asset"},
					}})
			},
			expectedStatus: http.StatusOK,
			expected: []api.DerivedField{{
				Name:   "quick_assets",
				Label:  "速动资产",
				Fields: []string{"money_cap", "trad_asset"},
			}},
			parseResponse: unmarshalResponse[[]api.DerivedField](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
