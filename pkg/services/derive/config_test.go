package derive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFieldsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFields(t *testing.T) {
	path := writeFieldsFile(t, `
derived_fields:
  - name: quick_assets
    label: 速动资产
    fields: [money_cap, trad_asset, notes_receiv]
  - name: debt
    fields: [st_borr, lt_borr]
`)

	fields, err := LoadFields(path)
	require.NoError(t, err)
	require.Len(t, fields, 2)

	assert.Equal(t, "quick_assets", fields[0].Name)
	assert.Equal(t, "速动资产", fields[0].Label)
	assert.Equal(t, []string{"money_cap", "trad_asset", "notes_receiv"}, fields[0].Fields)
	assert.Equal(t, "debt", fields[1].Name)
	assert.Empty(t, fields[1].Label)
}

func TestLoadFields_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: "derived_fields: []"},
		{name: "missing name", content: "derived_fields:\n  - fields: [a, b]"},
		{name: "missing sources", content: "derived_fields:\n  - name: totals"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFields(writeFieldsFile(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFields_FileNotFound(t *testing.T) {
	_, err := LoadFields(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
