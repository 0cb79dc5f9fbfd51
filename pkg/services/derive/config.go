package derive

import (
	"fmt"

	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

type fieldDef struct {
	Name   string   `mapstructure:"name"`
	Label  string   `mapstructure:"label"`
	Fields []string `mapstructure:"fields"`
}

type fieldsFile struct {
	DerivedFields []fieldDef `mapstructure:"derived_fields"`
}

// LoadFields reads derived-field definitions from the given config file.
// Source columns are not checked against any schema here; a column
// missing at evaluation time simply contributes zero.
func LoadFields(path string) ([]domain.DerivedField, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read derived fields file: %w", err)
	}

	var file fieldsFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to parse derived fields: %w", err)
	}

	if len(file.DerivedFields) == 0 {
		return nil, fmt.Errorf("no derived fields defined in %s", path)
	}

	fields := make([]domain.DerivedField, 0, len(file.DerivedFields))
	for i, def := range file.DerivedFields {
		if def.Name == "" {
			return nil, fmt.Errorf("derived field %d has no name", i)
		}
		if len(def.Fields) == 0 {
			return nil, fmt.Errorf("derived field %q has no source fields", def.Name)
		}
		fields = append(fields, domain.DerivedField{
			Name:   def.Name,
			Label:  def.Label,
			Fields: def.Fields,
		})
	}

	return fields, nil
}
