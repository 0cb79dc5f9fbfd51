package warehouse

import (
	"database/sql"
	"fmt"

	_ "github.com/databricks/databricks-sql-go"
	"github.com/snowflakedb/gosnowflake"

	"github.com/fin-tools/stock-atlas/pkg/services/config"
	"github.com/fin-tools/stock-atlas/pkg/store/duckdb"
)

// Open returns a database handle for the given profile. The remote
// engines are opaque stores here; only their drivers differ.
func Open(profile config.Profile) (*sql.DB, error) {
	switch profile.Type {
	case "duckdb":
		return duckdb.NewDB(duckdb.Settings{DbPath: profile.Path})
	case "databricks":
		if profile.Host == "" || profile.Token == "" || profile.HTTPPath == "" {
			return nil, fmt.Errorf("profile %s: databricks requires host, token and http_path", profile.Name)
		}
		dsn := fmt.Sprintf("token:%s@%s:443%s", profile.Token, profile.Host, profile.HTTPPath)
		return sql.Open("databricks", dsn)
	case "snowflake":
		dsn, err := gosnowflake.DSN(&gosnowflake.Config{
			Account:   profile.Account,
			User:      profile.User,
			Password:  profile.Password,
			Database:  profile.Database,
			Warehouse: profile.Warehouse,
			Role:      profile.Role,
		})
		if err != nil {
			return nil, fmt.Errorf("profile %s: build snowflake dsn: %w", profile.Name, err)
		}
		return sql.Open("snowflake", dsn)
	default:
		return nil, fmt.Errorf("profile %s: unsupported warehouse type %q", profile.Name, profile.Type)
	}
}
