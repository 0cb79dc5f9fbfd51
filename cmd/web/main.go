package main

import (
	"fmt"
	"net"
	"os"

	"github.com/fin-tools/stock-atlas/pkg/server"
	"github.com/fin-tools/stock-atlas/pkg/services/config"
	"github.com/fin-tools/stock-atlas/pkg/services/derive"
	"github.com/fin-tools/stock-atlas/pkg/services/statement"
	duckdbstatement "github.com/fin-tools/stock-atlas/pkg/store/duckdb/statement"
	"github.com/fin-tools/stock-atlas/pkg/store/warehouse"
	warehousestatement "github.com/fin-tools/stock-atlas/pkg/store/warehouse/statement"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profilesPath string
	profileName  string
	fieldsPath   string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for stock-atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&profilesPath, "profiles", "c", "profiles.ini",
		"Path to the warehouse profiles file")
	rootCmd.Flags().StringVar(&profileName, "profile", "local",
		"Profile backing the statement API")
	rootCmd.Flags().StringVar(&fieldsPath, "fields", "",
		"Optional derived-field definitions file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}

	profile, err := registry.GetProfile(ctx, profileName)
	if err != nil {
		return fmt.Errorf("failed to resolve profile %q: %w", profileName, err)
	}

	db, err := warehouse.Open(*profile)
	if err != nil {
		return fmt.Errorf("failed to open warehouse %q: %w", profile.Name, err)
	}

	var store statement.Store
	if profile.Type == "duckdb" {
		store, err = duckdbstatement.NewStore(db)
	} else {
		store, err = warehousestatement.NewStore(db, "")
	}
	if err != nil {
		return fmt.Errorf("failed to create statement store: %w", err)
	}

	fields := derive.Defaults()
	if fieldsPath != "" {
		fields, err = derive.LoadFields(fieldsPath)
		if err != nil {
			return fmt.Errorf("failed to load derived fields: %w", err)
		}
	}

	logger.Info().Msgf("Profile `%s` (%s) successfully loaded.", profile.Name, profile.Type)
	logger.Info().Msgf("Serving %d derived fields:", len(fields))
	for _, f := range fields {
		logger.Info().Msgf("Name: `%s`, Sources: %d", f.Name, len(f.Fields))
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Statements: statement.NewExplorer(store, fields),
			Logger:     logger,
		},
	})

	return api.Start()
}
