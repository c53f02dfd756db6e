package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/de-tools/boutique-reports/pkg/server"
	"github.com/de-tools/boutique-reports/pkg/services/config"
	"github.com/de-tools/boutique-reports/pkg/services/reports"
	"github.com/de-tools/boutique-reports/pkg/store/client"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	profilesPath string
	profile      string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve boutique reports over HTTP",
		RunE:  runServer,
	}

	home, _ := os.UserHomeDir()
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&profilesPath, "profiles", filepath.Join(home, ".boutiquecfg"),
		"Path to the ini profiles file")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile to load from the profiles file")

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

	settings, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if profile != "" {
		registry, err := config.NewRegistry(profilesPath)
		if err != nil {
			return fmt.Errorf("failed to create config registry: %w", err)
		}
		profileSettings, err := registry.GetConfig(ctx, profile)
		if err != nil {
			return err
		}
		*settings = settings.Merge(*profileSettings)

		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", profilesPath)
		logger.Info().Msgf("Found the following profiles:")
		profiles, _ := registry.GetProfiles(ctx)
		for _, p := range profiles {
			logger.Info().Msgf("Name: `%s`, API: `%s`", p.Name, p.APIURL)
		}
		logger.Info().Msgf("Using profile `%s`.", profile)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if level, err := zerolog.ParseLevel(settings.LogLevel); err == nil && settings.LogLevel != "" {
		logger = logger.Level(level)
	}

	// Money fields go out as JSON numbers, the way the backend sends them.
	decimal.MarshalJSONWithoutQuotes = true

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := client.NewMetrics(registry)
	if err != nil {
		return err
	}

	reportsClient, err := client.NewReportsClient(client.Config{
		BaseURL:   settings.ReportsURL(),
		Token:     settings.Token,
		Timeout:   settings.Timeout,
		UserAgent: "boutique-reports-web",
	}, client.WithMetrics(metrics))
	if err != nil {
		return fmt.Errorf("failed to create reports client: %w", err)
	}
	logger.Info().Msgf("Reports backend at `%s`.", reportsClient.BaseURL())

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Reports:  reports.NewService(reportsClient),
			Gatherer: registry,
		},
	})

	return webAPI.Start()
}
