package terminal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/de-tools/boutique-reports/pkg/adapters"
	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"github.com/de-tools/boutique-reports/pkg/models/store"
	"github.com/de-tools/boutique-reports/pkg/runtime/terminal/commands"
	"github.com/de-tools/boutique-reports/pkg/runtime/terminal/export"
	"github.com/de-tools/boutique-reports/pkg/services/config"
	"github.com/de-tools/boutique-reports/pkg/services/reports"
	"github.com/de-tools/boutique-reports/pkg/store/client"
	"github.com/de-tools/boutique-reports/pkg/store/duckdb"
	"github.com/de-tools/boutique-reports/pkg/store/duckdb/snapshot"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	userAgent   = "boutique-reports-cli"
)

var ErrNoArchive = errors.New("no archive configured, pass --archive <path>")

// CLI represents the command-line interface
type CLI struct {
	rootCmd  *cobra.Command
	reporter *export.Reporter
	json     *export.JSONReporter
	logOut   io.Writer
	now      func() time.Time

	configPath   string
	profilesPath string
	profile      string
	apiURL       string
	output       string
	archivePath  string

	service   *reports.Service
	db        *sql.DB
	snapshots snapshot.Store
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// LogOutput receives diagnostics; defaults to stderr.
	LogOutput io.Writer
	// ProfilesPath is the default location of the ini profile file.
	ProfilesPath string
	Now          func() time.Time
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cli := &CLI{
		reporter:     export.NewReporter(opts.Output),
		json:         export.NewJSONReporter(opts.Output),
		logOut:       opts.LogOutput,
		now:          opts.Now,
		profilesPath: opts.ProfilesPath,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "reports",
		Short:             "Boutique sales, inventory and payment reports",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return cli.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&cli.profilesPath, "profiles", cli.profilesPath, "Path to the ini profiles file")
	flags.StringVarP(&cli.profile, "profile", "p", "", "Profile to load from the profiles file")
	flags.StringVar(&cli.apiURL, "api-url", "", "Backend API URL, overrides config and profile")
	flags.StringVarP(&cli.output, "output", "o", outputTable, "Output format (table|json)")
	flags.StringVar(&cli.archivePath, "archive", "", "DuckDB file to archive fetched reports into")

	cmd.AddCommand(commands.NewQueryCmd(cli))
	cmd.AddCommand(commands.NewGenerateCmd(cli))
	cmd.AddCommand(commands.NewTypesCmd(cli))
	cmd.AddCommand(commands.NewDashboardCmd(cli))
	cmd.AddCommand(commands.NewCierreDiaCmd(cli))
	cmd.AddCommand(commands.NewAlertasCmd(cli))
	cmd.AddCommand(commands.NewArchiveCmd(cli))
	cmd.AddCommand(commands.NewProfilesCmd(cli))
	cmd.AddCommand(commands.NewWrapperCmds(cli)...)

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	if cli.output != outputTable && cli.output != outputJSON {
		return fmt.Errorf("invalid --output %q: expected table or json", cli.output)
	}

	settings, err := cli.resolveSettings(cmd.Context())
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil || settings.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logOut, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))

	reportsClient, err := client.NewReportsClient(client.Config{
		BaseURL:   settings.ReportsURL(),
		Token:     settings.Token,
		Timeout:   settings.Timeout,
		UserAgent: userAgent,
	})
	if err != nil {
		return err
	}
	cli.service = reports.NewService(reportsClient)

	if cli.archivePath != "" {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: cli.archivePath})
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		cli.db = db
		cli.snapshots, err = snapshot.NewStore(db)
		if err != nil {
			return err
		}
	}

	logger.Debug().
		Str("api_url", settings.ReportsURL()).
		Str("profile", cli.profile).
		Msg("reports client configured")
	return nil
}

func (cli *CLI) resolveSettings(ctx context.Context) (*config.Settings, error) {
	settings, err := config.Load(cli.configPath)
	if err != nil {
		return nil, err
	}

	if cli.profile != "" {
		registry, err := config.NewRegistry(cli.profilesPath)
		if err != nil {
			return nil, err
		}
		profile, err := registry.GetConfig(ctx, cli.profile)
		if err != nil {
			return nil, err
		}
		*settings = settings.Merge(*profile)
	}
	if cli.apiURL != "" {
		settings.APIURL = cli.apiURL
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (cli *CLI) close() error {
	if cli.db == nil {
		return nil
	}
	err := cli.db.Close()
	cli.db = nil
	cli.snapshots = nil
	return err
}

func (cli *CLI) Service() *reports.Service {
	return cli.service
}

func (cli *CLI) Now() time.Time {
	return cli.now()
}

func (cli *CLI) Emit(payload any, views ...domain.Report) error {
	if cli.output == outputJSON {
		return cli.json.Handle(payload)
	}
	for i := range views {
		if err := cli.reporter.Handle(&views[i]); err != nil {
			return err
		}
	}
	return nil
}

func (cli *CLI) Archive(ctx context.Context, fetched ...commands.FetchedReport) error {
	if cli.snapshots == nil || len(fetched) == 0 {
		return nil
	}

	fetchedAt := cli.now()
	snaps := make([]store.ReportSnapshot, 0, len(fetched))
	for _, f := range fetched {
		snap, err := adapters.MapRawReportToSnapshot(f.Type, f.Filters, f.Raw, fetchedAt)
		if err != nil {
			return err
		}
		snaps = append(snaps, snap)
	}

	var err error
	if len(snaps) == 1 {
		err = cli.snapshots.Save(ctx, snaps[0])
	} else {
		err = cli.snapshots.SaveAll(ctx, snaps)
	}
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Int("snapshots", len(snaps)).Msg("reports archived")
	return nil
}

func (cli *CLI) Snapshots() (snapshot.Store, error) {
	if cli.snapshots == nil {
		return nil, ErrNoArchive
	}
	return cli.snapshots, nil
}

func (cli *CLI) Profiles(ctx context.Context) ([]domain.ConfigProfile, error) {
	registry, err := config.NewRegistry(cli.profilesPath)
	if err != nil {
		return nil, err
	}
	return registry.GetProfiles(ctx)
}
