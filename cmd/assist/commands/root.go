package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ashwch/assist/internal/config"
	"github.com/ashwch/assist/internal/i18n"
	"github.com/ashwch/assist/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags and config are loaded.
type app struct {
	cfg     config.Config
	cfgPath string
	catalog i18n.Catalog
	logger  *zap.Logger

	uiFlag     string
	localeFlag string
	verbose    bool
	noBanner   bool
}

func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "assist",
		Short: "Text command assistant with user routines",
		Long: `assist reads commands line by line and dispatches them by keyword.

Built-in commands:
  создать сценарий    create a routine
  запустить сценарий  run a routine by its keywords
  список сценариев    list routines
  удалить сценарий    remove a routine by id
  exit / выход        quit`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSession(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.uiFlag, "ui", "", "ui backend for this run: auto|bubbletea|huh|tview|plain")
	cmd.PersistentFlags().StringVar(&a.localeFlag, "locale", "", "dialog locale for this run, e.g. ru or en")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().BoolVar(&a.noBanner, "no-banner", false, "do not print the command list at startup")

	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newJournalCmd(a))
	cmd.AddCommand(NewVersionCmd())
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// load resolves settings in order: config file, .env and environment, flags.
func (a *app) load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not load .env: %w", err)
	}

	cfg, path, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	if v := strings.TrimSpace(a.uiFlag); v != "" {
		if err := cfg.Set("ui.backend", v); err != nil {
			return err
		}
	}
	if v := strings.TrimSpace(a.localeFlag); v != "" {
		if err := cfg.Set("locale", v); err != nil {
			return err
		}
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.cfgPath = path
	a.catalog = i18n.LoadCatalog(cfg.ResolvedLocale())
	a.logger = logger
	a.logger.Debug("config loaded",
		zap.String("path", path),
		zap.String("locale", a.catalog.Locale),
		zap.String("ui", cfg.UI.Backend),
	)
	return nil
}
