package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dramactl/internal/config"
	"dramactl/internal/parser"
	"dramactl/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	dataFile   string
	logLevel   string
	yes        bool
	force      bool

	cfg   *config.Config
	now   func() time.Time
	store *store.Store
}

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	rootCmd := &cobra.Command{
		Use:   "dramactl",
		Short: "Curate the fan drama list of the website data file",
		Long: `dramactl edits the record list that the website reads from its data.js file.
Every change renumbers the records and rewrites the file, keeping a compressed
backup of the previous version.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default $CONFIG_PATH or ./dramactl.yaml)")
	flags.StringVarP(&a.dataFile, "file", "f", "", "Data file to edit (overrides data_file)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&a.force, "force", false, "Save even when the existing data file could not be decoded")

	rootCmd.AddCommand(
		listCmd(a),
		showCmd(a),
		addCmd(a),
		editCmd(a),
		deleteCmd(a),
		moveCmd(a),
		saveCmd(a),
		importCmd(a),
		exportCmd(a),
		copyCmd(a),
		suggestCmd(a),
		linksCmd(a),
		thumbsCmd(a),
		backupCmd(a),
	)
	return rootCmd
}

// setup loads configuration, applies flag overrides and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataFile != "" {
		cfg.DataFile = a.dataFile
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Format)

	a.cfg = cfg
	return nil
}

func newLogger(w io.Writer, format string) zerolog.Logger {
	if format == "json" {
		return zerolog.New(w).With().Timestamp().Logger()
	}
	return log.Output(zerolog.ConsoleWriter{Out: w})
}

// openStore loads the data file once per invocation.
func (a *app) openStore() *store.Store {
	if a.store == nil {
		a.store = store.Open(a.cfg.DataFile, storeOptions(a.cfg, a.force))
		if a.store.Undecodable() && !a.force {
			log.Warn().Str("path", a.cfg.DataFile).Msg("Data file could not be decoded; changes will not be saved without --force")
		}
	}
	return a.store
}

func storeOptions(cfg *config.Config, force bool) store.Options {
	opts := store.Options{
		Force: force,
		Parser: parser.Options{
			CollectionName: cfg.Names.Collection,
			LinksName:      cfg.Names.Links,
			JSFallback:     !cfg.Loader.DisableJS,
			JSTimeout:      cfg.Loader.JSTimeout,
		},
	}
	if !cfg.Backup.Disabled {
		opts.Backups = store.NewBackups(cfg.BackupDir(), cfg.Backup.Keep)
	}
	return opts
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
