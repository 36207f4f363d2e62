package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/greenlight/internal/config"
	"github.com/felixgeelhaar/greenlight/internal/engine"
	"github.com/felixgeelhaar/greenlight/internal/fsops"
	"github.com/felixgeelhaar/greenlight/internal/log"
	"github.com/felixgeelhaar/greenlight/internal/store"
	"github.com/felixgeelhaar/greenlight/internal/validate"
)

var (
	flagWorkspace string
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "greenlight",
	Short: "Review and execute agent-proposed filesystem changes",
	Long: `greenlight is the approval gate between an autonomous agent and your files.
An agent proposes a plan of filesystem actions; greenlight validates and
risk-classifies them, a human approves a subset, and exactly that subset is
executed with a race check against the state that was reviewed.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellation context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagWorkspace, "workspace", "w", ".", "workspace root directory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format (json, text)")
}

// app bundles the wired engine with its configuration for one command run
type app struct {
	cfg    *config.Config
	engine *engine.Engine
	logger *log.Logger
}

// newApp loads configuration and wires the engine and its collaborators
func newApp() (*app, error) {
	workspaceRoot, err := filepath.Abs(flagWorkspace)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}

	cfg, err := config.LoadOrDefault(workspaceRoot)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}

	logger := log.New(log.Config{
		Level:       log.ParseLevel(cfg.LogLevel),
		Format:      log.ParseFormat(cfg.LogFormat),
		Output:      log.OutputStderr(),
		ServiceName: "greenlight",
	})
	log.SetDefaultLogger(logger)

	planStore, err := store.New(cfg.PlansDir)
	if err != nil {
		return nil, err
	}
	if err := planStore.LoadAll(); err != nil {
		return nil, err
	}

	paths, err := validate.NewPathValidator(cfg.WorkspaceRoot, cfg.AllowExternalPaths)
	if err != nil {
		return nil, err
	}
	risks := validate.NewRiskAssessor(cfg.ProtectedFiles, cfg.VendorDirs, cfg.SizeThresholdBytes)
	inspector := validate.NewPreflightInspector()

	eng, err := engine.New(engine.Config{
		Store:     planStore,
		Validator: validate.NewActionSpecValidator(paths, risks, inspector),
		Inspector: inspector,
		FileOps:   fsops.NewLocal(cfg.BackupDir),
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, engine: eng, logger: logger}, nil
}
