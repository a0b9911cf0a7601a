package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/agent"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envRoot   = "AGENTTOOLS_ROOT"
	envConfig = "AGENTTOOLS_CONFIG"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	rootDir    string
	configPath string
	verbose    bool

	config *config.Config
	logger *zap.Logger
	tools  *agent.Tools
}

// exitCodeError carries a command's exit status out of Execute without printing anything.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "agenttools",
		Short: "Run coding-agent workspace tools from the command line",
		Long: `agenttools exposes the tools a coding agent uses inside a project directory:
reading and writing files, listing the file tree, searching file contents and
running shell commands. All paths are relative to the project root, and paths
that escape it are rejected.

The project root is taken from --root, then $AGENTTOOLS_ROOT, then the current
directory. Both variables may also be set in a .env file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.rootDir, "root", "", "project root directory (default $AGENTTOOLS_ROOT or the current directory)")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file, .json or .yaml (default $AGENTTOOLS_CONFIG or ~/.config/agenttools/config.json)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newReadCmd(a),
		newWriteCmd(a),
		newTreeCmd(a),
		newExecCmd(a),
		newSearchCmd(a),
		newCallCmd(a),
		newToolsCmd(a),
		newAgentCmd(a),
	)
	return root
}

// setup loads configuration, builds the logger and wires the tools.
func (a *app) setup() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.config = cfg

	logger, err := newLogger(cfg.Logging, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	rootDir := a.rootDir
	if rootDir == "" {
		rootDir = os.Getenv(envRoot)
	}
	if rootDir == "" {
		rootDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	tools, err := agent.New(rootDir, cfg, logger)
	if err != nil {
		return err
	}
	a.tools = tools
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		path = os.Getenv(envConfig)
	}
	if path != "" {
		return config.NewLoader().LoadFile(path)
	}
	return config.Load()
}

// newLogger builds a console (development) or JSON (production) logger writing to stderr.
func newLogger(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
