package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fvtools/fvmirror/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagJSON       bool
	flagVerbose    bool
	flagQuiet      bool
	flagLogLevel   string
	flagLogFormat  string
	flagLogFile    string
)

// resolvedCfg holds the effective configuration loaded by PersistentPreRunE.
// It is available to all subcommands after the root pre-run phase completes.
var resolvedCfg *config.Config

// skipConfigCommands lists commands that run before configuration exists.
// init bootstraps the credential file, so it must not require a valid
// config or credentials. Uses CommandPath() for explicit matching.
var skipConfigCommands = map[string]bool{
	"fvmirror init": true,
}

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fvmirror",
		Short:   "Mirror Filevine project documents to local disk",
		Long:    "fvmirror downloads a Filevine project's folder tree and documents into a local directory, preserving the folder structure.",
		Version: version,
		// Silence Cobra's default error/usage printing; main() handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Credentials may live in a .env file next to the working
			// directory. Absence is fine; the environment may already be set.
			_ = godotenv.Load()

			if skipConfigCommands[cmd.CommandPath()] {
				return nil
			}

			return loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format (auto, text, json)")
	cmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also append logs to this file")

	// Register subcommands.
	cmd.AddCommand(newMirrorCmd())
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newInitCmd())

	return cmd
}

// loadConfig resolves the effective configuration from the override chain
// (defaults -> file -> env -> CLI flags) and stores the result in
// resolvedCfg for use by subcommands. Flags registered by the running
// subcommand (like mirror's --dest) participate; Changed() is false for
// flags the subcommand does not define.
func loadConfig(cmd *cobra.Command) error {
	cli := config.CLIOverrides{
		ConfigPath: flagConfigPath,
	}

	flags := cmd.Flags()

	if flags.Changed("dest") {
		v, _ := flags.GetString("dest")
		cli.Dest = &v
	}

	if flags.Changed("workers") {
		v, _ := flags.GetInt("workers")
		cli.Workers = &v
	}

	if flags.Changed("max-attempts") {
		v, _ := flags.GetInt("max-attempts")
		cli.MaxAttempts = &v
	}

	if flags.Changed("log-level") {
		cli.LogLevel = &flagLogLevel
	}

	if flags.Changed("log-format") {
		cli.LogFormat = &flagLogFormat
	}

	if flags.Changed("log-file") {
		cli.LogFile = &flagLogFile
	}

	env := config.ReadEnvOverrides()

	resolved, err := config.Resolve(env, cli)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolvedCfg = resolved

	return nil
}

// buildLogger creates an slog.Logger configured by the resolved config and
// CLI flags, plus a close function for the optional log file. Config-file
// settings provide the baseline; --verbose and --quiet override the level
// because CLI flags always win.
func buildLogger() (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	format := "auto"
	logFile := ""

	if resolvedCfg != nil {
		switch resolvedCfg.Logging.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}

		format = resolvedCfg.Logging.LogFormat
		logFile = resolvedCfg.Logging.LogFile
	}

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	var w io.Writer = os.Stderr

	closeLog := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}

		w = io.MultiWriter(os.Stderr, f)
		closeLog = func() { _ = f.Close() }
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler

	switch format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		// auto: human-readable on a terminal, JSON when redirected or
		// teed to a file so log processors get structured lines.
		if logFile == "" && isatty.IsTerminal(os.Stderr.Fd()) {
			handler = slog.NewTextHandler(w, opts)
		} else {
			handler = slog.NewJSONHandler(w, opts)
		}
	}

	return slog.New(handler), closeLog, nil
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
