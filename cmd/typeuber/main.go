// Package main provides the CLI entrypoint for typeuber.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/typeuber/internal/config"
	"github.com/verte-zerg/typeuber/internal/generator"
	"github.com/verte-zerg/typeuber/internal/logging"
	"github.com/verte-zerg/typeuber/internal/model"
	"github.com/verte-zerg/typeuber/internal/server"
	"github.com/verte-zerg/typeuber/internal/session"
	"github.com/verte-zerg/typeuber/internal/stats"
	"github.com/verte-zerg/typeuber/internal/theme"
	"github.com/verte-zerg/typeuber/internal/trainer"
	"github.com/verte-zerg/typeuber/internal/tui"
)

const (
	defaultTheme    = "default"
	defaultLogLevel = "info"
)

var (
	logLevel string
	logFile  string
	verbose  bool

	practiceTheme string
	practiceSeed  int64

	serveAddr  string
	serveTheme string

	wordsCount int
	wordsSeed  int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typeuber",
		Short:         "Typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (default: state dir for the TUI, stderr for serve)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().StringVar(&practiceTheme, "theme", defaultTheme, "keyboard theme (default, purple, blue, green)")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "seed for the word generator (0: random)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "theme", &practiceTheme, fileCfg.Practice.Theme)

	cfg := model.Config{Theme: practiceTheme}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = &practiceSeed
	}
	th, err := validateConfig(cfg)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so the log goes to a file.
	logger, err := newLogger(cmd, fileCfg, config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	tr, err := trainer.New(newGenerator(cfg.Seed), trainer.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create trainer: %w", err)
	}
	m := tui.NewModel(tr, th, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if res, ok := m.Result(); ok {
		if err := stats.RenderResult(cmd.OutOrStdout(), res, 0); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser trainer",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&serveTheme, "theme", defaultTheme, "default keyboard theme")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	applyStringConfig(cmd, "theme", &serveTheme, fileCfg.Practice.Theme)

	cfg := model.ServerConfig{Addr: serveAddr, Theme: serveTheme}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("--addr must not be empty")
	}
	th, err := theme.Parse(cfg.Theme)
	if err != nil {
		return fmt.Errorf("invalid --theme: %w", err)
	}

	logger, err := newLogger(cmd, fileCfg, "")
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{Addr: cfg.Addr, Theme: th}, logger)
	logErrf("Serving typeuber on http://%s\n", cfg.Addr)
	return srv.ListenAndServe(ctx)
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Print a generated word sequence",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().IntVar(&wordsCount, "count", session.DefaultWordCount, "number of words")
	cmd.Flags().Int64Var(&wordsSeed, "seed", 0, "seed for the word generator (0: random)")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	if wordsCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	var seed *int64
	if cmd.Flags().Changed("seed") {
		seed = &wordsSeed
	}
	words := newGenerator(seed).Generate(wordsCount)
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(words, " ")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newGenerator(seed *int64) *generator.Generator {
	if seed != nil && *seed != 0 {
		return generator.NewWithSeed(*seed)
	}
	return generator.New()
}

// newLogger resolves the log level and file with flag > env > file
// precedence. An empty fallback path logs to stderr.
func newLogger(cmd *cobra.Command, fileCfg config.FileConfig, fallbackPath string) (*zap.Logger, error) {
	level := logLevel
	applyStringConfig(cmd, "log-level", &level, fileCfg.Log.Level)
	path := logFile
	if path == "" {
		path = fallbackPath
	}
	applyStringConfig(cmd, "log-file", &path, fileCfg.Log.File)
	return logging.New(logging.Options{Level: level, File: path, Verbose: verbose})
}

func syncLogger(logger *zap.Logger) {
	// Sync fails on terminals and pipes; nothing useful can be done then.
	_ = logger.Sync()
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typeuber configuration
# Uncomment a value to enable it. CLI flags override environment variables,
# which override config values.

[practice]
# theme = %q          # Keyboard theme: default, purple, blue, green (TYPEUBER_THEME)

[server]
# addr = %q   # Listen address of "typeuber serve" (TYPEUBER_ADDR)

[log]
# level = %q             # debug, info, warn, error (TYPEUBER_LOG_LEVEL)
# file = ""                 # Log file; empty uses the state dir for the TUI and stderr for serve (TYPEUBER_LOG_FILE)
`,
		defaultTheme,
		server.DefaultAddr,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) (theme.Theme, error) {
	th, err := theme.Parse(cfg.Theme)
	if err != nil {
		return theme.Default, fmt.Errorf("invalid --theme: %w", err)
	}
	return th, nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
