package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rahulvramesh/cleanmac/internal/config"
	"github.com/rahulvramesh/cleanmac/internal/logging"
	"github.com/rahulvramesh/cleanmac/internal/report"
	"github.com/rahulvramesh/cleanmac/internal/scanner"
	"github.com/rahulvramesh/cleanmac/internal/session"
	"github.com/rahulvramesh/cleanmac/internal/system"
	"github.com/rahulvramesh/cleanmac/internal/trash"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
	outputFlag string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cleanmac",
		Short: "cleanmac - uninstall macOS apps with their leftovers and clear junk",
		Long: `Find installed applications together with the preferences, caches and
support files they leave behind, and clear well-known junk locations.
Everything goes to the Trash, escalating through Finder and an
administrator prompt when plain moves are not allowed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/cleanmac/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "text", "Output format: text, json, yaml")

	// Disable built-in help command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(appsCmd())
	rootCmd.AddCommand(junkCmd())
	rootCmd.AddCommand(uninstallCmd())
	rootCmd.AddCommand(cleanCmd())
	rootCmd.AddCommand(probeCmd())
	rootCmd.AddCommand(diskCmd())
	rootCmd.AddCommand(tuiCmd())

	return rootCmd
}

// env is what every command needs after flags are parsed
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	scanner *scanner.Scanner
	engine  *trash.Engine
	out     *report.Writer
	in      io.Reader
	errOut  io.Writer
}

func (e *env) close() {
	_ = e.logger.Sync()
}

// newEnv loads configuration and builds the collaborators. logger is
// created from the config when nil.
func newEnv(cmd *cobra.Command, logger *zap.Logger) (*env, error) {
	format, err := report.ParseFormat(outputFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}

	if logger == nil {
		logger, err = logging.New(cfg.Verbose)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	s := scanner.NewScanner(cfg.Home, logger.Named("scanner"))
	cfg.Apply(s)

	engine := trash.NewEngine(trash.NewHomeTrash(cfg.Home), trash.OSAScriptRunner{}, logger.Named("trash"))

	return &env{
		cfg:     cfg,
		logger:  logger,
		scanner: s,
		engine:  engine,
		out:     report.New(cmd.OutOrStdout(), format, cfg.Home),
		in:      cmd.InOrStdin(),
		errOut:  cmd.ErrOrStderr(),
	}, nil
}

func (e *env) processes() system.ProcessChecker {
	return system.Processes{Runner: trash.OSAScriptRunner{}}
}

func (e *env) appSession() *session.Apps {
	return session.NewApps(e.scanner, e.engine, e.processes(), e.logger.Named("apps"))
}

func (e *env) junkSession() *session.Junk {
	return session.NewJunk(e.scanner, e.engine, e.logger.Named("junk"))
}

// confirm asks a yes/no question on stderr and reads the answer from stdin
func (e *env) confirm(question string) bool {
	fmt.Fprintf(e.errOut, "%s [y/N] ", question)
	reader := bufio.NewReader(e.in)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
