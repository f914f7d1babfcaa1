package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/workbench/internal/config"
	"github.com/dusk-indust/workbench/internal/logging"
	"github.com/dusk-indust/workbench/internal/research"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set by goreleaser at build time.
var version = "dev"

// app carries the state shared by every subcommand once the persistent
// pre-run has loaded configuration and built the logger.
type app struct {
	projectRoot string
	verbose     bool

	cfg *config.ProjectConfig
	log *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "workbench",
		Short: "Codebase detection and research directory tools for MCP hosts",
		Long: `workbench exposes two tools to MCP hosts:

  check_codebase       reports whether the project root looks like a codebase
  create_research_dir  creates <workflow-root>/thoughts/<epoch>_<name>

Run "workbench serve" to start the MCP server, or use the subcommands
directly from a shell.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.projectRoot, "project-root", ".", "path to the target project")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newDetectCmd(a),
		newResearchCmd(a),
		newInitCmd(a),
	)
	return root
}

// setup loads the project config and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.projectRoot)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	log, err := logging.New(cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.log = log.With(zap.String("projectRoot", a.projectRoot))
	return nil
}

// creator returns a research.Creator rooted at the configured workflow root.
func (a *app) creator() *research.Creator {
	return research.NewCreator(a.cfg.WorkflowRoot,
		research.WithBaseDir(a.projectRoot),
		research.WithLogger(a.log),
	)
}
