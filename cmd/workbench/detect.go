package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/dusk-indust/workbench/internal/codebase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newDetectCmd(a *app) *cobra.Command {
	var (
		jobs    int
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "detect [dir...]",
		Short: "Report whether directories look like codebases",
		Long: `Prints "true" or "false" for each directory (default: the project root).
Several directories are probed concurrently and reported in argument order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				dirs = []string{a.projectRoot}
			}

			results, err := a.detectAll(cmd.Context(), dirs, jobs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, res := range results {
				line := res.String()
				if len(dirs) > 1 {
					line = dirs[i] + "\t" + line
				}
				if explain && res.Found {
					line += fmt.Sprintf("\t%s\t%s", res.Heuristic, res.Match)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "directories to probe concurrently")
	cmd.Flags().BoolVar(&explain, "explain", false, "also print the matching heuristic and path")
	return cmd
}

// detectAll probes each directory concurrently. Arguments that are not
// directories are an error; the detection itself never fails.
func (a *app) detectAll(ctx context.Context, dirs []string, jobs int) ([]codebase.Result, error) {
	results := make([]codebase.Result, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, dir := range dirs {
		g.Go(func() error {
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("cannot access %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("not a directory: %s", dir)
			}

			det := codebase.New(
				codebase.OSFS(dir),
				codebase.WithIgnorePatterns(a.cfg.Ignore...),
				codebase.WithLogger(a.log.With(zap.String("root", dir))),
			)
			results[i] = det.Detect(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
