package main

import (
	"github.com/dusk-indust/workbench/internal/mcptools"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio or streamable HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr := httpAddr
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			svc := mcptools.NewToolsService(a.projectRoot, a.cfg.Ignore, a.creator(), a.log)
			server := mcptools.NewToolsServer(svc)

			if addr != "" {
				return mcptools.RunHTTP(cmd.Context(), server, addr, a.log)
			}
			a.log.Debug("serving MCP over stdio", zap.String("workflowRoot", a.cfg.WorkflowRoot))
			return mcptools.RunStdio(cmd.Context(), server)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
	return cmd
}
