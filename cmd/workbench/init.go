package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// mcpConfig represents the structure of a .mcp.json file.
type mcpConfig struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// workbenchMCPEntry is the MCP server configuration for the workbench binary.
var workbenchMCPEntry = json.RawMessage(`{
  "type": "stdio",
  "command": "workbench",
  "args": ["serve"]
}`)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Register the workbench MCP server in the project's .mcp.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(a.projectRoot)
			if err != nil {
				return fmt.Errorf("resolving project root: %w", err)
			}
			mcpPath := filepath.Join(abs, ".mcp.json")
			if err := mergeMCPConfig(cmd.OutOrStdout(), mcpPath, force); err != nil {
				return err
			}
			a.log.Debug("mcp config merged", zap.String("path", mcpPath))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing workbench entry")
	return cmd
}

// mergeMCPConfig creates or merges the workbench entry into .mcp.json,
// leaving other servers untouched.
func mergeMCPConfig(out io.Writer, mcpPath string, force bool) error {
	var cfg mcpConfig

	data, err := os.ReadFile(mcpPath)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", mcpPath, err)
		}
	}

	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]json.RawMessage)
	}

	if _, exists := cfg.MCPServers["workbench"]; exists && !force {
		fmt.Fprintln(out, "  skipped .mcp.json workbench entry (exists, use --force to overwrite)")
		return nil
	}

	cfg.MCPServers["workbench"] = workbenchMCPEntry

	encoded, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling .mcp.json: %w", err)
	}

	if err := os.WriteFile(mcpPath, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", mcpPath, err)
	}

	action := "created"
	if data != nil {
		action = "updated"
	}
	fmt.Fprintf(out, "  %s .mcp.json with workbench MCP server\n", action)
	return nil
}
