package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// version is set by the linker at build time.
var version = "dev"

// NewToolsServer creates an MCP server with the workbench tools registered:
// check_codebase, create_research_dir, and list_research_dirs.
func NewToolsServer(svc *ToolsService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "workbench",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_codebase",
		Description: "Check if current directory contains a codebase to prevent system-wide searches. Returns \"true\" or \"false\".",
	}, svc.CheckCodebase)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_research_dir",
		Description: "Create a timestamped research directory for RDI workflow. Returns the created path.",
	}, svc.CreateResearchDir)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_research_dirs",
		Description: "List existing research directories, oldest first.",
	}, svc.ListResearchDirs)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the MCP server over streamable HTTP on addr until ctx is
// cancelled.
func RunHTTP(ctx context.Context, server *mcp.Server, addr string, log *zap.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		if err := httpServer.Shutdown(context.Background()); err != nil {
			log.Warn("http shutdown", zap.Error(err))
		}
	}()

	log.Info("serving MCP over HTTP", zap.String("addr", addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
