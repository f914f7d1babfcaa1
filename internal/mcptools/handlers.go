package mcptools

import (
	"context"
	"fmt"

	"github.com/dusk-indust/workbench/internal/codebase"
	"github.com/dusk-indust/workbench/internal/research"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// ToolsService holds what the MCP tool handlers need: the directory to scan
// and the research directory creator.
type ToolsService struct {
	projectRoot string
	ignore      []string
	creator     *research.Creator
	log         *zap.Logger
}

// NewToolsService creates a ToolsService. ignore holds gitignore-style
// patterns excluded from codebase detection; log may be nil.
func NewToolsService(projectRoot string, ignore []string, creator *research.Creator, log *zap.Logger) *ToolsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ToolsService{
		projectRoot: projectRoot,
		ignore:      ignore,
		creator:     creator,
		log:         log,
	}
}

// CheckCodebase reports whether the project root looks like a codebase. It
// never fails; the text content is exactly "true" or "false".
func (s *ToolsService) CheckCodebase(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CheckCodebaseInput,
) (*mcp.CallToolResult, CheckCodebaseOutput, error) {
	det := codebase.New(
		codebase.OSFS(s.projectRoot),
		codebase.WithIgnorePatterns(s.ignore...),
		codebase.WithLogger(s.log.With(zap.String("root", s.projectRoot))),
	)
	res := det.Detect(ctx)

	s.log.Info("check_codebase",
		zap.String("root", s.projectRoot),
		zap.Bool("found", res.Found),
		zap.String("heuristic", res.Heuristic))

	return textResult(res.String()), CheckCodebaseOutput{
		IsCodebase: res.String(),
		Heuristic:  res.Heuristic,
		Match:      res.Match,
	}, nil
}

// CreateResearchDir creates a timestamped research directory and returns its
// path. Malformed short names fail before touching the filesystem.
func (s *ToolsService) CreateResearchDir(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CreateResearchDirInput,
) (*mcp.CallToolResult, CreateResearchDirOutput, error) {
	path, err := s.creator.Create(input.ShortName)
	if err != nil {
		s.log.Warn("create_research_dir failed", zap.String("shortName", input.ShortName), zap.Error(err))
		return nil, CreateResearchDirOutput{}, err
	}
	return textResult(path), CreateResearchDirOutput{Path: path}, nil
}

// ListResearchDirs returns the existing research directories.
func (s *ToolsService) ListResearchDirs(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListResearchDirsInput,
) (*mcp.CallToolResult, ListResearchDirsOutput, error) {
	entries, err := s.creator.List()
	if err != nil {
		return nil, ListResearchDirsOutput{}, fmt.Errorf("list research dirs: %w", err)
	}
	dirs := make([]ResearchDir, 0, len(entries))
	for _, e := range entries {
		dirs = append(dirs, ResearchDir{
			Name:      e.Name,
			ShortName: e.ShortName,
			Epoch:     e.CreatedAt.Unix(),
			Path:      e.Path,
		})
	}
	return nil, ListResearchDirsOutput{Dirs: dirs, Total: len(dirs)}, nil
}

// textResult returns a result whose only content is text, so hosts that read
// plain tool output see the bare value rather than JSON.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
