package mcptools

// --- MCP Tool Types ---
// These structs define the JSON schema for each MCP tool's input and output.
// The MCP Go SDK generates the schemas from the struct tags.

// CheckCodebaseInput is the input for the check_codebase MCP tool. The tool
// takes no arguments and scans the server's project root.
type CheckCodebaseInput struct{}

// CheckCodebaseOutput is the structured result of the check_codebase MCP tool.
// The text content of the result carries IsCodebase alone.
type CheckCodebaseOutput struct {
	IsCodebase string `json:"isCodebase" jsonschema:"true if the directory looks like a software project, otherwise false"`
	Heuristic  string `json:"heuristic,omitempty" jsonschema:"which check matched: manifest, project-file, source-dir or source-file"`
	Match      string `json:"match,omitempty" jsonschema:"project-relative path that triggered the match"`
}

// CreateResearchDirInput is the input for the create_research_dir MCP tool.
type CreateResearchDirInput struct {
	ShortName string `json:"shortName" jsonschema:"Short name for research (lowercase, underscores, numbers only)"`
}

// CreateResearchDirOutput is the result of the create_research_dir MCP tool.
type CreateResearchDirOutput struct {
	Path string `json:"path"`
}

// ListResearchDirsInput is the input for the list_research_dirs MCP tool.
type ListResearchDirsInput struct{}

// ListResearchDirsOutput is the result of the list_research_dirs MCP tool.
type ListResearchDirsOutput struct {
	Dirs  []ResearchDir `json:"dirs"`
	Total int           `json:"total"`
}

// ResearchDir is one entry in ListResearchDirsOutput.
type ResearchDir struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Epoch     int64  `json:"epoch" jsonschema:"creation time in unix seconds"`
	Path      string `json:"path"`
}
