package codebase

import (
	"context"
	"io/fs"
	"path"
	"slices"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// MaxSourceDepth is the deepest directory level the source-file walk lists.
// The scan root is level 1.
const MaxSourceDepth = 3

// ManifestFiles are project descriptors whose presence marks a codebase.
var ManifestFiles = []string{
	"package.json",
	"Cargo.toml",
	"go.mod",
	"requirements.txt",
	"Gemfile",
	"pom.xml",
	"build.gradle",
	"composer.json",
	"pyproject.toml",
	"setup.py",
	"CMakeLists.txt",
	"Makefile",
}

// ProjectFileSuffixes match .NET project and solution files.
var ProjectFileSuffixes = []string{".csproj", ".sln"}

// SourceDirs are conventional names for source folders.
var SourceDirs = []string{"src", "lib", "pkg", "app", "components", "pages", "internal"}

// SourceExtensions are file name suffixes of source code and shell scripts.
// Matching is case-sensitive.
var SourceExtensions = []string{
	".ts", ".tsx", ".js", ".jsx",
	".py", ".pyw",
	".go",
	".rs",
	".java",
	".kt", ".kts",
	".rb",
	".php",
	".c", ".cpp", ".cc", ".h", ".hpp",
	".cs",
	".swift",
	".m", ".mm",
	".scala",
	".clj", ".cljs",
	".ex", ".exs",
	".erl", ".hrl",
	".r", ".R",
	".jl",
	".dart",
	".lua",
	".vim",
	".sh", ".bash", ".zsh",
}

// heuristic is one named codebase signal. match reports the relative path
// that triggered it.
type heuristic struct {
	name  string
	match func(s *scan) (string, bool)
}

// Heuristic names, in evaluation order.
const (
	HeuristicManifest    = "manifest"
	HeuristicProjectFile = "project-file"
	HeuristicSourceDir   = "source-dir"
	HeuristicSourceFile  = "source-file"
)

var heuristics = []heuristic{
	{name: HeuristicManifest, match: matchManifest},
	{name: HeuristicProjectFile, match: matchProjectFile},
	{name: HeuristicSourceDir, match: matchSourceDir},
	{name: HeuristicSourceFile, match: matchSourceFile},
}

// scan carries the state of a single Detect call. Filesystem errors never
// leave it: an unreadable directory reads as empty.
type scan struct {
	ctx    context.Context
	fsys   FS
	ignore *gitignore.GitIgnore
	log    *zap.Logger
}

func (s *scan) cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *scan) ignored(rel string, isDir bool) bool {
	if s.ignore == nil || rel == "." {
		return false
	}
	if s.ignore.MatchesPath(rel) {
		return true
	}
	return isDir && s.ignore.MatchesPath(rel+"/")
}

// readDir lists dir, dropping ignored entries.
func (s *scan) readDir(dir string) []fs.DirEntry {
	if s.cancelled() {
		return nil
	}
	entries, err := s.fsys.ReadDir(dir)
	if err != nil {
		s.log.Debug("skipping unreadable directory", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	if s.ignore == nil {
		return entries
	}
	kept := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		if !s.ignored(path.Join(dir, e.Name()), e.IsDir()) {
			kept = append(kept, e)
		}
	}
	return kept
}

func (s *scan) exists(rel string) bool {
	if s.cancelled() || s.ignored(rel, false) {
		return false
	}
	_, err := s.fsys.Stat(rel)
	return err == nil
}

// visibleSubdirs returns the non-hidden directories directly under the root.
func (s *scan) visibleSubdirs() []string {
	var dirs []string
	for _, e := range s.readDir(".") {
		if e.IsDir() && !isHidden(e.Name()) {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}

// matchManifest checks each manifest in the root, then in every visible
// subdirectory, before moving on to the next manifest.
func matchManifest(s *scan) (string, bool) {
	subdirs := s.visibleSubdirs()
	for _, name := range ManifestFiles {
		if s.exists(name) {
			return name, true
		}
		for _, dir := range subdirs {
			rel := path.Join(dir, name)
			if s.exists(rel) {
				return rel, true
			}
		}
	}
	return "", false
}

func matchProjectFile(s *scan) (string, bool) {
	root := s.readDir(".")
	for _, e := range root {
		if e.Type().IsRegular() && hasAnySuffix(e.Name(), ProjectFileSuffixes) {
			return e.Name(), true
		}
	}
	for _, e := range root {
		if !e.IsDir() || isHidden(e.Name()) {
			continue
		}
		for _, sub := range s.readDir(e.Name()) {
			if sub.Type().IsRegular() && hasAnySuffix(sub.Name(), ProjectFileSuffixes) {
				return path.Join(e.Name(), sub.Name()), true
			}
		}
	}
	return "", false
}

func matchSourceDir(s *scan) (string, bool) {
	for _, e := range s.readDir(".") {
		if !e.IsDir() {
			continue
		}
		if slices.Contains(SourceDirs, e.Name()) {
			return e.Name(), true
		}
		if isHidden(e.Name()) {
			continue
		}
		for _, sub := range s.readDir(e.Name()) {
			if sub.IsDir() && slices.Contains(SourceDirs, sub.Name()) {
				return path.Join(e.Name(), sub.Name()), true
			}
		}
	}
	return "", false
}

func matchSourceFile(s *scan) (string, bool) {
	return walkSource(s, ".", 1)
}

func walkSource(s *scan, dir string, depth int) (string, bool) {
	if depth > MaxSourceDepth {
		return "", false
	}
	for _, e := range s.readDir(dir) {
		if isHidden(e.Name()) {
			continue
		}
		rel := path.Join(dir, e.Name())
		switch {
		case e.Type().IsRegular():
			if hasAnySuffix(e.Name(), SourceExtensions) {
				return rel, true
			}
		case e.IsDir() && depth < MaxSourceDepth:
			if match, ok := walkSource(s, rel, depth+1); ok {
				return match, true
			}
		}
	}
	return "", false
}
