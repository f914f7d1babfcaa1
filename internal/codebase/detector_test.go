package codebase

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultyFS wraps a MapFS and fails or panics on selected directory reads.
type faultyFS struct {
	fstest.MapFS
	denied map[string]bool
	panics bool
}

func (f faultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if f.panics {
		panic("readdir exploded")
	}
	if f.denied[name] {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrPermission}
	}
	return f.MapFS.ReadDir(name)
}

func mapFile() *fstest.MapFile { return &fstest.MapFile{Data: []byte("x")} }

func mapDir() *fstest.MapFile { return &fstest.MapFile{Mode: fs.ModeDir | 0o755} }

func detect(t *testing.T, fsys FS, opts ...Option) Result {
	t.Helper()
	return New(fsys, opts...).Detect(context.Background())
}

func TestDetect_ManifestInRoot(t *testing.T) {
	for _, name := range ManifestFiles {
		t.Run(name, func(t *testing.T) {
			res := detect(t, fstest.MapFS{name: mapFile()})
			assert.True(t, res.Found)
			assert.Equal(t, HeuristicManifest, res.Heuristic)
			assert.Equal(t, name, res.Match)
		})
	}
}

func TestDetect_ManifestPlacement(t *testing.T) {
	tests := []struct {
		name  string
		fsys  fstest.MapFS
		found bool
		match string
	}{
		{"one level down", fstest.MapFS{"tools/Makefile": mapFile()}, true, "tools/Makefile"},
		{"hidden subdirectory", fstest.MapFS{".cache/go.mod": mapFile()}, false, ""},
		{"two levels down", fstest.MapFS{"a/b/go.mod": mapFile()}, false, ""},
		{"lookalike name", fstest.MapFS{"makefile.bak": mapFile()}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detect(t, tt.fsys)
			assert.Equal(t, tt.found, res.Found)
			assert.Equal(t, tt.match, res.Match)
		})
	}
}

func TestDetect_ProjectFiles(t *testing.T) {
	tests := []struct {
		name  string
		fsys  fstest.MapFS
		found bool
	}{
		{"csproj in root", fstest.MapFS{"App.csproj": mapFile()}, true},
		{"sln one level down", fstest.MapFS{"web/Site.sln": mapFile()}, true},
		{"hidden subdirectory", fstest.MapFS{".vs/Site.sln": mapFile()}, false},
		{"two levels down", fstest.MapFS{"a/b/App.csproj": mapFile()}, false},
		{"directory named like a project", fstest.MapFS{"thing.sln": mapDir()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detect(t, tt.fsys)
			assert.Equal(t, tt.found, res.Found)
			if tt.found {
				assert.Equal(t, HeuristicProjectFile, res.Heuristic)
			}
		})
	}
}

func TestDetect_SourceDirs(t *testing.T) {
	tests := []struct {
		name  string
		fsys  fstest.MapFS
		found bool
		match string
	}{
		{"src in root", fstest.MapFS{"src": mapDir()}, true, "src"},
		{"components one level down", fstest.MapFS{"frontend/components": mapDir()}, true, "frontend/components"},
		{"inside hidden directory", fstest.MapFS{".hidden/internal": mapDir()}, false, ""},
		{"two levels down", fstest.MapFS{"a/b/lib": mapDir()}, false, ""},
		{"regular file named src", fstest.MapFS{"src": mapFile()}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detect(t, tt.fsys)
			assert.Equal(t, tt.found, res.Found)
			assert.Equal(t, tt.match, res.Match)
			if tt.found {
				assert.Equal(t, HeuristicSourceDir, res.Heuristic)
			}
		})
	}
}

func TestDetect_SourceFileDepth(t *testing.T) {
	res := detect(t, fstest.MapFS{"a/b/foo.rs": mapFile()})
	assert.True(t, res.Found)
	assert.Equal(t, HeuristicSourceFile, res.Heuristic)
	assert.Equal(t, "a/b/foo.rs", res.Match)

	res = detect(t, fstest.MapFS{"a/b/c/foo.rs": mapFile()})
	assert.False(t, res.Found)
}

func TestDetect_SourceFiles(t *testing.T) {
	tests := []struct {
		name  string
		fsys  fstest.MapFS
		found bool
	}{
		{"shell script in root", fstest.MapFS{"deploy.sh": mapFile()}, true},
		{"uppercase R", fstest.MapFS{"analysis/model.R": mapFile()}, true},
		{"hidden directory", fstest.MapFS{".git/hooks/pre-commit.sh": mapFile()}, false},
		{"hidden file", fstest.MapFS{"notes/.scratch.py": mapFile()}, false},
		{"documents only", fstest.MapFS{"notes/todo.md": mapFile(), "photo.jpg": mapFile()}, false},
		{"wrong case extension", fstest.MapFS{"Main.GO": mapFile()}, false},
		{"empty", fstest.MapFS{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.found, detect(t, tt.fsys).Found)
		})
	}
}

func TestDetect_HeuristicOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"main.go":    mapFile(),
		"src":        mapDir(),
		"App.csproj": mapFile(),
		"go.mod":     mapFile(),
	}
	res := detect(t, fsys)
	require.True(t, res.Found)
	assert.Equal(t, HeuristicManifest, res.Heuristic)

	delete(fsys, "go.mod")
	assert.Equal(t, HeuristicProjectFile, detect(t, fsys).Heuristic)

	delete(fsys, "App.csproj")
	assert.Equal(t, HeuristicSourceDir, detect(t, fsys).Heuristic)

	delete(fsys, "src")
	assert.Equal(t, HeuristicSourceFile, detect(t, fsys).Heuristic)
}

func TestDetect_UnreadableSubtreeIsSkipped(t *testing.T) {
	fsys := faultyFS{
		MapFS: fstest.MapFS{
			"locked/deep/foo.go": mapFile(),
		},
		denied: map[string]bool{"locked": true},
	}
	assert.False(t, detect(t, fsys).Found)

	fsys.MapFS["open/bar.go"] = mapFile()
	res := detect(t, fsys)
	assert.True(t, res.Found)
	assert.Equal(t, "open/bar.go", res.Match)
}

func TestDetect_UnreadableRootStillStatsManifests(t *testing.T) {
	fsys := faultyFS{
		MapFS:  fstest.MapFS{"Cargo.toml": mapFile()},
		denied: map[string]bool{".": true},
	}
	res := detect(t, fsys)
	assert.True(t, res.Found)
	assert.Equal(t, HeuristicManifest, res.Heuristic)
}

func TestDetect_PanicYieldsFalse(t *testing.T) {
	fsys := faultyFS{MapFS: fstest.MapFS{"lib.rs": mapFile()}, panics: true}
	res := detect(t, fsys)
	assert.Equal(t, Result{}, res)
	assert.Equal(t, "false", res.String())
}

func TestDetect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(fstest.MapFS{"go.mod": mapFile(), "main.go": mapFile()}).Detect(ctx)
	assert.False(t, res.Found)
}

func TestDetect_IgnorePatterns(t *testing.T) {
	fsys := fstest.MapFS{"vendor/dep/lib.go": mapFile()}

	assert.True(t, detect(t, fsys).Found)
	assert.False(t, detect(t, fsys, WithIgnorePatterns("vendor")).Found)

	fsys["tools/Makefile"] = mapFile()
	res := detect(t, fsys, WithIgnorePatterns("vendor"))
	assert.True(t, res.Found)
	assert.Equal(t, "tools/Makefile", res.Match)
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "true", Result{Found: true}.String())
	assert.Equal(t, "false", Result{}.String())
}

func TestDetectString_OSFS(t *testing.T) {
	ctx := context.Background()

	root := t.TempDir()
	assert.Equal(t, "false", DetectString(ctx, root))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "api"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "api", "pyproject.toml"), []byte("[project]\n"), 0o644))
	assert.Equal(t, "true", DetectString(ctx, root))

	assert.Equal(t, "false", DetectString(ctx, filepath.Join(root, "missing")))
}
