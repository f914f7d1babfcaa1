// Package codebase decides whether a directory looks like a software project.
//
// Detection is a short-circuiting OR over four cheap filesystem heuristics:
// manifest files, .NET project files, conventional source folders, and a
// depth-bounded search for source files. Hidden entries are never descended
// into, which keeps version-control and tool caches out of the scan.
package codebase

import (
	"context"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// Result is the outcome of a single detection.
type Result struct {
	Found bool `json:"found"`

	// Heuristic names the first check that matched. Empty when Found is false.
	Heuristic string `json:"heuristic,omitempty"`

	// Match is the root-relative path that satisfied the heuristic.
	Match string `json:"match,omitempty"`
}

// String renders the result the way plugin hosts expect it: "true" or "false".
func (r Result) String() string {
	if r.Found {
		return "true"
	}
	return "false"
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger sets the logger used for skipped directories and recovered panics.
func WithLogger(log *zap.Logger) Option {
	return func(d *Detector) {
		if log != nil {
			d.log = log
		}
	}
}

// WithIgnorePatterns excludes paths matching the given gitignore-style
// patterns from every heuristic.
func WithIgnorePatterns(patterns ...string) Option {
	return func(d *Detector) {
		if len(patterns) > 0 {
			d.ignore = gitignore.CompileIgnoreLines(patterns...)
		}
	}
}

// Detector probes one directory tree. It is stateless between calls and safe
// for concurrent use.
type Detector struct {
	fsys       FS
	heuristics []heuristic
	ignore     *gitignore.GitIgnore
	log        *zap.Logger
}

// New creates a Detector over fsys.
func New(fsys FS, opts ...Option) *Detector {
	d := &Detector{
		fsys:       fsys,
		heuristics: heuristics,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect runs the heuristics in order and returns on the first match. It never
// fails: unreadable paths count as non-matching, and a panic or a cancelled
// context yields a negative result.
func (d *Detector) Detect(ctx context.Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("codebase detection panicked", zap.Any("panic", r))
			res = Result{}
		}
	}()

	s := &scan{ctx: ctx, fsys: d.fsys, ignore: d.ignore, log: d.log}
	for _, h := range d.heuristics {
		if s.cancelled() {
			return Result{}
		}
		if match, ok := h.match(s); ok {
			d.log.Debug("codebase detected", zap.String("heuristic", h.name), zap.String("match", match))
			return Result{Found: true, Heuristic: h.name, Match: match}
		}
	}
	d.log.Debug("no codebase signals found")
	return Result{}
}

// DetectString reports whether root looks like a codebase as "true" or "false".
func DetectString(ctx context.Context, root string, opts ...Option) string {
	return New(OSFS(root), opts...).Detect(ctx).String()
}
