// Package research creates and lists timestamped research directories for
// the research workflow. Each directory lives at
// <workflow-root>/thoughts/<unix-epoch-seconds>_<short-name>.
package research

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// DefaultWorkflowRoot is the workflow root used when none is configured.
const DefaultWorkflowRoot = ".opencode"

const thoughtsDir = "thoughts"

// ErrInvalidArgument is returned for malformed short names.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	shortNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
	entryPattern     = regexp.MustCompile(`^([0-9]+)_([a-z0-9_]+)$`)
)

// ValidateShortName checks that name consists only of lowercase letters,
// digits, and underscores.
func ValidateShortName(name string) error {
	if !shortNamePattern.MatchString(name) {
		return fmt.Errorf("%w: short name %q must be lowercase letters, numbers, and underscores only", ErrInvalidArgument, name)
	}
	return nil
}

// Entry is an existing research directory.
type Entry struct {
	Name      string    `json:"name"`
	ShortName string    `json:"shortName"`
	CreatedAt time.Time `json:"createdAt"`
	Path      string    `json:"path"`
}

// Option configures a Creator.
type Option func(*Creator)

// WithBaseDir resolves a relative workflow root against dir instead of the
// process working directory. Returned paths stay relative.
func WithBaseDir(dir string) Option {
	return func(c *Creator) { c.baseDir = dir }
}

// WithClock overrides the time source used for directory timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Creator) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Creator) {
		if log != nil {
			c.log = log
		}
	}
}

// Creator makes research directories under a workflow root.
type Creator struct {
	workflowRoot string
	baseDir      string
	now          func() time.Time
	log          *zap.Logger
}

// NewCreator returns a Creator for workflowRoot. An empty root means
// DefaultWorkflowRoot.
func NewCreator(workflowRoot string, opts ...Option) *Creator {
	if workflowRoot == "" {
		workflowRoot = DefaultWorkflowRoot
	}
	c := &Creator{
		workflowRoot: workflowRoot,
		now:          time.Now,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the directory research entries are created in.
func (c *Creator) Dir() string {
	return filepath.Join(c.workflowRoot, thoughtsDir)
}

// Create makes <workflow-root>/thoughts/<epoch>_<shortName> and returns its
// path. Creation is recursive and idempotent, so two calls in the same second
// with the same short name return the same path.
func (c *Creator) Create(shortName string) (string, error) {
	if err := ValidateShortName(shortName); err != nil {
		return "", err
	}

	epoch := c.now().Unix()
	dir := filepath.Join(c.Dir(), fmt.Sprintf("%d_%s", epoch, shortName))

	if err := os.MkdirAll(c.resolve(dir), 0o755); err != nil {
		return "", fmt.Errorf("create research directory %s: %w", dir, err)
	}

	c.log.Info("research directory created", zap.String("path", dir), zap.Int64("epoch", epoch))
	return dir, nil
}

// List returns the research directories under the workflow root, oldest
// first. A missing thoughts directory yields an empty list.
func (c *Creator) List() ([]Entry, error) {
	entries, err := os.ReadDir(c.resolve(c.Dir()))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read research directory: %w", err)
	}

	var out []Entry
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := entryPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		epoch, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		out = append(out, Entry{
			Name:      e.Name(),
			ShortName: m[2],
			CreatedAt: time.Unix(epoch, 0).UTC(),
			Path:      filepath.Join(c.Dir(), e.Name()),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ShortName < out[j].ShortName
	})
	return out, nil
}

func (c *Creator) resolve(p string) string {
	if c.baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.baseDir, p)
}
