package codebase

import (
	"io/fs"
	"os"
)

// FS is the read-only filesystem view a Detector scans. Paths are
// slash-separated and relative to the scan root; "." names the root itself.
//
// os.DirFS and testing/fstest.MapFS both satisfy it.
type FS interface {
	ReadDir(name string) ([]fs.DirEntry, error)
	Stat(name string) (fs.FileInfo, error)
}

// OSFS returns an FS rooted at dir on the host filesystem.
func OSFS(dir string) FS {
	return osFS{fsys: os.DirFS(dir)}
}

type osFS struct {
	fsys fs.FS
}

func (o osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return fs.ReadDir(o.fsys, name)
}

func (o osFS) Stat(name string) (fs.FileInfo, error) {
	return fs.Stat(o.fsys, name)
}
