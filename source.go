package tilekit

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Source is somewhere we can read asset files from by (slash separated)
// name, relative to some root.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

// dirSource reads assets from a directory on disk
type dirSource struct {
	root string
}

// DirSource returns a Source reading files under `root`.
// A leading ~ is expanded to the user's home dir.
func DirSource(root string) (Source, error) {
	root, err := homedir.Expand(root)
	if err != nil {
		return nil, err
	}
	return &dirSource{root: root}, nil
}

func (d *dirSource) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.root, filepath.FromSlash(path.Clean(name))))
}

// fsSource wraps an fs.FS
type fsSource struct {
	fsys fs.FS
}

// FSSource returns a Source reading from the given fs.FS (embedded
// assets, fstest.MapFS etc).
func FSSource(fsys fs.FS) Source {
	return &fsSource{fsys: fsys}
}

func (f *fsSource) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(f.fsys, path.Clean(name))
}
