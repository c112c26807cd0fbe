// Package config implements the ambient on-disk layout and configuration
// concern §6.1 leaves to "the operator": a catalog directory plus one
// directory per user database, each guarded by an advisory lock so two
// processes never open the same store concurrently.
package config

import (
	"os"
	"path/filepath"

	"github.com/c2h5oh/datasize"
	"github.com/gofrs/flock"
	"github.com/litedb-go/litedb/lerrors"
	"gopkg.in/yaml.v3"
)

// CatalogDirName is the fixed sub-directory name for the catalog store.
const CatalogDirName = "catalog"

// Layout is the on-disk configuration for one database installation,
// loadable from a YAML file alongside the data directory.
type Layout struct {
	// DataDir is the root directory containing the catalog directory and
	// one sub-directory per user database.
	DataDir string `yaml:"data_dir"`

	// MapSize is the embedded KV store's memory-map size, shared by every
	// sub-store it opens.
	MapSize datasize.ByteSize `yaml:"map_size"`

	// MaxTables bounds how many named sub-stores one environment may open.
	MaxTables int `yaml:"max_tables"`
}

// DefaultLayout returns the §6.1 defaults: 1 GiB map size, 128 sub-stores.
func DefaultLayout(dataDir string) Layout {
	return Layout{
		DataDir:   dataDir,
		MapSize:   1 * datasize.GB,
		MaxTables: 128,
	}
}

// Load reads a Layout from a YAML file, applying DefaultLayout's values
// for anything the file leaves zero.
func Load(path string) (Layout, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, lerrors.Wrap(lerrors.CantOpen, err, "config: read %q", path)
	}

	layout := DefaultLayout("")
	if err := yaml.Unmarshal(buf, &layout); err != nil {
		return Layout{}, lerrors.Wrap(lerrors.Invalid, err, "config: parse %q", path)
	}
	if layout.DataDir == "" {
		return Layout{}, lerrors.New(lerrors.Invalid, "config: %q: data_dir is required", path)
	}
	return layout, nil
}

// CatalogDir is the fixed-name catalog sub-directory under DataDir.
func (l Layout) CatalogDir() string {
	return filepath.Join(l.DataDir, CatalogDirName)
}

// DatabaseDir is the sub-directory for a user database named name.
func (l Layout) DatabaseDir(name string) string {
	return filepath.Join(l.DataDir, name)
}

// Lock is a held advisory lock over one directory's lifetime, releasing
// it on Close.
type Lock struct {
	fl *flock.Flock
}

// LockDir creates dir if missing and takes an exclusive advisory lock on
// it, failing fast (rather than blocking) if another process holds it.
func LockDir(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, lerrors.Wrap(lerrors.CantOpen, err, "config: create %q", dir)
	}

	fl := flock.New(filepath.Join(dir, ".lock"))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, lerrors.Wrap(lerrors.CantOpen, err, "config: lock %q", dir)
	}
	if !locked {
		return nil, lerrors.New(lerrors.CantOpen, "config: %q is locked by another process", dir)
	}
	return &Lock{fl: fl}, nil
}

// Close releases the lock.
func (l *Lock) Close() error {
	return l.fl.Unlock()
}
