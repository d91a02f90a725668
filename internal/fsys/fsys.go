// Package fsys provides the filesystem flavors refit writes through: the
// real disk, a copy-on-write layer for dry runs, and an in-memory filesystem
// for tests.
package fsys

import (
	"github.com/spf13/afero"
)

// NewReal returns a filesystem that performs actual disk operations, logging
// mutations at debug level.
func NewReal() afero.Fs {
	return &loggingFs{Fs: afero.NewOsFs()}
}

// NewDryRun returns a filesystem backed by the real disk for reads, with all
// writes landing in a memory layer. Later pipeline steps observe earlier
// (simulated) writes, while the disk is never touched.
func NewDryRun() afero.Fs {
	base := afero.NewReadOnlyFs(afero.NewOsFs())
	layer := afero.NewMemMapFs()
	return afero.NewCopyOnWriteFs(base, layer)
}

// NewMem returns an in-memory filesystem for tests.
func NewMem() afero.Fs {
	return afero.NewMemMapFs()
}
