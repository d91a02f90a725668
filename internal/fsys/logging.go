package fsys

import (
	"log/slog"
	"os"

	"github.com/spf13/afero"
)

// loggingFs wraps afero.Fs and records mutating operations at debug level.
type loggingFs struct {
	afero.Fs
}

func (l *loggingFs) Create(name string) (afero.File, error) {
	slog.Debug("creating", "path", name)
	return l.Fs.Create(name)
}

func (l *loggingFs) Remove(name string) error {
	slog.Debug("removing", "path", name)
	return l.Fs.Remove(name)
}

func (l *loggingFs) RemoveAll(path string) error {
	slog.Debug("removing all", "path", path)
	return l.Fs.RemoveAll(path)
}

func (l *loggingFs) Rename(oldname, newname string) error {
	slog.Debug("renaming", "from", oldname, "to", newname)
	return l.Fs.Rename(oldname, newname)
}

func (l *loggingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC) != 0 {
		slog.Debug("opening for write", "path", name)
	}
	return l.Fs.OpenFile(name, flag, perm)
}
