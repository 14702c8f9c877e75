// Package atomicfile writes files all-or-nothing. Output artifacts are meant
// to be replayed or diffed, so a reader must never observe a partially
// written file: content goes to a temporary file in the target directory and
// is renamed into place only after a successful write.
package atomicfile

import (
	"io"
	"os"
	"path/filepath"
)

// FilePermissions is the mode for created files (rw-r--r--).
const FilePermissions = 0644

// Write streams content through write into path atomically. On any failure
// the temporary file is removed and the target path is left untouched.
func Write(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(FilePermissions); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
