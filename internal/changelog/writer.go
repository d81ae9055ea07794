package changelog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// defaultPerm is used when the document was not loaded from disk.
const defaultPerm os.FileMode = 0o644

// Save writes the document content back to its path.
func (d *Document) Save(mode WriteMode) error {
	if d.Path == "" {
		return &FileError{Op: "writing", Path: "<unnamed>", Err: fmt.Errorf("document has no path")}
	}

	perm := d.perm
	if perm == 0 {
		perm = defaultPerm
	}

	target, err := resolveTarget(d.Path)
	if err != nil {
		return &FileError{Op: "writing", Path: d.Path, Err: err}
	}

	switch mode {
	case WriteInPlace:
		err = writeInPlace(target, []byte(d.Content), perm)
	case WriteAtomic:
		err = atomicWriteToFile(target, []byte(d.Content), perm)
	default:
		err = fmt.Errorf("unknown write mode %d", mode)
	}
	if err != nil {
		return &FileError{Op: "writing", Path: d.Path, Err: err}
	}
	return nil
}

// writeInPlace truncates path and writes data through a single handle.
// A failure midway can leave the file truncated.
func writeInPlace(path string, data []byte, perm os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	n, err := f.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	return err
}

// resolveTarget follows symlinks so the file they point at is replaced,
// not the link itself. A path that does not exist yet is used as is.
func resolveTarget(path string) (string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err == nil {
		return target, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		if _, lerr := os.Lstat(path); errors.Is(lerr, fs.ErrNotExist) {
			return path, nil
		}
	}
	return "", err
}

// atomicWriteToFile writes data to path using temp file + rename pattern.
// The temp file is created next to path with a unique name, so existing
// files are never clobbered, and gets perm before the rename.
func atomicWriteToFile(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath) // Best effort cleanup
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting temp file mode: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
