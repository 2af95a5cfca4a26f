package table

import (
	"fmt"
	"os"
	"path/filepath"
)

// Staged is a fully written temp file waiting to be renamed over its target
type Staged struct {
	tmp  string
	path string
}

// Stage writes through a temp file in the target directory. Nothing is
// visible at path until Commit.
func Stage(path string, write func(f *os.File) error) (_ *Staged, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dir %s: %w", dir, err)
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return nil, fmt.Errorf("target %s is a directory", path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return nil, fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return nil, fmt.Errorf("chmod %s: %w", path, err)
	}
	return &Staged{tmp: tmp.Name(), path: path}, nil
}

// Commit renames the temp file into place
func (s *Staged) Commit() error {
	if err := os.Rename(s.tmp, s.path); err != nil {
		os.Remove(s.tmp)
		return fmt.Errorf("rename into %s: %w", s.path, err)
	}
	return nil
}

// Discard removes the temp file without touching the target
func (s *Staged) Discard() {
	os.Remove(s.tmp)
}

// WriteFileAtomic stages and commits in one step, so readers never see a partially written file
func WriteFileAtomic(path string, write func(f *os.File) error) error {
	staged, err := Stage(path, write)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// Stage writes the table as CSV to a temp file next to path
func (t *Table) Stage(path string) (*Staged, error) {
	return Stage(path, func(f *os.File) error {
		return t.Write(f)
	})
}

// WriteFile atomically writes the table as CSV
func (t *Table) WriteFile(path string) error {
	staged, err := t.Stage(path)
	if err != nil {
		return err
	}
	return staged.Commit()
}
