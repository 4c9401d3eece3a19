package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Saver persists a retrieved report and returns where it went.
type Saver interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// FileSaver writes reports into a directory. A report is written to a temp
// file first and renamed into place, so a failed save leaves nothing behind.
type FileSaver struct {
	Fs  afero.Fs
	Dir string
}

func NewFileSaver(fs afero.Fs, dir string) *FileSaver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileSaver{Fs: fs, Dir: dir}
}

func (s *FileSaver) Save(_ context.Context, name string, data []byte) (path string, err error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid report name %q", name)
	}
	if err := s.Fs.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", s.Dir, err)
	}

	tmp, err := afero.TempFile(s.Fs, s.Dir, "."+name+".*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = s.Fs.Remove(tmpName)
		}
	}()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil {
		return "", fmt.Errorf("write %s: %w", tmpName, werr)
	}
	if cerr != nil {
		return "", fmt.Errorf("close %s: %w", tmpName, cerr)
	}

	path = filepath.Join(s.Dir, name)
	if err := s.Fs.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("rename into %s: %w", path, err)
	}
	return path, nil
}
