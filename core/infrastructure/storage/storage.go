package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/infrastructure/logging"
)

// AcceptedExtensions lists the file extensions accepted for uploads.
var AcceptedExtensions = []string{".db", ".sqlite", ".sqlite3"}

// FileStore persists uploaded database files inside one directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the storage directory
func (s *FileStore) Dir() string {
	return s.dir
}

// CleanName reduces an uploaded file name to its base name and checks the
// extension.
func CleanName(filename string) (string, error) {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" || strings.HasPrefix(name, ".") {
		return "", domain.ErrBadExtension
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return name, nil
		}
	}
	return "", domain.ErrBadExtension
}

// Stage writes content to a temporary file in the storage directory and
// returns its path. The caller must Commit or Discard it.
func (s *FileStore) Stage(name string, content io.Reader) (string, error) {
	log := logging.New("storage")

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	f, err := os.CreateTemp(s.dir, ".upload-*-"+name)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	n, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	log.Debugf("Staged %d byte(s) for '%s'", n, name)
	return f.Name(), nil
}

// Path returns where a file called name is stored
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Commit moves a staged file to its final name, replacing any existing file.
func (s *FileStore) Commit(staged, name string) (string, error) {
	dest := s.Path(name)
	if err := os.Rename(staged, dest); err != nil {
		return "", fmt.Errorf("failed to store '%s': %w", name, err)
	}
	return dest, nil
}

// Discard removes a staged or stored file. Missing files are not an error.
func (s *FileStore) Discard(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
