package filestore

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a named file does not exist in the store.
var ErrNotFound = errors.New("file not found")

// Store is a flat-file store rooted at a single directory. Names are
// sanitized against traversal; uniqueness comes from UniqueName, which is
// the only concurrency-safety mechanism the pipeline relies on.
type Store struct {
	baseDir string
}

// Entry describes one stored file.
type Entry struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int64     `json:"size"`
}

// New creates the base directory if needed and returns a Store over it.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", baseDir, err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Dir returns the store's base directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// Path resolves name inside the store, rejecting traversal attempts.
func (s *Store) Path(name string) (string, error) {
	clean, err := sanitizeName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, clean), nil
}

// Save writes data under name and returns the full path.
func (s *Store) Save(name string, data []byte) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// Read returns the content of the named file, or ErrNotFound.
func (s *Store) Read(name string) ([]byte, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// List returns the files matching ext (e.g. ".json"), newest first.
func (s *Store) List(ext string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.baseDir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ext) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:      de.Name(),
			CreatedAt: info.ModTime().UTC(),
			Size:      info.Size(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// UniqueName produces `<kind>_<UTC YYYYMMDD_HHMMSS>_<32 hex>.<ext>`. The
// random token keeps concurrent requests writing to the same directory from
// colliding.
func UniqueName(kind, ext string) string {
	token := uuid.New()
	return fmt.Sprintf("%s_%s_%s.%s",
		kind,
		time.Now().UTC().Format("20060102_150405"),
		hex.EncodeToString(token[:]),
		ext,
	)
}

func sanitizeName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
