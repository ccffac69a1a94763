package files

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidName is returned for names that reduce to nothing usable.
	ErrInvalidName = errors.New("invalid file name")
	// ErrUnsupportedExtension is returned for names outside the allowed set.
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// Manager stores uploaded input files.
type Manager struct {
	dir      string
	allowed  map[string]struct{}
	maxBytes int64
	logger   *slog.Logger
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	// AllowedExtensions without leading dots. Empty means DefaultInputExtensions.
	AllowedExtensions []string
	// MaxBytes caps a single file. Zero means no limit.
	MaxBytes int64
	Logger   *slog.Logger
}

// NewManager creates a file manager writing into dir.
func NewManager(dir string, opts ManagerOptions) *Manager {
	exts := opts.AllowedExtensions
	if len(exts) == 0 {
		exts = DefaultInputExtensions
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		dir:      dir,
		allowed:  extensionSet(exts),
		maxBytes: opts.MaxBytes,
		logger:   logger.With(slog.String("component", "file_manager")),
	}
}

// Dir returns the directory files are stored in.
func (m *Manager) Dir() string {
	return m.dir
}

// SanitizeName strips any directory part from name and checks its
// extension against the allowed set.
func (m *Manager) SanitizeName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if base == "." || base == "/" || base == ".." || base == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, ok := m.allowed[extensionOf(base)]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExtension, base)
	}
	return base, nil
}

// Save writes r into the managed directory under the sanitized name,
// replacing any existing file of that name. The content goes to a
// temporary file first so readers never observe a partial file.
func (m *Manager) Save(name string, r io.Reader) (string, error) {
	base, err := m.SanitizeName(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", m.dir, err)
	}

	tmpPath := filepath.Join(m.dir, "."+uuid.New().String()+".upload")
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmpPath)

	src := r
	if m.maxBytes > 0 {
		src = io.LimitReader(r, m.maxBytes+1)
	}
	n, err := io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", base, err)
	}
	if m.maxBytes > 0 && n > m.maxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, m.maxBytes)
	}

	dst := filepath.Join(m.dir, base)
	if err := os.Rename(tmpPath, dst); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", base, err)
	}

	m.logger.Info("Stored input file",
		slog.String("name", base),
		slog.String("path", dst),
		slog.Int64("bytes", n))
	return dst, nil
}

// Path returns the location of name inside the managed directory.
func (m *Manager) Path(name string) (string, error) {
	base, err := m.SanitizeName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(m.dir, base), nil
}

// Remove deletes a stored file. A file that is already gone is not an
// error.
func (m *Manager) Remove(name string) error {
	path, err := m.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", filepath.Base(path), err)
	}
	m.logger.Info("Removed input file", slog.String("path", path))
	return nil
}

// FileExists checks if a stored file with name exists.
func (m *Manager) FileExists(name string) bool {
	path, err := m.Path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
