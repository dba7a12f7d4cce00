package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/taskdeck/taskdeck/models"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

const (
	checksumSuffix = ".checksum"
	lockSuffix     = ".lock"
)

// FileBackend stores the task list in a single file. Saves are atomic
// (temp file plus rename) and each save writes a SHA256 checksum
// sidecar used to detect corruption on the next load.
//
// JSON and YAML files hold a plain task array, which keeps data files
// written by earlier versions readable. TOML cannot encode a top-level
// array, so that format wraps the list in a tasks table.
type FileBackend struct {
	fs       afero.Fs
	path     string
	format   string
	flk      *flock.Flock
	readOnly bool
}

// FileOption adjusts how a FileBackend is constructed.
type FileOption func(*FileBackend)

// ReadOnly opens the backend without taking the session lock. Save
// calls will fail. Used by observers that only ever read the file.
func ReadOnly() FileOption {
	return func(b *FileBackend) { b.readOnly = true }
}

// NewFileBackend prepares a file-backed store at path. On a real
// filesystem it takes an exclusive lock for the lifetime of the
// backend, so a second process opening the same file fails fast
// instead of silently interleaving writes.
func NewFileBackend(filesystem afero.Fs, path, format string, opts ...FileOption) (*FileBackend, error) {
	switch format {
	case FormatJSON, FormatYAML, FormatTOML:
	default:
		return nil, fmt.Errorf("unsupported data file format %q, supported formats are json, yaml, toml", format)
	}

	b := &FileBackend{fs: filesystem, path: path, format: format}
	for _, opt := range opts {
		opt(b)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := filesystem.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}

	// flock needs a real file descriptor, so locking only applies on
	// the OS filesystem. The lock lives in a sidecar file because the
	// data file itself is replaced by rename on every save.
	if _, osFs := filesystem.(*afero.OsFs); osFs && !b.readOnly {
		b.flk = flock.New(path + lockSuffix)
		locked, err := b.flk.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock for %s: %w", path, err)
		}
		if !locked {
			return nil, fmt.Errorf("task file %s is locked by another process", path)
		}
	}

	return b, nil
}

// Path returns the data file location.
func (b *FileBackend) Path() string { return b.path }

// Format returns the configured file format.
func (b *FileBackend) Format() string { return b.format }

// Load reads the task list from the file. A missing file, an empty
// file, a failed checksum, or undecodable content all produce an
// empty list; only unexpected I/O failures surface as errors.
func (b *FileBackend) Load() ([]models.Task, error) {
	data, err := afero.ReadFile(b.fs, b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", b.path, err)
	}
	if len(data) == 0 {
		return []models.Task{}, nil
	}

	if ok, err := b.verifyChecksum(data); err != nil {
		return nil, err
	} else if !ok {
		log.Warn("task file failed its checksum, starting with an empty list", "path", b.path)
		return []models.Task{}, nil
	}

	tasks, err := b.decode(data)
	if err != nil {
		log.Warn("task file could not be parsed, starting with an empty list", "path", b.path, "err", err)
		return []models.Task{}, nil
	}
	return tasks, nil
}

// Save writes the full task list to the file, replacing the previous
// copy atomically and refreshing the checksum sidecar.
func (b *FileBackend) Save(tasks []models.Task) error {
	if b.readOnly {
		return fmt.Errorf("backend for %s is read-only", b.path)
	}

	data, err := b.encode(tasks)
	if err != nil {
		return err
	}

	tempPath := b.path + ".tmp"
	checksumPath := b.path + checksumSuffix
	tempChecksumPath := checksumPath + ".tmp"

	defer func() { _ = b.fs.Remove(tempPath) }()
	defer func() { _ = b.fs.Remove(tempChecksumPath) }()

	if err := afero.WriteFile(b.fs, tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary data file %s: %w", tempPath, err)
	}
	if err := afero.WriteFile(b.fs, tempChecksumPath, []byte(checksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary checksum file %s: %w", tempChecksumPath, err)
	}

	if err := b.fs.Rename(tempPath, b.path); err != nil {
		return fmt.Errorf("failed to replace data file %s: %w", b.path, err)
	}
	if err := b.fs.Rename(tempChecksumPath, checksumPath); err != nil {
		// The data file is already in place. Leaving a stale checksum
		// would make the next load discard good data, so drop it.
		_ = b.fs.Remove(checksumPath)
		return fmt.Errorf("failed to replace checksum file %s: %w", checksumPath, err)
	}
	return nil
}

// Close releases the session lock, if one was taken.
func (b *FileBackend) Close() error {
	if b.flk != nil {
		return b.flk.Unlock()
	}
	return nil
}

// verifyChecksum compares data against the sidecar. A missing sidecar
// passes: files written before checksums existed are still accepted,
// and the next save creates one.
func (b *FileBackend) verifyChecksum(data []byte) (bool, error) {
	raw, err := afero.ReadFile(b.fs, b.path+checksumSuffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("failed to read checksum file %s: %w", b.path+checksumSuffix, err)
	}
	return strings.TrimSpace(string(raw)) == checksum(data), nil
}

// VerifyChecksumFile compares the data file at path against its checksum
// sidecar. hasSidecar reports whether a sidecar exists at all; when it
// does not, ok is true because pre-checksum files are still accepted.
func VerifyChecksumFile(filesystem afero.Fs, path string) (ok bool, hasSidecar bool, err error) {
	raw, err := afero.ReadFile(filesystem, path+checksumSuffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, false, nil
		}
		return false, false, fmt.Errorf("failed to read checksum file %s: %w", path+checksumSuffix, err)
	}
	data, err := afero.ReadFile(filesystem, path)
	if err != nil {
		return false, true, fmt.Errorf("failed to read data file %s: %w", path, err)
	}
	return strings.TrimSpace(string(raw)) == checksum(data), true, nil
}

func (b *FileBackend) decode(data []byte) ([]models.Task, error) {
	switch b.format {
	case FormatJSON:
		var tasks []models.Task
		if err := json.Unmarshal(data, &tasks); err == nil {
			return tasks, nil
		}
		// Fall back to the wrapped shape in case the file was
		// converted from TOML by hand.
		var list models.TaskList
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON from %s: %w", b.path, err)
		}
		return list.Tasks, nil
	case FormatYAML:
		var tasks []models.Task
		if err := yaml.Unmarshal(data, &tasks); err == nil {
			return tasks, nil
		}
		var list models.TaskList
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML from %s: %w", b.path, err)
		}
		return list.Tasks, nil
	case FormatTOML:
		var list models.TaskList
		if err := toml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to unmarshal TOML from %s: %w", b.path, err)
		}
		return list.Tasks, nil
	default:
		return nil, fmt.Errorf("unsupported data format for loading: %s", b.format)
	}
}

func (b *FileBackend) encode(tasks []models.Task) ([]byte, error) {
	// Marshal a non-nil slice so an empty store encodes as an empty
	// list rather than null.
	if tasks == nil {
		tasks = []models.Task{}
	}
	switch b.format {
	case FormatJSON:
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tasks to JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(tasks)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tasks to YAML: %w", err)
		}
		return data, nil
	case FormatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(models.TaskList{Tasks: tasks}); err != nil {
			return nil, fmt.Errorf("failed to marshal tasks to TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported data format for saving: %s", b.format)
	}
}

// checksum computes the SHA256 checksum of the given data.
func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
