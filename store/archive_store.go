package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/taskdeck/taskdeck/models"
)

// ErrEntryNotFound is returned when an archive ID matches no entry.
var ErrEntryNotFound = errors.New("archive entry not found")

// FileArchiveStore keeps snapshots of archived tasks as JSON files
// under baseDir, organised by year and month, with an index.json for
// fast listing.
type FileArchiveStore struct {
	fs        afero.Fs
	baseDir   string
	indexPath string
	flk       *flock.Flock
}

// NewFileArchiveStore prepares the archive directory and its index.
func NewFileArchiveStore(filesystem afero.Fs, baseDir string) (*FileArchiveStore, error) {
	if err := filesystem.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir %s: %w", baseDir, err)
	}
	s := &FileArchiveStore{
		fs:        filesystem,
		baseDir:   baseDir,
		indexPath: filepath.Join(baseDir, "index.json"),
	}
	if _, osFs := filesystem.(*afero.OsFs); osFs {
		s.flk = flock.New(s.indexPath + lockSuffix)
	}
	exists, err := afero.Exists(filesystem, s.indexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check archive index: %w", err)
	}
	if !exists {
		if err := s.writeIndex(models.ArchiveIndex{Entries: []models.ArchiveIndexItem{}}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// CreateFromTask snapshots the task into a new archive entry and
// records it in the index, newest first.
func (s *FileArchiveStore) CreateFromTask(task models.Task) (models.ArchiveEntry, error) {
	unlock, err := s.lockIndex()
	if err != nil {
		return models.ArchiveEntry{}, err
	}
	defer unlock()

	idx, err := s.readIndex()
	if err != nil {
		return models.ArchiveEntry{}, err
	}

	now := time.Now().UTC()
	entry := models.ArchiveEntry{
		ID:         uuid.NewString(),
		ArchivedAt: now,
		Task:       task,
	}
	path, err := s.entryPath(now, task.Title, entry.ID)
	if err != nil {
		return models.ArchiveEntry{}, err
	}
	if err := s.writeJSON(path, entry); err != nil {
		return models.ArchiveEntry{}, err
	}

	idx.Entries = append(idx.Entries, models.ArchiveIndexItem{
		ID:         entry.ID,
		TaskID:     task.ID,
		Title:      task.Title,
		DueDate:    task.DueDate,
		FilePath:   s.relPath(path),
		ArchivedAt: now,
	})
	sort.SliceStable(idx.Entries, func(i, j int) bool {
		return idx.Entries[i].ArchivedAt.After(idx.Entries[j].ArchivedAt)
	})
	idx.Statistics.TotalEntries = len(idx.Entries)
	if err := s.writeIndex(idx); err != nil {
		return models.ArchiveEntry{}, err
	}
	return entry, nil
}

// List returns the index items, newest first.
func (s *FileArchiveStore) List() ([]models.ArchiveIndexItem, error) {
	unlock, err := s.lockIndex()
	if err != nil {
		return nil, err
	}
	defer unlock()

	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	return idx.Entries, nil
}

// GetByID loads a full archive entry. A unique ID prefix is accepted,
// so users can paste the short form shown in listings.
func (s *FileArchiveStore) GetByID(id string) (models.ArchiveEntry, error) {
	unlock, err := s.lockIndex()
	if err != nil {
		return models.ArchiveEntry{}, err
	}
	defer unlock()

	idx, err := s.readIndex()
	if err != nil {
		return models.ArchiveEntry{}, err
	}
	for _, item := range idx.Entries {
		if item.ID == id || strings.HasPrefix(item.ID, id) {
			var entry models.ArchiveEntry
			if err := s.readJSON(filepath.Join(s.baseDir, item.FilePath), &entry); err != nil {
				return models.ArchiveEntry{}, err
			}
			return entry, nil
		}
	}
	return models.ArchiveEntry{}, fmt.Errorf("archive entry %q: %w", id, ErrEntryNotFound)
}

// Restore re-creates the archived task in the given store as a
// pending task under a fresh ID. The archive entry itself is kept, so
// a restore can be repeated.
func (s *FileArchiveStore) Restore(id string, taskStore *TaskStore) (models.Task, error) {
	entry, err := s.GetByID(id)
	if err != nil {
		return models.Task{}, err
	}
	task, err := taskStore.Add(entry.Task.Title, entry.Task.Description, entry.Task.DueDate, entry.Task.Priority)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to restore archived task: %w", err)
	}
	return task, nil
}

// Close is a no-op; locks are scoped to individual operations.
func (s *FileArchiveStore) Close() error { return nil }

func (s *FileArchiveStore) lockIndex() (func(), error) {
	if s.flk == nil {
		return func() {}, nil
	}
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock archive index: %w", err)
	}
	return func() { _ = s.flk.Unlock() }, nil
}

func (s *FileArchiveStore) readIndex() (models.ArchiveIndex, error) {
	var idx models.ArchiveIndex
	data, err := afero.ReadFile(s.fs, s.indexPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			idx.Entries = []models.ArchiveIndexItem{}
			return idx, nil
		}
		return idx, fmt.Errorf("failed to read archive index: %w", err)
	}
	if len(data) == 0 {
		idx.Entries = []models.ArchiveIndexItem{}
		return idx, nil
	}
	if err := json.Unmarshal(data, &idx); err != nil {
		return models.ArchiveIndex{}, fmt.Errorf("failed to parse archive index: %w", err)
	}
	return idx, nil
}

func (s *FileArchiveStore) writeIndex(idx models.ArchiveIndex) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal archive index: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.indexPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive index: %w", err)
	}
	return nil
}

// entryPath places an entry under baseDir/YYYY/MM with a filename
// built from the archive date, a slug of the title, and a short ID.
func (s *FileArchiveStore) entryPath(t time.Time, title, id string) (string, error) {
	dir := filepath.Join(s.baseDir, t.Format("2006"), t.Format("01"))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory %s: %w", dir, err)
	}
	short := id
	if len(short) > 8 {
		short = id[:8]
	}
	name := fmt.Sprintf("%s_%s-%s.json", t.Format(models.DateLayout), slugify(title), short)
	return filepath.Join(dir, name), nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify reduces a title to a short, filesystem-safe name.
func slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "task"
	}
	if len(slug) > 48 {
		slug = strings.Trim(slug[:48], "-")
	}
	return slug
}

func (s *FileArchiveStore) relPath(path string) string {
	if rel, err := filepath.Rel(s.baseDir, path); err == nil {
		return rel
	}
	return path
}

func (s *FileArchiveStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *FileArchiveStore) readJSON(path string, v any) error {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
