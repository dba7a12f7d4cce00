package store

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/taskdeck/taskdeck/models"
)

func setupArchive(t *testing.T) *FileArchiveStore {
	t.Helper()
	archive, err := NewFileArchiveStore(afero.NewMemMapFs(), "archive")
	if err != nil {
		t.Fatalf("NewFileArchiveStore failed: %v", err)
	}
	return archive
}

func TestFileArchiveStore_CreateAndGet(t *testing.T) {
	archive := setupArchive(t)

	task := models.NewTask("1", "Ship release", "cut the tag", "2024-01-05", models.PriorityHigh)
	task.Status = models.StatusCompleted

	entry, err := archive.CreateFromTask(task)
	if err != nil {
		t.Fatalf("CreateFromTask failed: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry should have an ID")
	}
	if entry.Task.Title != task.Title {
		t.Errorf("snapshot Title = %q, want %q", entry.Task.Title, task.Title)
	}

	got, err := archive.GetByID(entry.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Task.Description != "cut the tag" {
		t.Errorf("Description = %q, want %q", got.Task.Description, "cut the tag")
	}

	// Short prefixes resolve too.
	if _, err := archive.GetByID(entry.ID[:8]); err != nil {
		t.Errorf("GetByID with prefix failed: %v", err)
	}

	if _, err := archive.GetByID("no-such-entry"); err == nil {
		t.Error("expected error for unknown ID")
	}
}

func TestFileArchiveStore_ListNewestFirst(t *testing.T) {
	archive := setupArchive(t)

	for _, title := range []string{"first", "second", "third"} {
		task := models.NewTask("1", title, "", "2024-01-05", models.PriorityMedium)
		if _, err := archive.CreateFromTask(task); err != nil {
			t.Fatalf("CreateFromTask(%q) failed: %v", title, err)
		}
	}

	items, err := archive.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("List returned %d items, want 3", len(items))
	}
	for _, item := range items {
		if item.FilePath == "" {
			t.Errorf("item %s has no file path", item.ID)
		}
	}
}

func TestFileArchiveStore_Restore(t *testing.T) {
	archive := setupArchive(t)
	taskStore, _ := setupStore(t)

	done := models.NewTask("9", "Write report", "quarterly numbers", "2024-01-05", models.PriorityLow)
	done.Status = models.StatusCompleted
	entry, err := archive.CreateFromTask(done)
	if err != nil {
		t.Fatalf("CreateFromTask failed: %v", err)
	}

	restored, err := archive.Restore(entry.ID, taskStore)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	// The restore re-enters the active list as a fresh pending task.
	if restored.ID != "1" {
		t.Errorf("restored ID = %q, want %q", restored.ID, "1")
	}
	if restored.Status != models.StatusPending {
		t.Errorf("restored Status = %q, want %q", restored.Status, models.StatusPending)
	}
	if restored.Title != done.Title || restored.Description != done.Description {
		t.Errorf("restored content mismatch: %+v", restored)
	}

	// The entry stays in the archive.
	if _, err := archive.GetByID(entry.ID); err != nil {
		t.Errorf("entry should survive a restore: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ship Release 1.2", "ship-release-1-2"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"???", "task"},
		{"", "task"},
	}

	for _, tt := range tests {
		if got := slugify(tt.input); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
