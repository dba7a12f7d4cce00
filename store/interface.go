package store

import (
	"errors"

	"github.com/taskdeck/taskdeck/models"
)

// ErrNotFound is returned when an operation references a task ID that
// is not present in the store.
var ErrNotFound = errors.New("task not found")

// Backend moves the complete task list in and out of durable storage.
// The store keeps the working copy in memory, so a backend never sees
// individual task operations, only whole-list loads and saves.
type Backend interface {
	// Load reads the stored task list. It is called once, when the
	// store opens. A missing or unreadable data source is not an
	// error: backends recover by returning an empty list so a fresh
	// environment starts with zero tasks.
	Load() ([]models.Task, error)

	// Save replaces the stored copy with the given list. It is called
	// with the full list after every mutation and must either write
	// the whole list or leave the previous copy intact.
	Save(tasks []models.Task) error

	// Close releases any resources the backend holds, such as file
	// locks or database handles.
	Close() error
}
