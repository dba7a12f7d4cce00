package models

import "time"

// ArchiveEntry is a snapshot of a task taken when it was moved out of
// the active list. The task is stored verbatim so a restore can bring
// it back without loss.
type ArchiveEntry struct {
	ID         string    `json:"id"`
	ArchivedAt time.Time `json:"archived_at"`
	Task       Task      `json:"task"`
}

// ArchiveIndex summarizes archive entries for fast listing.
type ArchiveIndex struct {
	Entries    []ArchiveIndexItem `json:"entries"`
	Statistics struct {
		TotalEntries int `json:"total_entries"`
	} `json:"statistics"`
}

// ArchiveIndexItem is a compact record of one archived task.
type ArchiveIndexItem struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	Title      string    `json:"title"`
	DueDate    string    `json:"due_date"`
	FilePath   string    `json:"file_path"`
	ArchivedAt time.Time `json:"archived_at"`
}
