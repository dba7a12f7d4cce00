package store

import (
	"errors"
	"testing"

	"github.com/taskdeck/taskdeck/models"
)

// memBackend is an in-memory Backend for exercising the store without
// touching the filesystem. It records saves so tests can assert that
// mutations persist the full list.
type memBackend struct {
	tasks    []models.Task
	saves    int
	failSave bool
	closed   bool
}

func (b *memBackend) Load() ([]models.Task, error) {
	out := make([]models.Task, len(b.tasks))
	copy(out, b.tasks)
	return out, nil
}

func (b *memBackend) Save(tasks []models.Task) error {
	if b.failSave {
		return errors.New("disk full")
	}
	b.tasks = make([]models.Task, len(tasks))
	copy(b.tasks, tasks)
	b.saves++
	return nil
}

func (b *memBackend) Close() error {
	b.closed = true
	return nil
}

func setupStore(t *testing.T, seed ...models.Task) (*TaskStore, *memBackend) {
	t.Helper()
	backend := &memBackend{tasks: seed}
	store, err := Open(backend)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return store, backend
}

func mustAdd(t *testing.T, s *TaskStore, title, due string, priority models.TaskPriority) models.Task {
	t.Helper()
	task, err := s.Add(title, "", due, priority)
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", title, err)
	}
	return task
}

func TestNextID_FillsSmallestGap(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"empty list", nil, "1"},
		{"sequential", []string{"1", "2", "3"}, "4"},
		{"gap in middle", []string{"1", "3"}, "2"},
		{"missing one", []string{"2", "3"}, "1"},
		{"non-numeric ids ignored", []string{"a", "xyz"}, "1"},
		{"mixed", []string{"1", "2", "extra"}, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]models.Task, len(tt.ids))
			for i, id := range tt.ids {
				tasks[i] = models.Task{ID: id}
			}
			if got := NextID(tasks); got != tt.want {
				t.Errorf("NextID(%v) = %q, want %q", tt.ids, got, tt.want)
			}
		})
	}
}

func TestTaskStore_AddAssignsReusableIDs(t *testing.T) {
	store, _ := setupStore(t)

	first := mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityHigh)
	second := mustAdd(t, store, "Pay bills", "2024-01-03", models.PriorityMedium)

	if first.ID != "1" || second.ID != "2" {
		t.Errorf("IDs = %q, %q, want \"1\", \"2\"", first.ID, second.ID)
	}

	// Deleting a task frees its ID for the next addition.
	if err := store.Delete(first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	third := mustAdd(t, store, "Walk dog", "2024-01-04", models.PriorityLow)
	if third.ID != "1" {
		t.Errorf("reused ID = %q, want \"1\"", third.ID)
	}
	fourth := mustAdd(t, store, "Read book", "2024-01-06", models.PriorityLow)
	if fourth.ID != "3" {
		t.Errorf("next ID = %q, want \"3\"", fourth.ID)
	}
}

func TestTaskStore_AddDefaults(t *testing.T) {
	store, backend := setupStore(t)

	task := mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityHigh)

	if task.Status != models.StatusPending {
		t.Errorf("Status = %q, want %q", task.Status, models.StatusPending)
	}
	if task.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want %q", task.Priority, models.PriorityHigh)
	}
	if backend.saves != 1 {
		t.Errorf("saves = %d, want 1", backend.saves)
	}
	if len(backend.tasks) != 1 {
		t.Errorf("persisted %d tasks, want 1", len(backend.tasks))
	}

	// An empty priority falls back to Medium.
	task2, err := store.Add("Pay bills", "", "2024-01-03", "")
	if err != nil {
		t.Fatalf("Add with empty priority failed: %v", err)
	}
	if task2.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want %q", task2.Priority, models.PriorityMedium)
	}
}

func TestTaskStore_AddRejectsBadDueDate(t *testing.T) {
	store, backend := setupStore(t)

	_, err := store.Add("Buy milk", "", "next friday", models.PriorityMedium)
	if err == nil {
		t.Fatal("expected error for malformed due date")
	}
	if !errors.Is(err, models.ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate", err)
	}
	if store.Count() != 0 {
		t.Errorf("Count() = %d, want 0 after rejected add", store.Count())
	}
	if backend.saves != 0 {
		t.Errorf("saves = %d, want 0 after rejected add", backend.saves)
	}
}

func TestTaskStore_Update(t *testing.T) {
	store, backend := setupStore(t)
	task := mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityMedium)

	desc := "2 liters, lactose free"
	due := "2024-01-07"
	updated, err := store.Update(task.ID, UpdateRequest{Description: &desc, DueDate: &due})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Description != desc {
		t.Errorf("Description = %q, want %q", updated.Description, desc)
	}
	if updated.DueDate != due {
		t.Errorf("DueDate = %q, want %q", updated.DueDate, due)
	}
	if updated.Title != task.Title {
		t.Errorf("Title changed to %q, should stay %q", updated.Title, task.Title)
	}
	if backend.saves != 2 {
		t.Errorf("saves = %d, want 2", backend.saves)
	}
	if backend.tasks[0].Description != desc {
		t.Errorf("persisted description = %q, want %q", backend.tasks[0].Description, desc)
	}
}

func TestTaskStore_UpdateIgnoresInvalidStatusAndPriority(t *testing.T) {
	store, _ := setupStore(t)
	task := mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityMedium)

	desc := "updated anyway"
	badStatus := "banana"
	badPriority := "urgent"
	updated, err := store.Update(task.ID, UpdateRequest{
		Description: &desc,
		Status:      &badStatus,
		Priority:    &badPriority,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Status != models.StatusPending {
		t.Errorf("Status = %q, want %q (invalid value must be ignored)", updated.Status, models.StatusPending)
	}
	if updated.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want %q (invalid value must be ignored)", updated.Priority, models.PriorityMedium)
	}
	if updated.Description != desc {
		t.Errorf("Description = %q, want %q (valid fields still apply)", updated.Description, desc)
	}
}

func TestTaskStore_UpdateAcceptsMixedCaseValues(t *testing.T) {
	store, _ := setupStore(t)
	task := mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityMedium)

	status := "completed"
	priority := "HIGH"
	updated, err := store.Update(task.ID, UpdateRequest{Status: &status, Priority: &priority})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want %q", updated.Status, models.StatusCompleted)
	}
	if updated.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want %q", updated.Priority, models.PriorityHigh)
	}
}

func TestTaskStore_UpdateRejectsBadDueDate(t *testing.T) {
	store, _ := setupStore(t)
	task := mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityMedium)

	desc := "should not apply"
	due := "01/05/2024"
	_, err := store.Update(task.ID, UpdateRequest{Description: &desc, DueDate: &due})
	if err == nil {
		t.Fatal("expected error for malformed due date")
	}
	if !errors.Is(err, models.ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate", err)
	}

	// The whole update is rejected, including the valid fields.
	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Description != "" {
		t.Errorf("Description = %q, want unchanged empty string", got.Description)
	}
	if got.DueDate != "2024-01-05" {
		t.Errorf("DueDate = %q, want unchanged %q", got.DueDate, "2024-01-05")
	}
}

func TestTaskStore_UpdateUnknownID(t *testing.T) {
	store, _ := setupStore(t)

	desc := "anything"
	_, err := store.Update("42", UpdateRequest{Description: &desc})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestTaskStore_MarkCompletedIdempotent(t *testing.T) {
	store, backend := setupStore(t)
	task := mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityMedium)
	savesBefore := backend.saves

	done, err := store.MarkCompleted(task.ID)
	if err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}
	if done.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want %q", done.Status, models.StatusCompleted)
	}

	// Completing again succeeds and leaves the task completed.
	again, err := store.MarkCompleted(task.ID)
	if err != nil {
		t.Fatalf("second MarkCompleted failed: %v", err)
	}
	if again.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want %q", again.Status, models.StatusCompleted)
	}
	if backend.saves != savesBefore+2 {
		t.Errorf("saves = %d, want %d (each call persists)", backend.saves, savesBefore+2)
	}

	_, err = store.MarkCompleted("99")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestTaskStore_Delete(t *testing.T) {
	store, _ := setupStore(t)
	first := mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityMedium)
	second := mustAdd(t, store, "Pay bills", "2024-01-03", models.PriorityMedium)

	if err := store.Delete(first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1", store.Count())
	}
	if _, err := store.Get(first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
	if _, err := store.Get(second.ID); err != nil {
		t.Errorf("remaining task should still be there: %v", err)
	}

	if err := store.Delete("42"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestTaskStore_DeleteMany(t *testing.T) {
	store, backend := setupStore(t)
	mustAdd(t, store, "a", "2024-01-01", models.PriorityLow)
	mustAdd(t, store, "b", "2024-01-02", models.PriorityLow)
	mustAdd(t, store, "c", "2024-01-03", models.PriorityLow)
	savesBefore := backend.saves

	removed, err := store.DeleteMany([]string{"1", "3", "99"})
	if err != nil {
		t.Fatalf("DeleteMany failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1", store.Count())
	}
	if backend.saves != savesBefore+1 {
		t.Errorf("saves = %d, want %d (one save for the batch)", backend.saves, savesBefore+1)
	}

	// No matches means no save.
	removed, err = store.DeleteMany([]string{"42"})
	if err != nil {
		t.Fatalf("DeleteMany failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if backend.saves != savesBefore+1 {
		t.Errorf("saves = %d, want %d (no save when nothing matched)", backend.saves, savesBefore+1)
	}
}

func TestTaskStore_Search(t *testing.T) {
	store, _ := setupStore(t)
	mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityMedium)
	if _, err := store.Add("Pay bills", "electricity and water", "2024-01-03", models.PriorityMedium); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	tests := []struct {
		keyword string
		want    int
	}{
		{"MILK", 1},
		{"milk", 1},
		{"electricity", 1},
		{"bILLs", 1},
		{"", 2},
		{"nothing matches this", 0},
	}

	for _, tt := range tests {
		if got := len(store.Search(tt.keyword)); got != tt.want {
			t.Errorf("Search(%q) returned %d tasks, want %d", tt.keyword, got, tt.want)
		}
	}
}

func TestTaskStore_Filter(t *testing.T) {
	store, _ := setupStore(t)
	mustAdd(t, store, "a", "2024-01-01", models.PriorityHigh)
	mustAdd(t, store, "b", "2024-01-02", models.PriorityMedium)
	done := mustAdd(t, store, "c", "2024-01-03", models.PriorityLow)
	if _, err := store.MarkCompleted(done.ID); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}

	if got := store.Filter(IsPending); len(got) != 2 {
		t.Errorf("Filter(IsPending) returned %d tasks, want 2", len(got))
	}
	if got := store.Filter(IsCompleted); len(got) != 1 {
		t.Errorf("Filter(IsCompleted) returned %d tasks, want 1", len(got))
	}
	if got := store.Filter(HasPriority(models.PriorityHigh)); len(got) != 1 {
		t.Errorf("Filter(HasPriority(High)) returned %d tasks, want 1", len(got))
	}
	if got := store.Filter(nil); len(got) != 3 {
		t.Errorf("Filter(nil) returned %d tasks, want 3", len(got))
	}
}

func TestHasPriority_TreatsMissingAsMedium(t *testing.T) {
	legacy := models.Task{ID: "1", DueDate: "2024-01-05"}

	if !HasPriority(models.PriorityMedium)(legacy) {
		t.Error("task without priority should match Medium")
	}
	if HasPriority(models.PriorityHigh)(legacy) {
		t.Error("task without priority should not match High")
	}
}

func TestSortByDueDate(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "late", DueDate: "2024-03-01"},
		{ID: "2", Title: "early", DueDate: "2024-01-01"},
		{ID: "3", Title: "tie first", DueDate: "2024-02-01"},
		{ID: "4", Title: "tie second", DueDate: "2024-02-01"},
	}

	sorted := SortByDueDate(tasks)

	wantOrder := []string{"2", "3", "4", "1"}
	for i, id := range wantOrder {
		if sorted[i].ID != id {
			t.Errorf("sorted[%d].ID = %q, want %q", i, sorted[i].ID, id)
		}
	}

	// Ties keep their original relative order and the input slice is
	// untouched.
	if tasks[0].ID != "1" {
		t.Errorf("input slice was modified: first ID = %q, want \"1\"", tasks[0].ID)
	}

	// Sorting an already sorted list changes nothing.
	again := SortByDueDate(sorted)
	for i := range sorted {
		if again[i].ID != sorted[i].ID {
			t.Errorf("re-sort changed order at %d: got %q, want %q", i, again[i].ID, sorted[i].ID)
		}
	}
}

func TestSummarize(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Status: models.StatusPending},
		{ID: "2", Status: models.StatusCompleted},
		{ID: "3", Status: models.StatusPending},
	}

	sum := Summarize(tasks)
	if sum.Total != 3 || sum.Pending != 2 || sum.Completed != 1 {
		t.Errorf("Summarize = %+v, want {Total:3 Pending:2 Completed:1}", sum)
	}

	empty := Summarize(nil)
	if empty.Total != 0 || empty.Pending != 0 || empty.Completed != 0 {
		t.Errorf("Summarize(nil) = %+v, want all zero", empty)
	}
}

func TestTaskStore_SaveFailureRollsBack(t *testing.T) {
	store, backend := setupStore(t)
	task := mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityMedium)

	backend.failSave = true

	if _, err := store.Add("doomed", "", "2024-01-06", models.PriorityLow); err == nil {
		t.Fatal("expected Add to fail when the backend cannot save")
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1 after rolled back add", store.Count())
	}

	desc := "never applied"
	if _, err := store.Update(task.ID, UpdateRequest{Description: &desc}); err == nil {
		t.Fatal("expected Update to fail when the backend cannot save")
	}
	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Description != "" {
		t.Errorf("Description = %q, want unchanged after rollback", got.Description)
	}

	if err := store.Delete(task.ID); err == nil {
		t.Fatal("expected Delete to fail when the backend cannot save")
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1 after rolled back delete", store.Count())
	}
}

func TestTaskStore_OpenNormalizesLegacyTasks(t *testing.T) {
	seed := models.Task{ID: "1", Title: "old", DueDate: "2023-05-01"}
	store, _ := setupStore(t, seed)

	got, err := store.Get("1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("Status = %q, want %q", got.Status, models.StatusPending)
	}
	if got.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want %q", got.Priority, models.PriorityMedium)
	}
}

func TestTaskStore_TasksReturnsCopy(t *testing.T) {
	store, _ := setupStore(t)
	mustAdd(t, store, "Buy milk", "2024-01-05", models.PriorityMedium)

	tasks := store.Tasks()
	tasks[0].Title = "mutated"

	got, err := store.Get("1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Buy milk" {
		t.Errorf("internal state leaked: Title = %q", got.Title)
	}
}

func TestTaskStore_Close(t *testing.T) {
	store, backend := setupStore(t)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !backend.closed {
		t.Error("Close should close the backend")
	}
}
