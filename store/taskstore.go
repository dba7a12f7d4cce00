package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/taskdeck/taskdeck/models"
)

// TaskStore owns the in-memory task list and writes it back through
// its backend after every mutation. Tasks keep their insertion order;
// IDs are small numeric strings that are reused once freed.
//
// A store is built for single-process use. Open loads the list once,
// every mutating operation persists the full list before returning,
// and Close releases the backend.
type TaskStore struct {
	backend Backend
	tasks   []models.Task
}

// Open loads the task list from the backend and returns a ready store.
func Open(backend Backend) (*TaskStore, error) {
	tasks, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	return &TaskStore{backend: backend, tasks: tasks}, nil
}

// Close releases the backend. The store must not be used afterwards.
func (s *TaskStore) Close() error {
	return s.backend.Close()
}

// Count returns the number of tasks currently in the store.
func (s *TaskStore) Count() int {
	return len(s.tasks)
}

// Tasks returns a copy of the task list in insertion order.
func (s *TaskStore) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(id string) (models.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("task %q: %w", id, ErrNotFound)
}

// NextID returns the smallest positive integer, as a decimal string,
// that no task in the list currently uses. Deleting a task frees its
// ID for the next addition.
func NextID(tasks []models.Task) string {
	used := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		used[t.ID] = struct{}{}
	}
	for n := 1; ; n++ {
		id := strconv.Itoa(n)
		if _, ok := used[id]; !ok {
			return id
		}
	}
}

// Add validates the input, appends a new pending task with the next
// free ID, and persists the list. Title and description may be empty.
func (s *TaskStore) Add(title, description, dueDate string, priority models.TaskPriority) (models.Task, error) {
	if !models.ValidDate(dueDate) {
		return models.Task{}, &models.ValidationError{Field: "due_date", Value: dueDate, Err: models.ErrInvalidDate}
	}
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	case "":
		priority = models.PriorityMedium
	default:
		return models.Task{}, &models.ValidationError{Field: "priority", Value: string(priority), Err: models.ErrInvalidPriority}
	}

	task := models.NewTask(NextID(s.tasks), title, description, dueDate, priority)
	s.tasks = append(s.tasks, task)
	if err := s.persist(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return models.Task{}, err
	}
	return task, nil
}

// UpdateRequest carries the optional field changes for Update. A nil
// pointer leaves the field untouched. The task title is fixed at
// creation and cannot be changed here.
type UpdateRequest struct {
	Description *string
	DueDate     *string
	Status      *string
	Priority    *string
}

// Update applies the requested changes to a task and persists the
// list. An invalid due date rejects the whole update. Invalid status
// or priority values are silently ignored while the remaining fields
// still apply; the caller is expected to have offered the valid
// choices already.
func (s *TaskStore) Update(id string, req UpdateRequest) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("task %q: %w", id, ErrNotFound)
	}
	if req.DueDate != nil && !models.ValidDate(*req.DueDate) {
		return models.Task{}, &models.ValidationError{Field: "due_date", Value: *req.DueDate, Err: models.ErrInvalidDate}
	}

	prev := s.tasks[i]
	next := prev
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.DueDate != nil {
		next.DueDate = *req.DueDate
	}
	if req.Status != nil {
		if status, err := models.ParseStatus(*req.Status); err == nil {
			next.Status = status
		}
	}
	if req.Priority != nil {
		if priority, err := models.ParsePriority(*req.Priority); err == nil {
			next.Priority = priority
		}
	}

	if next != prev {
		next.Touch()
	}
	s.tasks[i] = next
	if err := s.persist(); err != nil {
		s.tasks[i] = prev
		return models.Task{}, err
	}
	return next, nil
}

// MarkCompleted sets a task's status to Completed and persists the
// list. Completing an already completed task succeeds and changes
// nothing.
func (s *TaskStore) MarkCompleted(id string) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("task %q: %w", id, ErrNotFound)
	}
	prev := s.tasks[i]
	next := prev
	if next.Status != models.StatusCompleted {
		next.Status = models.StatusCompleted
		next.Touch()
	}
	s.tasks[i] = next
	if err := s.persist(); err != nil {
		s.tasks[i] = prev
		return models.Task{}, err
	}
	return next, nil
}

// Delete removes a task by ID and persists the list. The freed ID
// becomes available to the next Add.
func (s *TaskStore) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("task %q: %w", id, ErrNotFound)
	}
	prev := s.tasks
	next := make([]models.Task, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	s.tasks = next
	if err := s.persist(); err != nil {
		s.tasks = prev
		return err
	}
	return nil
}

// DeleteMany removes every task whose ID is in ids and persists the
// list once. It returns the number of tasks removed. Unknown IDs are
// skipped rather than treated as errors.
func (s *TaskStore) DeleteMany(ids []string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	prev := s.tasks
	next := make([]models.Task, 0, len(prev))
	for _, t := range prev {
		if _, ok := drop[t.ID]; !ok {
			next = append(next, t)
		}
	}
	removed := len(prev) - len(next)
	if removed == 0 {
		return 0, nil
	}
	s.tasks = next
	if err := s.persist(); err != nil {
		s.tasks = prev
		return 0, err
	}
	return removed, nil
}

// Search returns the tasks whose title or description contains the
// keyword, ignoring case. An empty keyword matches every task.
func (s *TaskStore) Search(keyword string) []models.Task {
	needle := strings.ToLower(keyword)
	var out []models.Task
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}

// Predicate selects tasks for Filter.
type Predicate func(models.Task) bool

// IsPending keeps tasks that are not yet completed.
var IsPending Predicate = func(t models.Task) bool {
	return t.Status == models.StatusPending
}

// IsCompleted keeps completed tasks.
var IsCompleted Predicate = func(t models.Task) bool {
	return t.Status == models.StatusCompleted
}

// HasPriority keeps tasks with the given priority. A task without a
// priority counts as Medium.
func HasPriority(p models.TaskPriority) Predicate {
	return func(t models.Task) bool {
		got := t.Priority
		if got == "" {
			got = models.PriorityMedium
		}
		return got == p
	}
}

// Filter returns the tasks matching the predicate, in insertion
// order. A nil predicate matches everything.
func (s *TaskStore) Filter(keep Predicate) []models.Task {
	if keep == nil {
		return s.Tasks()
	}
	var out []models.Task
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortByDueDate returns a copy of tasks ordered by due date. The sort
// is stable, so tasks sharing a due date keep their relative order,
// and the input slice is never modified. Dates compare as strings,
// which matches chronological order for the YYYY-MM-DD layout.
func SortByDueDate(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate < out[j].DueDate
	})
	return out
}

// Summary reports task counts by completion state. Anything not
// completed counts as pending, so Total is always Pending+Completed.
type Summary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// Summarize computes a Summary over the given tasks.
func Summarize(tasks []models.Task) Summary {
	sum := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			sum.Completed++
		}
	}
	sum.Pending = sum.Total - sum.Completed
	return sum
}

// Summary computes the counts for the store's current list.
func (s *TaskStore) Summary() Summary {
	return Summarize(s.tasks)
}

func (s *TaskStore) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) persist() error {
	if err := s.backend.Save(s.tasks); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}
