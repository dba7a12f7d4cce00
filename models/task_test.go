package models

import (
	"encoding/json"
	"testing"
)

func TestTask_ValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{
			name: "valid task",
			task: Task{
				ID:       "1",
				Title:    "Buy milk",
				DueDate:  "2024-01-05",
				Status:   StatusPending,
				Priority: PriorityHigh,
			},
			wantErr: false,
		},
		{
			name: "empty title is allowed",
			task: Task{
				ID:       "2",
				Title:    "",
				DueDate:  "2024-01-05",
				Status:   StatusPending,
				Priority: PriorityMedium,
			},
			wantErr: false,
		},
		{
			name: "missing id",
			task: Task{
				Title:    "Buy milk",
				DueDate:  "2024-01-05",
				Status:   StatusPending,
				Priority: PriorityMedium,
			},
			wantErr: true,
		},
		{
			name: "malformed due date",
			task: Task{
				ID:       "3",
				Title:    "Buy milk",
				DueDate:  "tomorrow",
				Status:   StatusPending,
				Priority: PriorityMedium,
			},
			wantErr: true,
		},
		{
			name: "incomplete due date",
			task: Task{
				ID:       "4",
				Title:    "Buy milk",
				DueDate:  "2024-01",
				Status:   StatusPending,
				Priority: PriorityMedium,
			},
			wantErr: true,
		},
		{
			name: "invalid status",
			task: Task{
				ID:       "5",
				Title:    "Buy milk",
				DueDate:  "2024-01-05",
				Status:   "Done",
				Priority: PriorityMedium,
			},
			wantErr: true,
		},
		{
			name: "lowercase status is rejected",
			task: Task{
				ID:       "6",
				Title:    "Buy milk",
				DueDate:  "2024-01-05",
				Status:   "pending",
				Priority: PriorityMedium,
			},
			wantErr: true,
		},
		{
			name: "invalid priority",
			task: Task{
				ID:       "7",
				Title:    "Buy milk",
				DueDate:  "2024-01-05",
				Status:   StatusPending,
				Priority: "Urgent",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.task)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    TaskStatus
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"PENDING", StatusPending, false},
		{"  Completed ", StatusCompleted, false},
		{"completed", StatusCompleted, false},
		{"done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    TaskPriority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"MEDIUM", PriorityMedium, false},
		{"hIgH", PriorityHigh, false},
		{" high ", PriorityHigh, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePriority(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2024-01-05", true},
		{"2024-12-31", true},
		{"2024-13-01", false},
		{"2024-02-30", false},
		{"05-01-2024", false},
		{"2024/01/05", false},
		{"", false},
		{"next week", false},
	}

	for _, tt := range tests {
		if got := ValidDate(tt.input); got != tt.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTask_JSONFieldNames(t *testing.T) {
	task := NewTask("1", "Buy milk", "2 liters", "2024-01-05", PriorityMedium)

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("failed to marshal task: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to unmarshal raw map: %v", err)
	}

	for _, key := range []string{"id", "title", "description", "due_date", "status", "priority"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("marshalled task is missing key %q", key)
		}
	}
	if raw["due_date"] != "2024-01-05" {
		t.Errorf("due_date = %v, want %q", raw["due_date"], "2024-01-05")
	}

	var restored Task
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("failed to unmarshal task: %v", err)
	}
	if restored.ID != task.ID || restored.Title != task.Title || restored.DueDate != task.DueDate {
		t.Errorf("round trip mismatch: got %+v, want %+v", restored, task)
	}
	if restored.Status != StatusPending {
		t.Errorf("Status = %q, want %q", restored.Status, StatusPending)
	}
}

func TestTask_UnmarshalLegacyPayload(t *testing.T) {
	// Payload shape written by earlier versions: no timestamps, and
	// priority may be absent entirely.
	payload := []byte(`{"id":"3","title":"Pay bills","description":"","due_date":"2024-02-01","status":"Pending"}`)

	var task Task
	if err := json.Unmarshal(payload, &task); err != nil {
		t.Fatalf("failed to unmarshal legacy payload: %v", err)
	}
	task.Normalize()

	if task.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want %q after Normalize", task.Priority, PriorityMedium)
	}
	if task.CreatedAt != nil {
		t.Errorf("CreatedAt = %v, want nil for legacy payload", task.CreatedAt)
	}
}

func TestNewTask_Defaults(t *testing.T) {
	task := NewTask("7", "Call dentist", "", "2024-03-01", PriorityLow)

	if task.Status != StatusPending {
		t.Errorf("Status = %q, want %q", task.Status, StatusPending)
	}
	if task.Priority != PriorityLow {
		t.Errorf("Priority = %q, want %q", task.Priority, PriorityLow)
	}
	if task.CreatedAt == nil || task.UpdatedAt == nil {
		t.Error("expected CreatedAt and UpdatedAt to be set")
	}
	if err := ValidateStruct(task); err != nil {
		t.Errorf("new task failed validation: %v", err)
	}
}

func TestNormalize(t *testing.T) {
	task := Task{ID: "1", DueDate: "2024-01-05"}
	task.Normalize()

	if task.Status != StatusPending {
		t.Errorf("Status = %q, want %q", task.Status, StatusPending)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want %q", task.Priority, PriorityMedium)
	}

	// Normalize must not clobber values that are already set.
	done := Task{ID: "2", DueDate: "2024-01-05", Status: StatusCompleted, Priority: PriorityHigh}
	done.Normalize()
	if done.Status != StatusCompleted || done.Priority != PriorityHigh {
		t.Errorf("Normalize changed populated fields: %+v", done)
	}
}
