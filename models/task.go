package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the only accepted due date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "Pending"
	StatusCompleted TaskStatus = "Completed"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

var (
	ErrInvalidDate     = errors.New("due date must use the YYYY-MM-DD format")
	ErrInvalidStatus   = errors.New("status must be Pending or Completed")
	ErrInvalidPriority = errors.New("priority must be Low, Medium, or High")
)

// ValidationError reports which task field failed validation and why.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Task represents a single tracked item. Title and description may be
// empty; everything else is constrained by the validate tags.
type Task struct {
	ID          string       `json:"id" yaml:"id" toml:"id" validate:"required"`
	Title       string       `json:"title" yaml:"title" toml:"title"`
	Description string       `json:"description" yaml:"description" toml:"description"`
	DueDate     string       `json:"due_date" yaml:"due_date" toml:"due_date" validate:"required,taskdate"`
	Status      TaskStatus   `json:"status" yaml:"status" toml:"status" validate:"required,oneof=Pending Completed"`
	Priority    TaskPriority `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=Low Medium High"`
	CreatedAt   *time.Time   `json:"created_at,omitempty" yaml:"created_at,omitempty" toml:"created_at,omitempty"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty" yaml:"updated_at,omitempty" toml:"updated_at,omitempty"`
}

// TaskList wraps a task slice for formats that cannot encode a
// top-level array (TOML).
type TaskList struct {
	Tasks []Task `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	mustRegister("taskdate", validateTaskDate)
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("models: register %q validation: %v", tag, err))
	}
}

// validateTaskDate accepts only complete YYYY-MM-DD dates.
func validateTaskDate(fl validator.FieldLevel) bool {
	return ValidDate(fl.Field().String())
}

// ValidateStruct performs validation on any struct that carries
// validate tags, flattening the rule failures into a single error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("field %q failed rule %q (value: %q)", e.StructNamespace(), e.Tag(), fmt.Sprint(e.Value())))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// ValidDate reports whether s is a parseable YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

var titled = cases.Title(language.English)

// Canonicalize trims and title-cases a status or priority value so that
// "pending", "PENDING", and " Pending " all become "Pending".
func Canonicalize(s string) string {
	return titled.String(strings.ToLower(strings.TrimSpace(s)))
}

// ParseStatus converts user input into a TaskStatus, ignoring case and
// surrounding whitespace.
func ParseStatus(s string) (TaskStatus, error) {
	switch st := TaskStatus(Canonicalize(s)); st {
	case StatusPending, StatusCompleted:
		return st, nil
	default:
		return "", &ValidationError{Field: "status", Value: s, Err: ErrInvalidStatus}
	}
}

// ParsePriority converts user input into a TaskPriority, ignoring case
// and surrounding whitespace.
func ParsePriority(s string) (TaskPriority, error) {
	switch p := TaskPriority(Canonicalize(s)); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", &ValidationError{Field: "priority", Value: s, Err: ErrInvalidPriority}
	}
}

// NewTask builds a pending task with timestamps set to now.
func NewTask(id, title, description, dueDate string, priority TaskPriority) Task {
	now := time.Now().UTC()
	return Task{
		ID:          id,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      StatusPending,
		Priority:    priority,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
}

// Normalize fills the defaults older data files may omit: a missing
// status means Pending, a missing priority means Medium.
func (t *Task) Normalize() {
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

// Touch moves the UpdatedAt timestamp to now.
func (t *Task) Touch() {
	now := time.Now().UTC()
	t.UpdatedAt = &now
}
