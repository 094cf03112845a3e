package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophtasks/internal/common"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"

	DefaultPriority = PriorityMedium
	DefaultCategory = "Other"
)

// Column limits of the tasks table, enforced for both stores.
const (
	MaxTitleLength    = 255
	MaxCategoryLength = 100
)

// UnrankedPriority sorts after every known priority.
const UnrankedPriority = 99

// PriorityRank orders High < Medium < Low < anything else.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return UnrankedPriority
	}
}

// ValidPriority reports whether p is one of High, Medium, Low.
func ValidPriority(p string) bool {
	return PriorityRank(p) != UnrankedPriority
}

// Task belongs to exactly one user; UserID never changes.
type Task struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	Priority    string    `db:"priority" json:"priority"`
	DueDate     Date      `db:"due_date" json:"due_date"`
	Completed   int       `db:"completed" json:"completed"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TaskInput carries the fields supplied by a caller. A nil pointer means the
// field was not supplied. DueDate pointing at the zero Date clears the date.
type TaskInput struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	DueDate     *Date
	Completed   *int
}

// Validate checks the supplied fields and reports every failing one.
// requireTitle is set for creation.
func (in TaskInput) Validate(requireTitle bool) error {
	errs := common.FieldErrors{}

	if in.Title == nil {
		if requireTitle {
			errs.Add("title", "Title is required")
		}
	} else if strings.TrimSpace(*in.Title) == "" {
		errs.Add("title", "Title is required")
	} else if utf8.RuneCountInString(*in.Title) > MaxTitleLength {
		errs.Add("title", fmt.Sprintf("Title must be at most %d characters", MaxTitleLength))
	}

	if in.Category != nil && utf8.RuneCountInString(*in.Category) > MaxCategoryLength {
		errs.Add("category", fmt.Sprintf("Category must be at most %d characters", MaxCategoryLength))
	}

	if in.Priority != nil && !ValidPriority(*in.Priority) {
		errs.Add("priority", "Priority must be High, Medium or Low")
	}

	if in.Completed != nil && *in.Completed != 0 && *in.Completed != 1 {
		errs.Add("completed", "Completed must be 0 or 1")
	}

	return errs.OrNil()
}

// NewTask builds a task for userID from in, filling documented defaults for
// absent fields.
func NewTask(userID int64, in TaskInput, now time.Time) Task {
	t := Task{
		UserID:    userID,
		Category:  DefaultCategory,
		Priority:  DefaultPriority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(&t)
	t.UpdatedAt = now
	return t
}

// Apply merges the supplied fields into t, leaving the others untouched.
func (in TaskInput) Apply(t *Task) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Category != nil {
		t.Category = categoryOrDefault(*in.Category)
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = *in.DueDate
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
}

// Changes returns the supplied fields keyed by column name.
func (in TaskInput) Changes() map[string]any {
	m := make(map[string]any, 6)
	if in.Title != nil {
		m["title"] = *in.Title
	}
	if in.Description != nil {
		m["description"] = *in.Description
	}
	if in.Category != nil {
		m["category"] = categoryOrDefault(*in.Category)
	}
	if in.Priority != nil {
		m["priority"] = *in.Priority
	}
	if in.DueDate != nil {
		m["due_date"] = *in.DueDate
	}
	if in.Completed != nil {
		m["completed"] = *in.Completed
	}
	return m
}

func categoryOrDefault(c string) string {
	if strings.TrimSpace(c) == "" {
		return DefaultCategory
	}
	return c
}
