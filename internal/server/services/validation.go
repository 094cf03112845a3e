package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

var errInvalidBody = common.WithMessage(common.ErrValidation, "request body must be a JSON object")

const (
	msgTitleRequired = "Title is required"
	msgTitleType     = "Title must be a string"
	msgDescription   = "Description must be a string"
	msgCategory      = "Category must be a string"
	msgPriority      = "Priority must be High, Medium or Low"
	msgDueDate       = "Invalid date"
	msgCompleted     = "Completed must be a boolean or 0/1"
)

// ParseTaskInput decodes a create (requireTitle) or update payload. Every
// failing field is reported at once through common.FieldErrors; a body that
// is not a JSON object fails with common.ErrValidation. Unknown keys are
// ignored.
//
// Null means "not supplied" for title, priority and completed, and so does
// an empty priority. For description and category null resets to the
// default, for due_date it clears the date.
func ParseTaskInput(data []byte, requireTitle bool) (models.TaskInput, error) {
	var in models.TaskInput

	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return in, errInvalidBody
		}
	}

	errs := common.FieldErrors{}

	if v, ok := present(raw, "title"); ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			errs.Add("title", msgTitleType)
		} else {
			in.Title = &s
		}
	}

	in.Description = nullableString(raw, "description", msgDescription, errs)
	in.Category = nullableString(raw, "category", msgCategory, errs)

	if v, ok := present(raw, "priority"); ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			errs.Add("priority", msgPriority)
		} else if s != "" {
			in.Priority = &s
		}
	}

	if v, ok := raw["due_date"]; ok {
		var d models.Date
		if err := json.Unmarshal(v, &d); err != nil {
			errs.Add("due_date", msgDueDate)
		} else {
			in.DueDate = &d
		}
	}

	if v, ok := present(raw, "completed"); ok {
		if c, ok := parseCompleted(v); ok {
			in.Completed = &c
		} else {
			errs.Add("completed", msgCompleted)
		}
	}

	if verr := in.Validate(requireTitle); verr != nil {
		for field, msg := range verr.(common.FieldErrors) {
			errs.Add(field, msg)
		}
	}

	return in, errs.OrNil()
}

// present returns the raw value of key unless it is absent or null.
func present(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := raw[key]
	if !ok || isNull(v) {
		return nil, false
	}
	return v, true
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

// nullableString decodes a string field where null stands for "".
func nullableString(raw map[string]json.RawMessage, key, msg string, errs common.FieldErrors) *string {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	s := ""
	if !isNull(v) {
		if err := json.Unmarshal(v, &s); err != nil {
			errs.Add(key, msg)
			return nil
		}
	}
	return &s
}

// parseCompleted coerces booleans, numbers and their string spellings to 0/1.
func parseCompleted(v json.RawMessage) (int, bool) {
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return boolToInt(b), true
	}

	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return boolToInt(n != 0), true
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			return 1, true
		case "false", "0":
			return 0, true
		}
	}
	return 0, false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
