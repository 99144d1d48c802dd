package entries

import (
	"errors"
	"strings"
)

// ErrMissingFields is returned when a submission lacks name, email or message.
var ErrMissingFields = errors.New("please fill in all fields")

// Record is one stored form submission.
// Records are immutable once written; ID is assigned as the store length + 1.
type Record struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp Timestamp `json:"timestamp"`
}

// Store persists the full ordered list of records.
// Load returns records in insertion order.
// Add loads the store, appends a new record and saves the whole list back.
type Store interface {
	Load() ([]Record, error)
	Save(records []Record) error
	Add(name, email, message string) (Record, error)
}

// Validate checks that every field of a submission is present.
// A field holding only whitespace counts as missing.
func Validate(name, email, message string) error {
	if isBlank(name) || isBlank(email) || isBlank(message) {
		return ErrMissingFields
	}
	return nil
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
