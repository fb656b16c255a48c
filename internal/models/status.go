package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ReadingStatus is the integer code shared with the backend describing a
// user's relationship to a book. The numeric values are part of the wire
// contract.
type ReadingStatus int

const (
	// ToRead marks a book the user intends to read.
	ToRead ReadingStatus = 0
	// Reading marks a book in progress.
	Reading ReadingStatus = 1
	// Completed marks a finished book.
	Completed ReadingStatus = 2
	// Dropped marks an abandoned book.
	Dropped ReadingStatus = 3
)

var statusLabels = map[ReadingStatus]string{
	ToRead:    "To Read",
	Reading:   "Reading",
	Completed: "Completed",
	Dropped:   "Dropped",
}

// Valid reports whether s is one of the four known codes.
func (s ReadingStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s ReadingStatus) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("ReadingStatus(%d)", int(s))
}

// ParseReadingStatus accepts either the numeric code ("2") or a label
// ("completed", "to-read", "to read", "in-progress").
func ParseReadingStatus(v string) (ReadingStatus, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	if n, err := strconv.Atoi(v); err == nil {
		s := ReadingStatus(n)
		if !s.Valid() {
			return 0, fmt.Errorf("unknown reading status %d", n)
		}
		return s, nil
	}
	switch strings.NewReplacer("-", " ", "_", " ").Replace(v) {
	case "to read", "toread":
		return ToRead, nil
	case "reading", "in progress":
		return Reading, nil
	case "completed", "done":
		return Completed, nil
	case "dropped":
		return Dropped, nil
	}
	return 0, fmt.Errorf("unknown reading status %q", v)
}
