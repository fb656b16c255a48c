package models

import "math"

// LibraryStats summarises a user's shelf for the dashboard.
type LibraryStats struct {
	Total     int
	ToRead    int
	Reading   int
	Completed int
	Dropped   int
	// AverageProgress is the mean progress across all entries, rounded to
	// the nearest integer. Zero for an empty shelf.
	AverageProgress int
}

// SummarizeLibrary counts entries per reading status.
func SummarizeLibrary(books []UserBook) LibraryStats {
	stats := LibraryStats{Total: len(books)}
	sum := 0
	for _, b := range books {
		switch b.ReadingStatus {
		case ToRead:
			stats.ToRead++
		case Reading:
			stats.Reading++
		case Completed:
			stats.Completed++
		case Dropped:
			stats.Dropped++
		}
		sum += b.Progress
	}
	if len(books) > 0 {
		stats.AverageProgress = int(math.Round(float64(sum) / float64(len(books))))
	}
	return stats
}

// FilterByStatus returns the entries with the given status, preserving order.
func FilterByStatus(books []UserBook, status ReadingStatus) []UserBook {
	out := make([]UserBook, 0, len(books))
	for _, b := range books {
		if b.ReadingStatus == status {
			out = append(out, b)
		}
	}
	return out
}
