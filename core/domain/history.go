package domain

import "time"

// HistoryEntry records one translation request. Entries live for the
// lifetime of the process only.
type HistoryEntry struct {
	ID          int       `json:"id"`
	Question    string    `json:"question"`
	SQL         string    `json:"sql"`
	Explanation string    `json:"explanation"`
	Success     bool      `json:"success"`
	RowCount    int       `json:"row_count"`
	Timestamp   time.Time `json:"timestamp"`
}
