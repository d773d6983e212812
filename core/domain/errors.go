package domain

// Domain errors
var (
	ErrEmptyQuestion    = &DomainError{Message: "Question cannot be empty."}
	ErrEmptySQL         = &DomainError{Message: "SQL query cannot be empty."}
	ErrNoActiveDatabase = &DomainError{Message: "no active database"}
	ErrNoTables         = &DomainError{Message: "Database file contains no tables."}
	ErrBadExtension     = &DomainError{Message: "Only .db, .sqlite, .sqlite3 files are accepted."}
	ErrDatabaseInUse    = &DomainError{Message: "Database '%s' is currently active. Upload it under a different name."}
)

// DomainError represents a domain-level error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
