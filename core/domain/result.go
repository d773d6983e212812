package domain

// MaxRows is the hard cap on rows returned by a single execution.
const MaxRows = 500

// ErrorKind distinguishes why an execution failed.
type ErrorKind string

const (
	ErrorKindNone           ErrorKind = ""
	ErrorKindPolicyRejected ErrorKind = "policy_rejected"
	ErrorKindExecution      ErrorKind = "execution_failed"
)

// RowSet is what a connector hands back for a read statement.
// More is true when the statement produced rows beyond the requested limit.
type RowSet struct {
	Columns []string
	Rows    []map[string]any
	More    bool
}

// QueryResult is the execution envelope. It is either a success carrying
// columns and rows, or a failure carrying a message and an empty result set.
type QueryResult struct {
	Success   bool             `json:"success"`
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	RowCount  int              `json:"row_count"`
	Truncated bool             `json:"truncated"`
	Error     string           `json:"error,omitempty"`
	ErrorKind ErrorKind        `json:"error_kind,omitempty"`
}

// NewQueryResult builds a success envelope from a row set.
func NewQueryResult(set *RowSet) QueryResult {
	columns := set.Columns
	if columns == nil {
		columns = []string{}
	}
	rows := set.Rows
	if rows == nil {
		rows = []map[string]any{}
	}
	return QueryResult{
		Success:   true,
		Columns:   columns,
		Rows:      rows,
		RowCount:  len(rows),
		Truncated: set.More,
	}
}

// FailedQueryResult builds a failure envelope with zero columns and rows.
func FailedQueryResult(kind ErrorKind, message string) QueryResult {
	return QueryResult{
		Success:   false,
		Columns:   []string{},
		Rows:      []map[string]any{},
		RowCount:  0,
		Error:     message,
		ErrorKind: kind,
	}
}

// Translation is the outcome of turning a question into SQL. SQL is untrusted
// text until it passes through the executor.
type Translation struct {
	Success     bool   `json:"success"`
	SQL         string `json:"sql"`
	Explanation string `json:"explanation"`
	Error       string `json:"error,omitempty"`
}

// FailedTranslation builds a failure translation.
func FailedTranslation(message string) Translation {
	return Translation{Success: false, Error: message}
}
