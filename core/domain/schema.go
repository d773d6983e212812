package domain

// Column describes one column of a table, in declaration order.
type Column struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
}

// ForeignKey links a column of the owning table to a column of another table.
type ForeignKey struct {
	FromColumn string `json:"from_column"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column"`
}

// Table is a snapshot of one table taken at introspection time.
// RowCount is not live.
type Table struct {
	Name        string       `json:"table_name"`
	Columns     []Column     `json:"columns"`
	RowCount    int64        `json:"row_count"`
	ForeignKeys []ForeignKey `json:"foreign_keys"`
}

// Schema is the ordered set of tables of a database, sorted by table name.
type Schema []Table

// TableNames returns the table names in schema order.
func (s Schema) TableNames() []string {
	names := make([]string, 0, len(s))
	for _, t := range s {
		names = append(names, t.Name)
	}
	return names
}
