package schema

import (
	"fmt"
	"strings"

	"github.com/smartbridge/smartbridge/core/domain"
)

// Render turns a schema into the CREATE TABLE style text handed to the model.
// Output depends only on the schema, so equal schemas render identically.
//
//	CREATE TABLE products (id INTEGER  PRIMARY KEY, name TEXT, category_id INTEGER);
//	  -- FK: products.category_id -> categories.id
//	  -- 30 rows
func Render(schema domain.Schema) string {
	var lines []string
	for _, table := range schema {
		cols := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			def := col.Name + " " + col.Type
			if col.PrimaryKey {
				def += "  PRIMARY KEY"
			}
			cols = append(cols, def)
		}
		lines = append(lines, fmt.Sprintf("CREATE TABLE %s (%s);", table.Name, strings.Join(cols, ", ")))

		for _, fk := range table.ForeignKeys {
			lines = append(lines, fmt.Sprintf("  -- FK: %s.%s -> %s.%s", table.Name, fk.FromColumn, fk.ToTable, fk.ToColumn))
		}
		lines = append(lines, fmt.Sprintf("  -- %d rows", table.RowCount), "")
	}
	return strings.Join(lines, "\n")
}
