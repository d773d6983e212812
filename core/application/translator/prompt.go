package translator

import "fmt"

const promptTemplate = `You are an expert SQL query generator. Given the following %[1]s database schema and a natural language question, generate the appropriate SQL query.

DATABASE SCHEMA:
%[2]s

RULES:
1. Generate ONLY valid %[1]s SELECT queries. Never generate INSERT, UPDATE, DELETE, DROP, or any write operations.
2. Use proper JOINs when querying across related tables.
3. Use aliases for readability.
4. Limit results to 100 rows unless the user specifies otherwise.
5. Use aggregate functions (COUNT, SUM, AVG, etc.) when the question implies summarization.
6. Return the SQL query inside a ` + "```sql" + ` code block.
7. After the SQL block, provide a brief one-line explanation of what the query does.

USER QUESTION: %[3]s

Generate the SQL query:`

// BuildPrompt fills the fixed instruction template. The question is inserted
// as-is and is the only user-controlled part of the prompt.
func BuildPrompt(question, schemaText, dialect string) string {
	return fmt.Sprintf(promptTemplate, DialectLabel(dialect), schemaText, question)
}

// DialectLabel is the human readable name of a connector dialect.
func DialectLabel(dialect string) string {
	switch dialect {
	case "postgres":
		return "PostgreSQL"
	case "mysql":
		return "MySQL"
	default:
		return "SQLite"
	}
}
