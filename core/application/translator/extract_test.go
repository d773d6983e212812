package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "sql fenced block",
			response: "```sql\nSELECT * FROM products LIMIT 100;\n```\nLists products.",
			want:     "SELECT * FROM products LIMIT 100;",
		},
		{
			name:     "uppercase tag",
			response: "Here you go:\n```SQL\nSELECT 1\n```",
			want:     "SELECT 1",
		},
		{
			name:     "untagged block",
			response: "```\nSELECT name FROM customers\n```",
			want:     "SELECT name FROM customers",
		},
		{
			name:     "first block wins",
			response: "```sql\nSELECT 1\n```\nor\n```sql\nSELECT 2\n```",
			want:     "SELECT 1",
		},
		{
			name:     "line scan stops at terminator",
			response: "Sure! Here is the query:\nSELECT c.name,\n  COUNT(*) AS n\nFROM customers c;\nThis counts customers.",
			want:     "SELECT c.name,\nCOUNT(*) AS n\nFROM customers c",
		},
		{
			name:     "line scan lowercase keyword",
			response: "with t as (select 1)\nselect * from t",
			want:     "with t as (select 1)\nselect * from t",
		},
		{
			name:     "line scan runs to the end without terminator",
			response: "Answer:\nEXPLAIN SELECT 1\nthat is all",
			want:     "EXPLAIN SELECT 1\nthat is all",
		},
		{
			name:     "fallback whole response",
			response: "  I cannot answer that;;  ",
			want:     "I cannot answer that",
		},
		{
			name:     "fallback write statement is passed through untouched",
			response: "DROP TABLE customers;",
			want:     "DROP TABLE customers",
		},
		{
			name:     "empty",
			response: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSQL(tt.response))
		})
	}
}

func TestExtractExplanation(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"trailing text", "```sql\nSELECT 1\n```\nReturns one.", "Returns one."},
		{"bold label stripped", "```sql\nSELECT 1\n```\n**Explanation:** Returns one.", "Returns one."},
		{"nothing after block", "```sql\nSELECT 1\n```\n   ", DefaultExplanation},
		{"no block", "SELECT 1;", DefaultExplanation},
		{"unterminated block", "```sql\nSELECT 1", DefaultExplanation},
		{"text after last of several blocks", "```a```middle```b```\nlast words", "last words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractExplanation(tt.response))
		})
	}
}
