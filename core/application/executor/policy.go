package executor

import "strings"

// PolicyMessage is returned for every statement outside the allow-list.
const PolicyMessage = "Only SELECT queries are allowed for safety. Write operations are disabled."

// allowedKeywords is checked against the first token only. A WITH clause may
// still wrap a data-modifying statement on engines that allow it.
var allowedKeywords = map[string]bool{
	"SELECT":  true,
	"WITH":    true,
	"EXPLAIN": true,
}

// Normalize trims surrounding whitespace and a single trailing terminator.
func Normalize(statement string) string {
	s := strings.TrimSpace(statement)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}

// FirstKeyword returns the upper-cased first whitespace-delimited token.
func FirstKeyword(statement string) string {
	fields := strings.Fields(Normalize(statement))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// Permitted reports whether statement may run and returns its normalized form.
// Drivers may run every statement of a ;-separated batch, so a terminator left
// after normalization rejects the whole input.
func Permitted(statement string) (string, bool) {
	cleaned := Normalize(statement)
	if !allowedKeywords[FirstKeyword(cleaned)] || HasStackedStatement(cleaned) {
		return "", false
	}
	return cleaned, true
}

// HasStackedStatement reports whether statement contains a ; outside string
// literals, quoted identifiers and comments.
func HasStackedStatement(statement string) bool {
	var quote byte
	for i := 0; i < len(statement); i++ {
		c := statement[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '[':
			quote = ']'
		case '-':
			if i+1 < len(statement) && statement[i+1] == '-' {
				end := strings.IndexByte(statement[i:], '\n')
				if end < 0 {
					return false
				}
				i += end
			}
		case '/':
			if i+1 < len(statement) && statement[i+1] == '*' {
				end := strings.Index(statement[i+2:], "*/")
				if end < 0 {
					return false
				}
				i += end + 3
			}
		case ';':
			return true
		}
	}
	return false
}
