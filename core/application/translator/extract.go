package translator

import (
	"regexp"
	"strings"
)

// DefaultExplanation is used when the response carries no usable explanation.
const DefaultExplanation = "Query generated successfully."

var (
	fencedBlockPattern = regexp.MustCompile("(?is)```(?:sql)?\\s*\\n?(.*?)```")
	boldLabelPattern   = regexp.MustCompile(`^\*\*.*?\*\*\s*`)
)

var statementKeywords = []string{"SELECT", "WITH", "EXPLAIN"}

// ExtractSQL pulls a statement out of free model text. It tries a fenced
// block, then a line scan starting at the first statement keyword, then the
// whole response. The result is untrusted.
func ExtractSQL(response string) string {
	if match := fencedBlockPattern.FindStringSubmatch(response); match != nil {
		return strings.TrimSpace(match[1])
	}

	var captured []string
	capturing := false
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		stripped := strings.TrimSpace(line)
		if !capturing && startsWithKeyword(stripped) {
			capturing = true
		}
		if !capturing {
			continue
		}
		captured = append(captured, stripped)
		if strings.HasSuffix(stripped, ";") {
			break
		}
	}
	if len(captured) > 0 {
		return strings.TrimRight(strings.Join(captured, "\n"), ";")
	}

	return strings.TrimRight(strings.TrimSpace(response), ";")
}

// ExtractExplanation returns the text after the last fenced block with any
// leading **label** removed.
func ExtractExplanation(response string) string {
	parts := strings.Split(response, "```")
	if len(parts) < 3 {
		return DefaultExplanation
	}

	explanation := strings.TrimSpace(parts[len(parts)-1])
	explanation = strings.TrimSpace(boldLabelPattern.ReplaceAllString(explanation, ""))
	if explanation == "" {
		return DefaultExplanation
	}
	return explanation
}

func startsWithKeyword(line string) bool {
	upper := strings.ToUpper(line)
	for _, kw := range statementKeywords {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}
