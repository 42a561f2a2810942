// Package csvutil renders CSV the way German-locale Excel expects it:
// semicolon delimiter, CRLF line endings and a UTF-8 BOM so umlauts survive.
package csvutil

import "strings"

const delimiter = ";"

// Format renders headers plus rows (maps keyed by header) into one blob
// ready for download.
func Format(headers []string, rows []map[string]string) string {
	var b strings.Builder
	b.WriteString("\uFEFF")

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = escapeCell(h)
	}
	b.WriteString(strings.Join(cells, delimiter))
	b.WriteString("\r\n")

	for _, row := range rows {
		for i, h := range headers {
			cells[i] = escapeCell(row[h])
		}
		b.WriteString(strings.Join(cells, delimiter))
		b.WriteString("\r\n")
	}
	return b.String()
}

func escapeCell(raw string) string {
	if !strings.ContainsAny(raw, ";\"\n\r") {
		return raw
	}
	return `"` + strings.ReplaceAll(raw, `"`, `""`) + `"`
}
