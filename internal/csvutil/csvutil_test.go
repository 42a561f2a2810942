package csvutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	out := Format(
		[]string{"Name", "E-Mail"},
		[]map[string]string{
			{"Name": "Jörg Müller", "E-Mail": "joerg@example.com"},
			{"Name": "Doe; Jane", "E-Mail": `she said "hi"`},
		},
	)

	assert.True(t, strings.HasPrefix(out, "\uFEFF"), "missing BOM")

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	assert.Equal(t, []string{
		"\uFEFFName;E-Mail",
		"Jörg Müller;joerg@example.com",
		`"Doe; Jane";"she said ""hi"""`,
	}, lines)
}

func TestFormatMissingValues(t *testing.T) {
	out := Format([]string{"A", "B"}, []map[string]string{{"A": "only"}})
	assert.Contains(t, out, "only;\r\n")
}

func TestFormatNoRows(t *testing.T) {
	out := Format([]string{"A"}, nil)
	assert.Equal(t, "\uFEFFA\r\n", out)
}
