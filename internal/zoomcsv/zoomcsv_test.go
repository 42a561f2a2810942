package zoomcsv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGermanExport(t *testing.T) {
	input := "\uFEFFName (ursprünglicher Name),E-Mail,Beitrittszeit,Austrittszeit,Dauer (Minuten)\n" +
		"Jane Doe,jane@example.com,09:01,10:26,85\n" +
		"Jörg Müller,,09:05,10:20,75\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Jane Doe", rows[0].Name)
	assert.Equal(t, "jane@example.com", rows[0].Email)
	assert.Equal(t, "09:01", rows[0].JoinTime)
	assert.Equal(t, "10:26", rows[0].LeaveTime)
	require.NotNil(t, rows[0].DurationMin)
	assert.Equal(t, 85, *rows[0].DurationMin)

	assert.Equal(t, "Jörg Müller", rows[1].Name)
	assert.Equal(t, "", rows[1].Email)
}

func TestParseEnglishExport(t *testing.T) {
	input := "Name (Original Name),Email,Join Time,Leave Time,Duration (Minutes)\n" +
		"Jane Doe,jane@example.com,9:01 AM,10:26 AM,85\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane Doe", rows[0].Name)
	assert.Equal(t, "jane@example.com", rows[0].Email)
}

func TestParseDropsNamelessRows(t *testing.T) {
	input := "Name,Email\n" +
		",orphan@example.com\n" +
		"Jane Doe,jane@example.com\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane Doe", rows[0].Name)
}

func TestParseToleratesMissingColumns(t *testing.T) {
	input := "Name\nJane Doe\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Email)
	assert.Nil(t, rows[0].DurationMin)
}

func TestParseEmptyInput(t *testing.T) {
	rows, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
