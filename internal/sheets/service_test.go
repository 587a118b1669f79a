package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSpreadsheetID(t *testing.T) {
	id, err := extractSpreadsheetID("https://docs.google.com/spreadsheets/d/1AbC-d_9/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbC-d_9", id)

	_, err = extractSpreadsheetID("https://example.com/sheet")
	assert.Error(t, err)
}

func TestColumnLetter(t *testing.T) {
	tests := map[int]string{1: "A", 8: "H", 26: "Z", 27: "AA", 52: "AZ", 53: "BA", 0: "A"}
	for n, want := range tests {
		assert.Equal(t, want, ColumnLetter(n), "column %d", n)
	}
}

func TestRowsToRecords(t *testing.T) {
	values := [][]interface{}{
		{"NPWPD", " Nama Usaha ", "", "Telephone"},
		{"P-001", "Toko Sinar", "ignored", "0812"},
		{"", "  "},
		{"P-002", "Kios"},
	}

	records := RowsToRecords(values)
	require.Len(t, records, 2)
	assert.Equal(t, map[string]any{"NPWPD": "P-001", "Nama Usaha": "Toko Sinar", "Telephone": "0812"}, records[0])
	assert.Equal(t, map[string]any{"NPWPD": "P-002", "Nama Usaha": "Kios"}, records[1])

	assert.Nil(t, RowsToRecords([][]interface{}{{"only header"}}))
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("GOOGLE_CREDENTIALS", "")
	_, err := LoadCredentials()
	assert.ErrorIs(t, err, ErrMissingCredentials)

	t.Setenv("GOOGLE_CREDENTIALS", `{"type":"service_account"}`)
	creds, err := LoadCredentials()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"service_account"}`, string(creds))
}
