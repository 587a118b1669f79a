package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	tabs map[string][]map[string]any
	err  error
}

func (f *fakeReader) SheetTitles(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	titles := make([]string, 0, len(f.tabs))
	for k := range f.tabs {
		titles = append(titles, k)
	}
	return titles, nil
}

func (f *fakeReader) ReadTable(_ context.Context, name string) ([]map[string]any, error) {
	return f.tabs[name], nil
}

func TestSheetsSourceFetch(t *testing.T) {
	reader := &fakeReader{tabs: map[string][]map[string]any{
		"WajibPajak": {{"NPWPD": "P-001", "Nama Usaha": "Kios Mamberamo"}},
		"KETETAPAN": {
			{"ID_Ketetapan": "K1", "NPWPD": "P-001", "KodeLayanan": "A", "TotalTagihan": "250000", "TanggalKetetapan": "03/02/2025"},
		},
		"MasterPajak": {{"KodeLayanan": "A", "NamaLayanan": "Pajak Reklame"}},
	}}

	ds, err := NewSheetsSourceWithReader(reader, DefaultTabs).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Assessments, 1)
	assert.Equal(t, "250000", ds.Assessments[0].TotalTagihan.String())
	assert.Equal(t, "Kios Mamberamo", ds.BusinessName("P-001"))
	assert.Equal(t, "Pajak Reklame", ds.ServiceName("A"))
	assert.Empty(t, ds.Payments, "absent tab is an empty section")
}

func TestSheetsSourceListingFailure(t *testing.T) {
	reader := &fakeReader{err: errors.New("403 forbidden")}

	_, err := NewSheetsSourceWithReader(reader, DefaultTabs).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}
