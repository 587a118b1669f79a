package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

func taxpayer(ktp, npwp, domisili, foto, npwpd string) models.Taxpayer {
	return models.Taxpayer{
		NPWPD:     npwpd,
		NamaUsaha: "Toko Sinar",
		Documents: models.TaxpayerDocuments{KTP: ktp, NPWP: npwp, Domisili: domisili, Foto: foto},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		tp     models.Taxpayer
		score  int
		status Status
	}{
		{"everything", taxpayer("k", "n", "d", "f", "P-1"), 97, Compliant},
		{"no photo", taxpayer("k", "n", "d", "", "P-1"), 85, Warning},
		{"no domisili", taxpayer("k", "n", "", "f", "P-1"), 77, Warning},
		{"only npwpd", taxpayer("", "", "", "", "P-1"), 15, NonCompliant},
		{"nothing", models.Taxpayer{}, 0, NonCompliant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(tt.tp)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.status, StatusFor(score))
		})
	}
}

func TestStatusBoundaries(t *testing.T) {
	assert.Equal(t, Compliant, StatusFor(90))
	assert.Equal(t, Warning, StatusFor(89))
	assert.Equal(t, Warning, StatusFor(70))
	assert.Equal(t, NonCompliant, StatusFor(69))
}

func TestMissingListsRequiredOnly(t *testing.T) {
	missing := Missing(taxpayer("", "n", "", "", "P-1"))

	labels := make([]string, len(missing))
	for i, r := range missing {
		labels[i] = r.Label
	}
	assert.Equal(t, []string{"KTP", "Domisili"}, labels)
}

func TestAssessAll(t *testing.T) {
	now := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	reports, sum := AssessAll([]models.Taxpayer{
		taxpayer("k", "n", "d", "f", "P-1"),
		taxpayer("k", "n", "d", "", "P-2"),
		taxpayer("", "", "", "", "P-3"),
	}, now)

	require.Len(t, reports, 3)
	assert.Equal(t, "P-1", reports[0].NPWPD)
	assert.True(t, reports[0].Details["foto"].Completed)
	assert.Equal(t, 15.0, reports[0].Details["foto"].Score)
	assert.Equal(t, []string{"KTP", "NPWP", "Domisili"}, reports[2].Missing)
	assert.Equal(t, now, reports[2].CheckedAt)

	assert.Equal(t, Summary{Total: 3, Compliant: 1, Warning: 1, NonCompliant: 1, AverageScore: 65.7}, sum)
}
