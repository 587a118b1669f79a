package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

// OverdueTaxpayer sums a taxpayer's unpaid assessments that are past due.
type OverdueTaxpayer struct {
	NPWPD     string
	NamaUsaha string
	Count     int
	Total     decimal.Decimal
	// Oldest is the earliest due date among the overdue assessments.
	Oldest time.Time
}

// OverdueTaxpayers selects assessments that are not Lunas with a due date
// before now and groups them by NPWPD, largest outstanding total first.
// ds is only used for business names.
func OverdueTaxpayers(ds *models.Dataset, assessments []models.Assessment, now time.Time) []OverdueTaxpayer {
	byNPWPD := make(map[string]*OverdueTaxpayer)
	var order []string

	for _, a := range assessments {
		if a.IsPaid() || a.TanggalJatuhTempo == nil || !a.TanggalJatuhTempo.Before(now) {
			continue
		}
		o, ok := byNPWPD[a.NPWPD]
		if !ok {
			o = &OverdueTaxpayer{
				NPWPD:     a.NPWPD,
				NamaUsaha: ds.BusinessName(a.NPWPD),
				Oldest:    *a.TanggalJatuhTempo,
			}
			byNPWPD[a.NPWPD] = o
			order = append(order, a.NPWPD)
		}
		o.Count++
		o.Total = o.Total.Add(a.TotalTagihan)
		if a.TanggalJatuhTempo.Before(o.Oldest) {
			o.Oldest = *a.TanggalJatuhTempo
		}
	}

	out := make([]OverdueTaxpayer, 0, len(order))
	for _, k := range order {
		out = append(out, *byNPWPD[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}
