package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/daterange"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

// RevenueRow is one service line of the PAD realization report.
type RevenueRow struct {
	No        int
	Kode      string
	Nama      string
	Target    decimal.Decimal
	Realisasi decimal.Decimal
	// Kontribusi is Realisasi as a share of total realization.
	Kontribusi float64
	// Capaian is Realisasi over Target, 0 when no target is set.
	Capaian float64
}

// Revenue is the PAD realization table with its totals.
type Revenue struct {
	Year           int
	Rows           []RevenueRow
	TotalTarget    decimal.Decimal
	TotalRealisasi decimal.Decimal
	// AverageCapaian averages Capaian over rows that have a target.
	AverageCapaian float64
	// Skipped counts successful payments that could not be tied to a service.
	Skipped int
}

// RevenueRealization builds one row per service definition in master order.
// Realization sums successful payments paid in year (and inside rng when
// given), resolved to a service through their assessment.
func RevenueRealization(ds *models.Dataset, year int, rng *daterange.Range) Revenue {
	rev := Revenue{Year: year, TotalTarget: decimal.Zero, TotalRealisasi: decimal.Zero}

	realized := make(map[string]decimal.Decimal)
	for _, p := range ds.Payments {
		if !p.IsSuccess() || p.TanggalBayar == nil || p.TanggalBayar.Year() != year {
			continue
		}
		if rng != nil && !rng.Contains(*p.TanggalBayar) {
			continue
		}
		kode, ok := ResolvePaymentCode(ds, p)
		if !ok {
			rev.Skipped++
			continue
		}
		realized[kode] = realized[kode].Add(p.JumlahBayar)
	}

	var capaianSum float64
	var withTarget int
	for i, svc := range ds.Services {
		row := RevenueRow{
			No:        i + 1,
			Kode:      svc.KodeLayanan,
			Nama:      ds.ServiceName(svc.KodeLayanan),
			Target:    decimal.Zero,
			Realisasi: realized[svc.KodeLayanan],
		}
		if t, ok := ds.TargetFor(svc.KodeLayanan, year); ok {
			row.Target = t.Target
		}
		if row.Target.IsPositive() {
			row.Capaian = Ratio(row.Realisasi, row.Target)
			capaianSum += row.Capaian
			withTarget++
		}
		rev.TotalTarget = rev.TotalTarget.Add(row.Target)
		rev.TotalRealisasi = rev.TotalRealisasi.Add(row.Realisasi)
		rev.Rows = append(rev.Rows, row)
	}

	for i := range rev.Rows {
		rev.Rows[i].Kontribusi = Ratio(rev.Rows[i].Realisasi, rev.TotalRealisasi)
	}
	if withTarget > 0 {
		rev.AverageCapaian = capaianSum / float64(withTarget)
	}
	return rev
}
