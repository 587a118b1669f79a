// Package aggregate groups assessment and payment records by service code
// (KodeLayanan) and derives the per-object, revenue and overdue views the
// printed reports are built from. Nothing here logs or prompts; unresolvable
// records are counted as skipped and left for the caller to report.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

var hundred = decimal.NewFromInt(100)

// Bucket is the aggregate for one service code.
type Bucket struct {
	Kode  string
	Nama  string
	Count int
	Total decimal.Decimal

	// Assessment buckets only.
	PaidCount   int
	UnpaidCount int
	Outstanding decimal.Decimal

	// Payment buckets only.
	SuccessCount int
	FailedCount  int

	// Percent is Total as a share of all buckets in the grouping, one decimal.
	Percent float64
}

// Grouping is an insertion-ordered set of buckets keyed by service code.
type Grouping struct {
	order   []string
	buckets map[string]*Bucket
	skipped int
}

func newGrouping() *Grouping {
	return &Grouping{buckets: make(map[string]*Bucket)}
}

func (g *Grouping) bucket(ds *models.Dataset, kode string) *Bucket {
	b, ok := g.buckets[kode]
	if !ok {
		b = &Bucket{Kode: kode, Nama: ds.ServiceName(kode)}
		g.buckets[kode] = b
		g.order = append(g.order, kode)
	}
	return b
}

// Buckets returns copies of the buckets in first-seen order.
func (g *Grouping) Buckets() []Bucket {
	out := make([]Bucket, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, *g.buckets[k])
	}
	return out
}

// Lookup returns the bucket for kode.
func (g *Grouping) Lookup(kode string) (Bucket, bool) {
	b, ok := g.buckets[kode]
	if !ok {
		return Bucket{}, false
	}
	return *b, true
}

// Len is the number of buckets.
func (g *Grouping) Len() int { return len(g.order) }

// Skipped is the number of input records that could not be resolved to a code.
func (g *Grouping) Skipped() int { return g.skipped }

// Total sums every bucket total.
func (g *Grouping) Total() decimal.Decimal {
	total := decimal.Zero
	for _, k := range g.order {
		total = total.Add(g.buckets[k].Total)
	}
	return total
}

// Count sums every bucket count.
func (g *Grouping) Count() int {
	n := 0
	for _, k := range g.order {
		n += g.buckets[k].Count
	}
	return n
}

func (g *Grouping) applyPercentages() {
	grand := g.Total()
	for _, k := range g.order {
		b := g.buckets[k]
		b.Percent = Share(b.Total, grand)
	}
}

// GroupAssessments buckets assessments by their own service code, splitting
// counts into paid (Lunas) and unpaid; unpaid totals accumulate as Outstanding.
// Assessments without a service code are skipped.
func GroupAssessments(ds *models.Dataset, assessments []models.Assessment) *Grouping {
	g := newGrouping()
	for _, a := range assessments {
		if a.KodeLayanan == "" {
			g.skipped++
			continue
		}
		b := g.bucket(ds, a.KodeLayanan)
		b.Count++
		b.Total = b.Total.Add(a.TotalTagihan)
		if a.IsPaid() {
			b.PaidCount++
		} else {
			b.UnpaidCount++
			b.Outstanding = b.Outstanding.Add(a.TotalTagihan)
		}
	}
	g.applyPercentages()
	return g
}

// GroupPayments buckets payments by the service code of the assessment they
// reference. Payments whose assessment is missing from ds, or carries no
// code, are skipped and do not touch any bucket.
func GroupPayments(ds *models.Dataset, payments []models.Payment) *Grouping {
	g := newGrouping()
	for _, p := range payments {
		kode, ok := ResolvePaymentCode(ds, p)
		if !ok {
			g.skipped++
			continue
		}
		b := g.bucket(ds, kode)
		b.Count++
		b.Total = b.Total.Add(p.JumlahBayar)
		if p.IsSuccess() {
			b.SuccessCount++
		} else {
			b.FailedCount++
		}
	}
	g.applyPercentages()
	return g
}

// ResolvePaymentCode finds the service code for a payment through its assessment.
func ResolvePaymentCode(ds *models.Dataset, p models.Payment) (string, bool) {
	a, ok := ds.AssessmentByID(p.AssessmentID)
	if !ok || a.KodeLayanan == "" {
		return "", false
	}
	return a.KodeLayanan, true
}

// Share returns part/whole*100 rounded to one decimal, or 0 when whole is zero.
func Share(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).Round(1).InexactFloat64()
}

// Ratio is Share without rounding, for values that are averaged afterwards.
func Ratio(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}
