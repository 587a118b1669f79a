package aggregate

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

// AssessmentObject is one row of the per-object view based on assessments.
type AssessmentObject struct {
	Bucket
	// Paid sums successful payments that reference the bucket's assessments.
	Paid decimal.Decimal
	// PaidRatio is Paid as a share of the billed Total.
	PaidRatio float64
}

// AssessmentObjects groups assessments and attaches successful payments.
// Only payments whose assessment is part of the given assessment set count.
func AssessmentObjects(ds *models.Dataset, assessments []models.Assessment, payments []models.Payment) []AssessmentObject {
	g := GroupAssessments(ds, assessments)

	inScope := lo.SliceToMap(assessments, func(a models.Assessment) (string, string) {
		return a.ID, a.KodeLayanan
	})
	paid := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if !p.IsSuccess() {
			continue
		}
		kode, ok := inScope[p.AssessmentID]
		if !ok || kode == "" {
			continue
		}
		paid[kode] = paid[kode].Add(p.JumlahBayar)
	}

	buckets := g.Buckets()
	out := make([]AssessmentObject, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, AssessmentObject{
			Bucket:    b,
			Paid:      paid[b.Kode],
			PaidRatio: Share(paid[b.Kode], b.Total),
		})
	}
	return out
}

// PaymentObject is one row of the per-object view based on payments.
type PaymentObject struct {
	Bucket
	// MainMethod is the most frequent payment method, ties broken by first use.
	MainMethod string
	// Average is Total divided by Count.
	Average decimal.Decimal
}

// PaymentObjects groups successful payments only. Kontribusi is the bucket
// Percent, a share of the successful total across all objects.
func PaymentObjects(ds *models.Dataset, payments []models.Payment) []PaymentObject {
	success := lo.Filter(payments, func(p models.Payment, _ int) bool { return p.IsSuccess() })
	g := GroupPayments(ds, success)

	methods := make(map[string][]string)
	for _, p := range success {
		kode, ok := ResolvePaymentCode(ds, p)
		if !ok {
			continue
		}
		m := p.MetodeBayar
		if m == "" {
			m = "Tidak Diketahui"
		}
		methods[kode] = append(methods[kode], m)
	}

	buckets := g.Buckets()
	out := make([]PaymentObject, 0, len(buckets))
	for _, b := range buckets {
		avg := decimal.Zero
		if b.Count > 0 {
			avg = b.Total.Div(decimal.NewFromInt(int64(b.Count)))
		}
		out = append(out, PaymentObject{
			Bucket:     b,
			MainMethod: dominant(methods[b.Kode]),
			Average:    avg,
		})
	}
	return out
}

func dominant(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	type tally struct {
		value string
		n     int
		first int
	}
	counts := make(map[string]*tally)
	for i, v := range values {
		if t, ok := counts[v]; ok {
			t.n++
			continue
		}
		counts[v] = &tally{value: v, n: 1, first: i}
	}
	all := lo.Values(counts)
	sort.Slice(all, func(i, j int) bool {
		if all[i].n != all[j].n {
			return all[i].n > all[j].n
		}
		return all[i].first < all[j].first
	})
	return all[0].value
}
