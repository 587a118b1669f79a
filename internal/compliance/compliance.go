// Package compliance scores taxpayers on the completeness of their
// registration documents.
package compliance

import (
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

// Status is a compliance band.
type Status string

const (
	Compliant    Status = "compliant"
	Warning      Status = "warning"
	NonCompliant Status = "non_compliant"
)

// Label is the display text for the band.
func (s Status) Label() string {
	switch s {
	case Compliant:
		return "Compliant"
	case Warning:
		return "Warning"
	case NonCompliant:
		return "Non Compliant"
	}
	return "Unknown"
}

// optionalCredit is the share of an optional field's weight granted when present.
const optionalCredit = 0.8

// Rule is one scored field.
type Rule struct {
	Field    string
	Label    string
	Weight   float64
	Required bool
	value    func(models.Taxpayer) string
}

// Rules in evaluation order.
var Rules = []Rule{
	{Field: "ktp", Label: "KTP", Weight: 25, Required: true, value: func(t models.Taxpayer) string { return t.Documents.KTP }},
	{Field: "npwp", Label: "NPWP", Weight: 25, Required: true, value: func(t models.Taxpayer) string { return t.Documents.NPWP }},
	{Field: "domisili", Label: "Domisili", Weight: 20, Required: true, value: func(t models.Taxpayer) string { return t.Documents.Domisili }},
	{Field: "foto", Label: "Foto", Weight: 15, Required: false, value: func(t models.Taxpayer) string { return t.Documents.Foto }},
	{Field: "npwpd", Label: "NPWPD", Weight: 15, Required: true, value: func(t models.Taxpayer) string { return t.NPWPD }},
}

func (r Rule) present(t models.Taxpayer) bool {
	return r.value(t) != ""
}

// Score returns the weighted completeness of t, 0 to 100.
func Score(t models.Taxpayer) int {
	var total, maxScore float64
	for _, r := range Rules {
		maxScore += r.Weight
		if !r.present(t) {
			continue
		}
		if r.Required {
			total += r.Weight
		} else {
			total += r.Weight * optionalCredit
		}
	}
	return int(math.Round(total / maxScore * 100))
}

// StatusFor maps a score to its band: 90 and above is compliant, 70 and
// above a warning.
func StatusFor(score int) Status {
	switch {
	case score >= 90:
		return Compliant
	case score >= 70:
		return Warning
	default:
		return NonCompliant
	}
}

// Missing lists the required rules t does not satisfy.
func Missing(t models.Taxpayer) []Rule {
	return lo.Filter(Rules, func(r Rule, _ int) bool {
		return r.Required && !r.present(t)
	})
}

// Detail is the per-rule breakdown of a report.
type Detail struct {
	Label     string  `json:"label"`
	Required  bool    `json:"required"`
	Completed bool    `json:"completed"`
	Weight    float64 `json:"weight"`
	Score     float64 `json:"score"`
}

// Report is the compliance assessment of one taxpayer.
type Report struct {
	NPWPD     string            `json:"npwpd"`
	NamaUsaha string            `json:"nama_usaha"`
	Score     int               `json:"compliance_score"`
	Status    Status            `json:"compliance_status"`
	Missing   []string          `json:"missing_documents"`
	CheckedAt time.Time         `json:"last_check"`
	Details   map[string]Detail `json:"details"`
}

// Assess builds the report for t.
func Assess(t models.Taxpayer, now time.Time) Report {
	score := Score(t)
	rep := Report{
		NPWPD:     t.NPWPD,
		NamaUsaha: t.NamaUsaha,
		Score:     score,
		Status:    StatusFor(score),
		Missing:   lo.Map(Missing(t), func(r Rule, _ int) string { return r.Label }),
		CheckedAt: now,
		Details:   make(map[string]Detail, len(Rules)),
	}
	for _, r := range Rules {
		ok := r.present(t)
		d := Detail{Label: r.Label, Required: r.Required, Completed: ok, Weight: r.Weight}
		if ok {
			d.Score = r.Weight
		}
		rep.Details[r.Field] = d
	}
	return rep
}

// Summary counts taxpayers per band.
type Summary struct {
	Total        int     `json:"total"`
	Compliant    int     `json:"compliant"`
	Warning      int     `json:"warning"`
	NonCompliant int     `json:"non_compliant"`
	AverageScore float64 `json:"average_score"`
}

// AssessAll scores every taxpayer and summarises the bands.
func AssessAll(taxpayers []models.Taxpayer, now time.Time) ([]Report, Summary) {
	reports := lo.Map(taxpayers, func(t models.Taxpayer, _ int) Report { return Assess(t, now) })

	sum := Summary{Total: len(reports)}
	var scores int
	for _, r := range reports {
		scores += r.Score
		switch r.Status {
		case Compliant:
			sum.Compliant++
		case Warning:
			sum.Warning++
		default:
			sum.NonCompliant++
		}
	}
	if sum.Total > 0 {
		sum.AverageScore = math.Round(float64(scores)/float64(sum.Total)*10) / 10
	}
	return reports, sum
}
