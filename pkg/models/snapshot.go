package models

import (
	"fmt"
	"sync"
)

// Dataset is one immutable snapshot of everything the reports read.
// Lookup indexes are built once, on first use, and are safe for concurrent
// readers. The record slices must not change after the first lookup, and a
// Dataset must not be copied by value.
type Dataset struct {
	Taxpayers   []Taxpayer
	Regions     []Region
	Services    []ServiceDefinition
	Assessments []Assessment
	Payments    []Payment
	Fiscals     []FiscalCertificate
	Targets     []Target

	indexOnce     sync.Once
	assessmentIdx map[string]int
	taxpayerIdx   map[string]int
	serviceIdx    map[string]int
}

// buildIndexes maps each key to its first record.
func (d *Dataset) buildIndexes() {
	d.assessmentIdx = firstIndex(d.Assessments, func(a Assessment) string { return a.ID })
	d.taxpayerIdx = firstIndex(d.Taxpayers, func(t Taxpayer) string { return t.NPWPD })
	d.serviceIdx = firstIndex(d.Services, func(s ServiceDefinition) string { return s.KodeLayanan })
}

func firstIndex[T any](records []T, key func(T) string) map[string]int {
	idx := make(map[string]int, len(records))
	for i, r := range records {
		if _, seen := idx[key(r)]; !seen {
			idx[key(r)] = i
		}
	}
	return idx
}

// AssessmentByID returns the first assessment with the given ID.
func (d *Dataset) AssessmentByID(id string) (Assessment, bool) {
	d.indexOnce.Do(d.buildIndexes)
	i, ok := d.assessmentIdx[id]
	if !ok || id == "" {
		return Assessment{}, false
	}
	return d.Assessments[i], true
}

// TaxpayerByNPWPD returns the taxpayer registered under npwpd.
func (d *Dataset) TaxpayerByNPWPD(npwpd string) (Taxpayer, bool) {
	d.indexOnce.Do(d.buildIndexes)
	i, ok := d.taxpayerIdx[npwpd]
	if !ok || npwpd == "" {
		return Taxpayer{}, false
	}
	return d.Taxpayers[i], true
}

// Service returns the master definition for code.
func (d *Dataset) Service(code string) (ServiceDefinition, bool) {
	d.indexOnce.Do(d.buildIndexes)
	i, ok := d.serviceIdx[code]
	if !ok {
		return ServiceDefinition{}, false
	}
	return d.Services[i], true
}

// ServiceName resolves the display name for a service code.
// Unknown codes and blank names fall back to "Objek Pajak <code>".
func (d *Dataset) ServiceName(code string) string {
	if s, ok := d.Service(code); ok && s.NamaLayanan != "" && s.NamaLayanan != "undefined" {
		return s.NamaLayanan
	}
	return fmt.Sprintf("Objek Pajak %s", code)
}

// BusinessName returns the business name registered for npwpd, or "-".
func (d *Dataset) BusinessName(npwpd string) string {
	if t, ok := d.TaxpayerByNPWPD(npwpd); ok && t.NamaUsaha != "" {
		return t.NamaUsaha
	}
	return "-"
}

// TargetFor returns the target amount for code in year.
func (d *Dataset) TargetFor(code string, year int) (Target, bool) {
	for _, t := range d.Targets {
		if t.KodeLayanan == code && t.Tahun == year {
			return t, true
		}
	}
	return Target{}, false
}
