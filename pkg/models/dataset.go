package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// AssessmentPaid is the only assessment status counted as settled.
	AssessmentPaid = "Lunas"

	// PaymentSuccess is the only payment status counted toward realization.
	PaymentSuccess = "Sukses"
)

// Taxpayer is a registered tax object (wajib pajak).
type Taxpayer struct {
	NPWPD         string     // Regional taxpayer registration code, unique per snapshot
	NamaUsaha     string     // Business name
	NamaPemilik   string     // Owner name
	NIK           string     // National ID (NIK KTP)
	Alamat        string     // Street address
	Kelurahan     string     // Village
	Kecamatan     string     // District
	Telepon       string     // Phone number
	TanggalDaftar *time.Time // Registration date, nil when missing

	// Documents holds references to uploaded registration documents.
	// An empty string means the document was never supplied.
	Documents TaxpayerDocuments
}

// TaxpayerDocuments lists the supporting documents tracked for compliance.
type TaxpayerDocuments struct {
	KTP      string
	NPWP     string
	Domisili string
	Foto     string
}

// Assessment is a tax or levy billing event (ketetapan).
type Assessment struct {
	ID                string          // ID_Ketetapan
	NPWPD             string          // Owning taxpayer
	KodeLayanan       string          // Service code, the grouping key
	MasaPajak         string          // Tax period label
	JumlahPokok       decimal.Decimal // Principal
	Denda             decimal.Decimal // Penalty
	TotalTagihan      decimal.Decimal // Principal + penalty
	Status            string          // "Lunas" or anything else for unpaid
	TanggalKetetapan  *time.Time
	TanggalJatuhTempo *time.Time
}

// IsPaid reports whether the assessment is settled.
func (a Assessment) IsPaid() bool {
	return a.Status == AssessmentPaid
}

// Payment is a payment attempt against one assessment (pembayaran).
type Payment struct {
	ID           string // ID_Pembayaran
	AssessmentID string // ID_Ketetapan
	JumlahBayar  decimal.Decimal
	TanggalBayar *time.Time
	MetodeBayar  string
	Operator     string
	Status       string // StatusPembayaran
}

// IsSuccess reports whether the payment counts toward realization.
func (p Payment) IsSuccess() bool {
	return p.Status == PaymentSuccess
}

// ServiceDefinition is a master pajak entry.
type ServiceDefinition struct {
	KodeLayanan string
	NamaLayanan string
	Tipe        string // "Pajak" or "Retribusi"
}

// Target is the revenue target for one service code in one fiscal year.
type Target struct {
	KodeLayanan string
	Tahun       int
	Target      decimal.Decimal
}

// FiscalCertificate is an issued fiscal compliance certificate (fiskal).
type FiscalCertificate struct {
	Nomor          string
	NPWPD          string
	TanggalCetak   *time.Time
	TanggalBerlaku *time.Time
	Status         string
}

// IsActive reports whether the certificate is still valid at now.
func (f FiscalCertificate) IsActive(now time.Time) bool {
	return f.TanggalBerlaku != nil && f.TanggalBerlaku.After(now)
}

// Region is a kelurahan/kecamatan pair from the wilayah table.
type Region struct {
	Kelurahan string
	Kecamatan string
}
