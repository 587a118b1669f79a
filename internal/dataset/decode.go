package dataset

import (
	"github.com/rs/zerolog"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

// Payload section keys.
const (
	SectionTaxpayers   = "wajibPajak"
	SectionAssessments = "ketetapan"
	SectionPayments    = "pembayaran"
	SectionServices    = "masterPajak"
	SectionTargets     = "targetPajakRetribusi"
	SectionFiscals     = "fiskal"
	SectionRegions     = "wilayah"
)

// Sections lists every payload key the reports read.
var Sections = []string{
	SectionTaxpayers,
	SectionAssessments,
	SectionPayments,
	SectionServices,
	SectionTargets,
	SectionFiscals,
	SectionRegions,
}

// Alternate column spellings seen across the API and the spreadsheet tabs.
var (
	keyNPWPD       = []string{"NPWPD", "npwpd"}
	keyKode        = []string{"KodeLayanan", "kode_layanan", "kode"}
	keyAssessment  = []string{"ID_Ketetapan", "IDKetetapan", "id_ketetapan"}
	keyBusinessNm  = []string{"Nama Usaha", "NamaUsaha", "nama_usaha"}
	keyServiceName = []string{"NamaLayanan", "nama_layanan", "nama"}
)

// Decode turns raw payload sections into a dataset snapshot. A missing
// section decodes as an empty list. Records missing their key field are
// skipped and logged; they never fail the decode.
func Decode(sections map[string][]Record, log zerolog.Logger) *models.Dataset {
	ds := &models.Dataset{}

	seen := make(map[string]bool)
	for i, r := range sections[SectionTaxpayers] {
		t := decodeTaxpayer(r)
		if t.NPWPD == "" {
			log.Warn().Int("row", i).Msg("Skipping taxpayer without NPWPD")
			continue
		}
		if seen[t.NPWPD] {
			log.Warn().Str("npwpd", t.NPWPD).Msg("Skipping duplicate taxpayer")
			continue
		}
		seen[t.NPWPD] = true
		ds.Taxpayers = append(ds.Taxpayers, t)
	}

	for i, r := range sections[SectionAssessments] {
		a := decodeAssessment(r)
		if a.ID == "" {
			log.Warn().Int("row", i).Msg("Skipping assessment without ID_Ketetapan")
			continue
		}
		ds.Assessments = append(ds.Assessments, a)
	}

	for i, r := range sections[SectionPayments] {
		p := decodePayment(r)
		if p.ID == "" && p.AssessmentID == "" {
			log.Warn().Int("row", i).Msg("Skipping payment without identifiers")
			continue
		}
		ds.Payments = append(ds.Payments, p)
	}

	for i, r := range sections[SectionServices] {
		s := models.ServiceDefinition{
			KodeLayanan: r.String(keyKode...),
			NamaLayanan: r.String(keyServiceName...),
			Tipe:        r.String("Tipe", "tipe", "Jenis"),
		}
		if s.KodeLayanan == "" {
			log.Warn().Int("row", i).Msg("Skipping service definition without code")
			continue
		}
		ds.Services = append(ds.Services, s)
	}

	ds.Targets = decodeTargets(sections[SectionTargets], log)

	for _, r := range sections[SectionFiscals] {
		ds.Fiscals = append(ds.Fiscals, models.FiscalCertificate{
			Nomor:          r.String("nomor_fiskal", "NomorFiskal", "Nomor"),
			NPWPD:          r.String(keyNPWPD...),
			TanggalCetak:   r.Date("tanggal_cetak", "TanggalCetak"),
			TanggalBerlaku: r.Date("tanggal_berlaku", "TanggalBerlaku"),
			Status:         r.String("status", "Status"),
		})
	}

	for _, r := range sections[SectionRegions] {
		ds.Regions = append(ds.Regions, models.Region{
			Kelurahan: r.String("Kelurahan", "kelurahan"),
			Kecamatan: r.String("Kecamatan", "kecamatan"),
		})
	}

	log.Debug().
		Int("taxpayers", len(ds.Taxpayers)).
		Int("assessments", len(ds.Assessments)).
		Int("payments", len(ds.Payments)).
		Int("services", len(ds.Services)).
		Int("targets", len(ds.Targets)).
		Int("fiscals", len(ds.Fiscals)).
		Msg("Decoded dataset")

	return ds
}

func decodeTaxpayer(r Record) models.Taxpayer {
	return models.Taxpayer{
		NPWPD:         r.String(keyNPWPD...),
		NamaUsaha:     r.String(keyBusinessNm...),
		NamaPemilik:   r.String("Nama Pemilik", "NamaPemilik", "nama_pemilik"),
		NIK:           r.String("NIK KTP", "NIK", "nik"),
		Alamat:        r.String("Alamat", "alamat"),
		Kelurahan:     r.String("Kelurahan", "kelurahan"),
		Kecamatan:     r.String("Kecamatan", "kecamatan"),
		Telepon:       r.String("Telephone", "Telepon", "telepon"),
		TanggalDaftar: r.Date("tanggal_pendaftaran", "TanggalPendaftaran", "Tanggal Daftar"),
		Documents: models.TaxpayerDocuments{
			KTP:      r.String("ktp", "KTP", "FotoKTP"),
			NPWP:     r.String("npwp", "NPWP"),
			Domisili: r.String("domisili", "Domisili", "SuratDomisili"),
			Foto:     r.String("foto", "Foto", "FotoUsaha"),
		},
	}
}

func decodeAssessment(r Record) models.Assessment {
	pokok, _ := r.Amount("JumlahPokok", "jumlah_pokok")
	denda, _ := r.Amount("Denda", "denda")
	total, ok := r.Amount("TotalTagihan", "total_tagihan")
	if !ok {
		total = pokok.Add(denda)
	}
	return models.Assessment{
		ID:                r.String(keyAssessment...),
		NPWPD:             r.String(keyNPWPD...),
		KodeLayanan:       r.String(keyKode...),
		MasaPajak:         r.String("MasaPajak", "masa_pajak"),
		JumlahPokok:       pokok,
		Denda:             denda,
		TotalTagihan:      total,
		Status:            r.String("Status", "status"),
		TanggalKetetapan:  r.Date("TanggalKetetapan", "tanggal_ketetapan"),
		TanggalJatuhTempo: r.Date("TanggalJatuhTempo", "tanggal_jatuh_tempo"),
	}
}

func decodePayment(r Record) models.Payment {
	amount, _ := r.Amount("JumlahBayar", "jumlah_bayar")
	return models.Payment{
		ID:           r.String("ID_Pembayaran", "IDPembayaran", "id_pembayaran"),
		AssessmentID: r.String(keyAssessment...),
		JumlahBayar:  amount,
		TanggalBayar: r.Date("TanggalBayar", "tanggal_bayar"),
		MetodeBayar:  r.String("MetodeBayar", "metode_bayar"),
		Operator:     r.String("Operator", "operator"),
		Status:       r.String("StatusPembayaran", "status_pembayaran", "Status"),
	}
}

// decodeTargets keeps one target per (code, year). A later row replaces an
// earlier one and the replacement is logged.
func decodeTargets(records []Record, log zerolog.Logger) []models.Target {
	type key struct {
		kode string
		year int
	}
	index := make(map[key]int)
	var out []models.Target

	for i, r := range records {
		kode := r.String(keyKode...)
		year, okYear := r.Int("Tahun", "tahun")
		amount, okAmount := r.Amount("Target", "target")
		if kode == "" || !okYear || !okAmount {
			log.Warn().Int("row", i).Msg("Skipping incomplete target row")
			continue
		}
		t := models.Target{KodeLayanan: kode, Tahun: year, Target: amount}
		k := key{kode, year}
		if j, dup := index[k]; dup {
			log.Warn().Str("kode", kode).Int("tahun", year).Msg("Duplicate target, keeping the last one")
			out[j] = t
			continue
		}
		index[k] = len(out)
		out = append(out, t)
	}
	return out
}
