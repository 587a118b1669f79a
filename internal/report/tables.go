package report

import (
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/canvas"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/layout"
)

// Column layouts per report type. Widths are millimetres; the F4 tables
// start at the 15mm margin.

const nameBudget = 45

var (
	center = canvas.AlignCenter
	right  = canvas.AlignRight
)

var taxpayerTable = layout.Table{Left: margin, Columns: []layout.Column{
	{Header: "No", Width: 15, Align: center},
	{Header: "Tanggal Daftar", Width: 25, Align: center},
	{Header: "NPWPD", Width: 30},
	{Header: "Nama Usaha", Width: 35, MaxChars: nameBudget},
	{Header: "Nama Pemilik", Width: 35, MaxChars: nameBudget},
	{Header: "NIK KTP", Width: 25},
	{Header: "Alamat", Width: 50},
	{Header: "Kelurahan", Width: 25},
	{Header: "Kecamatan", Width: 25},
	{Header: "Telephone", Width: 25},
}}

var assessmentTable = layout.Table{Left: margin, Columns: []layout.Column{
	{Header: "No", Width: 15, Align: center},
	{Header: "Tanggal Ketetapan", Width: 25, Align: center},
	{Header: "ID Ketetapan", Width: 30},
	{Header: "Nama Usaha", Width: 45, MaxChars: nameBudget},
	{Header: "NPWPD", Width: 25},
	{Header: "Jenis Pajak", Width: 35},
	{Header: "Masa Pajak", Width: 30},
	{Header: "Total Tagihan", Width: 35, Align: right},
	{Header: "Status", Width: 25, Align: center},
}}

var paymentTable = layout.Table{Left: margin, Columns: []layout.Column{
	{Header: "No", Width: 10, Align: center},
	{Header: "NPWPD", Width: 25},
	{Header: "Nama Usaha", Width: 35, MaxChars: nameBudget},
	{Header: "ID Pembayaran", Width: 35},
	{Header: "ID Ketetapan", Width: 30},
	{Header: "Tanggal Bayar", Width: 25, Align: center},
	{Header: "Jumlah Bayar", Width: 30, Align: right},
	{Header: "Metode Bayar", Width: 20},
	{Header: "Operator", Width: 25},
	{Header: "Status", Width: 20, Align: center},
}}

var fiscalTable = layout.Table{Left: margin, Columns: []layout.Column{
	{Header: "No", Width: 12, Align: center},
	{Header: "Nomor Fiskal", Width: 55},
	{Header: "NPWPD", Width: 30},
	{Header: "Nama Usaha", Width: 40, MaxChars: nameBudget},
	{Header: "Tanggal Cetak", Width: 30, Align: center},
	{Header: "Tanggal Berlaku", Width: 30, Align: center},
	{Header: "Status", Width: 25, Align: center},
}}

var revenueTable = layout.Table{Left: margin, Columns: []layout.Column{
	{Header: "No.", Width: 10, Align: center},
	{Header: "Kode", Width: 18, Align: center},
	{Header: "Uraian Pajak/Retribusi", Width: 80},
	{Header: "Target (Rp)", Width: 35, Align: right},
	{Header: "Realisasi (Rp)", Width: 35, Align: right},
	{Header: "Kontribusi (%)", Width: 37, Align: right},
	{Header: "Capaian (%)", Width: 37, Align: right},
}}

var objectAssessmentTable = layout.Table{Left: margin, Columns: []layout.Column{
	{Header: "No", Width: 15, Align: center},
	{Header: "Kode", Width: 25, Align: center},
	{Header: "Nama Objek", Width: 50, MaxChars: nameBudget},
	{Header: "Ketetapan", Width: 25, Align: center},
	{Header: "Total Tagihan", Width: 35, Align: right},
	{Header: "Total Bayar", Width: 35, Align: right},
	{Header: "Lunas", Width: 20, Align: center},
	{Header: "Belum", Width: 20, Align: center},
	{Header: "Tunggakan", Width: 30, Align: right},
	{Header: "%", Width: 20, Align: right},
}}

var objectPaymentTable = layout.Table{Left: margin, Columns: []layout.Column{
	{Header: "No", Width: 15, Align: center},
	{Header: "Kode", Width: 25, Align: center},
	{Header: "Nama Objek", Width: 50, MaxChars: nameBudget},
	{Header: "Transaksi", Width: 25, Align: center},
	{Header: "Total Bayar", Width: 35, Align: right},
	{Header: "Metode Utama", Width: 35},
	{Header: "Kontribusi (%)", Width: 25, Align: right},
	{Header: "Rata-rata", Width: 35, Align: right},
}}

// Per-objek sections appended by the per-objek and both formats of the
// ketetapan and pembayaran reports.
var assessmentBucketTable = layout.Table{Left: margin, Columns: []layout.Column{
	{Header: "Kode", Width: 25, Align: center},
	{Header: "Nama Objek", Width: 55, MaxChars: nameBudget},
	{Header: "Jumlah", Width: 30, Align: center},
	{Header: "Total Nilai", Width: 25, Align: right},
	{Header: "Lunas", Width: 20, Align: center},
	{Header: "Belum", Width: 20, Align: center},
	{Header: "Tunggakan", Width: 25, Align: right},
	{Header: "%", Width: 20, Align: right},
}}

var paymentBucketTable = layout.Table{Left: margin, Columns: []layout.Column{
	{Header: "Kode", Width: 30, Align: center},
	{Header: "Nama Objek", Width: 45, MaxChars: nameBudget},
	{Header: "Jumlah", Width: 35, Align: center},
	{Header: "Total Nilai", Width: 25, Align: right},
	{Header: "Sukses", Width: 25, Align: center},
	{Header: "Gagal", Width: 25, Align: center},
	{Header: "%", Width: 25, Align: right},
}}

var overdueTable = layout.Table{Left: margin, Columns: []layout.Column{
	{Header: "No", Width: 15, Align: center},
	{Header: "NPWPD", Width: 30},
	{Header: "Nama Usaha", Width: 50, MaxChars: nameBudget},
	{Header: "Jumlah Ketetapan", Width: 25, Align: center},
	{Header: "Total Tagihan", Width: 40, Align: right},
	{Header: "Status", Width: 25, Align: center},
}}
