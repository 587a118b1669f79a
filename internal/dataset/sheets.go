package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/sheets"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

// TableReader reads one header-keyed tab of a spreadsheet.
type TableReader interface {
	SheetTitles(ctx context.Context) ([]string, error)
	ReadTable(ctx context.Context, sheetName string) ([]map[string]any, error)
}

// DefaultTabs maps payload sections to the spreadsheet tabs that back the API.
var DefaultTabs = map[string]string{
	SectionTaxpayers:   "WajibPajak",
	SectionAssessments: "KETETAPAN",
	SectionPayments:    "PEMBAYARAN",
	SectionServices:    "MasterPajak",
	SectionTargets:     "TargetPajakRetribusi",
	SectionFiscals:     "FISKAL",
	SectionRegions:     "Wilayah",
}

// SheetsSource reads the dataset straight from the backing spreadsheet.
type SheetsSource struct {
	reader TableReader
	tabs   map[string]string
	log    zerolog.Logger
}

// NewSheetsSource connects to the spreadsheet at sheetURL.
func NewSheetsSource(ctx context.Context, sheetURL string) (*SheetsSource, error) {
	const op = "NewSheetsSource"

	svc, err := sheets.NewSheetsService(ctx, sheetURL)
	if err != nil {
		if errors.Is(err, sheets.ErrMissingCredentials) {
			return nil, NewDatasetError(op, ErrMissingCredentials, "")
		}
		return nil, NewDatasetError(op, fmt.Errorf("%w: %w", ErrFetchFailed, err), "")
	}
	return NewSheetsSourceWithReader(svc, DefaultTabs), nil
}

// NewSheetsSourceWithReader builds a source over any TableReader.
func NewSheetsSourceWithReader(r TableReader, tabs map[string]string) *SheetsSource {
	return &SheetsSource{reader: r, tabs: tabs, log: logger.WithComponent("dataset")}
}

// Fetch reads every mapped tab. A tab missing from the spreadsheet decodes as
// an empty section.
func (s *SheetsSource) Fetch(ctx context.Context) (*models.Dataset, error) {
	const op = "Fetch"

	titles, err := s.reader.SheetTitles(ctx)
	if err != nil {
		return nil, NewDatasetError(op, fmt.Errorf("%w: %w", ErrFetchFailed, err), "listing tabs")
	}
	present := make(map[string]bool, len(titles))
	for _, t := range titles {
		present[t] = true
	}

	sections := make(map[string][]Record, len(s.tabs))
	for _, section := range Sections {
		tab, ok := s.tabs[section]
		if !ok {
			continue
		}
		if !present[tab] {
			s.log.Warn().Str("tab", tab).Str("section", section).Msg("Tab not found, treating section as empty")
			continue
		}
		rows, err := s.reader.ReadTable(ctx, tab)
		if err != nil {
			return nil, NewDatasetError(op, fmt.Errorf("%w: %w", ErrFetchFailed, err), tab)
		}
		records := make([]Record, len(rows))
		for i, r := range rows {
			records[i] = Record(r)
		}
		sections[section] = records
	}

	return Decode(sections, s.log), nil
}
