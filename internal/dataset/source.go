// Package dataset fetches the unified PDRD dataset snapshot, either from the
// JSON API or straight from the backing Google spreadsheet, and decodes it
// into pkg/models entities.
package dataset

import (
	"context"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

// Source fetches one immutable dataset snapshot.
type Source interface {
	Fetch(ctx context.Context) (*models.Dataset, error)
}
