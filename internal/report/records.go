package report

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/daterange"
)

// Direction is a sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

var epoch = time.Unix(0, 0).UTC()

// FilterByDateRange keeps records whose date falls inside rng, both ends
// inclusive. Records without a date are dropped. A nil rng keeps everything.
// The input slice is never modified.
func FilterByDateRange[T any](records []T, rng *daterange.Range, date func(T) *time.Time) []T {
	if rng == nil {
		return slices.Clone(records)
	}
	return lo.Filter(records, func(r T, _ int) bool {
		return rng.ContainsPtr(date(r))
	})
}

// SortByDate stable-sorts records in place. Missing dates sort as 1970-01-01.
func SortByDate[T any](records []T, date func(T) *time.Time, dir Direction) {
	key := func(r T) time.Time {
		if d := date(r); d != nil {
			return *d
		}
		return epoch
	}
	slices.SortStableFunc(records, func(a, b T) int {
		c := key(a).Compare(key(b))
		if dir == Descending {
			return -c
		}
		return c
	})
}
