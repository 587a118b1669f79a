// Package daterange resolves the report period presets (today, week, month,
// quarter, year, custom) into inclusive day-aligned ranges and labels them.
package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/format"
)

// Preset names a period selection.
type Preset string

const (
	Today   Preset = "today"
	Week    Preset = "week"
	Month   Preset = "month"
	Quarter Preset = "quarter"
	Year    Preset = "year"
	Custom  Preset = "custom"
)

var (
	// ErrUnknownPreset is returned for a preset name outside the supported set.
	ErrUnknownPreset = errors.New("unknown date range preset")

	// ErrInvertedRange is returned when a custom range ends before it starts.
	ErrInvertedRange = errors.New("date range end is before start")
)

// Presets lists every supported preset in menu order.
var Presets = []Preset{Today, Week, Month, Quarter, Year, Custom}

// ParsePreset validates a preset name. An empty name selects Month.
func ParsePreset(s string) (Preset, error) {
	if s == "" {
		return Month, nil
	}
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPreset, s)
}

// Range is an inclusive [Start, End] interval. Start is aligned to the first
// instant of its day and End to the last millisecond of its day.
type Range struct {
	Preset Preset
	Start  time.Time
	End    time.Time
}

// Resolve turns a preset into a concrete range relative to now. For Custom,
// from and to supply the bounds; when either is nil the current month is used.
func Resolve(p Preset, now time.Time, from, to *time.Time) (Range, error) {
	var start, end time.Time

	switch p {
	case Today:
		start, end = now, now
	case Week:
		start, end = now.Add(-7*24*time.Hour), now
	case Month, "":
		p = Month
		start, end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	case Quarter:
		q := (int(now.Month()) - 1) / 3
		start, end = time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, now.Location()), now
	case Year:
		start, end = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now
	case Custom:
		if from == nil || to == nil {
			start, end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
			break
		}
		if to.Before(*from) {
			return Range{}, fmt.Errorf("%w: %s > %s", ErrInvertedRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
		}
		start, end = *from, *to
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownPreset, string(p))
	}

	return Range{Preset: p, Start: StartOfDay(start), End: EndOfDay(end)}, nil
}

// StartOfDay returns 00:00:00.000 of t's day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Contains reports whether t falls inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ContainsPtr is Contains for optional dates. A missing date is never contained.
func (r Range) ContainsPtr(t *time.Time) bool {
	return t != nil && r.Contains(*t)
}

// Label is the period caption used on summary reports, e.g. "Triwulan 3 2025".
func (r Range) Label() string {
	switch r.Preset {
	case Custom:
		return fmt.Sprintf("%s – %s", format.Printed(r.Start), format.Printed(r.End))
	case Quarter:
		return fmt.Sprintf("Triwulan %d %d", (int(r.End.Month())-1)/3+1, r.End.Year())
	case Year:
		return fmt.Sprintf("Tahun %d", r.End.Year())
	default:
		return fmt.Sprintf("%s %d", format.MonthName(r.End.Month()), r.End.Year())
	}
}

// Span is the "d Bulan YYYY s/d d Bulan YYYY" caption used on detailed reports.
func (r Range) Span() string {
	return fmt.Sprintf("%s s/d %s", format.Printed(r.Start), format.Printed(r.End))
}
