package dataset

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Record is one row of a payload section, keyed by source column name.
type Record map[string]any

// dateLayouts are tried in order. Sheets exports dates as dd/mm/yyyy, the
// API as ISO timestamps.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
}

// value returns the first key present with a non-blank value.
func (r Record) value(keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// String reads the first present key as trimmed text.
func (r Record) String(keys ...string) string {
	v, ok := r.value(keys...)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	if s == "undefined" || s == "null" {
		return ""
	}
	return strings.TrimSpace(s)
}

// Int reads the first present key as an integer.
func (r Record) Int(keys ...string) (int, bool) {
	v, ok := r.value(keys...)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case string:
		v = strings.TrimSpace(x)
	case json.Number:
		v = x.String()
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Amount reads a monetary value. Numbers may arrive as JSON numbers or as
// strings, optionally prefixed with "Rp" and grouped with '.' thousands.
func (r Record) Amount(keys ...string) (decimal.Decimal, bool) {
	v, ok := r.value(keys...)
	if !ok {
		return decimal.Zero, false
	}
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	}

	d, err := decimal.NewFromString(normalizeAmount(cast.ToString(v)))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func normalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	currency := strings.HasPrefix(s, "Rp")
	s = strings.TrimPrefix(s, "Rp")
	s = strings.TrimPrefix(s, ".")
	s = strings.ReplaceAll(s, " ", "")
	switch {
	case strings.Contains(s, ","):
		// 1.500.000,50
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	case strings.Count(s, ".") == 1:
		// A single dot followed by exactly three digits groups thousands
		// ("150.000"); anything else is a decimal point ("12.5").
		_, frac, _ := strings.Cut(s, ".")
		if currency || len(frac) == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}
	return s
}

// Date reads a date in any of the accepted layouts. Unparsable or missing
// values yield nil.
func (r Record) Date(keys ...string) *time.Time {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	if t, isTime := v.(time.Time); isTime {
		return &t
	}
	s := strings.TrimSpace(cast.ToString(v))
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}
