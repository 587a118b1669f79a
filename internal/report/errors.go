package report

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned for a report type with no registered definition.
	ErrUnknownType = errors.New("unknown report type")

	// ErrUnsupportedFormat is returned when a report type does not offer the
	// requested format.
	ErrUnsupportedFormat = errors.New("report format not supported for this report type")

	// ErrBuildFailed is returned when drawing the document fails. No output
	// should be saved when it occurs.
	ErrBuildFailed = errors.New("report build failed")

	// ErrNoData marks a report whose tables are empty. It is informational:
	// the document is still produced with a "Tidak ada data" row.
	ErrNoData = errors.New("no records in the selected period")
)

// ReportError carries the failing operation alongside the cause.
type ReportError struct {
	// Op is the operation that failed (e.g., "Build", "Compose").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("report: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("report: %s failed: %v", e.Op, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func (e *ReportError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewReportError creates a ReportError.
func NewReportError(op string, err error, details string) *ReportError {
	return &ReportError{Op: op, Err: err, Details: details}
}

// WrapReportError wraps err as a ReportError unless it already is one.
func WrapReportError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return err
	}

	return NewReportError(op, err, details)
}
