package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed is returned when the dataset endpoint cannot be reached
	// or answers with a non-success HTTP status or a non-JSON page.
	ErrFetchFailed = errors.New("failed to fetch dataset")

	// ErrAPIStatus is returned when the endpoint answers {"status":"gagal"}.
	ErrAPIStatus = errors.New("dataset API reported failure")

	// ErrDecodeFailed is returned when the payload is not the expected JSON shape.
	ErrDecodeFailed = errors.New("failed to decode dataset payload")

	// ErrMissingCredentials is returned when the Sheets source has no credentials.
	ErrMissingCredentials = errors.New("missing Google credentials for the Sheets data source")
)

// DatasetError wraps errors with the operation that failed.
type DatasetError struct {
	// Op is the operation that failed (e.g., "Fetch", "ReadTable").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *DatasetError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("dataset: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("dataset: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *DatasetError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *DatasetError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewDatasetError creates a new DatasetError.
func NewDatasetError(op string, err error, details string) *DatasetError {
	return &DatasetError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapDatasetError wraps an error as a DatasetError if it isn't already one.
func WrapDatasetError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var dsErr *DatasetError
	if errors.As(err, &dsErr) {
		return err
	}

	return NewDatasetError(op, err, details)
}
