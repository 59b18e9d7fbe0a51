package domain

import "errors"

var (
	ErrVendorNotFound = errors.New("vendor not found")
	ErrOrderNotFound  = errors.New("order not found")
	ErrReviewNotFound = errors.New("review not found")

	// ErrDataStore marks a read or write failure against the data store.
	ErrDataStore = errors.New("data store error")

	// ErrInvalidMetrics marks raw vendor signals outside their valid domain.
	ErrInvalidMetrics = errors.New("invalid vendor metrics")

	ErrOrderNotDelivered = errors.New("order is not delivered")
	ErrOrderCancelled    = errors.New("order is cancelled")
	ErrReviewExists      = errors.New("order already reviewed")
	ErrReviewForbidden   = errors.New("review belongs to another customer")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// DataError wraps a data store failure with the operation that failed.
// errors.Is(err, ErrDataStore) reports true for any DataError.
type DataError struct {
	Op  string
	Err error
}

func NewDataError(op string, err error) error {
	return &DataError{Op: op, Err: err}
}

func (e *DataError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Is(target error) bool {
	return target == ErrDataStore
}
