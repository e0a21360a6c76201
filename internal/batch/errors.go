package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBatch is matched by EmptyBatchError.
	ErrEmptyBatch = errors.New("batch: no records")
	// ErrTooManyRecords is matched by every TooManyRecordsError.
	ErrTooManyRecords = errors.New("batch: too many records")
)

// EmptyBatchError is returned when a batch holds no records.
type EmptyBatchError struct{}

func (EmptyBatchError) Error() string { return ErrEmptyBatch.Error() }

func (EmptyBatchError) Is(target error) bool { return target == ErrEmptyBatch }

// TooManyRecordsError is returned when a batch exceeds the record cap.
type TooManyRecordsError struct {
	Count int
	Max   int
}

func (e *TooManyRecordsError) Error() string {
	return fmt.Sprintf("batch: %d records exceeds the limit of %d", e.Count, e.Max)
}

func (e *TooManyRecordsError) Is(target error) bool { return target == ErrTooManyRecords }
