package etl

import "fmt"

// TransferError is returned when the source object cannot be retrieved.
type TransferError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// DecodeError is returned when the source bytes are not valid columnar data.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SchemaError is returned when a stage needs a column the table does not have.
type SchemaError struct {
	Stage  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing column %q", e.Stage, e.Column)
}

// ConstraintError is returned when two rows share a review_id, or one has none.
type ConstraintError struct {
	ReviewID string
	Err      error
}

func (e *ConstraintError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("primary key violation on review_id %q: %v", e.ReviewID, e.Err)
	}
	return fmt.Sprintf("primary key violation on review_id %q", e.ReviewID)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// StorageError is returned on any failure opening or writing the destination.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
