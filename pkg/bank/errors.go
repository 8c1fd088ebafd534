package bank

import "errors"

var (
	// ErrNotABank is returned when a source does not start with the bank
	// file identifier.
	ErrNotABank = errors.New("not a Kilohearts bank")

	// ErrMalformed is wrapped by every structural parse failure: bad check
	// bytes or version tag, out-of-bounds name references, overlapping
	// payload ranges.
	ErrMalformed = errors.New("malformed bank")

	// ErrBankWritten is returned when an item is added to a writer after
	// the bank has been committed.
	ErrBankWritten = errors.New("bank already written")

	// ErrNotMetadataItem is returned when metadata is requested for an item
	// that is not the metadata file.
	ErrNotMetadataItem = errors.New("item is not a metadata file")
)
