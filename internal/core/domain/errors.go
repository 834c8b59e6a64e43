package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownProvince indicates a name outside the nine recognised provinces.
	ErrUnknownProvince = errors.New("unknown province")

	// ErrLoadFailure covers every way a province data resource can fail to load.
	// Callers never need to tell missing, unreachable and malformed apart.
	ErrLoadFailure = errors.New("province data load failed")

	// ErrMalformedDataset indicates a province payload that does not have the
	// {"towns": {"<Town>": [records...]}} shape.
	ErrMalformedDataset = errors.New("malformed province dataset")

	// ErrNoSource indicates no data source has been configured.
	ErrNoSource = errors.New("no data source configured")
)

// LoadFailureMessage is the advisory shown to users when a province fails to load.
const LoadFailureMessage = "Unable to load province data. Please try again."
