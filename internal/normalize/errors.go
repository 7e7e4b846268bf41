package normalize

import "github.com/pkg/errors"

var (
	// ErrInvalidNumber is returned when a value cannot be read as an integer.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrInvalidAddress is returned when an address field holds a non-string value.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidDate is returned when a timestamp does not fit in int64 seconds.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidMeta is returned when an account's meta is not a JSON document.
	ErrInvalidMeta = errors.New("invalid account meta")
	// ErrNotRecord is returned when a JSON object was expected but something else was found.
	ErrNotRecord = errors.New("not a record")
)
