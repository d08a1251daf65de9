package emvqr

import (
	"errors"
	"fmt"
)

var (
	ErrValueTooLong         = errors.New("value too long")
	ErrInvalidTag           = errors.New("invalid tag")
	ErrInvalidLength        = errors.New("invalid length")
	ErrNonASCII             = errors.New("non-ASCII character")
	ErrTruncated            = errors.New("truncated data")
	ErrMissingCRC           = errors.New("missing CRC field")
	ErrChecksumMismatch     = errors.New("checksum mismatch")
	ErrInvalidPayload       = errors.New("invalid payload")
	ErrValidationFailed     = errors.New("validation failed")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrBuilderSealed        = errors.New("builder already sealed")
)

// EncodingError reports a field that cannot be represented in the TLV
// format. Offset is the position inside the parsed input, or -1 when the
// error comes from encoding.
type EncodingError struct {
	Tag    string
	Offset int
	Err    error
}

func (ee *EncodingError) Error() string {
	if ee.Offset >= 0 {
		return fmt.Sprintf("tag %q at offset %d: %v", ee.Tag, ee.Offset, ee.Err)
	}
	return fmt.Sprintf("tag %q: %v", ee.Tag, ee.Err)
}

func (ee *EncodingError) Unwrap() error {
	return ee.Err
}

func encodingErr(tag string, err error) *EncodingError {
	return &EncodingError{Tag: tag, Offset: -1, Err: err}
}

func parseErr(tag string, offset int, err error) *EncodingError {
	return &EncodingError{Tag: tag, Offset: offset, Err: err}
}

// ValidationError is returned when per-transaction input (amount, remarks)
// fails a shape check.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s (%s): %s", ve.Field, ve.Rule, ve.Message)
}

func (ve *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ConfigurationError is returned when a merchant profile or encoder option
// is missing or malformed.
type ConfigurationError struct {
	Field   string
	Rule    string
	Message string
}

func (ce *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid merchant configuration for %s (%s): %s", ce.Field, ce.Rule, ce.Message)
}

func (ce *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// ChecksumError carries both sides of a failed CRC comparison.
type ChecksumError struct {
	Expected string
	Actual   string
}

func (ce *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: computed %s, payload carries %s", ce.Expected, ce.Actual)
}

func (ce *ChecksumError) Unwrap() error {
	return ErrChecksumMismatch
}
