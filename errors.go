package normalize

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNoSupportedNormalizer indicates dispatch exhausted every candidate
	// without finding one that supports the value. Raised for both
	// normalization and denormalization.
	ErrNoSupportedNormalizer = errors.New("no supported normalizer")

	// ErrNotRegisterable indicates a candidate implements neither
	// Normalizer nor Denormalizer.
	ErrNotRegisterable = errors.New("candidate is not a normalizer")

	// ErrRegistrySealed indicates a registration attempt after a chain was
	// built from the registry.
	ErrRegistrySealed = errors.New("registry sealed")

	// ErrMissingEncoder indicates no encoder is registered for a format.
	ErrMissingEncoder = errors.New("missing encoder")

	// ErrNormalize indicates a normalizer failed to convert a value.
	ErrNormalize = errors.New("normalize failed")

	// ErrDenormalize indicates a denormalizer failed to rebuild a value.
	ErrDenormalize = errors.New("denormalize failed")

	// ErrEncode indicates the encoder failed to encode normalized data.
	ErrEncode = errors.New("encode failed")

	// ErrDecode indicates the encoder failed to decode input data.
	ErrDecode = errors.New("decode failed")
)

// Dispatch directions, used in error context.
const (
	directionNormalize   = "normalize"
	directionDenormalize = "denormalize"
)

// ResolveError represents a dispatch failure: no registered candidate
// supports the value. It wraps ErrNoSupportedNormalizer with the type and
// format that failed to resolve.
type ResolveError struct {
	Err       error  // Underlying sentinel error (ErrNoSupportedNormalizer)
	Direction string // "normalize" or "denormalize"
	TypeName  string // Declaration key of the unresolved type
	Format    string // Target format
}

func (e *ResolveError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("%s for type %s and format %q (%s)", e.Err.Error(), e.TypeName, e.Format, e.Direction)
	}
	return fmt.Sprintf("%s for type %s (%s)", e.Err.Error(), e.TypeName, e.Direction)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// TransformError represents a failure inside a selected candidate.
// It wraps a sentinel error with context about the value and format.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrNormalize, ErrDenormalize)
	Direction string // "normalize" or "denormalize"
	TypeName  string // Declaration key of the value's type
	Format    string // Target format
	Cause     error  // Original error from the candidate
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s type %s for format %q: %v", e.Direction, e.TypeName, e.Format, e.Cause)
	}
	return fmt.Sprintf("%s type %s for format %q", e.Direction, e.TypeName, e.Format)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// EncodeError represents an encoder failure or a missing encoder.
type EncodeError struct {
	Err    error  // Underlying sentinel error (ErrEncode, ErrDecode, ErrMissingEncoder)
	Format string // Format the serializer was asked for
	Cause  error  // Original error from the encoder
}

func (e *EncodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for format %q: %v", e.Err.Error(), e.Format, e.Cause)
	}
	return fmt.Sprintf("%s for format %q", e.Err.Error(), e.Format)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// newResolveError creates a ResolveError for dispatch exhaustion.
func newResolveError(direction, typeName, format string) error {
	return &ResolveError{
		Err:       ErrNoSupportedNormalizer,
		Direction: direction,
		TypeName:  typeName,
		Format:    format,
	}
}

// newTransformError creates a TransformError for candidate failures.
func newTransformError(sentinel error, direction, typeName, format string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Direction: direction,
		TypeName:  typeName,
		Format:    format,
		Cause:     cause,
	}
}

// newEncodeError creates an EncodeError for encoder failures.
func newEncodeError(sentinel error, format string, cause error) error {
	return &EncodeError{
		Err:    sentinel,
		Format: format,
		Cause:  cause,
	}
}
