package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Error types
var (
	// ErrRecordNotFound is returned by document stores when no record exists for a key
	ErrRecordNotFound = errors.New("record not found")

	// ErrMissingDocumentStore indicates a handler was built without a document store
	ErrMissingDocumentStore = errors.New("document store is required")

	// ErrMissingBlobStore indicates an image upload was attempted without a blob store
	ErrMissingBlobStore = errors.New("blob store is not configured")

	// ErrMissingIdentifier indicates a record was written without its identifier field
	ErrMissingIdentifier = errors.New("record has no identifier")
)

// Kind classifies a handler failure
type Kind int

const (
	// KindValidation is a schema violation in the request body
	KindValidation Kind = iota + 1
	// KindMalformedInput is a request payload that could not be parsed or decoded
	KindMalformedInput
	// KindNotFound is a request for an identifier with no stored record
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindMalformedInput:
		return "malformed_input"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Failure is a client-facing handler failure. Errors that are not a *Failure
// are unclassified and propagate to the caller.
type Failure struct {
	Kind   Kind
	Errors []string // field messages for KindValidation
	Err    error    // parser or decoder error for KindMalformedInput
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindValidation:
		return fmt.Sprintf("validation failed: %s", strings.Join(f.Errors, "; "))
	case KindMalformedInput:
		return fmt.Sprintf("invalid request body format: %v", f.Err)
	case KindNotFound:
		return "not found"
	default:
		return "unknown failure"
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewValidationFailure returns a validation failure carrying every field message
func NewValidationFailure(messages []string) *Failure {
	return &Failure{Kind: KindValidation, Errors: messages}
}

// NewMalformedInput wraps a parse or decode error of the request payload
func NewMalformedInput(err error) *Failure {
	return &Failure{Kind: KindMalformedInput, Err: err}
}

// NewNotFound returns a not-found failure
func NewNotFound() *Failure {
	return &Failure{Kind: KindNotFound}
}

// IsKind reports whether err is a *Failure of the given kind
func IsKind(err error, kind Kind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}
