package recipe

import "errors"

// Kind classifies a recipe service failure.
type Kind int

const (
	// KindValidation means the input was rejected before any network call.
	KindValidation Kind = iota + 1
	// KindMalformedResponse means the model replied with something unusable.
	KindMalformedResponse
	// KindServiceUnavailable covers transport and any other endpoint failure.
	KindServiceUnavailable
)

// String returns a human-readable kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindMalformedResponse:
		return "malformed_response"
	case KindServiceUnavailable:
		return "service_unavailable"
	default:
		return "unknown"
	}
}

// Error is returned by every Service operation. Message is safe to show to
// the user; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so callers can test against the
// sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrValidation = &Error{
		Kind:    KindValidation,
		Message: "Please provide some ingredients.",
	}
	ErrMalformedResponse = &Error{
		Kind:    KindMalformedResponse,
		Message: "The AI chef returned a recipe we could not read. Please try again.",
	}
	ErrServiceUnavailable = &Error{
		Kind:    KindServiceUnavailable,
		Message: "Failed to communicate with the AI chef. Please try again later.",
	}
)

func malformed(err error) error {
	return &Error{Kind: KindMalformedResponse, Message: ErrMalformedResponse.Message, Err: err}
}

func unavailable(err error) error {
	return &Error{Kind: KindServiceUnavailable, Message: ErrServiceUnavailable.Message, Err: err}
}

// UserMessage returns the single line shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ErrServiceUnavailable.Message
}

// KindOf returns the kind of err, or 0 when err is not a recipe error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
