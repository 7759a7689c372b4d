package qr

import (
	"errors"
	"fmt"

	"qrforge/internal/plan"
)

// ErrorKind is the discrete failure taxonomy for a render call. Every
// failed call carries exactly one kind; there is no partial success.
type ErrorKind string

const (
	// KindEncodingOverflow: the content exceeds the symbol capacity at the
	// requested level. Propagated verbatim from the encoder, never
	// recovered by downgrading the level.
	KindEncodingOverflow ErrorKind = "content_too_long"

	// KindPlanForbidden: the caller's plan does not cover the requested
	// qrType. Raised before any module computation.
	KindPlanForbidden ErrorKind = "forbidden"

	// KindRasterFailure: the bitmap pipeline failed for this call.
	// Terminal for the raster export only, no retry.
	KindRasterFailure ErrorKind = "raster_failure"
)

// Error is the structured error for all hard failures in this package.
type Error struct {
	Kind         ErrorKind
	Message      string
	RequiredPlan plan.Tier // set only for KindPlanForbidden
	cause        error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// AsError extracts the package error from err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsOverflow reports whether err is an encoding-overflow failure.
func IsOverflow(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindEncodingOverflow
}

// IsPlanForbidden reports whether err is a plan-gating denial.
func IsPlanForbidden(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindPlanForbidden
}

// IsRasterFailure reports whether err is a raster-export failure.
func IsRasterFailure(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindRasterFailure
}
