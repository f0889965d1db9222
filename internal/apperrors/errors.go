package apperrors

import (
	"errors"
	"fmt"
)

// Error categories. Handlers classify with errors.Is against these.
var (
	ErrConfig     = errors.New("configuration error")
	ErrRender     = errors.New("template render error")
	ErrUpstream   = errors.New("upstream provider error")
	ErrValidation = errors.New("response validation error")
)

// Error wraps a category with the operation that failed and a detail
// message. Client marks errors caused by the request itself (bad mode,
// missing required field) as opposed to deployment misconfiguration.
type Error struct {
	Kind   error
	Op     string
	Detail string
	Client bool
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (op: %s): %s: %v", e.Kind, e.Op, e.Detail, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s (op: %s): %s", e.Kind, e.Op, e.Detail)
	}
	return fmt.Sprintf("%s (op: %s)", e.Kind, e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// NewConfig reports a deployment-side configuration problem, such as a
// missing prompt template.
func NewConfig(op, detail string) error {
	return &Error{Kind: ErrConfig, Op: op, Detail: detail}
}

func NewConfigWrap(op, detail string, err error) error {
	return &Error{Kind: ErrConfig, Op: op, Detail: detail, Err: err}
}

// NewClientConfig reports a request-side violation, such as personalized
// mode without a resume.
func NewClientConfig(op, detail string) error {
	return &Error{Kind: ErrConfig, Op: op, Detail: detail, Client: true}
}

func NewRender(op, detail string) error {
	return &Error{Kind: ErrRender, Op: op, Detail: detail}
}

// NewUpstream carries the provider's own message through untouched.
func NewUpstream(op string, err error) error {
	return &Error{Kind: ErrUpstream, Op: op, Detail: "provider call failed", Err: err}
}

// NewValidation names the field the provider's payload was missing.
func NewValidation(op, detail string) error {
	return &Error{Kind: ErrValidation, Op: op, Detail: detail}
}

// IsClient reports whether err is a request-side configuration error.
func IsClient(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Client
}
