package diagnostic

import (
	"errors"
	"fmt"

	"mixin-cloner/internal/common"
)

// Category separates failures the caller can fix from engine bugs.
type Category int

const (
	// CategoryConfiguration is a source shape the engine will never support as designed.
	CategoryConfiguration Category = iota + 1
	// CategoryNotImplemented is a source shape the engine does not support yet.
	CategoryNotImplemented
	// CategoryInternal is an invariant violation inside the engine.
	CategoryInternal
	// CategoryUnsupportedOperand is an operand or reference kind that cannot be cloned.
	CategoryUnsupportedOperand
)

// Sentinel errors, one per category, for use with errors.Is.
var (
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
	ErrNotImplemented           = errors.New("not yet implemented")
	ErrInternal                 = errors.New("internal cloning error")
	ErrUnsupportedOperand       = errors.New("not supported")
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryConfiguration:
		return "configuration"
	case CategoryNotImplemented:
		return "not-implemented"
	case CategoryInternal:
		return "internal"
	case CategoryUnsupportedOperand:
		return "unsupported-operand"
	default:
		return common.UnknownStr
	}
}

func (c Category) sentinel() error {
	switch c {
	case CategoryConfiguration:
		return ErrUnsupportedConfiguration
	case CategoryNotImplemented:
		return ErrNotImplemented
	case CategoryInternal:
		return ErrInternal
	case CategoryUnsupportedOperand:
		return ErrUnsupportedOperand
	default:
		return nil
	}
}

// Error is a fatal cloning failure.
type Error struct {
	Category Category
	// Code is a unique identifier for this kind of failure.
	Code string
	// Type is the full name of the offending root type.
	Type string
	// Message is the human-readable description.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: [%s] %s", e.Category.sentinel(), e.Code, e.Message)
	if e.Type != "" {
		msg = fmt.Sprintf("[%s] %s", e.Type, msg)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the category sentinel.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Category.sentinel()
}

// WithType returns a copy of e naming the offending root type, unless one is set.
func (e *Error) WithType(typeName string) *Error {
	if e.Type != "" {
		return e
	}

	c := *e
	c.Type = typeName

	return &c
}

// Configuration reports an unsupported source shape.
func Configuration(code, format string, args ...any) *Error {
	return &Error{Category: CategoryConfiguration, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotImplemented reports a source shape the engine does not handle yet.
func NotImplemented(code, format string, args ...any) *Error {
	return &Error{Category: CategoryNotImplemented, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Internal reports an engine invariant violation.
func Internal(code, format string, args ...any) *Error {
	return &Error{Category: CategoryInternal, Code: code, Message: fmt.Sprintf(format, args...)}
}

// UnsupportedOperand reports an operand or reference kind the engine cannot clone.
func UnsupportedOperand(code, format string, args ...any) *Error {
	return &Error{Category: CategoryUnsupportedOperand, Code: code, Message: fmt.Sprintf(format, args...)}
}

// CategoryOf returns the category of err, or zero when err is not a cloning error.
func CategoryOf(err error) Category {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Category
	}

	return 0
}

// Attribute names the offending root type on err when it is a cloning error.
func Attribute(err error, typeName string) error {
	var ce *Error
	if errors.As(err, &ce) && ce.Type == "" {
		if err == error(ce) {
			return ce.WithType(typeName)
		}

		return fmt.Errorf("[%s] %w", typeName, err)
	}

	return err
}
