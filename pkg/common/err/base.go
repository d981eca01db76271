package err

import (
	"errors"
	"strings"
)

// Error is the base error type shared by every package.
//
// Package records where the failure originated, Code is the machine-readable
// kind callers switch on, Op names the operation, Message is a short human
// description and Err is the wrapped cause (nil for leaf errors).
type Error struct {
	Package string
	Code    string
	Op      string
	Message string
	Err     error

	// Context carries optional structured details; allocated on first use.
	Context map[string]any
}

// Error renders as "[package][code] op: message: wrapped".
func (e *Error) Error() string {
	var parts []string

	var prefix strings.Builder
	if e.Package != "" {
		prefix.WriteString("[" + e.Package + "]")
	}
	if e.Code != "" {
		prefix.WriteString("[" + e.Code + "]")
	}
	if prefix.Len() > 0 {
		parts = append(parts, prefix.String())
	}
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, ": ")
	if e.Err != nil {
		if result == "" {
			return e.Err.Error()
		}
		result += ": " + e.Err.Error()
	}
	return result
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error carrying the same non-empty code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext attaches a key/value detail and returns e for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// GetContext returns the detail stored under key, or nil.
func (e *Error) GetContext(key string) any {
	if e.Context == nil {
		return nil
	}
	return e.Context[key]
}

// New builds an *Error from its parts.
func New(pkg, code, op, message string, cause error) *Error {
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Message: message,
		Err:     cause,
	}
}

// Sentinel returns a bare *Error with only a code, for use with errors.Is.
func Sentinel(code string) *Error {
	return &Error{Code: code}
}

// Wrap adds package and operation context to cause. Returns nil for a nil cause.
func Wrap(cause error, pkg, op string) error {
	if cause == nil {
		return nil
	}
	return &Error{Package: pkg, Op: op, Err: cause}
}

// WrapWithCode is Wrap plus an explicit code.
func WrapWithCode(cause error, pkg, code, op string) error {
	if cause == nil {
		return nil
	}
	return &Error{Package: pkg, Code: code, Op: op, Err: cause}
}

// IsCode reports whether any *Error in the chain of e carries code.
func IsCode(e error, code string) bool {
	for e != nil {
		var be *Error
		if !errors.As(e, &be) {
			return false
		}
		if be.Code == code {
			return true
		}
		e = be.Err
	}
	return false
}

// GetCode returns the first non-empty code in the chain of e.
func GetCode(e error) string {
	for e != nil {
		var be *Error
		if !errors.As(e, &be) {
			return ""
		}
		if be.Code != "" {
			return be.Code
		}
		e = be.Err
	}
	return ""
}

// GetPackage returns the package of the outermost *Error in the chain.
func GetPackage(e error) string {
	var be *Error
	if errors.As(e, &be) {
		return be.Package
	}
	return ""
}

// GetOp returns the operation of the outermost *Error in the chain.
func GetOp(e error) string {
	var be *Error
	if errors.As(e, &be) {
		return be.Op
	}
	return ""
}
