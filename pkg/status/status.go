// Package status defines the outcome codes shared by requests and responses.
// The same codes are used to report decoding and validation failures.
package status

import (
	"errors"
	"fmt"
)

// Status is the code carried by every response. It is serialized as its
// PascalCase identifier ("Ok", "InvalidUrl", ...).
type Status uint8

const (
	// Ok means the request was processed as expected.
	Ok Status = iota
	// InvalidURL means the request target is malformed.
	InvalidURL
	// InvalidService means the service name is not known.
	InvalidService
	// InvalidVersion means the requested API version is not supported.
	InvalidVersion
	// InvalidOptions means an option value is outside its closed set, or
	// the option does not belong to the selected service.
	InvalidOptions
	// InvalidQuery means the query is syntactically malformed.
	InvalidQuery
	// InvalidValue means the parsed parameters break a business rule.
	InvalidValue
	// NoSegment means an input coordinate could not be snapped to a street segment.
	NoSegment
	// TooBig means the request exceeds a service specific size limit.
	TooBig
)

var names = [...]string{
	Ok:             "Ok",
	InvalidURL:     "InvalidUrl",
	InvalidService: "InvalidService",
	InvalidVersion: "InvalidVersion",
	InvalidOptions: "InvalidOptions",
	InvalidQuery:   "InvalidQuery",
	InvalidValue:   "InvalidValue",
	NoSegment:      "NoSegment",
	TooBig:         "TooBig",
}

// All lists every status in declaration order.
func All() []Status {
	all := make([]Status, len(names))
	for i := range names {
		all[i] = Status(i)
	}
	return all
}

func (s Status) String() string {
	if int(s) < len(names) {
		return names[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Parse returns the status named by token.
func Parse(token string) (Status, error) {
	for i, name := range names {
		if name == token {
			return Status(i), nil
		}
	}
	return Ok, fmt.Errorf("unknown status %q", token)
}

func (s Status) MarshalText() ([]byte, error) {
	if int(s) >= len(names) {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(names[s]), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Error is a failure classified by a Status.
type Error struct {
	Code    Status
	Message string
	Err     error
}

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrInvalidURL     = &Error{Code: InvalidURL}
	ErrInvalidService = &Error{Code: InvalidService}
	ErrInvalidVersion = &Error{Code: InvalidVersion}
	ErrInvalidOptions = &Error{Code: InvalidOptions}
	ErrInvalidQuery   = &Error{Code: InvalidQuery}
	ErrInvalidValue   = &Error{Code: InvalidValue}
	ErrNoSegment      = &Error{Code: NoSegment}
	ErrTooBig         = &Error{Code: TooBig}
)

// Errorf builds an *Error with a formatted message. A %w verb keeps the
// wrapped error reachable through errors.Unwrap.
func Errorf(code Status, format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &Error{Code: code, Message: err.Error(), Err: errors.Unwrap(err)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the status classifying err. nil is Ok; errors that carry
// no status are treated as InvalidQuery.
func CodeOf(err error) Status {
	if err == nil {
		return Ok
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return InvalidQuery
}

// MessageOf returns the human readable part of err without the code prefix.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
