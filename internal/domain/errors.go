package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every *ParseError via errors.Is.
	ErrParse = errors.New("unrecognized forecast object key")

	// ErrConfigurationGap matches every *ConfigurationGap via errors.Is.
	ErrConfigurationGap = errors.New("incomplete static definition")

	// ErrUnknownVariable matches every *UnknownVariableWarning via errors.Is.
	ErrUnknownVariable = errors.New("unknown variable")
)

// ParseError reports an object key that does not follow any known
// convention or carries an invalid field.
type ParseError struct {
	Key    string
	Field  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %q", e.Key)
	if e.Field != "" {
		msg += ": " + e.Field
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func newParseError(key, field, reason string, err error) *ParseError {
	return &ParseError{Key: key, Field: field, Reason: reason, Err: err}
}

// ConfigurationGap reports a model or theme that the decoder recognizes but
// whose static definition lacks a field needed to build catalog metadata.
type ConfigurationGap struct {
	Model Model
	Theme Theme
	Field string
}

func (e *ConfigurationGap) Error() string {
	subject := string(e.Model)
	if e.Theme != "" {
		if subject != "" {
			subject += "/"
		}
		subject += string(e.Theme)
	}
	return fmt.Sprintf("configuration gap: %s: missing %s", subject, e.Field)
}

func (e *ConfigurationGap) Is(target error) bool {
	return target == ErrConfigurationGap
}

// UnknownVariableWarning is attached to asset metadata when a variable has no
// entry in the variable table. It is never returned as an error.
type UnknownVariableWarning struct {
	Model    Model
	Variable string
}

func (w *UnknownVariableWarning) Error() string {
	return fmt.Sprintf("unknown variable %q for model %s", w.Variable, w.Model)
}

func (w *UnknownVariableWarning) Is(target error) bool {
	return target == ErrUnknownVariable
}
