package volerr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	CodeInputNotFound    = "INPUT_NOT_FOUND"
	CodeSchemaError      = "SCHEMA_ERROR"
	CodeRowFormatError   = "ROW_FORMAT_ERROR"
	CodeOutputWriteError = "OUTPUT_WRITE_ERROR"
)

var (
	// ErrInputNotFound is returned when the input path does not resolve to a readable file.
	ErrInputNotFound = New(CodeInputNotFound, "input file not found or not readable")

	// ErrSchema is returned when the header of the input table is unusable.
	ErrSchema = New(CodeSchemaError, "input header does not match the expected schema")

	// ErrRowFormat is returned when a data row cannot be interpreted.
	ErrRowFormat = New(CodeRowFormatError, "malformed input row")

	// ErrOutputWrite is returned when a report cannot be written to its destination.
	ErrOutputWrite = New(CodeOutputWriteError, "failed to write output")
)

var exitCodes = map[string]int{
	CodeInputNotFound:    2,
	CodeSchemaError:      3,
	CodeRowFormatError:   4,
	CodeOutputWriteError: 5,
}

type Extras map[string]interface{}

type VolumeError struct {
	ErrorCode string
	Message   string
	Extras    *Extras
	Cause     error
}

func New(errorCode string, message string) *VolumeError {
	return &VolumeError{
		ErrorCode: errorCode,
		Message:   message,
	}
}

func (e VolumeError) Msg(format string, parts ...interface{}) *VolumeError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

// WithExtras returns a copy of e carrying extras merged over the ones e already has.
func (e VolumeError) WithExtras(extras Extras) *VolumeError {
	merged := Extras{}
	if e.Extras != nil {
		for k, v := range *e.Extras {
			merged[k] = v
		}
	}
	for k, v := range extras {
		merged[k] = v
	}
	e.Extras = &merged
	return &e
}

func (e VolumeError) WithCause(cause error) *VolumeError {
	e.Cause = cause
	return &e
}

func (e *VolumeError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.ErrorCode)
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Extras != nil && len(*e.Extras) > 0 {
		keys := make([]string, 0, len(*e.Extras))
		for k := range *e.Extras {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s=%v", k, (*e.Extras)[k])
		}
		sb.WriteString(")")
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *VolumeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a VolumeError with the same code, so that
// errors.Is(err, volerr.ErrRowFormat) matches any row format error.
func (e *VolumeError) Is(target error) bool {
	t, ok := target.(*VolumeError)
	if !ok {
		return false
	}
	return t.ErrorCode == e.ErrorCode
}

// Code returns the code of the first VolumeError in err's chain, or an empty string.
func Code(err error) string {
	var ve *VolumeError
	if errors.As(err, &ve) {
		return ve.ErrorCode
	}
	return ""
}

// ExitCode maps err to the process exit status: 0 for nil, a code-specific status for
// VolumeErrors and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[Code(err)]; ok {
		return code
	}
	return 1
}
