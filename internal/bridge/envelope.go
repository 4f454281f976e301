// Package bridge implements the command bridge between the host shell
// and the web-rendered UI: a registry of named commands and a
// dispatcher that turns invocation requests into handler calls and
// structured responses.
package bridge

import (
	"fmt"
	"strings"
)

// Status of an invocation response on the wire.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
	// StatusAccepted acknowledges a blocking command. The settled
	// ok/error response follows on the completion sink under the
	// same request ID.
	StatusAccepted Status = "accepted"
)

// Error kinds surfaced to the UI in an error response.
const (
	KindUnknownCommand     = "UnknownCommandError"
	KindHandlerFailure     = "HandlerFailure"
	KindShutdownInProgress = "ShutdownInProgress"
)

// Request is a single invocation from the UI surface. ID is the
// correlation key for matching responses; the dispatcher assigns one
// when the caller leaves it empty.
type Request struct {
	ID      string `json:"id,omitempty"`
	Command string `json:"command"`
	Args    Args   `json:"arguments,omitempty"`
}

// Response is the result of one request. Exactly one Response is
// produced per Request.
type Response struct {
	ID      string     `json:"id"`
	Status  Status     `json:"status"`
	Payload any        `json:"payload,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo is the structured error carried by an error response.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Args holds a command's arguments: either an ordered positional
// sequence or a named-field bag, depending on what the UI sent.
type Args struct {
	Positional []any
	Named      map[string]any
}

// ArgsFrom normalizes a decoded JSON value into Args. Arrays become
// positional arguments, objects become named fields, any other
// non-nil value becomes a single positional argument.
func ArgsFrom(v any) Args {
	switch x := v.(type) {
	case nil:
		return Args{}
	case []any:
		return Args{Positional: x}
	case map[string]any:
		return Args{Named: x}
	default:
		return Args{Positional: []any{x}}
	}
}

// IsEmpty reports whether no arguments were supplied.
func (a Args) IsEmpty() bool {
	return len(a.Positional) == 0 && len(a.Named) == 0
}

// String returns the named argument as a string. Falls back to the
// first positional argument so callers can accept either form.
func (a Args) String(key string) (string, bool) {
	if v, ok := a.Named[key]; ok {
		return asString(v), true
	}
	return a.StringAt(0)
}

// StringAt returns the positional argument at index i as a string.
func (a Args) StringAt(i int) (string, bool) {
	if i < 0 || i >= len(a.Positional) {
		return "", false
	}
	return asString(a.Positional[i]), true
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func okResponse(id string, payload any) Response {
	return Response{ID: id, Status: StatusOK, Payload: payload}
}

func errResponse(id, kind, message string) Response {
	return Response{
		ID:     id,
		Status: StatusError,
		Error:  &ErrorInfo{Kind: kind, Message: message},
	}
}
