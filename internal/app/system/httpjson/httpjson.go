// internal/app/system/httpjson/httpjson.go

// Package httpjson writes the service's uniform response envelope and maps
// domain errors onto HTTP status codes.
//
// Every endpoint responds with {"success": bool, "message": string,
// "data": …} so mobile clients can handle results uniformly regardless of
// the transport status code.
package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
	"go.uber.org/zap"
)

// Envelope is the wire shape of every response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Error kinds. Handlers and stores classify failures with these; the
// writer picks the status code.
type Kind int

const (
	KindValidation  Kind = iota // 400 malformed or missing input
	KindConflict                // 400 duplicate like/request, already member
	KindPermission              // 403 role or ownership check failed
	KindNotFound                // 404 group/post/member/request absent
	KindUnavailable             // 503 store unreachable
	KindInternal                // 500 anything else
)

// Error carries a kind and a client-safe message.
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

func (e *Error) Unwrap() error { return e.Err }

// Constructors for the taxonomy.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func Permission(msg string) *Error { return &Error{Kind: KindPermission, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }

func Unavailable(msg string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

func (k Kind) status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// OK writes a success envelope with status 200.
func OK(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a success envelope with status 201.
func Created(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope for err. *Error values map to their
// kind's status; Mongo connectivity failures become 503; mongo.ErrNoDocuments
// becomes 404; everything else is a 500 with a generic message (the real
// error goes to the log, not the client).
func Fail(w http.ResponseWriter, log *zap.Logger, err error) {
	var de *Error
	if errors.As(err, &de) {
		if de.Kind == KindInternal || de.Kind == KindUnavailable {
			logError(log, de)
		}
		write(w, de.Kind.status(), Envelope{Success: false, Message: de.Message})
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		write(w, http.StatusNotFound, Envelope{Success: false, Message: "not found"})
		return
	}
	if isUnavailable(err) {
		logError(log, err)
		write(w, http.StatusServiceUnavailable, Envelope{Success: false, Message: "service temporarily unavailable"})
		return
	}
	logError(log, err)
	write(w, http.StatusInternalServerError, Envelope{Success: false, Message: "internal server error"})
}

// isUnavailable classifies driver errors that mean the store could not be
// reached at all, as opposed to a query that ran and found nothing.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	var sse topology.ServerSelectionError
	return errors.As(err, &sse)
}

func logError(log *zap.Logger, err error) {
	if log != nil {
		log.Error("request failed", zap.Error(err))
	}
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
