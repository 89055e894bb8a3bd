package apierr

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const serverError = "Server error"

type body struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg} with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, body{Message: msg})
}

// Write renders err. Classified errors keep their message; anything else is
// logged and reported as a generic server error.
func Write(w http.ResponseWriter, log *zap.Logger, err error) {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindInternal {
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		Message(w, http.StatusInternalServerError, serverError)
		return
	}
	WriteJSON(w, e.Kind.Status(), body{Message: e.Message, Errors: e.Fields})
}

// Decode reads a JSON request body into dst. An empty body leaves dst at
// its zero value.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return Wrap(KindInvalid, "Invalid request body", err)
	}
	return nil
}

type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Success writes {"success": true, "message": msg} with status 200. The
// one-time-code endpoints answer in this shape.
func Success(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, result{Success: true, Message: msg})
}

// WriteResult is Write for the one-time-code endpoints: classified errors
// become {"success": false, "message": ...}.
func WriteResult(w http.ResponseWriter, log *zap.Logger, err error) {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindInternal {
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		WriteJSON(w, http.StatusInternalServerError, result{Message: serverError})
		return
	}
	WriteJSON(w, e.Kind.Status(), result{Message: e.Message})
}
