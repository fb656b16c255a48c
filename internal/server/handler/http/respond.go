package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atinyakov/taletrail/internal/models"
	"github.com/atinyakov/taletrail/internal/repository"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ok writes a success envelope.
func ok[T any](w http.ResponseWriter, status int, msg string, data T) {
	writeJSON(w, status, models.Envelope[T]{Success: true, Message: msg, Data: data})
}

// fail writes a failure envelope.
func fail(w http.ResponseWriter, status int, msg, errType, details string) {
	writeJSON(w, status, models.Envelope[any]{
		Message: msg,
		Error:   &models.ErrorDetail{Type: errType, Details: details},
	})
}

// writeError maps repository errors to envelopes. subject names the record
// in messages, e.g. "Book".
func writeError(w http.ResponseWriter, err error, subject string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		fail(w, http.StatusNotFound, subject+" not found", "NotFound", "")
	case errors.Is(err, repository.ErrConflict):
		fail(w, http.StatusConflict, subject+" already exists", "Conflict", "")
	case errors.Is(err, repository.ErrForbidden):
		fail(w, http.StatusForbidden, "You can only modify your own "+strings.ToLower(subject)+"s", "Forbidden", "")
	default:
		fail(w, http.StatusInternalServerError, "Internal server error", "InternalServerError", "")
	}
}

// decode reads a JSON body into v and validates it. On failure it writes a
// 400 envelope and returns false.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body", "ValidationError", err.Error())
		return false
	}
	if err := validate.Struct(v); err != nil {
		fail(w, http.StatusBadRequest, validationMessage(err), "ValidationError", err.Error())
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s=%s)", fe.Field(), fe.Tag(), fe.Param())
	}
}
