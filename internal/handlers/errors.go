package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/plata-app/plata/internal/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes: validation
// failures are 400, missing records 404, uniqueness conflicts 409 and
// business-rule rejections 422. Anything unrecognized is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validation *apperrors.ErrValidation
	var notFound *apperrors.ErrNotFound
	var duplicate *apperrors.ErrDuplicate
	var insufficient *apperrors.ErrInsufficientFunds
	var invalidState *apperrors.ErrInvalidState

	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &duplicate):
		status = http.StatusConflict
	case errors.As(err, &insufficient):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &invalidState):
		status = http.StatusUnprocessableEntity
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
