package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/folioapp/folio/internal/errors"
)

// writeError maps service errors onto HTTP statuses: validation failures are
// the client's fault, everything else is ours.
func writeError(w http.ResponseWriter, err error) {
	var validation *apperrors.ErrValidation
	if errors.As(err, &validation) {
		http.Error(w, validation.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
