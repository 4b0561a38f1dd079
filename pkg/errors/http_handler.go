package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError renders err as an error body. Non AppError values become INTERNAL ERROR.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := AsAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	return json.NewEncoder(w).Encode(appErr.Response())
}
