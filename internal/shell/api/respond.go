package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gardenhq/gardenapi/internal/core/domain"
	"github.com/gardenhq/gardenapi/internal/shell/store"
)

// =============================================================================
// Response Helpers
// =============================================================================

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeJSONError writes an error response in the {"error": ...} shape.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMessage writes a confirmation response in the {"message": ...} shape.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// writeValidationErrors writes a 400 listing every failed field rule.
func writeValidationErrors(w http.ResponseWriter, errs []error) {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": messages})
}

// writeStoreError translates store sentinel errors into the response
// taxonomy. Constraint violations caught at commit surface the same way
// as pre-checks.
func writeStoreError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, store.ErrDuplicateUsername):
		writeJSONError(w, http.StatusConflict, "Username is already registered")
	case errors.Is(err, store.ErrDuplicateEmail):
		writeJSONError(w, http.StatusConflict, "Email is already registered")
	case errors.Is(err, store.ErrDuplicateGardenName):
		writeJSONError(w, http.StatusConflict, "Garden name already exists")
	case errors.Is(err, store.ErrDuplicatePlantName):
		writeJSONError(w, http.StatusConflict, "Plant name already exists")
	case errors.Is(err, store.ErrPositionOccupied):
		writeJSONError(w, http.StatusConflict, "Position already been occupied")
	case errors.Is(err, store.ErrForeignKey):
		writeJSONError(w, http.StatusNotFound, "Referenced resource not found")
	default:
		logger.Error("store operation failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// notFoundMessage formats the standard entity-not-found error.
func notFoundMessage(entity string, id int) string {
	return fmt.Sprintf("%s id:'%d' not found", entity, id)
}

// positionOccupiedMessage formats the placement conflict error.
func positionOccupiedMessage(pos domain.Position) string {
	return fmt.Sprintf("Position '%s' already been occupied", pos)
}
