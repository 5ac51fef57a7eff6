package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/logger"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps service errors onto HTTP statuses: validation failures are
// 400 with the offending field and code, missing rows are 404, the rest 500.
func writeError(w http.ResponseWriter, err error) {
	if verr, ok := domain.AsValidationError(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": verr})
		return
	}
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]string{"message": "not found"}})
		return
	}
	logger.Error("Request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": map[string]string{"message": "internal error"}})
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, domain.NewValidationError("id", domain.ErrInvalidAmount, "id must be a number")
	}
	return int32(id), nil
}

func parseQueryID(field, value string) (int32, error) {
	id, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, domain.NewValidationError(field, domain.ErrInvalidAmount, field+" must be a number")
	}
	return int32(id), nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, domain.ErrInconsistentValue, "date must use the YYYY-MM-DD format")
	}
	return t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"message": "invalid request body"}})
		return false
	}
	return true
}
