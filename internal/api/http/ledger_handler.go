package http

import (
	"net/http"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
	"community-lunch-backend/internal/service"
)

type LedgerHandler struct {
	svc service.LedgerService
}

func NewLedgerHandler(svc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

type entryRequest struct {
	EntryType   string `json:"entry_type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ValueCents  int32  `json:"value_cents"`
	Date        string `json:"date"`
}

func (req entryRequest) toEntry() (*domain.LedgerEntry, error) {
	entry := &domain.LedgerEntry{
		EntryType:   domain.EntryType(req.EntryType),
		Category:    domain.EntryCategory(req.Category),
		Description: req.Description,
		ValueCents:  req.ValueCents,
	}
	if req.Date != "" {
		date, err := parseDate("date", req.Date)
		if err != nil {
			return nil, err
		}
		entry.Date = date
	}
	return entry, nil
}

func (h *LedgerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	entry, err := req.toEntry()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.CreateEntry(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.svc.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *LedgerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req entryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	entry, err := req.toEntry()
	if err != nil {
		writeError(w, err)
		return
	}
	entry.ID = id
	if err := h.svc.UpdateEntry(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *LedgerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ledgerFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.svc.ListEntries(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Summary defaults to the current month when the period is not given.
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var from, to time.Time
	var err error

	if v := q.Get("date_from"); v != "" {
		if from, err = parseDate("date_from", v); err != nil {
			writeError(w, err)
			return
		}
	}
	if v := q.Get("date_to"); v != "" {
		if to, err = parseDate("date_to", v); err != nil {
			writeError(w, err)
			return
		}
	}
	if from.IsZero() && to.IsZero() {
		now := time.Now().UTC()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, -1)
	}

	summary, err := h.svc.GetSummary(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func ledgerFilterFromQuery(r *http.Request) (repository.LedgerFilter, error) {
	var filter repository.LedgerFilter
	q := r.URL.Query()

	if v := q.Get("entry_type"); v != "" {
		entryType := domain.EntryType(v)
		filter.EntryType = &entryType
	}
	if v := q.Get("category"); v != "" {
		category := domain.EntryCategory(v)
		filter.Category = &category
	}
	if v := q.Get("date_from"); v != "" {
		date, err := parseDate("date_from", v)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &date
	}
	if v := q.Get("date_to"); v != "" {
		date, err := parseDate("date_to", v)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &date
	}
	if v := q.Get("value_cents_min"); v != "" {
		min, err := parseQueryID("value_cents_min", v)
		if err != nil {
			return filter, err
		}
		filter.ValueCentsMin = &min
	}
	if v := q.Get("value_cents_max"); v != "" {
		max, err := parseQueryID("value_cents_max", v)
		if err != nil {
			return filter, err
		}
		filter.ValueCentsMax = &max
	}
	return filter, nil
}
