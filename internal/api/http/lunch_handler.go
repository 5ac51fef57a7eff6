package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
	"community-lunch-backend/internal/service"
)

type LunchHandler struct {
	svc service.LunchService
}

func NewLunchHandler(svc service.LunchService) *LunchHandler {
	return &LunchHandler{svc: svc}
}

type createLunchRequest struct {
	Member        int32  `json:"member"`
	ValueCents    int32  `json:"value_cents"`
	Date          string `json:"date"`
	PaymentStatus string `json:"payment_status"`
	PaymentMode   string `json:"payment_mode"`
	Package       *int32 `json:"package"`
	UsePackage    bool   `json:"use_package"`
}

type updateLunchRequest struct {
	ValueCents    *int32  `json:"value_cents"`
	Date          *string `json:"date"`
	PaymentStatus *string `json:"payment_status"`
	PaymentMode   *string `json:"payment_mode"`
	// Package distinguishes "absent" from an explicit null, which unlinks
	// the lunch from its package.
	Package json.RawMessage `json:"package"`
}

func (h *LunchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLunchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := service.CreateLunchInput{
		MemberID:      req.Member,
		ValueCents:    req.ValueCents,
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
		PaymentMode:   domain.PaymentMode(req.PaymentMode),
		PackageID:     req.Package,
		UsePackage:    req.UsePackage,
	}
	if req.Date != "" {
		date, err := parseDate("date", req.Date)
		if err != nil {
			writeError(w, err)
			return
		}
		input.Date = date
	}

	lunch, err := h.svc.CreateLunch(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lunch)
}

func (h *LunchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateLunchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := service.UpdateLunchInput{ValueCents: req.ValueCents}
	if input.Date, err = parseOptionalDate("date", req.Date); err != nil {
		writeError(w, err)
		return
	}
	if req.PaymentStatus != nil {
		status := domain.PaymentStatus(*req.PaymentStatus)
		input.PaymentStatus = &status
	}
	if req.PaymentMode != nil {
		mode := domain.PaymentMode(*req.PaymentMode)
		input.PaymentMode = &mode
	}
	if len(req.Package) > 0 {
		if bytes.Equal(bytes.TrimSpace(req.Package), []byte("null")) {
			input.ClearPackage = true
		} else {
			var pkgID int32
			if err := json.Unmarshal(req.Package, &pkgID); err != nil {
				writeError(w, domain.NewValidationError("package", domain.ErrInvalidAmount, "package must be a number or null"))
				return
			}
			input.PackageID = &pkgID
		}
	}

	lunch, err := h.svc.UpdateLunch(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lunch)
}

func (h *LunchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	lunch, err := h.svc.GetLunch(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lunch)
}

func (h *LunchHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := lunchFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	lunches, err := h.svc.ListLunches(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lunches)
}

func (h *LunchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeleteLunch(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *LunchHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.adjustQuota(w, r, h.svc.DecrementQuota)
}

func (h *LunchHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.adjustQuota(w, r, h.svc.IncrementQuota)
}

func (h *LunchHandler) adjustQuota(w http.ResponseWriter, r *http.Request, adjust func(context.Context, int32, int32) error) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req quotaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := adjust(r.Context(), id, req.amount()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func lunchFilterFromQuery(r *http.Request) (repository.LunchFilter, error) {
	var filter repository.LunchFilter
	q := r.URL.Query()

	if v := q.Get("member"); v != "" {
		id, err := parseQueryID("member", v)
		if err != nil {
			return filter, err
		}
		filter.MemberID = &id
	}
	if v := q.Get("package"); v != "" {
		id, err := parseQueryID("package", v)
		if err != nil {
			return filter, err
		}
		filter.PackageID = &id
	}
	if v := q.Get("payment_status"); v != "" {
		status := domain.PaymentStatus(v)
		filter.PaymentStatus = &status
	}
	if v := q.Get("date"); v != "" {
		date, err := parseDate("date", v)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}
	return filter, nil
}
