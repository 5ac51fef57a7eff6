package http

import (
	"context"
	"net/http"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/service"
)

type PackageHandler struct {
	svc service.PackageService
}

func NewPackageHandler(svc service.PackageService) *PackageHandler {
	return &PackageHandler{svc: svc}
}

type createPackageRequest struct {
	Member            int32  `json:"member"`
	UnitValueCents    *int32 `json:"unit_value_cents"`
	ValueCents        *int32 `json:"value_cents"`
	Quantity          int32  `json:"quantity"`
	RemainingQuantity *int32 `json:"remaining_quantity"`
	Date              string `json:"date"`
	Expiration        string `json:"expiration"`
	PaymentStatus     string `json:"payment_status"`
	PaymentMode       string `json:"payment_mode"`
}

type updatePackageRequest struct {
	UnitValueCents    *int32  `json:"unit_value_cents"`
	ValueCents        *int32  `json:"value_cents"`
	Quantity          *int32  `json:"quantity"`
	RemainingQuantity *int32  `json:"remaining_quantity"`
	Date              *string `json:"date"`
	Expiration        *string `json:"expiration"`
	PaymentStatus     *string `json:"payment_status"`
	PaymentMode       *string `json:"payment_mode"`
}

type quotaRequest struct {
	Amount *int32 `json:"amount"`
}

func (q quotaRequest) amount() int32 {
	if q.Amount == nil {
		return 1
	}
	return *q.Amount
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPackageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := service.CreatePackageInput{
		MemberID:          req.Member,
		UnitValueCents:    req.UnitValueCents,
		ValueCents:        req.ValueCents,
		Quantity:          req.Quantity,
		RemainingQuantity: req.RemainingQuantity,
		PaymentStatus:     domain.PaymentStatus(req.PaymentStatus),
		PaymentMode:       domain.PaymentMode(req.PaymentMode),
	}
	if req.Date != "" {
		date, err := parseDate("date", req.Date)
		if err != nil {
			writeError(w, err)
			return
		}
		input.Date = date
	}
	if req.Expiration != "" {
		expiration, err := parseDate("expiration", req.Expiration)
		if err != nil {
			writeError(w, err)
			return
		}
		input.Expiration = expiration
	}

	pkg, err := h.svc.CreatePackage(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pkg)
}

func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req updatePackageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := service.UpdatePackageInput{
		UnitValueCents:    req.UnitValueCents,
		ValueCents:        req.ValueCents,
		Quantity:          req.Quantity,
		RemainingQuantity: req.RemainingQuantity,
	}
	if input.Date, err = parseOptionalDate("date", req.Date); err != nil {
		writeError(w, err)
		return
	}
	if input.Expiration, err = parseOptionalDate("expiration", req.Expiration); err != nil {
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

	pkg, err := h.svc.UpdatePackage(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pkg, err := h.svc.GetPackage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	if memberParam := r.URL.Query().Get("member"); memberParam != "" {
		memberID, err := parseQueryID("member", memberParam)
		if err != nil {
			writeError(w, err)
			return
		}
		pkgs, err := h.svc.ListMemberPackages(r.Context(), memberID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pkgs)
		return
	}

	pkgs, err := h.svc.ListPackages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pkgs)
}

func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeletePackage(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *PackageHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.adjustQuota(w, r, h.svc.DecrementQuota)
}

func (h *PackageHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.adjustQuota(w, r, h.svc.IncrementQuota)
}

func (h *PackageHandler) adjustQuota(w http.ResponseWriter, r *http.Request, adjust func(context.Context, int32, int32) (*domain.Package, error)) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req quotaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pkg, err := adjust(r.Context(), id, req.amount())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}
