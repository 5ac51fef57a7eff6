package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"community-lunch-backend/internal/service"
)

// NewRouter wires every API endpoint onto a mux router.
func NewRouter(
	memberSvc service.MemberService,
	packageSvc service.PackageService,
	lunchSvc service.LunchService,
	ledgerSvc service.LedgerService,
	dashboardSvc service.DashboardService,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	members := NewMemberHandler(memberSvc)
	api.HandleFunc("/members", members.List).Methods(http.MethodGet)
	api.HandleFunc("/members", members.Create).Methods(http.MethodPost)
	api.HandleFunc("/members/{id:[0-9]+}", members.Get).Methods(http.MethodGet)
	api.HandleFunc("/members/{id:[0-9]+}", members.Update).Methods(http.MethodPut)

	packages := NewPackageHandler(packageSvc)
	api.HandleFunc("/packages", packages.List).Methods(http.MethodGet)
	api.HandleFunc("/packages", packages.Create).Methods(http.MethodPost)
	api.HandleFunc("/packages/{id:[0-9]+}", packages.Get).Methods(http.MethodGet)
	api.HandleFunc("/packages/{id:[0-9]+}", packages.Update).Methods(http.MethodPut)
	api.HandleFunc("/packages/{id:[0-9]+}", packages.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/packages/{id:[0-9]+}/decrement", packages.Decrement).Methods(http.MethodPost)
	api.HandleFunc("/packages/{id:[0-9]+}/increment", packages.Increment).Methods(http.MethodPost)

	lunches := NewLunchHandler(lunchSvc)
	api.HandleFunc("/lunches", lunches.List).Methods(http.MethodGet)
	api.HandleFunc("/lunches", lunches.Create).Methods(http.MethodPost)
	api.HandleFunc("/lunches/{id:[0-9]+}", lunches.Get).Methods(http.MethodGet)
	api.HandleFunc("/lunches/{id:[0-9]+}", lunches.Update).Methods(http.MethodPut)
	api.HandleFunc("/lunches/{id:[0-9]+}", lunches.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/lunches/{id:[0-9]+}/decrement", lunches.Decrement).Methods(http.MethodPost)
	api.HandleFunc("/lunches/{id:[0-9]+}/increment", lunches.Increment).Methods(http.MethodPost)

	ledger := NewLedgerHandler(ledgerSvc)
	api.HandleFunc("/financial/entries", ledger.List).Methods(http.MethodGet)
	api.HandleFunc("/financial/entries", ledger.Create).Methods(http.MethodPost)
	api.HandleFunc("/financial/entries/{id:[0-9]+}", ledger.Get).Methods(http.MethodGet)
	api.HandleFunc("/financial/entries/{id:[0-9]+}", ledger.Update).Methods(http.MethodPut)
	api.HandleFunc("/financial/entries/{id:[0-9]+}", ledger.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/financial/summary", ledger.Summary).Methods(http.MethodGet)

	dashboard := NewDashboardHandler(dashboardSvc)
	api.HandleFunc("/dashboard/summary", dashboard.Summary).Methods(http.MethodGet)

	return r
}
