package domain

import "time"

type EntryType string

const (
	EntryTypeInflow  EntryType = "INFLOW"
	EntryTypeOutflow EntryType = "OUTFLOW"
)

type EntryCategory string

const (
	// Inflows
	EntryCategoryMealPayment EntryCategory = "MEAL_PAYMENT"
	EntryCategoryDonation    EntryCategory = "DONATION"
	// Outflows
	EntryCategoryReceipt EntryCategory = "RECEIPT"
	EntryCategoryStaff   EntryCategory = "STAFF"
	EntryCategoryExpense EntryCategory = "EXPENSE"
	EntryCategoryRefund  EntryCategory = "REFUND"
)

var inflowCategories = map[EntryCategory]bool{
	EntryCategoryMealPayment: true,
	EntryCategoryDonation:    true,
}

var outflowCategories = map[EntryCategory]bool{
	EntryCategoryReceipt: true,
	EntryCategoryStaff:   true,
	EntryCategoryExpense: true,
	EntryCategoryRefund:  true,
}

// LedgerEntry is one row of the financial ledger. LunchID and PackageID are
// mutually exclusive back-references to the record the entry was synchronized
// from; both are nil for manually booked entries.
type LedgerEntry struct {
	ID          int32         `json:"id"`
	EntryType   EntryType     `json:"entry_type"`
	Category    EntryCategory `json:"category"`
	Description string        `json:"description"`
	ValueCents  int32         `json:"value_cents"`
	Date        time.Time     `json:"date"`
	LunchID     *int32        `json:"lunch,omitempty"`
	PackageID   *int32        `json:"package,omitempty"`
	CreatedOn   string        `json:"created_on"`
	UpdatedOn   string        `json:"updated_on"`
}

// Validate checks the type/category compatibility rule: inflow entries may
// only use inflow categories, outflow entries only outflow categories.
func (e *LedgerEntry) Validate() error {
	switch e.EntryType {
	case EntryTypeInflow:
		if !inflowCategories[e.Category] {
			return NewValidationError("category", ErrInconsistentValue, "category not compatible with an inflow entry")
		}
	case EntryTypeOutflow:
		if !outflowCategories[e.Category] {
			return NewValidationError("category", ErrInconsistentValue, "category not compatible with an outflow entry")
		}
	default:
		return NewValidationError("entry_type", ErrMissingField, "entry type is required")
	}
	if e.Description == "" {
		return NewValidationError("description", ErrMissingField, "description is required")
	}
	if e.ValueCents < 0 {
		return NewValidationError("value_cents", ErrInvalidAmount, "value must be zero or positive")
	}
	if e.Date.IsZero() {
		return NewValidationError("date", ErrMissingField, "date is required")
	}
	if e.LunchID != nil && e.PackageID != nil {
		return NewValidationError("package", ErrInconsistentValue, "entry cannot reference both a lunch and a package")
	}
	return nil
}

// LedgerSummary aggregates entry values over a period.
type LedgerSummary struct {
	InflowCents  int32 `json:"inflow_cents"`
	OutflowCents int32 `json:"outflow_cents"`
	BalanceCents int32 `json:"balance_cents"`
}

// DashboardSummary is the read-only snapshot served on the dashboard.
type DashboardSummary struct {
	MonthlyBalanceCents int32          `json:"monthly_balance_cents"`
	MonthlyInflowCents  int32          `json:"inflow_cents"`
	MonthlyOutflowCents int32          `json:"outflow_cents"`
	TotalMembers        int32          `json:"total_members"`
	MembersByRole       map[Role]int32 `json:"members_by_role"`
	LunchesLast30Days   int32          `json:"lunches_last_30_days"`
	OpenLunches         int32          `json:"open_lunches"`
	TotalLunches        int32          `json:"total_lunches"`
}
