package domain

import "time"

// Lunch is a single meal record. PackageID is set when the meal was drawn
// from a prepaid package; linking costs exactly one credit from that package.
type Lunch struct {
	ID            int32         `json:"id"`
	MemberID      int32         `json:"member"`
	PackageID     *int32        `json:"package,omitempty"`
	ValueCents    int32         `json:"value_cents"`
	Date          time.Time     `json:"date"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentMode   PaymentMode   `json:"payment_mode"`
	CreatedOn     string        `json:"created_on"`
	UpdatedOn     string        `json:"updated_on"`
}
