package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPaid PaymentStatus = "PAID"
	PaymentStatusOpen PaymentStatus = "OPEN"
)

type PaymentMode string

const (
	PaymentModePix  PaymentMode = "PIX"
	PaymentModeCard PaymentMode = "CARD"
	PaymentModeCash PaymentMode = "CASH"
)

type PackageStatus string

const (
	PackageStatusValid   PackageStatus = "VALID"
	PackageStatusExpired PackageStatus = "EXPIRED"
)

// Package is a prepaid block of meal credits. ValueCents is always
// UnitValueCents * Quantity; Status is derived from Expiration against the
// date of the write that last touched the row, not recomputed on read.
type Package struct {
	ID                int32         `json:"id"`
	MemberID          int32         `json:"member"`
	ValueCents        int32         `json:"value_cents"`
	UnitValueCents    int32         `json:"unit_value_cents"`
	Date              time.Time     `json:"date"` // purchase date
	PaymentStatus     PaymentStatus `json:"payment_status"`
	PaymentMode       PaymentMode   `json:"payment_mode"`
	Quantity          int32         `json:"quantity"`
	RemainingQuantity int32         `json:"remaining_quantity"`
	Expiration        time.Time     `json:"expiration"`
	Status            PackageStatus `json:"status"`
	CreatedOn         string        `json:"created_on"`
	UpdatedOn         string        `json:"updated_on"`
}

// StatusOn derives the validity status of a package expiring on expiration
// as observed on the given day. Comparison is by calendar date.
func StatusOn(expiration, today time.Time) PackageStatus {
	if DateOnly(expiration).Before(DateOnly(today)) {
		return PackageStatusExpired
	}
	return PackageStatusValid
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
