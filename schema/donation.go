package schema

import (
	"time"

	"github.com/google/uuid"
)

const (
	DONATION_COMPLETED = "completed"
)

// Donation is a ledger row for a recorded GCash donation. The reference is
// supplied by the donor and never verified against the payment provider.
type Donation struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	DonorID        string    `json:"donor_id" gorm:"index"`
	RequestID      string    `json:"request_id" gorm:"index"`
	Amount         float64   `json:"amount"`
	PlatformFee    float64   `json:"platform_fee"`
	NetAmount      float64   `json:"net_amount"`
	GCashReference string    `json:"gcash_reference" gorm:"unique_index;not null"`
	Status         string    `json:"status" sql:"default:'completed'"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// DonationTotal sums the completed donations of a donor
type DonationTotal struct {
	TotalAmount float64 `json:"total_amount"`
	Count       int     `json:"count"`
}
