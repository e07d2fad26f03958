package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a ledger entry. Rows are created once by the donation write
// path and never mutated or deleted afterwards; the campaign running total
// is derived from them.
type Donation struct {
	ID         uint            `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Supplies   []string        `json:"supplies"`
	DonorID    uint            `json:"donor_id"`
	CampaignID uint            `json:"campaign_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// DonationWithDonor is a ledger entry annotated with the donor's display
// name for listing.
type DonationWithDonor struct {
	Donation
	DonorName string `json:"donor_name"`
}
