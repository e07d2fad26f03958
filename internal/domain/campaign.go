package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DueDateFormat is the canonical wire form of a campaign due date.
const DueDateFormat = "2006-01-02"

type Campaign struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Location    string          `json:"location"`
	Urgency     string          `json:"urgency"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Goal        decimal.Decimal `json:"goal"`
	// CurrentAmount is a running total maintained in lockstep with the
	// donation ledger. The only writer is the donation path.
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Due           time.Time       `json:"-"`
	IsDeleted     bool            `json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CampaignWithDonorCount annotates a campaign with the number of distinct
// donors who have donated to it, derived from the ledger.
type CampaignWithDonorCount struct {
	Campaign
	DonorCount int64 `json:"donor_count"`
}
