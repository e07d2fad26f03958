package response

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/relieflink/donations-api/internal/domain"
)

type Donation struct {
	ID         uint            `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Supplies   []string        `json:"supplies"`
	DonorID    uint            `json:"donor_id"`
	CampaignID uint            `json:"campaign_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

type DonationWithDonor struct {
	Donation
	DonorName string `json:"donor_name"`
}

func NewDonation(d domain.Donation) Donation {
	return Donation{
		ID:         d.ID,
		Amount:     d.Amount,
		Supplies:   d.Supplies,
		DonorID:    d.DonorID,
		CampaignID: d.CampaignID,
		CreatedAt:  d.CreatedAt,
	}
}

func NewDonationList(donations []domain.DonationWithDonor) []DonationWithDonor {
	out := make([]DonationWithDonor, len(donations))
	for i, d := range donations {
		out[i] = DonationWithDonor{
			Donation:  NewDonation(d.Donation),
			DonorName: d.DonorName,
		}
	}

	return out
}
