package response

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/relieflink/donations-api/internal/domain"
)

type Campaign struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Location      string          `json:"location"`
	Urgency       string          `json:"urgency"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	Goal          decimal.Decimal `json:"goal"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Due           string          `json:"due"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CampaignWithDonorCount struct {
	Campaign
	DonorCount int64 `json:"donor_count"`
}

// NewCampaign renders the due date in its canonical YYYY-MM-DD form.
func NewCampaign(c domain.Campaign) Campaign {
	return Campaign{
		ID:            c.ID,
		Title:         c.Title,
		Location:      c.Location,
		Urgency:       c.Urgency,
		Description:   c.Description,
		Image:         c.Image,
		Goal:          c.Goal,
		CurrentAmount: c.CurrentAmount,
		Due:           c.Due.Format(domain.DueDateFormat),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func NewCampaignList(campaigns []domain.CampaignWithDonorCount) []CampaignWithDonorCount {
	out := make([]CampaignWithDonorCount, len(campaigns))
	for i, c := range campaigns {
		out[i] = CampaignWithDonorCount{
			Campaign:   NewCampaign(c.Campaign),
			DonorCount: c.DonorCount,
		}
	}

	return out
}

type Acknowledgment struct {
	Message string `json:"message"`
}
