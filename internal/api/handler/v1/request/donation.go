package request

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var errNonPositiveAmount = errors.New("amount is required and must be greater than 0")

// SupplyList accepts either a JSON array of labels or a bare string, which
// becomes a single-element list. null and absence decode to an empty list,
// so everything past the boundary sees one shape.
type SupplyList []string

func (s *SupplyList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		if list == nil {
			list = []string{}
		}
		*s = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return errors.New("supplies must be a string or an array of strings")
	}

	*s = []string{single}
	return nil
}

type RecordDonationRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Supplies   SupplyList      `json:"supplies"`
	CampaignID uint            `json:"campaign_id" binding:"required"`
}

func (req *RecordDonationRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CampaignID, validation.Required, validation.Min(uint(1))),
	)
	if err != nil {
		return err
	}

	if !req.Amount.IsPositive() {
		return errNonPositiveAmount
	}

	return nil
}
