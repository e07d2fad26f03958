package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var errNonPositiveGoal = errors.New("goal must be greater than 0")

type CreateCampaignRequest struct {
	Title       string          `json:"title" binding:"required"`
	Location    string          `json:"location"`
	Urgency     string          `json:"urgency"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Goal        decimal.Decimal `json:"goal" binding:"required"`
	Due         string          `json:"due" binding:"required"`
}

func (req *CreateCampaignRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 255)),
		validation.Field(&req.Location, validation.Length(0, 255)),
		validation.Field(&req.Urgency, validation.Length(0, 50)),
		validation.Field(&req.Due, validation.Required),
	)
	if err != nil {
		return err
	}

	if !req.Goal.IsPositive() {
		return errNonPositiveGoal
	}

	return nil
}

type UpdateCampaignRequest struct {
	Title       string          `json:"title" binding:"required"`
	Location    string          `json:"location"`
	Urgency     string          `json:"urgency"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Goal        decimal.Decimal `json:"goal" binding:"required"`
	Due         string          `json:"due" binding:"required"`
}

func (req *UpdateCampaignRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 255)),
		validation.Field(&req.Location, validation.Length(0, 255)),
		validation.Field(&req.Urgency, validation.Length(0, 50)),
		validation.Field(&req.Due, validation.Required),
	)
	if err != nil {
		return err
	}

	if !req.Goal.IsPositive() {
		return errNonPositiveGoal
	}

	return nil
}
