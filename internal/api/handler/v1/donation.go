package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/relieflink/donations-api/internal/api/handler/v1/request"
	"github.com/relieflink/donations-api/internal/api/handler/v1/response"
	"github.com/relieflink/donations-api/internal/domain"
	"github.com/relieflink/donations-api/internal/service"
)

type DonationService interface {
	RecordDonation(ctx context.Context, donorID, campaignID uint, amount decimal.Decimal, supplies []string) (domain.Donation, error)
	ListDonations(ctx context.Context) ([]domain.DonationWithDonor, error)
	TopDonors(ctx context.Context) ([]domain.DonorRanking, error)
	PlatformStats(ctx context.Context) (domain.PlatformStats, error)
}

type DonationHandler struct {
	svc  DonationService
	uSvc UserService
}

func NewDonationHandler(svc DonationService, uSvc UserService) *DonationHandler {
	return &DonationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListDonations godoc
// @Summary      List donations
// @Description  Returns the whole ledger, newest first, with donor names resolved
// @Tags         donations
// @Produce      json
// @Success      200  {array}   response.DonationWithDonor
// @Failure      500  {object}  response.Err
// @Router       /donations [get]
func (h *DonationHandler) HandleListDonations(ctx *gin.Context) {
	donations, err := h.svc.ListDonations(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListDonations -> h.svc.ListDonations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewDonationList(donations))
}

// HandleCreateDonation godoc
// @Summary      Record a donation
// @Description  Appends a ledger row and adds its amount to the campaign's running total atomically
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        input  body      request.RecordDonationRequest  true  "donation details"
// @Success      201    {object}  response.Donation
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /donations [post]
// @Security     BearerAuth
func (h *DonationHandler) HandleCreateDonation(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.RecordDonationRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.RecordDonation(ctx.Request.Context(), user.ID, input.CampaignID, input.Amount, input.Supplies)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			response.RenderErr(ctx, response.ErrNotFound("campaign", "ID", input.CampaignID))
		case errors.Is(err, service.ErrInvalidAmount),
			errors.Is(err, service.ErrMissingCampaignID),
			errors.Is(err, service.ErrMissingDonor):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleCreateDonation -> h.svc.RecordDonation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewDonation(created))
}

// HandleTopDonors godoc
// @Summary      Top donors
// @Description  Ranks donors by their summed donation amounts, largest first
// @Tags         donations
// @Produce      json
// @Success      200  {array}   domain.DonorRanking
// @Failure      500  {object}  response.Err
// @Router       /donations/top-donors [get]
func (h *DonationHandler) HandleTopDonors(ctx *gin.Context) {
	rankings, err := h.svc.TopDonors(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleTopDonors -> h.svc.TopDonors -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rankings)
}
