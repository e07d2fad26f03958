package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/relieflink/donations-api/internal/api/handler/v1/request"
	"github.com/relieflink/donations-api/internal/api/handler/v1/response"
	"github.com/relieflink/donations-api/internal/domain"
	"github.com/relieflink/donations-api/internal/service"
)

type CampaignService interface {
	CreateCampaign(ctx context.Context, campaign domain.Campaign, due string) (domain.Campaign, error)
	ListCampaigns(ctx context.Context) ([]domain.CampaignWithDonorCount, error)
	UpdateCampaign(ctx context.Context, campaign domain.Campaign, due string) error
	SoftDeleteCampaign(ctx context.Context, id uint) error
}

type CampaignHandler struct {
	svc  CampaignService
	uSvc UserService
}

func NewCampaignHandler(svc CampaignService, uSvc UserService) *CampaignHandler {
	return &CampaignHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListCampaigns godoc
// @Summary      List active campaigns
// @Description  Returns every campaign that has not been deleted, each with its distinct donor count
// @Tags         campaigns
// @Produce      json
// @Success      200  {array}   response.CampaignWithDonorCount
// @Failure      500  {object}  response.Err
// @Router       /campaigns [get]
func (h *CampaignHandler) HandleListCampaigns(ctx *gin.Context) {
	campaigns, err := h.svc.ListCampaigns(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListCampaigns -> h.svc.ListCampaigns -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewCampaignList(campaigns))
}

// HandleCreateCampaign godoc
// @Summary      Create a campaign
// @Description  Creates a relief campaign with a zeroed running total. Any authenticated user may create one.
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateCampaignRequest  true  "campaign details"
// @Success      201    {object}  response.Campaign
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /campaigns [post]
// @Security     BearerAuth
func (h *CampaignHandler) HandleCreateCampaign(ctx *gin.Context) {
	_, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateCampaignRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign := domain.Campaign{
		Title:       input.Title,
		Location:    input.Location,
		Urgency:     input.Urgency,
		Description: input.Description,
		Image:       input.Image,
		Goal:        input.Goal,
	}

	created, err := h.svc.CreateCampaign(ctx.Request.Context(), campaign, input.Due)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDueDate) || errors.Is(err, service.ErrInvalidGoal) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleCreateCampaign -> h.svc.CreateCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewCampaign(created))
}

// HandleUpdateCampaign godoc
// @Summary      Update a campaign (admin)
// @Description  Rewrites descriptive metadata of an active campaign. The running total cannot be changed here.
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        campaignID  path      int                            true  "Campaign ID"
// @Param        input       body      request.UpdateCampaignRequest  true  "campaign details"
// @Success      200         {object}  response.Acknowledgment
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /campaigns/{campaignID} [post]
// @Security     BearerAuth
func (h *CampaignHandler) HandleUpdateCampaign(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.IsAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	campaignID, err := strconv.ParseUint(ctx.Param("campaignID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid campaign ID: %w", err)))
		return
	}

	var input request.UpdateCampaignRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign := domain.Campaign{
		ID:          uint(campaignID),
		Title:       input.Title,
		Location:    input.Location,
		Urgency:     input.Urgency,
		Description: input.Description,
		Image:       input.Image,
		Goal:        input.Goal,
	}

	if err := h.svc.UpdateCampaign(ctx.Request.Context(), campaign, input.Due); err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			response.RenderErr(ctx, response.ErrNotFound("campaign", "ID", campaignID))
		case errors.Is(err, service.ErrInvalidDueDate), errors.Is(err, service.ErrInvalidGoal):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleUpdateCampaign -> h.svc.UpdateCampaign -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.Acknowledgment{Message: "Campaign updated successfully."})
}

// HandleDeleteCampaign godoc
// @Summary      Soft-delete a campaign (admin)
// @Description  Marks a campaign deleted. Its donation history is preserved and keeps counting toward platform statistics.
// @Tags         campaigns
// @Produce      json
// @Param        campaignID  path      int  true  "Campaign ID"
// @Success      200         {object}  response.Acknowledgment
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /campaigns/{campaignID} [delete]
// @Security     BearerAuth
func (h *CampaignHandler) HandleDeleteCampaign(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.IsAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	campaignID, err := strconv.ParseUint(ctx.Param("campaignID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid campaign ID: %w", err)))
		return
	}

	if err := h.svc.SoftDeleteCampaign(ctx.Request.Context(), uint(campaignID)); err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("campaign", "ID", campaignID))
			return
		}

		err = fmt.Errorf("HandleDeleteCampaign -> h.svc.SoftDeleteCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.Acknowledgment{Message: "Campaign deleted successfully."})
}
