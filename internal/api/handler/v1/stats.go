package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relieflink/donations-api/internal/api/handler/v1/response"
)

type StatsHandler struct {
	svc DonationService
}

func NewStatsHandler(svc DonationService) *StatsHandler {
	return &StatsHandler{
		svc: svc,
	}
}

// HandleGetStats godoc
// @Summary      Platform statistics
// @Description  Aggregates the whole ledger: total donated, supply units, distinct donors and active campaigns
// @Tags         stats
// @Produce      json
// @Success      200  {object}  domain.PlatformStats
// @Failure      500  {object}  response.Err
// @Router       /stats [get]
func (h *StatsHandler) HandleGetStats(ctx *gin.Context) {
	stats, err := h.svc.PlatformStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetStats -> h.svc.PlatformStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
