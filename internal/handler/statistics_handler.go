package handler

import (
	"motelhub/internal/middleware"
	"motelhub/internal/model"
	"motelhub/internal/service"
	"motelhub/pkg/apperror"
	"motelhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
	secret            []byte
}

func NewStatisticsHandler(statisticsService service.StatisticsService, secret []byte) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, secret: secret}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	statsGroup := router.Group("/api/statistics")
	{
		statsGroup.GET("/billing", middleware.RequireRole(h.secret, model.RoleAdmin, model.RoleStaff, model.RoleLandlord), h.GetBillingSummary)
	}
}

// @Summary      Get billing summary
// @Description  Billed, collected and outstanding totals of one motel for a billing month
// @Tags         Statistics
// @Produce      json
// @Param        motel_id       query  string  true  "Motel ID"
// @Param        billing_month  query  string  true  "YYYY-MM"
// @Success      200 {object} response.Response{data=model.BillingSummary}
// @Failure      400 {object} response.Response
// @Failure      403 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/statistics/billing [get]
func (h *StatisticsHandler) GetBillingSummary(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	motelID, err := uuid.Parse(c.Query("motel_id"))
	if err != nil {
		response.Fail(c, apperror.Validation("motel_id", "motel_id must be a UUID"))
		return
	}

	summary, err := h.statisticsService.GetBillingSummary(c.Request.Context(), a, motelID, c.Query("billing_month"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "Billing summary retrieved", summary)
}
