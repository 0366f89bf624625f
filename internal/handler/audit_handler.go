package handler

import (
	"motelhub/internal/middleware"
	"motelhub/internal/model"
	"motelhub/internal/service"
	"motelhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
	secret       []byte
}

func NewAuditHandler(auditService service.AuditService, secret []byte) *AuditHandler {
	return &AuditHandler{auditService: auditService, secret: secret}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/audit-logs")
	group.Use(middleware.RequireRole(h.secret, model.RoleAdmin, model.RoleStaff)) // Protect history logs
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs returns the history of one invoice, payment or contract
// @Summary      Get audit logs
// @Description  Lists audit entries for an entity, oldest first
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        entity_id  query     string  true  "Invoice, payment, order or contract ID"
// @Success      200        {object}  response.Response{data=[]model.AuditLog}
// @Failure      400        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	logs, err := h.auditService.ListByEntity(c.Request.Context(), a, c.Query("entity_id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "Audit logs retrieved", logs)
}
