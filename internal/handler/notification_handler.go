package handler

import (
	"motelhub/internal/middleware"
	"motelhub/internal/service"
	"motelhub/pkg/pagination"
	"motelhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	secret              []byte
}

func NewNotificationHandler(notificationService service.NotificationService, secret []byte) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, secret: secret}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/api/notifications", middleware.RequireRole(h.secret))
	{
		notifications.GET("", h.ListNotifications)
		notifications.PUT("/:id/read", h.MarkRead)
	}
}

// ListNotifications returns the caller's notifications, newest first
// @Summary      List notifications
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        unread  query     bool  false  "Only unread"
// @Param        page    query     int   false  "Page number (default 1)"
// @Param        limit   query     int   false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      401     {object}  response.Response
// @Router       /api/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	p := pagination.Parse(c)

	items, total, err := h.notificationService.List(c.Request.Context(), a.UserID, c.Query("unread") == "true", p.Offset, p.Limit)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "Notifications retrieved", map[string]interface{}{
		"notifications": items,
		"total":         total,
		"page":          p.Page,
		"limit":         p.Limit,
	})
}

// MarkRead marks one notification as read
// @Summary      Mark notification read
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), a.UserID, id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "Notification marked as read", nil)
}
