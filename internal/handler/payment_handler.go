package handler

import (
	"io"
	"net/http"

	"motelhub/internal/gateway"
	"motelhub/internal/middleware"
	"motelhub/internal/model"
	"motelhub/internal/service"
	"motelhub/pkg/apperror"
	"motelhub/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxCallbackBody = 64 << 10

type PaymentHandler struct {
	paymentService service.PaymentService
	onlineService  service.OnlinePaymentService
	secret         []byte
	returnRate     int
}

func NewPaymentHandler(paymentService service.PaymentService, onlineService service.OnlinePaymentService, secret []byte, returnRate int) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		onlineService:  onlineService,
		secret:         secret,
		returnRate:     returnRate,
	}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/api/payments")
	{
		payments.POST("", middleware.RequireRole(h.secret, model.RoleAdmin, model.RoleStaff, model.RoleLandlord), h.RecordPayment)
		payments.POST("/online", middleware.RequireRole(h.secret, model.RoleAdmin, model.RoleLandlord, model.RoleTenant), h.CreateOnlinePayment)
	}

	// callbacks are signature-checked and always answered in the provider's ack shape
	gateways := router.Group("/api/payments")
	{
		gateways.POST("/callback", h.Callback)
		gateways.POST("/callback/:provider", h.Callback)
		gateways.GET("/callback/:provider", h.Callback)
		gateways.GET("/return/:provider", middleware.RateLimit(h.returnRate), h.Return)
	}

	router.GET("/api/invoices/:id/payments", middleware.RequireRole(h.secret), h.ListPayments)
}

// RecordPayment applies a manual payment to an invoice
// @Summary      Record payment
// @Description  Records a cash or transfer payment. The amount may not exceed the remaining balance.
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RecordPaymentRequest  true  "Payment payload"
// @Success      201      {object}  response.Response{data=service.PaymentResult}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), a, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "Payment recorded", result)
}

// ListPayments returns the payments applied to an invoice
// @Summary      List invoice payments
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=[]model.Payment}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), a, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "Payments retrieved", payments)
}

// CreateOnlinePayment opens a gateway order for the remaining balance
// @Summary      Create online payment
// @Description  Signs a MoMo, VNPay or ZaloPay order for the invoice's remaining balance and returns the redirect URL
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOnlinePaymentRequest  true  "Order payload"
// @Success      201      {object}  response.Response{data=gateway.PaymentRequest}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/payments/online [post]
func (h *PaymentHandler) CreateOnlinePayment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req service.CreateOnlinePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	order, err := h.onlineService.CreateOnlinePayment(c.Request.Context(), a, req, c.ClientIP())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "Payment order created", order)
}

// Callback receives a gateway notification (IPN)
// @Summary      Gateway callback
// @Description  Verifies the provider signature, settles the invoice and answers in the provider's ack format. Without a provider segment the provider is detected from the payload.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        provider  path      string  false  "momo, vnpay or zalopay"
// @Success      200       {object}  object
// @Failure      400       {object}  response.Response
// @Router       /api/payments/callback/{provider} [post]
func (h *PaymentHandler) Callback(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxCallbackBody))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, response.Error(apperror.CodeValidation, "callback body too large", nil))
		return
	}

	status, ack, err := h.onlineService.HandleCallback(c.Request.Context(), c.Param("provider"), gateway.RawCallback{
		Body:  body,
		Query: c.Request.URL.Query(),
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(status, ack)
}

// Return handles the browser redirect back from a gateway
// @Summary      Gateway return
// @Description  Redirects the payer to the frontend result page
// @Tags         payments
// @Param        provider  path  string  true  "momo, vnpay or zalopay"
// @Success      302
// @Failure      400  {object}  response.Response
// @Router       /api/payments/return/{provider} [get]
func (h *PaymentHandler) Return(c *gin.Context) {
	target, err := h.onlineService.HandleReturn(c.Request.Context(), c.Param("provider"), c.Request.URL.Query())
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}
