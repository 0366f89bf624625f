package handler

import (
	"motelhub/internal/middleware"
	"motelhub/internal/model"
	"motelhub/internal/service"
	"motelhub/pkg/pagination"
	"motelhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	secret         []byte
}

func NewInvoiceHandler(invoiceService service.InvoiceService, secret []byte) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, secret: secret}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.POST("/generate", middleware.RequireRole(h.secret, model.RoleAdmin, model.RoleStaff, model.RoleLandlord), h.GenerateInvoices)
		invoices.GET("", middleware.RequireRole(h.secret), h.ListInvoices)
		invoices.GET("/:id", middleware.RequireRole(h.secret), h.GetInvoice)
	}
}

// GenerateInvoices bills every active contract of a motel for one month
// @Summary      Generate monthly invoices
// @Description  Creates one invoice per active contract of the motel. Contracts already billed for the month are skipped.
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.GenerateInvoicesRequest  true  "Generation payload"
// @Success      201      {object}  response.Response{data=[]model.Invoice}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/invoices/generate [post]
func (h *InvoiceHandler) GenerateInvoices(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req service.GenerateInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	invoices, err := h.invoiceService.GenerateInvoices(c.Request.Context(), a, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "Invoices generated", invoices)
}

// ListInvoices returns the invoices visible to the caller
// @Summary      List invoices
// @Description  Landlords see their motels, tenants their own contracts, admins and staff everything
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        motel_id       query     string  false  "Motel ID"
// @Param        contract_id    query     string  false  "Contract ID"
// @Param        status         query     string  false  "UNPAID, PARTIAL, PAID or OVERDUE"
// @Param        billing_month  query     string  false  "YYYY-MM"
// @Param        page           query     int     false  "Page number (default 1)"
// @Param        limit          query     int     false  "Items per page (default 20)"
// @Success      200            {object}  response.Response{data=object}
// @Failure      400            {object}  response.Response
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	motelID, ok := queryID(c, "motel_id")
	if !ok {
		return
	}
	contractID, ok := queryID(c, "contract_id")
	if !ok {
		return
	}
	p := pagination.Parse(c)

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), a, service.InvoiceListFilter{
		MotelID:      motelID,
		ContractID:   contractID,
		Status:       c.Query("status"),
		BillingMonth: c.Query("billing_month"),
		Page:         p.Page,
		Limit:        p.Limit,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "Invoices retrieved", map[string]interface{}{
		"invoices": invoices,
		"total":    total,
		"page":     p.Page,
		"limit":    p.Limit,
	})
}

// GetInvoice returns one invoice with its items and payments
// @Summary      Get invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=model.Invoice}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), a, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "Invoice retrieved", invoice)
}
