package handler

import (
	"motelhub/internal/middleware"
	"motelhub/internal/model"
	"motelhub/internal/service"
	"motelhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	contractService service.ContractService
	secret          []byte
}

func NewContractHandler(contractService service.ContractService, secret []byte) *ContractHandler {
	return &ContractHandler{contractService: contractService, secret: secret}
}

func (h *ContractHandler) RegisterRoutes(router *gin.RouterGroup) {
	contracts := router.Group("/api/contracts")
	{
		contracts.PUT("/:id/activate", middleware.RequireRole(h.secret, model.RoleAdmin, model.RoleStaff, model.RoleLandlord), h.ActivateContract)
	}
}

// ActivateContract moves a pending contract to ACTIVE
// @Summary      Activate contract
// @Description  Only one contract per room may be active
// @Tags         contracts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Contract ID"
// @Success      200  {object}  response.Response{data=model.Contract}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/contracts/{id}/activate [put]
func (h *ContractHandler) ActivateContract(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	contract, err := h.contractService.ActivateContract(c.Request.Context(), a, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "Contract activated", contract)
}
