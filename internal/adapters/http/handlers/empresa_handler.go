package handlers

import (
	"folhacred/internal/adapters/persistence/models"
	"folhacred/internal/adapters/persistence/repositories"
	"folhacred/internal/pkg/pagination"
	"folhacred/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmpresaHandler handles company endpoints
type EmpresaHandler struct {
	funcionarioRepo repositories.FuncionarioRepository
}

// NewEmpresaHandler creates a new company handler
func NewEmpresaHandler(funcionarioRepo repositories.FuncionarioRepository) *EmpresaHandler {
	return &EmpresaHandler{
		funcionarioRepo: funcionarioRepo,
	}
}

// Funcionarios lists the company's employees
// @Summary List employees
// @Description Lists the authenticated company's employees
// @Tags Empresas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /empresas/funcionarios [get]
func (h *EmpresaHandler) Funcionarios(c *fiber.Ctx) error {
	empresaID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	funcionarios, total, err := h.funcionarioRepo.ListByEmpresa(c.Context(), empresaID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list funcionarios")
	}

	data := make([]*models.FuncionarioResponse, 0, len(funcionarios))
	for _, f := range funcionarios {
		data = append(data, f.ToResponse())
	}

	return response.Success(c, "Funcionarios retrieved successfully", pagination.NewResponse(data, params, total))
}
