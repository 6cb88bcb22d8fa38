package handlers

import (
	"errors"
	"strconv"

	"folhacred/internal/adapters/persistence/models"
	"folhacred/internal/core/services"
	"folhacred/internal/pkg/pagination"
	"folhacred/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmprestimoHandler handles loan endpoints
type EmprestimoHandler struct {
	emprestimoService *services.EmprestimoService
}

// NewEmprestimoHandler creates a new loan handler
func NewEmprestimoHandler(emprestimoService *services.EmprestimoService) *EmprestimoHandler {
	return &EmprestimoHandler{
		emprestimoService: emprestimoService,
	}
}

// SolicitarRequest represents a loan request body
type SolicitarRequest struct {
	Valor    float64 `json:"valor"`
	Parcelas int     `json:"parcelas"`
}

// MargemDisponivel returns the employee's borrowing margin
// @Summary Available margin
// @Description Returns the employee's salary, borrowing margin and installment options
// @Tags Emprestimos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /emprestimos/margem-disponivel [get]
func (h *EmprestimoHandler) MargemDisponivel(c *fiber.Ctx) error {
	funcionarioID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	margem, err := h.emprestimoService.MargemDisponivel(c.Context(), funcionarioID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFuncionarioNotFound):
			return response.NotFound(c, "Funcionario not found")
		default:
			return response.InternalServerError(c, "Failed to compute margin")
		}
	}

	return response.Success(c, "Margin computed successfully", margem)
}

// Solicitar handles a loan request
// @Summary Request a loan
// @Description Run the loan decision workflow and return the recorded decision
// @Tags Emprestimos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SolicitarRequest true "Loan request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /emprestimos/solicitar [post]
func (h *EmprestimoHandler) Solicitar(c *fiber.Ctx) error {
	funcionarioID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SolicitarRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Valor <= 0 {
		return response.BadRequest(c, "Valor must be greater than zero")
	}

	input := &services.SolicitarEmprestimoInput{
		Valor:    req.Valor,
		Parcelas: req.Parcelas,
	}

	emprestimo, err := h.emprestimoService.Solicitar(c.Context(), funcionarioID, input)
	if err != nil {
		var margemErr *services.MargemExcedidaError
		switch {
		case errors.Is(err, services.ErrFuncionarioNotFound):
			return response.NotFound(c, "Funcionario not found")
		case errors.Is(err, services.ErrEmpresaNotConveniada):
			return response.Forbidden(c, "Only employees of affiliated companies may request loans")
		case errors.Is(err, services.ErrInvalidParcelas):
			return response.BadRequest(c, "Parcelas must be between 1 and 4")
		case errors.As(err, &margemErr):
			return response.UnprocessableEntity(c, margemErr.Error())
		default:
			return response.InternalServerError(c, "Failed to process loan request")
		}
	}

	return response.Created(c, "Loan request processed", fiber.Map{
		"emprestimo": emprestimo.ToResponse(),
	})
}

// MeusEmprestimos lists the authenticated employee's loans
// @Summary List my loans
// @Description Lists the authenticated employee's loans, newest first
// @Tags Emprestimos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /emprestimos/meus-emprestimos [get]
func (h *EmprestimoHandler) MeusEmprestimos(c *fiber.Ctx) error {
	funcionarioID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	emprestimos, total, err := h.emprestimoService.ListarPorFuncionario(c.Context(), funcionarioID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	data := make([]*models.EmprestimoResponse, 0, len(emprestimos))
	for _, e := range emprestimos {
		data = append(data, e.ToResponse())
	}

	return response.Success(c, "Loans retrieved successfully", pagination.NewResponse(data, params, total))
}

// PorEmpresa lists the loans of a company's employees
// @Summary List company loans
// @Description Lists all loans requested by the company's employees
// @Tags Emprestimos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param empresaId path int true "Company ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /emprestimos/empresa/{empresaId} [get]
func (h *EmprestimoHandler) PorEmpresa(c *fiber.Ctx) error {
	empresaID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requested, err := strconv.ParseUint(c.Params("empresaId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid empresa ID")
	}

	// Companies may only inspect their own employees' loans.
	if uint(requested) != empresaID {
		return response.Forbidden(c, "You may only list your own employees' loans")
	}

	params := pagination.GetParams(c)

	emprestimos, total, err := h.emprestimoService.ListarPorEmpresa(c.Context(), empresaID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	data := make([]*models.EmprestimoResponse, 0, len(emprestimos))
	for _, e := range emprestimos {
		data = append(data, e.ToResponse())
	}

	return response.Success(c, "Loans retrieved successfully", pagination.NewResponse(data, params, total))
}
