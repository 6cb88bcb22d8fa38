package handlers

import (
	"errors"
	"strings"
	"time"

	"folhacred/internal/config"
	"folhacred/internal/core/domain"
	"folhacred/internal/core/services"
	"folhacred/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterFuncionarioRequest represents employee registration request body
type RegisterFuncionarioRequest struct {
	Nome      string  `json:"nome"`
	Email     string  `json:"email"`
	Senha     string  `json:"senha"`
	Cpf       string  `json:"cpf"`
	Salario   float64 `json:"salario"`
	EmpresaID uint    `json:"empresaId"`
}

// RegisterEmpresaRequest represents company registration request body
type RegisterEmpresaRequest struct {
	Cnpj              string `json:"cnpj"`
	RazaoSocial       string `json:"razaoSocial"`
	NomeRepresentante string `json:"nomeRepresentante"`
	CpfRepresentante  string `json:"cpfRepresentante"`
	Email             string `json:"email"`
	Senha             string `json:"senha"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// RegisterFuncionario handles employee registration
// @Summary Register new employee
// @Description Register a new employee account linked to an affiliated company
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterFuncionarioRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register/funcionario [post]
func (h *AuthHandler) RegisterFuncionario(c *fiber.Ctx) error {
	var req RegisterFuncionarioRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Nome == "" {
		return response.BadRequest(c, "Nome is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Senha == "" {
		return response.BadRequest(c, "Senha is required")
	}
	if req.Cpf == "" {
		return response.BadRequest(c, "CPF is required")
	}
	if req.Salario <= 0 {
		return response.BadRequest(c, "Salario must be greater than zero")
	}
	if req.EmpresaID == 0 {
		return response.BadRequest(c, "EmpresaID is required")
	}

	input := &services.RegisterFuncionarioInput{
		Nome:      strings.TrimSpace(req.Nome),
		Email:     strings.TrimSpace(req.Email),
		Senha:     req.Senha,
		Cpf:       strings.TrimSpace(req.Cpf),
		Salario:   req.Salario,
		EmpresaID: req.EmpresaID,
	}

	funcionario, err := h.authService.RegisterFuncionario(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "Senha must be at least 6 characters")
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrCpfTaken):
			return response.Conflict(c, "CPF already registered")
		case errors.Is(err, services.ErrEmpresaNotFound):
			return response.NotFound(c, "Empresa not found")
		default:
			return response.InternalServerError(c, "Failed to register funcionario")
		}
	}

	return response.Created(c, "Funcionario registered successfully", fiber.Map{
		"funcionario": funcionario.ToResponse(),
	})
}

// RegisterEmpresa handles company registration
// @Summary Register new company
// @Description Register a new affiliated company account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterEmpresaRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register/empresa [post]
func (h *AuthHandler) RegisterEmpresa(c *fiber.Ctx) error {
	var req RegisterEmpresaRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Cnpj == "" {
		return response.BadRequest(c, "CNPJ is required")
	}
	if req.RazaoSocial == "" {
		return response.BadRequest(c, "Razao social is required")
	}
	if req.NomeRepresentante == "" {
		return response.BadRequest(c, "Nome do representante is required")
	}
	if req.CpfRepresentante == "" {
		return response.BadRequest(c, "CPF do representante is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Senha == "" {
		return response.BadRequest(c, "Senha is required")
	}

	input := &services.RegisterEmpresaInput{
		Cnpj:              strings.TrimSpace(req.Cnpj),
		RazaoSocial:       strings.TrimSpace(req.RazaoSocial),
		NomeRepresentante: strings.TrimSpace(req.NomeRepresentante),
		CpfRepresentante:  strings.TrimSpace(req.CpfRepresentante),
		Email:             strings.TrimSpace(req.Email),
		Senha:             req.Senha,
	}

	empresa, err := h.authService.RegisterEmpresa(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "Senha must be at least 6 characters")
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrCnpjTaken):
			return response.Conflict(c, "CNPJ already registered")
		default:
			return response.InternalServerError(c, "Failed to register empresa")
		}
	}

	return response.Created(c, "Empresa registered successfully", fiber.Map{
		"empresa": empresa.ToResponse(),
	})
}

// Login handles account login
// @Summary Login
// @Description Authenticate an employee or company by email and return tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Senha == "" {
		return response.BadRequest(c, "Senha is required")
	}

	input := &services.LoginInput{
		Email: strings.TrimSpace(req.Email),
		Senha: req.Senha,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	// Set cookies
	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": result.AccessToken,
		"user": fiber.Map{
			"id":    result.UserID,
			"email": result.Email,
			"tipo":  result.Tipo,
		},
	})
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Refresh access token using refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	// Get refresh token from cookie
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token not found")
	}

	result, err := h.authService.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Refresh token expired, please login again")
		case errors.Is(err, services.ErrTokenRevoked):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Refresh token revoked, please login again")
		case errors.Is(err, services.ErrInvalidToken):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Invalid refresh token")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	// Set new cookies
	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Token refreshed successfully", fiber.Map{
		"access_token": result.AccessToken,
		"user": fiber.Map{
			"id":    result.UserID,
			"email": result.Email,
			"tipo":  result.Tipo,
		},
	})
}

// Logout handles account logout
// @Summary Logout
// @Description Logout and revoke refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Get refresh token from cookie
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		// Revoke refresh token
		_ = h.authService.Logout(c.Context(), refreshToken)
	}

	// Clear cookies
	h.clearAuthCookies(c)

	return response.Success(c, "Logged out successfully", nil)
}

// LogoutAll handles logout from all devices
// @Summary Logout from all devices
// @Description Revoke all refresh tokens for the account
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	tipo, ok := c.Locals("tipo").(domain.Tipo)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.LogoutAll(c.Context(), userID, tipo); err != nil {
		return response.InternalServerError(c, "Failed to logout from all devices")
	}

	// Clear cookies
	h.clearAuthCookies(c)

	return response.Success(c, "Logged out from all devices", nil)
}

// Me returns the current account info
// @Summary Get current account
// @Description Get the currently authenticated account's information
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	tipo, ok := c.Locals("tipo").(domain.Tipo)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	account, err := h.authService.GetAccount(c.Context(), userID, tipo)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}

	return response.Success(c, "Account retrieved successfully", fiber.Map{
		"user": account,
		"tipo": tipo,
	})
}

// setAuthCookies sets access and refresh token cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	// Access token cookie (shorter expiry)
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60, // Convert minutes to seconds
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	// Refresh token cookie (longer expiry)
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60, // Convert days to seconds
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearAuthCookies clears auth cookies
func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
