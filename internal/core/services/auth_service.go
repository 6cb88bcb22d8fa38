package services

import (
	"context"
	"errors"

	"folhacred/internal/adapters/persistence/models"
	"folhacred/internal/adapters/persistence/repositories"
	"folhacred/internal/config"
	"folhacred/internal/core/domain"
	"folhacred/internal/pkg/jwt"
	"folhacred/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCpfTaken           = errors.New("cpf already registered")
	ErrCnpjTaken          = errors.New("cnpj already registered")
	ErrEmpresaNotFound    = errors.New("empresa not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrWeakPassword       = errors.New("password too short")
)

// AuthService handles authentication for both account kinds
type AuthService struct {
	funcionarioRepo  repositories.FuncionarioRepository
	empresaRepo      repositories.EmpresaRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
	log              *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	funcionarioRepo repositories.FuncionarioRepository,
	empresaRepo repositories.EmpresaRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		funcionarioRepo:  funcionarioRepo,
		empresaRepo:      empresaRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
		log:              log,
	}
}

// RegisterFuncionarioInput represents employee registration input
type RegisterFuncionarioInput struct {
	Nome      string  `json:"nome"`
	Email     string  `json:"email"`
	Senha     string  `json:"senha"`
	Cpf       string  `json:"cpf"`
	Salario   float64 `json:"salario"`
	EmpresaID uint    `json:"empresaId"`
}

// RegisterEmpresaInput represents company registration input
type RegisterEmpresaInput struct {
	Cnpj              string `json:"cnpj"`
	RazaoSocial       string `json:"razaoSocial"`
	NomeRepresentante string `json:"nomeRepresentante"`
	CpfRepresentante  string `json:"cpfRepresentante"`
	Email             string `json:"email"`
	Senha             string `json:"senha"`
}

// LoginInput represents login input
type LoginInput struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	UserID       uint        `json:"user_id"`
	Email        string      `json:"email"`
	Tipo         domain.Tipo `json:"tipo"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

// RegisterFuncionario registers a new employee account
func (s *AuthService) RegisterFuncionario(ctx context.Context, input *RegisterFuncionarioInput) (*models.Funcionario, error) {
	if !password.Validate(input.Senha) {
		return nil, ErrWeakPassword
	}

	exists, err := s.funcionarioRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	exists, err = s.funcionarioRepo.ExistsByCpf(ctx, input.Cpf)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCpfTaken
	}

	if _, err := s.empresaRepo.GetByID(ctx, input.EmpresaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}

	hashed, err := password.Hash(input.Senha)
	if err != nil {
		return nil, err
	}

	empresaID := input.EmpresaID
	funcionario := &models.Funcionario{
		Nome:      input.Nome,
		Cpf:       input.Cpf,
		Email:     input.Email,
		Senha:     hashed,
		Salario:   input.Salario,
		EmpresaID: &empresaID,
	}

	if err := s.funcionarioRepo.Create(ctx, funcionario); err != nil {
		return nil, err
	}

	s.log.Infof("funcionario registered: %s (empresa %d)", funcionario.Email, empresaID)
	return funcionario, nil
}

// RegisterEmpresa registers a new company account
func (s *AuthService) RegisterEmpresa(ctx context.Context, input *RegisterEmpresaInput) (*models.Empresa, error) {
	if !password.Validate(input.Senha) {
		return nil, ErrWeakPassword
	}

	exists, err := s.empresaRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	exists, err = s.empresaRepo.ExistsByCnpj(ctx, input.Cnpj)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCnpjTaken
	}

	hashed, err := password.Hash(input.Senha)
	if err != nil {
		return nil, err
	}

	empresa := &models.Empresa{
		Cnpj:              input.Cnpj,
		RazaoSocial:       input.RazaoSocial,
		NomeRepresentante: input.NomeRepresentante,
		CpfRepresentante:  input.CpfRepresentante,
		Email:             input.Email,
		Senha:             hashed,
	}

	if err := s.empresaRepo.Create(ctx, empresa); err != nil {
		return nil, err
	}

	s.log.Infof("empresa registered: %s", empresa.Email)
	return empresa, nil
}

// Login authenticates an account by email. Employees are looked up first,
// then companies; the issued claim carries the account kind.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	var (
		userID uint
		email  string
		hash   string
		tipo   domain.Tipo
	)

	funcionario, err := s.funcionarioRepo.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		userID, email, hash, tipo = funcionario.ID, funcionario.Email, funcionario.Senha, domain.TipoFuncionario
	case errors.Is(err, gorm.ErrRecordNotFound):
		empresa, err := s.empresaRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
		userID, email, hash, tipo = empresa.ID, empresa.Email, empresa.Senha, domain.TipoEmpresa
	default:
		return nil, err
	}

	if !password.Verify(input.Senha, hash) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokens(userID, email, tipo)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, userID, tipo, tokens.RefreshToken); err != nil {
		return nil, err
	}

	s.log.Infof("login: %s (%s)", email, tipo)

	return &AuthResponse{
		UserID:       userID,
		Email:        email,
		Tipo:         tipo,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken rotates a refresh token and issues a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	tokenHash := password.HashToken(refreshToken)

	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	email, err := s.lookupEmail(ctx, claims.UserID, claims.Tipo)
	if err != nil {
		return nil, err
	}

	// Token rotation: the old refresh token is dead after one use.
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(claims.UserID, email, claims.Tipo)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, claims.UserID, claims.Tipo, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		UserID:       claims.UserID,
		Email:        email,
		Tipo:         claims.Tipo,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	return s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash)
}

// LogoutAll revokes all refresh tokens for an account
func (s *AuthService) LogoutAll(ctx context.Context, userID uint, tipo domain.Tipo) error {
	return s.refreshTokenRepo.RevokeAllByUser(ctx, userID, string(tipo))
}

// GetAccount fetches the account profile for the given kind
func (s *AuthService) GetAccount(ctx context.Context, userID uint, tipo domain.Tipo) (interface{}, error) {
	switch tipo {
	case domain.TipoFuncionario:
		funcionario, err := s.funcionarioRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return funcionario.ToResponse(), nil
	case domain.TipoEmpresa:
		empresa, err := s.empresaRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return empresa.ToResponse(), nil
	default:
		return nil, ErrInvalidToken
	}
}

// lookupEmail resolves the current email for an account
func (s *AuthService) lookupEmail(ctx context.Context, userID uint, tipo domain.Tipo) (string, error) {
	switch tipo {
	case domain.TipoFuncionario:
		funcionario, err := s.funcionarioRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrInvalidToken
			}
			return "", err
		}
		return funcionario.Email, nil
	case domain.TipoEmpresa:
		empresa, err := s.empresaRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrInvalidToken
			}
			return "", err
		}
		return empresa.Email, nil
	default:
		return "", ErrInvalidToken
	}
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(userID uint, email string, tipo domain.Tipo) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		userID,
		email,
		tipo,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		userID,
		tipo,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, tipo domain.Tipo, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		UserTipo:  string(tipo),
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
