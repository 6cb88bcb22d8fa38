package repositories

import (
	"context"
	"time"

	"folhacred/internal/adapters/persistence/models"
)

// FuncionarioRepository defines employee repository interface
type FuncionarioRepository interface {
	Create(ctx context.Context, funcionario *models.Funcionario) error
	GetByID(ctx context.Context, id uint) (*models.Funcionario, error)
	GetByEmail(ctx context.Context, email string) (*models.Funcionario, error)
	ListByEmpresa(ctx context.Context, empresaID uint, offset, limit int) ([]*models.Funcionario, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCpf(ctx context.Context, cpf string) (bool, error)
}

// EmpresaRepository defines company repository interface
type EmpresaRepository interface {
	Create(ctx context.Context, empresa *models.Empresa) error
	GetByID(ctx context.Context, id uint) (*models.Empresa, error)
	GetByEmail(ctx context.Context, email string) (*models.Empresa, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCnpj(ctx context.Context, cnpj string) (bool, error)
}

// EmprestimoRepository defines loan repository interface.
// CreateWithParcelas persists the loan and its installments atomically so
// no partial schedule is ever observable.
type EmprestimoRepository interface {
	CreateWithParcelas(ctx context.Context, emprestimo *models.Emprestimo, parcelas []models.Parcela) error
	GetByID(ctx context.Context, id uint) (*models.Emprestimo, error)
	ListByFuncionario(ctx context.Context, funcionarioID uint, offset, limit int) ([]*models.Emprestimo, int64, error)
	ListByEmpresa(ctx context.Context, empresaID uint, offset, limit int) ([]*models.Emprestimo, int64, error)
}

// ParcelaRepository defines installment repository interface
type ParcelaRepository interface {
	ListVencidas(ctx context.Context, ref time.Time) ([]*models.Parcela, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUser(ctx context.Context, userID uint, userTipo string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
