package repositories

import (
	"context"

	"folhacred/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// funcionarioRepository implements FuncionarioRepository interface
type funcionarioRepository struct {
	db *gorm.DB
}

// NewFuncionarioRepository creates a new employee repository
func NewFuncionarioRepository(db *gorm.DB) FuncionarioRepository {
	return &funcionarioRepository{db: db}
}

// Create creates a new employee
func (r *funcionarioRepository) Create(ctx context.Context, funcionario *models.Funcionario) error {
	return r.db.WithContext(ctx).Create(funcionario).Error
}

// GetByID gets an employee by ID with its company preloaded
func (r *funcionarioRepository) GetByID(ctx context.Context, id uint) (*models.Funcionario, error) {
	var funcionario models.Funcionario
	err := r.db.WithContext(ctx).Preload("Empresa").Where("id = ?", id).First(&funcionario).Error
	if err != nil {
		return nil, err
	}
	return &funcionario, nil
}

// GetByEmail gets an employee by email
func (r *funcionarioRepository) GetByEmail(ctx context.Context, email string) (*models.Funcionario, error) {
	var funcionario models.Funcionario
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&funcionario).Error
	if err != nil {
		return nil, err
	}
	return &funcionario, nil
}

// ListByEmpresa lists a company's employees with pagination
func (r *funcionarioRepository) ListByEmpresa(ctx context.Context, empresaID uint, offset, limit int) ([]*models.Funcionario, int64, error) {
	var funcionarios []*models.Funcionario
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Funcionario{}).Where("empresa_id = ?", empresaID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("nome").Offset(offset).Limit(limit).Find(&funcionarios).Error
	if err != nil {
		return nil, 0, err
	}

	return funcionarios, total, nil
}

// ExistsByEmail checks if email exists
func (r *funcionarioRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Funcionario{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByCpf checks if CPF exists
func (r *funcionarioRepository) ExistsByCpf(ctx context.Context, cpf string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Funcionario{}).Where("cpf = ?", cpf).Count(&count).Error
	return count > 0, err
}
