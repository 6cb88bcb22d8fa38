package repositories

import (
	"context"

	"folhacred/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// empresaRepository implements EmpresaRepository interface
type empresaRepository struct {
	db *gorm.DB
}

// NewEmpresaRepository creates a new company repository
func NewEmpresaRepository(db *gorm.DB) EmpresaRepository {
	return &empresaRepository{db: db}
}

// Create creates a new company
func (r *empresaRepository) Create(ctx context.Context, empresa *models.Empresa) error {
	return r.db.WithContext(ctx).Create(empresa).Error
}

// GetByID gets a company by ID
func (r *empresaRepository) GetByID(ctx context.Context, id uint) (*models.Empresa, error) {
	var empresa models.Empresa
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&empresa).Error
	if err != nil {
		return nil, err
	}
	return &empresa, nil
}

// GetByEmail gets a company by email
func (r *empresaRepository) GetByEmail(ctx context.Context, email string) (*models.Empresa, error) {
	var empresa models.Empresa
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&empresa).Error
	if err != nil {
		return nil, err
	}
	return &empresa, nil
}

// ExistsByEmail checks if email exists
func (r *empresaRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Empresa{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByCnpj checks if CNPJ exists
func (r *empresaRepository) ExistsByCnpj(ctx context.Context, cnpj string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Empresa{}).Where("cnpj = ?", cnpj).Count(&count).Error
	return count > 0, err
}
