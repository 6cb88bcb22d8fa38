package repositories

import (
	"context"
	"time"

	"folhacred/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// emprestimoRepository implements EmprestimoRepository interface
type emprestimoRepository struct {
	db *gorm.DB
}

// NewEmprestimoRepository creates a new loan repository
func NewEmprestimoRepository(db *gorm.DB) EmprestimoRepository {
	return &emprestimoRepository{db: db}
}

// CreateWithParcelas creates the loan and its installments in a single
// transaction. A caller never observes a loan with a partial schedule.
func (r *emprestimoRepository) CreateWithParcelas(ctx context.Context, emprestimo *models.Emprestimo, parcelas []models.Parcela) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(emprestimo).Error; err != nil {
			return err
		}
		for i := range parcelas {
			parcelas[i].EmprestimoID = emprestimo.ID
		}
		if len(parcelas) > 0 {
			if err := tx.Create(&parcelas).Error; err != nil {
				return err
			}
		}
		emprestimo.ParcelasGeradas = parcelas
		return nil
	})
}

// GetByID gets a loan by ID with its installments preloaded
func (r *emprestimoRepository) GetByID(ctx context.Context, id uint) (*models.Emprestimo, error) {
	var emprestimo models.Emprestimo
	err := r.db.WithContext(ctx).
		Preload("ParcelasGeradas", func(db *gorm.DB) *gorm.DB { return db.Order("numero") }).
		Where("id = ?", id).
		First(&emprestimo).Error
	if err != nil {
		return nil, err
	}
	return &emprestimo, nil
}

// ListByFuncionario lists an employee's loans, newest first
func (r *emprestimoRepository) ListByFuncionario(ctx context.Context, funcionarioID uint, offset, limit int) ([]*models.Emprestimo, int64, error) {
	var emprestimos []*models.Emprestimo
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Emprestimo{}).
		Where("funcionario_id = ?", funcionarioID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("ParcelasGeradas", func(db *gorm.DB) *gorm.DB { return db.Order("numero") }).
		Where("funcionario_id = ?", funcionarioID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&emprestimos).Error
	if err != nil {
		return nil, 0, err
	}

	return emprestimos, total, nil
}

// ListByEmpresa lists all loans of a company's employees, newest first
func (r *emprestimoRepository) ListByEmpresa(ctx context.Context, empresaID uint, offset, limit int) ([]*models.Emprestimo, int64, error) {
	var emprestimos []*models.Emprestimo
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Emprestimo{}).
		Joins("JOIN funcionarios ON funcionarios.id = emprestimos.funcionario_id").
		Where("funcionarios.empresa_id = ?", empresaID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Funcionario").
		Preload("ParcelasGeradas", func(db *gorm.DB) *gorm.DB { return db.Order("numero") }).
		Joins("JOIN funcionarios ON funcionarios.id = emprestimos.funcionario_id").
		Where("funcionarios.empresa_id = ?", empresaID).
		Order("emprestimos.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&emprestimos).Error
	if err != nil {
		return nil, 0, err
	}

	return emprestimos, total, nil
}

// parcelaRepository implements ParcelaRepository interface
type parcelaRepository struct {
	db *gorm.DB
}

// NewParcelaRepository creates a new installment repository
func NewParcelaRepository(db *gorm.DB) ParcelaRepository {
	return &parcelaRepository{db: db}
}

// ListVencidas lists unpaid installments due before ref
func (r *parcelaRepository) ListVencidas(ctx context.Context, ref time.Time) ([]*models.Parcela, error) {
	var parcelas []*models.Parcela
	err := r.db.WithContext(ctx).
		Where("paga = ? AND vencimento < ?", false, ref).
		Order("vencimento").
		Find(&parcelas).Error
	if err != nil {
		return nil, err
	}
	return parcelas, nil
}
