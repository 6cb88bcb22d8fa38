package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// Empresa represents empresas table — an affiliated company whose
// employees may request payroll-advance loans.
type Empresa struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Cnpj              string    `gorm:"uniqueIndex;size:14;not null" json:"cnpj"`
	RazaoSocial       string    `gorm:"size:150;not null" json:"razaoSocial"`
	NomeRepresentante string    `gorm:"size:100;not null" json:"nomeRepresentante"`
	CpfRepresentante  string    `gorm:"size:11;not null" json:"cpfRepresentante"`
	Email             string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Senha             string    `gorm:"size:255;not null" json:"-"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Funcionarios []Funcionario `gorm:"foreignKey:EmpresaID" json:"funcionarios,omitempty"`
}

func (Empresa) TableName() string {
	return "empresas"
}

// EmpresaResponse DTO
type EmpresaResponse struct {
	ID                uint      `json:"id"`
	Cnpj              string    `json:"cnpj"`
	RazaoSocial       string    `json:"razaoSocial"`
	NomeRepresentante string    `json:"nomeRepresentante"`
	CpfRepresentante  string    `json:"cpfRepresentante"`
	Email             string    `json:"email"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (e *Empresa) ToResponse() *EmpresaResponse {
	return &EmpresaResponse{
		ID:                e.ID,
		Cnpj:              e.Cnpj,
		RazaoSocial:       e.RazaoSocial,
		NomeRepresentante: e.NomeRepresentante,
		CpfRepresentante:  e.CpfRepresentante,
		Email:             e.Email,
		CreatedAt:         e.CreatedAt,
	}
}

// Funcionario represents funcionarios table. EmpresaID is nullable — an
// employee without an affiliated company cannot request loans.
type Funcionario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:100;not null" json:"nome"`
	Cpf       string    `gorm:"uniqueIndex;size:11;not null" json:"cpf"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Senha     string    `gorm:"size:255;not null" json:"-"`
	Salario   float64   `gorm:"type:decimal(12,2);not null" json:"salario"`
	EmpresaID *uint     `gorm:"index" json:"empresaId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Empresa *Empresa `gorm:"foreignKey:EmpresaID" json:"empresa,omitempty"`
}

func (Funcionario) TableName() string {
	return "funcionarios"
}

// FuncionarioResponse DTO
type FuncionarioResponse struct {
	ID        uint      `json:"id"`
	Nome      string    `json:"nome"`
	Cpf       string    `json:"cpf"`
	Email     string    `json:"email"`
	Salario   float64   `json:"salario"`
	EmpresaID *uint     `json:"empresaId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (f *Funcionario) ToResponse() *FuncionarioResponse {
	return &FuncionarioResponse{
		ID:        f.ID,
		Nome:      f.Nome,
		Cpf:       f.Cpf,
		Email:     f.Email,
		Salario:   f.Salario,
		EmpresaID: f.EmpresaID,
		CreatedAt: f.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table. Tokens belong to either a
// funcionario or an empresa account, discriminated by UserTipo.
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	UserTipo  string     `gorm:"size:20;not null" json:"user_tipo"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Loans
// ============================================================

// Emprestimo represents emprestimos table. Rows are immutable once
// created: every request writes a fresh row with a terminal status,
// whether approved or rejected.
type Emprestimo struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FuncionarioID uint      `gorm:"not null;index" json:"funcionarioId"`
	Valor         float64   `gorm:"type:decimal(12,2);not null" json:"valor"`
	Parcelas      int       `gorm:"not null" json:"parcelas"`
	Status        string    `gorm:"size:20;not null" json:"status"`
	ScoreUsado    int       `gorm:"not null" json:"scoreUsado"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Funcionario     *Funcionario `gorm:"foreignKey:FuncionarioID" json:"funcionario,omitempty"`
	ParcelasGeradas []Parcela    `gorm:"foreignKey:EmprestimoID" json:"parcelasGeradas"`
}

func (Emprestimo) TableName() string {
	return "emprestimos"
}

// Parcela represents parcelas table — one repayment slice of an approved
// loan. Rejected loans own no parcelas.
type Parcela struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmprestimoID uint      `gorm:"not null;index" json:"emprestimoId"`
	Numero       int       `gorm:"not null" json:"numero"`
	Valor        float64   `gorm:"type:decimal(12,2);not null" json:"valor"`
	Vencimento   time.Time `gorm:"type:date;not null" json:"vencimento"`
	Paga         bool      `gorm:"default:false" json:"paga"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Parcela) TableName() string {
	return "parcelas"
}

// EmprestimoResponse DTO
type EmprestimoResponse struct {
	ID              uint              `json:"id"`
	FuncionarioID   uint              `json:"funcionarioId"`
	FuncionarioNome string            `json:"funcionarioNome,omitempty"`
	Valor           float64           `json:"valor"`
	Parcelas        int               `json:"parcelas"`
	Status          string            `json:"status"`
	ScoreUsado      int               `json:"scoreUsado"`
	CreatedAt       time.Time         `json:"createdAt"`
	ParcelasGeradas []ParcelaResponse `json:"parcelasGeradas"`
}

// ParcelaResponse DTO
type ParcelaResponse struct {
	ID         uint      `json:"id"`
	Numero     int       `json:"numero"`
	Valor      float64   `json:"valor"`
	Vencimento time.Time `json:"vencimento"`
	Paga       bool      `json:"paga"`
}

func (e *Emprestimo) ToResponse() *EmprestimoResponse {
	resp := &EmprestimoResponse{
		ID:              e.ID,
		FuncionarioID:   e.FuncionarioID,
		Valor:           e.Valor,
		Parcelas:        e.Parcelas,
		Status:          e.Status,
		ScoreUsado:      e.ScoreUsado,
		CreatedAt:       e.CreatedAt,
		ParcelasGeradas: make([]ParcelaResponse, 0, len(e.ParcelasGeradas)),
	}

	if e.Funcionario != nil {
		resp.FuncionarioNome = e.Funcionario.Nome
	}

	for _, p := range e.ParcelasGeradas {
		resp.ParcelasGeradas = append(resp.ParcelasGeradas, ParcelaResponse{
			ID:         p.ID,
			Numero:     p.Numero,
			Valor:      p.Valor,
			Vencimento: p.Vencimento,
			Paga:       p.Paga,
		})
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Empresa{},
		&Funcionario{},
		&RefreshToken{},
		&Emprestimo{},
		&Parcela{},
	)
}
