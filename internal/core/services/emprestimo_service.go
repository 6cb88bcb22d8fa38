package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"folhacred/internal/adapters/persistence/models"
	"folhacred/internal/adapters/persistence/repositories"
	"folhacred/internal/core/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Loan service errors
var (
	ErrFuncionarioNotFound  = errors.New("funcionario not found")
	ErrEmpresaNotConveniada = errors.New("only employees of affiliated companies may request loans")
	ErrInvalidParcelas      = errors.New("parcelas must be between 1 and 4")
)

// MargemExcedidaError reports a request above the available margin,
// carrying the computed ceiling.
type MargemExcedidaError struct {
	ValorMaximo float64
}

func (e *MargemExcedidaError) Error() string {
	return fmt.Sprintf("valor solicitado excede a margem disponivel de R$ %.2f", e.ValorMaximo)
}

// ScoreFetcher fetches a credit score. Implementations never fail; they
// fall back to a fixed score on any transport error.
type ScoreFetcher interface {
	FetchScore(ctx context.Context) int
}

// PaymentProcessor fetches a payment confirmation status. Implementations
// never fail; they fall back to an approved status on any transport error.
type PaymentProcessor interface {
	ProcessPayment(ctx context.Context) string
}

// EmprestimoService handles the loan decision workflow
type EmprestimoService struct {
	funcionarioRepo repositories.FuncionarioRepository
	emprestimoRepo  repositories.EmprestimoRepository
	scoreGateway    ScoreFetcher
	paymentGateway  PaymentProcessor
	log             *logrus.Logger
}

// NewEmprestimoService creates a new loan service
func NewEmprestimoService(
	funcionarioRepo repositories.FuncionarioRepository,
	emprestimoRepo repositories.EmprestimoRepository,
	scoreGateway ScoreFetcher,
	paymentGateway PaymentProcessor,
	log *logrus.Logger,
) *EmprestimoService {
	return &EmprestimoService{
		funcionarioRepo: funcionarioRepo,
		emprestimoRepo:  emprestimoRepo,
		scoreGateway:    scoreGateway,
		paymentGateway:  paymentGateway,
		log:             log,
	}
}

// MargemDisponivel recomputes the borrowing margin for an employee. The
// margin is always derived fresh from the current salary, never cached.
func (s *EmprestimoService) MargemDisponivel(ctx context.Context, funcionarioID uint) (*domain.Margem, error) {
	funcionario, err := s.funcionarioRepo.GetByID(ctx, funcionarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFuncionarioNotFound
		}
		return nil, err
	}

	margem := domain.ComputeMargem(funcionario.Salario)
	return &margem, nil
}

// SolicitarEmprestimoInput represents a loan request
type SolicitarEmprestimoInput struct {
	Valor    float64 `json:"valor"`
	Parcelas int     `json:"parcelas"`
}

// Solicitar runs the loan decision workflow: margin check, score lookup,
// threshold comparison, payment confirmation and persistence. Once the
// preconditions pass, exactly one loan row is created — approved with its
// full installment schedule, or rejected with none.
func (s *EmprestimoService) Solicitar(ctx context.Context, funcionarioID uint, input *SolicitarEmprestimoInput) (*models.Emprestimo, error) {
	funcionario, err := s.funcionarioRepo.GetByID(ctx, funcionarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFuncionarioNotFound
		}
		return nil, err
	}

	if funcionario.EmpresaID == nil {
		return nil, ErrEmpresaNotConveniada
	}

	if input.Parcelas < domain.MinParcelas || input.Parcelas > domain.MaxParcelas {
		return nil, ErrInvalidParcelas
	}

	margem := domain.ComputeMargem(funcionario.Salario)
	if input.Valor > margem.ValorMaximoEmprestimo {
		return nil, &MargemExcedidaError{ValorMaximo: margem.ValorMaximoEmprestimo}
	}

	// Gateways absorb transport failures into fallback values, so the
	// workflow always reaches a terminal decision.
	score := s.scoreGateway.FetchScore(ctx)
	scoreMinimo := domain.ScoreMinimoPorSalario(funcionario.Salario)

	status := domain.StatusRejected
	var parcelas []models.Parcela

	if score >= scoreMinimo {
		pagamento := s.paymentGateway.ProcessPayment(ctx)
		if pagamento == domain.PaymentApproved {
			status = domain.StatusApproved
			plano := domain.GerarPlanoParcelas(input.Valor, input.Parcelas, time.Now())
			for _, p := range plano {
				parcelas = append(parcelas, models.Parcela{
					Numero:     p.Numero,
					Valor:      p.Valor,
					Vencimento: p.Vencimento,
				})
			}
		} else {
			s.log.Warnf("payment gateway returned status %q, rejecting loan for funcionario %d", pagamento, funcionarioID)
		}
	}

	emprestimo := &models.Emprestimo{
		FuncionarioID: funcionarioID,
		Valor:         input.Valor,
		Parcelas:      input.Parcelas,
		Status:        status,
		ScoreUsado:    score,
	}

	if err := s.emprestimoRepo.CreateWithParcelas(ctx, emprestimo, parcelas); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"emprestimo_id":  emprestimo.ID,
		"funcionario_id": funcionarioID,
		"valor":          input.Valor,
		"parcelas":       input.Parcelas,
		"score":          score,
		"score_minimo":   scoreMinimo,
		"status":         status,
	}).Info("loan decision recorded")

	return emprestimo, nil
}

// ListarPorFuncionario lists an employee's loans, newest first
func (s *EmprestimoService) ListarPorFuncionario(ctx context.Context, funcionarioID uint, offset, limit int) ([]*models.Emprestimo, int64, error) {
	return s.emprestimoRepo.ListByFuncionario(ctx, funcionarioID, offset, limit)
}

// ListarPorEmpresa lists all loans of a company's employees, newest first
func (s *EmprestimoService) ListarPorEmpresa(ctx context.Context, empresaID uint, offset, limit int) ([]*models.Emprestimo, int64, error) {
	return s.emprestimoRepo.ListByEmpresa(ctx, empresaID, offset, limit)
}
