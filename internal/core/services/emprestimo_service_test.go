package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"folhacred/internal/adapters/gateways"
	"folhacred/internal/adapters/persistence/models"
	"folhacred/internal/core/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ============================================================
// Fakes
// ============================================================

type fakeFuncionarioRepo struct {
	funcionarios map[uint]*models.Funcionario
}

func newFakeFuncionarioRepo() *fakeFuncionarioRepo {
	return &fakeFuncionarioRepo{funcionarios: make(map[uint]*models.Funcionario)}
}

func (r *fakeFuncionarioRepo) Create(_ context.Context, f *models.Funcionario) error {
	f.ID = uint(len(r.funcionarios) + 1)
	r.funcionarios[f.ID] = f
	return nil
}

func (r *fakeFuncionarioRepo) GetByID(_ context.Context, id uint) (*models.Funcionario, error) {
	f, ok := r.funcionarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *fakeFuncionarioRepo) GetByEmail(_ context.Context, email string) (*models.Funcionario, error) {
	for _, f := range r.funcionarios {
		if f.Email == email {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFuncionarioRepo) ListByEmpresa(_ context.Context, empresaID uint, offset, limit int) ([]*models.Funcionario, int64, error) {
	var out []*models.Funcionario
	for _, f := range r.funcionarios {
		if f.EmpresaID != nil && *f.EmpresaID == empresaID {
			out = append(out, f)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeFuncionarioRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *fakeFuncionarioRepo) ExistsByCpf(_ context.Context, cpf string) (bool, error) {
	for _, f := range r.funcionarios {
		if f.Cpf == cpf {
			return true, nil
		}
	}
	return false, nil
}

type fakeEmprestimoRepo struct {
	emprestimos []*models.Emprestimo
}

func (r *fakeEmprestimoRepo) CreateWithParcelas(_ context.Context, e *models.Emprestimo, parcelas []models.Parcela) error {
	e.ID = uint(len(r.emprestimos) + 1)
	for i := range parcelas {
		parcelas[i].EmprestimoID = e.ID
	}
	e.ParcelasGeradas = parcelas
	r.emprestimos = append(r.emprestimos, e)
	return nil
}

func (r *fakeEmprestimoRepo) GetByID(_ context.Context, id uint) (*models.Emprestimo, error) {
	for _, e := range r.emprestimos {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmprestimoRepo) ListByFuncionario(_ context.Context, funcionarioID uint, offset, limit int) ([]*models.Emprestimo, int64, error) {
	var out []*models.Emprestimo
	for _, e := range r.emprestimos {
		if e.FuncionarioID == funcionarioID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeEmprestimoRepo) ListByEmpresa(_ context.Context, empresaID uint, offset, limit int) ([]*models.Emprestimo, int64, error) {
	return r.emprestimos, int64(len(r.emprestimos)), nil
}

type fakeScoreGateway struct {
	score int
}

func (g *fakeScoreGateway) FetchScore(_ context.Context) int {
	return g.score
}

type fakePaymentGateway struct {
	status string
}

func (g *fakePaymentGateway) ProcessPayment(_ context.Context) string {
	return g.status
}

// ============================================================
// Helpers
// ============================================================

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEmprestimoService(salario float64, conveniado bool, score int, payment string) (*EmprestimoService, *fakeEmprestimoRepo) {
	funcionarioRepo := newFakeFuncionarioRepo()

	funcionario := &models.Funcionario{
		ID:      1,
		Nome:    "Maria Santos",
		Email:   "maria@teste.com",
		Salario: salario,
	}
	if conveniado {
		empresaID := uint(10)
		funcionario.EmpresaID = &empresaID
	}
	funcionarioRepo.funcionarios[1] = funcionario

	emprestimoRepo := &fakeEmprestimoRepo{}

	svc := NewEmprestimoService(
		funcionarioRepo,
		emprestimoRepo,
		&fakeScoreGateway{score: score},
		&fakePaymentGateway{status: payment},
		testLogger(),
	)
	return svc, emprestimoRepo
}

// ============================================================
// Tests
// ============================================================

func TestMargemDisponivel(t *testing.T) {
	svc, _ := newTestEmprestimoService(5000, true, 650, "approved")

	margem, err := svc.MargemDisponivel(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 5000.0, margem.Salario)
	assert.InDelta(t, 1750.0, margem.MargemMaxima, 0.001)
	assert.InDelta(t, 1750.0, margem.ValorMaximoEmprestimo, 0.001)
	assert.Equal(t, []int{1, 2, 3, 4}, margem.ParcelasDisponiveis)
}

func TestMargemDisponivel_FuncionarioNotFound(t *testing.T) {
	svc, _ := newTestEmprestimoService(5000, true, 650, "approved")

	_, err := svc.MargemDisponivel(context.Background(), 99)

	assert.ErrorIs(t, err, ErrFuncionarioNotFound)
}

func TestSolicitar_Approved(t *testing.T) {
	// Salary 5000 requires score 600; score 650 passes.
	svc, repo := newTestEmprestimoService(5000, true, 650, "approved")

	emprestimo, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    1000,
		Parcelas: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, emprestimo.Status)
	assert.Equal(t, 650, emprestimo.ScoreUsado)
	require.Len(t, emprestimo.ParcelasGeradas, 2)

	assert.Equal(t, 1, emprestimo.ParcelasGeradas[0].Numero)
	assert.InDelta(t, 500.0, emprestimo.ParcelasGeradas[0].Valor, 0.001)
	assert.Equal(t, 2, emprestimo.ParcelasGeradas[1].Numero)
	assert.InDelta(t, 500.0, emprestimo.ParcelasGeradas[1].Valor, 0.001)

	// Due dates land one and two months out.
	hoje := time.Now()
	assert.WithinDuration(t, hoje.AddDate(0, 1, 0), emprestimo.ParcelasGeradas[0].Vencimento, time.Minute)
	assert.WithinDuration(t, hoje.AddDate(0, 2, 0), emprestimo.ParcelasGeradas[1].Vencimento, time.Minute)

	require.Len(t, repo.emprestimos, 1)
}

func TestSolicitar_RejectedByScore(t *testing.T) {
	// Score 300 is below every tier; the rejection is still recorded.
	svc, repo := newTestEmprestimoService(5000, true, 300, "approved")

	emprestimo, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    1000,
		Parcelas: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, emprestimo.Status)
	assert.Equal(t, 300, emprestimo.ScoreUsado)
	assert.Empty(t, emprestimo.ParcelasGeradas)
	require.Len(t, repo.emprestimos, 1)
}

func TestSolicitar_ScoreBoundaryApproves(t *testing.T) {
	// Exactly the minimum score for the tier approves.
	svc, _ := newTestEmprestimoService(5000, true, 600, "approved")

	emprestimo, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    500,
		Parcelas: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, emprestimo.Status)
}

func TestSolicitar_MargemExcedida(t *testing.T) {
	// Margin for 5000 is 1750; asking 2000 fails before any gateway call
	// and no loan row is written.
	svc, repo := newTestEmprestimoService(5000, true, 650, "approved")

	_, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    2000,
		Parcelas: 2,
	})

	var margemErr *MargemExcedidaError
	require.True(t, errors.As(err, &margemErr))
	assert.InDelta(t, 1750.0, margemErr.ValorMaximo, 0.001)
	assert.Empty(t, repo.emprestimos)
}

func TestSolicitar_ValorIgualMargem(t *testing.T) {
	// Requesting exactly the margin is allowed.
	svc, _ := newTestEmprestimoService(5000, true, 650, "approved")

	emprestimo, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    1750,
		Parcelas: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, emprestimo.Status)
}

func TestSolicitar_EmpresaNotConveniada(t *testing.T) {
	svc, repo := newTestEmprestimoService(5000, false, 650, "approved")

	_, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    1000,
		Parcelas: 2,
	})

	assert.ErrorIs(t, err, ErrEmpresaNotConveniada)
	assert.Empty(t, repo.emprestimos)
}

func TestSolicitar_InvalidParcelas(t *testing.T) {
	svc, repo := newTestEmprestimoService(5000, true, 650, "approved")

	for _, parcelas := range []int{0, -1, 5, 12} {
		_, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
			Valor:    1000,
			Parcelas: parcelas,
		})
		assert.ErrorIs(t, err, ErrInvalidParcelas, "parcelas=%d", parcelas)
	}
	assert.Empty(t, repo.emprestimos)
}

func TestSolicitar_PaymentNotApproved(t *testing.T) {
	// The score passes but payment confirmation fails: the loan is
	// recorded as rejected with no installments.
	svc, repo := newTestEmprestimoService(5000, true, 650, "failed")

	emprestimo, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    1000,
		Parcelas: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, emprestimo.Status)
	assert.Empty(t, emprestimo.ParcelasGeradas)
	require.Len(t, repo.emprestimos, 1)
}

func TestSolicitar_PortugueseConfirmationApproves(t *testing.T) {
	// The stock confirmation endpoint answers {"status": "aprovado"};
	// wired through the real gateway the loan must still approve.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "aprovado"}`))
	}))
	defer server.Close()

	funcionarioRepo := newFakeFuncionarioRepo()
	empresaID := uint(10)
	funcionarioRepo.funcionarios[1] = &models.Funcionario{
		ID:        1,
		Nome:      "Maria Santos",
		Email:     "maria@teste.com",
		Salario:   5000,
		EmpresaID: &empresaID,
	}
	emprestimoRepo := &fakeEmprestimoRepo{}

	svc := NewEmprestimoService(
		funcionarioRepo,
		emprestimoRepo,
		&fakeScoreGateway{score: 650},
		gateways.NewPaymentGateway(server.URL, testLogger()),
		testLogger(),
	)

	emprestimo, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    1000,
		Parcelas: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, emprestimo.Status)
	assert.Len(t, emprestimo.ParcelasGeradas, 2)
}

func TestSolicitar_RemainderOnLastParcela(t *testing.T) {
	svc, _ := newTestEmprestimoService(5000, true, 650, "approved")

	emprestimo, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    1000,
		Parcelas: 3,
	})

	require.NoError(t, err)
	require.Len(t, emprestimo.ParcelasGeradas, 3)
	assert.InDelta(t, 333.33, emprestimo.ParcelasGeradas[0].Valor, 0.001)
	assert.InDelta(t, 333.33, emprestimo.ParcelasGeradas[1].Valor, 0.001)
	assert.InDelta(t, 333.34, emprestimo.ParcelasGeradas[2].Valor, 0.001)
}

func TestSolicitar_FuncionarioNotFound(t *testing.T) {
	svc, _ := newTestEmprestimoService(5000, true, 650, "approved")

	_, err := svc.Solicitar(context.Background(), 42, &SolicitarEmprestimoInput{
		Valor:    1000,
		Parcelas: 2,
	})

	assert.ErrorIs(t, err, ErrFuncionarioNotFound)
}

func TestSolicitar_LowSalaryTier(t *testing.T) {
	// Salary 2000 sits in the first tier (minimum 400), so score 450 passes.
	svc, _ := newTestEmprestimoService(2000, true, 450, "approved")

	emprestimo, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    700,
		Parcelas: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, emprestimo.Status)
}

func TestSolicitar_HighSalaryTierRejects(t *testing.T) {
	// Salary above 12000 requires 800; score 750 is rejected.
	svc, _ := newTestEmprestimoService(15000, true, 750, "approved")

	emprestimo, err := svc.Solicitar(context.Background(), 1, &SolicitarEmprestimoInput{
		Valor:    3000,
		Parcelas: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, emprestimo.Status)
}
