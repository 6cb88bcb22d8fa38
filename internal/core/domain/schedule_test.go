package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGerarPlanoParcelas_EvenSplit(t *testing.T) {
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	plano := GerarPlanoParcelas(1000, 2, base)

	require.Len(t, plano, 2)
	assert.Equal(t, 1, plano[0].Numero)
	assert.InDelta(t, 500.0, plano[0].Valor, 0.001)
	assert.Equal(t, time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC), plano[0].Vencimento)

	assert.Equal(t, 2, plano[1].Numero)
	assert.InDelta(t, 500.0, plano[1].Valor, 0.001)
	assert.Equal(t, time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC), plano[1].Vencimento)
}

func TestGerarPlanoParcelas_LastAbsorbsRemainder(t *testing.T) {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	plano := GerarPlanoParcelas(1000, 3, base)

	require.Len(t, plano, 3)
	assert.InDelta(t, 333.33, plano[0].Valor, 0.001)
	assert.InDelta(t, 333.33, plano[1].Valor, 0.001)
	assert.InDelta(t, 333.34, plano[2].Valor, 0.001)

	// Slices sum exactly to the requested amount.
	var soma float64
	for _, p := range plano {
		soma += p.Valor
	}
	assert.InDelta(t, 1000.0, soma, 0.001)
}

func TestGerarPlanoParcelas_SingleParcela(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	plano := GerarPlanoParcelas(750.50, 1, base)

	require.Len(t, plano, 1)
	assert.InDelta(t, 750.50, plano[0].Valor, 0.001)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), plano[0].Vencimento)
}

func TestGerarPlanoParcelas_MonthEndNormalization(t *testing.T) {
	// January 31st + 1 month rolls over into March via AddDate.
	base := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	plano := GerarPlanoParcelas(400, 2, base)

	require.Len(t, plano, 2)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), plano[0].Vencimento)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), plano[1].Vencimento)
}
