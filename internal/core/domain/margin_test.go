package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMargem(t *testing.T) {
	tests := []struct {
		name    string
		salario float64
		want    float64
	}{
		{"salary 5000", 5000, 1750},
		{"salary 2000", 2000, 700},
		{"salary 1000", 1000, 350},
		{"zero salary", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			margem := ComputeMargem(tt.salario)

			assert.Equal(t, tt.salario, margem.Salario)
			assert.InDelta(t, tt.want, margem.MargemMaxima, 0.001)
			assert.InDelta(t, tt.want, margem.ValorMaximoEmprestimo, 0.001)
			assert.Equal(t, []int{1, 2, 3, 4}, margem.ParcelasDisponiveis)
		})
	}
}

func TestScoreMinimoPorSalario(t *testing.T) {
	tests := []struct {
		name    string
		salario float64
		want    int
	}{
		{"below first tier", 1500, 400},
		{"first boundary inclusive", 2000, 400},
		{"just above first boundary", 2000.01, 500},
		{"second boundary inclusive", 4000, 500},
		{"third tier", 5000, 600},
		{"third boundary inclusive", 8000, 600},
		{"fourth tier", 10000, 700},
		{"fourth boundary inclusive", 12000, 700},
		{"above all tiers", 12000.01, 800},
		{"high salary", 50000, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreMinimoPorSalario(tt.salario))
		})
	}
}

func TestParcelasDisponiveis(t *testing.T) {
	// The options never depend on salary.
	assert.Equal(t, []int{1, 2, 3, 4}, ParcelasDisponiveis())
}
