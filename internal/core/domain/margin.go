package domain

// MargemFactor is the fraction of the monthly salary that may be borrowed.
const MargemFactor = 0.35

// MinParcelas and MaxParcelas bound the installment count of a loan.
const (
	MinParcelas = 1
	MaxParcelas = 4
)

// ParcelasDisponiveis returns the allowed installment counts. The sequence
// is fixed regardless of salary.
func ParcelasDisponiveis() []int {
	return []int{1, 2, 3, 4}
}

// ComputeMargem derives the borrowing margin for a monthly salary.
func ComputeMargem(salario float64) Margem {
	margem := salario * MargemFactor
	return Margem{
		Salario:               salario,
		MargemMaxima:          margem,
		ValorMaximoEmprestimo: margem,
		ParcelasDisponiveis:   ParcelasDisponiveis(),
	}
}

// ScoreMinimoPorSalario returns the minimum credit score required for a
// salary. Tiers are evaluated in ascending order with inclusive upper
// bounds; the first match wins.
func ScoreMinimoPorSalario(salario float64) int {
	switch {
	case salario <= 2000:
		return 400
	case salario <= 4000:
		return 500
	case salario <= 8000:
		return 600
	case salario <= 12000:
		return 700
	default:
		return 800
	}
}
