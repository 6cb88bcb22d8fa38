package domain

import (
	"math"
	"time"
)

// ParcelaPlan is one scheduled repayment slice of an approved loan.
type ParcelaPlan struct {
	Numero     int
	Valor      float64
	Vencimento time.Time
}

// round2 rounds to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GerarPlanoParcelas splits valor into parcelas slices due monthly after
// dataSolicitacao. Each slice is valor/parcelas rounded to cents; the last
// slice absorbs the rounding remainder so the slices sum exactly to valor.
// Due date i is dataSolicitacao plus i calendar months, normalized by
// time.AddDate (month-end overflow rolls into the next month).
func GerarPlanoParcelas(valor float64, parcelas int, dataSolicitacao time.Time) []ParcelaPlan {
	plano := make([]ParcelaPlan, 0, parcelas)
	valorParcela := round2(valor / float64(parcelas))

	restante := round2(valor)
	for i := 1; i <= parcelas; i++ {
		v := valorParcela
		if i == parcelas {
			v = restante
		}
		plano = append(plano, ParcelaPlan{
			Numero:     i,
			Valor:      v,
			Vencimento: dataSolicitacao.AddDate(0, i, 0),
		})
		restante = round2(restante - v)
	}
	return plano
}
