package domain

// Tipo discriminates the two account kinds that can authenticate.
type Tipo string

const (
	TipoFuncionario Tipo = "funcionario"
	TipoEmpresa     Tipo = "empresa"
)

// Valid reports whether t is one of the known account kinds.
func (t Tipo) Valid() bool {
	return t == TipoFuncionario || t == TipoEmpresa
}

// Loan status values. A loan is written exactly once with a terminal status.
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// PaymentApproved is the payment confirmation status required before an
// approved loan is persisted.
const PaymentApproved = "approved"

// Margem is the borrowing margin derived from an employee's salary.
type Margem struct {
	Salario               float64 `json:"salario"`
	MargemMaxima          float64 `json:"margemMaxima"`
	ValorMaximoEmprestimo float64 `json:"valorMaximoEmprestimo"`
	ParcelasDisponiveis   []int   `json:"parcelasDisponiveis"`
}
