package models

// OrcamentoStatus is the lifecycle state of a quote.
type OrcamentoStatus int

const (
	OrcamentoEmAberto OrcamentoStatus = iota
	OrcamentoAprovado
	OrcamentoRejeitado
	OrcamentoExpirado
)

// CalculoInput asks the backend for a suggested quote total.
type CalculoInput struct {
	ServicoID  float64  `json:"servicoId"`
	ProdutoID  *float64 `json:"produtoId"`
	PesoGramas *float64 `json:"pesoGramas"`
}

// CalculoResultado is the cost breakdown of a quote.
type CalculoResultado struct {
	ValorMateriaPrima float64 `json:"valorMateriaPrima"`
	ValorServico      float64 `json:"valorServico"`
	ValorTotal        float64 `json:"valorTotal"`
}

// OrcamentoInput is accepted by POST/PUT /orcamentos.
type OrcamentoInput struct {
	Numero       string          `json:"numero"`
	Cliente      string          `json:"cliente"`
	ClienteID    *int64          `json:"clienteId"`
	ServicoID    *int64          `json:"servicoId"`
	ProdutoID    *int64          `json:"produtoId"`
	PesoGramas   *float64        `json:"pesoGramas"`
	Descricao    *string         `json:"descricao"`
	DataEmissao  string          `json:"dataEmissao"`
	DataValidade *string         `json:"dataValidade"`
	ValorTotal   float64         `json:"valorTotal"`
	Status       OrcamentoStatus `json:"status"`
	Observacoes  *string         `json:"observacoes"`
}

// OrcamentoViewModel is a quote as returned by the backend.
type OrcamentoViewModel struct {
	ID           int64           `json:"id"`
	Numero       string          `json:"numero"`
	Cliente      string          `json:"cliente"`
	ClienteID    *int64          `json:"clienteId"`
	ServicoID    *int64          `json:"servicoId"`
	ProdutoID    *int64          `json:"produtoId"`
	PesoGramas   *float64        `json:"pesoGramas"`
	Descricao    *string         `json:"descricao"`
	DataEmissao  string          `json:"dataEmissao"`
	DataValidade *string         `json:"dataValidade"`
	ValorTotal   *float64        `json:"valorTotal"`
	Status       OrcamentoStatus `json:"status"`
	Observacoes  *string         `json:"observacoes"`
	CriadoEm     string          `json:"criadoEm"`
	AtualizadoEm string          `json:"atualizadoEm"`
}
