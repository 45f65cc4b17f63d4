package models

// SituacaoEstoque is the stock situation of a piece.
type SituacaoEstoque int

const (
	EstoqueDisponivel SituacaoEstoque = iota
	EstoqueSobDemanda
	EstoqueIndisponivel
)

// ProdutoInput is accepted by POST/PUT /produtos.
type ProdutoInput struct {
	CodigoInterno     string          `json:"codigoInterno"`
	Nome              string          `json:"nome"`
	CategoriaID       int64           `json:"categoriaId"`
	TabelaPrecoID     int64           `json:"tabelaPrecoId"`
	MateriaPrimaID    int64           `json:"materiaPrimaId"`
	PedraPrincipal    *string         `json:"pedraPrincipal"`
	PrazoProducaoDias *float64        `json:"prazoProducaoDias"`
	SituacaoEstoque   SituacaoEstoque `json:"situacaoEstoque"`
	Observacoes       *string         `json:"observacoes"`
}

// ProdutoViewModel is a piece or model as returned by the backend.
type ProdutoViewModel struct {
	ID                int64    `json:"id"`
	CodigoInterno     string   `json:"codigoInterno"`
	Nome              string   `json:"nome"`
	CategoriaID       *int64   `json:"categoriaId"`
	TabelaPrecoID     *int64   `json:"tabelaPrecoId"`
	MateriaPrimaID    *int64   `json:"materiaPrimaId"`
	PedraPrincipal    *string  `json:"pedraPrincipal"`
	PrazoProducaoDias *float64 `json:"prazoProducaoDias"`
	SituacaoEstoque   Flex     `json:"situacaoEstoque"`
	Observacoes       *string  `json:"observacoes"`
	CriadoEm          string   `json:"criadoEm,omitempty"`
	AtualizadoEm      string   `json:"atualizadoEm,omitempty"`
}

// CategoriaStatus is the status of a category.
type CategoriaStatus int

const (
	CategoriaAtiva CategoriaStatus = iota
	CategoriaInativa
)

// CategoriaInput is accepted by POST/PUT /tipos-categorias.
type CategoriaInput struct {
	Nome      string          `json:"nome"`
	Tipo      string          `json:"tipo"`
	Descricao *string         `json:"descricao"`
	Status    CategoriaStatus `json:"status"`
}

// CategoriaViewModel is a category as returned by the backend. Status may
// arrive as a name ("Ativo"/"Inativo").
type CategoriaViewModel struct {
	ID           int64   `json:"id"`
	Nome         string  `json:"nome"`
	Tipo         string  `json:"tipo"`
	Descricao    *string `json:"descricao"`
	Status       Flex    `json:"status"`
	CriadoEm     string  `json:"criadoEm"`
	AtualizadoEm string  `json:"atualizadoEm"`
}

// ServicoStatus is the status of a workshop service.
type ServicoStatus int

const (
	ServicoAtivo ServicoStatus = iota
	ServicoInativo
)

// ServicoInput is accepted by POST/PUT /servicos.
type ServicoInput struct {
	Nome        string        `json:"nome"`
	Descricao   *string       `json:"descricao"`
	DuracaoDias float64       `json:"duracaoDias"`
	PrecoBase   float64       `json:"precoBase"`
	Status      ServicoStatus `json:"status"`
}

// ServicoViewModel is a service as returned by the backend.
type ServicoViewModel struct {
	ID           int64         `json:"id"`
	Nome         string        `json:"nome"`
	Descricao    *string       `json:"descricao"`
	DuracaoDias  *float64      `json:"duracaoDias"`
	PrecoBase    *float64      `json:"precoBase"`
	Status       ServicoStatus `json:"status"`
	CriadoEm     string        `json:"criadoEm"`
	AtualizadoEm string        `json:"atualizadoEm"`
}

// MateriaPrimaStatus is the availability of a raw material.
type MateriaPrimaStatus int

const (
	MateriaPrimaDisponivel MateriaPrimaStatus = iota
	MateriaPrimaIndisponivel
)

// MateriaPrimaInput is accepted by POST/PUT /materias-primas.
type MateriaPrimaInput struct {
	Nome            string             `json:"nome"`
	Categoria       string             `json:"categoria"`
	Fornecedor      *string            `json:"fornecedor"`
	Unidade         string             `json:"unidade"`
	EstoqueAtual    float64            `json:"estoqueAtual"`
	EstoqueMinimo   float64            `json:"estoqueMinimo"`
	CustoPorUnidade float64            `json:"custoPorUnidade"`
	LeadTimeDias    *float64           `json:"leadTimeDias"`
	Descricao       *string            `json:"descricao"`
	Status          MateriaPrimaStatus `json:"status"`
}

// MateriaPrimaViewModel is a raw material as returned by the backend.
type MateriaPrimaViewModel struct {
	ID              int64              `json:"id"`
	Nome            string             `json:"nome"`
	Categoria       string             `json:"categoria"`
	Fornecedor      *string            `json:"fornecedor"`
	Unidade         string             `json:"unidade"`
	EstoqueAtual    *float64           `json:"estoqueAtual"`
	EstoqueMinimo   *float64           `json:"estoqueMinimo"`
	CustoPorUnidade *float64           `json:"custoPorUnidade"`
	LeadTimeDias    *float64           `json:"leadTimeDias"`
	Descricao       *string            `json:"descricao"`
	Status          MateriaPrimaStatus `json:"status"`
	CriadoEm        string             `json:"criadoEm"`
	AtualizadoEm    string             `json:"atualizadoEm"`
}

// TabelaPrecoStatus is the status of a price table.
type TabelaPrecoStatus int

const (
	TabelaPrecoAtiva TabelaPrecoStatus = iota
	TabelaPrecoInativa
)

// TabelaPrecoInput is accepted by POST/PUT /tabelas-preco.
type TabelaPrecoInput struct {
	Nome       string            `json:"nome"`
	PrecoCusto float64           `json:"precoCusto"`
	PrecoVenda float64           `json:"precoVenda"`
	Status     TabelaPrecoStatus `json:"status"`
	Descricao  *string           `json:"descricao"`
}

// TabelaPrecoViewModel is a price table as returned by the backend.
type TabelaPrecoViewModel struct {
	ID           int64             `json:"id"`
	Nome         string            `json:"nome"`
	PrecoCusto   *float64          `json:"precoCusto"`
	PrecoVenda   *float64          `json:"precoVenda"`
	Status       TabelaPrecoStatus `json:"status"`
	Descricao    *string           `json:"descricao"`
	CriadoEm     string            `json:"criadoEm"`
	AtualizadoEm string            `json:"atualizadoEm"`
}
