package models

// TipoCliente distinguishes individuals from companies.
type TipoCliente int

const (
	PessoaFisica TipoCliente = iota
	PessoaJuridica
)

// ClienteInput is accepted by POST/PUT /clientes.
type ClienteInput struct {
	TipoCliente      TipoCliente `json:"tipoCliente"`
	NomeCompleto     string      `json:"nomeCompleto"`
	Documento        string      `json:"documento"`
	DataNascimento   *string     `json:"dataNascimento"`
	Email            *string     `json:"email"`
	Telefone         string      `json:"telefone"`
	Logradouro       string      `json:"logradouro"`
	Numero           string      `json:"numero"`
	Complemento      *string     `json:"complemento"`
	Bairro           string      `json:"bairro"`
	Cidade           string      `json:"cidade"`
	Estado           string      `json:"estado"`
	Cep              string      `json:"cep"`
	AceitarMarketing bool        `json:"aceitarMarketing"`
}

// ClienteViewModel is returned by GET /clientes/{id}. Older views send
// the name as "nome" and the type as a string.
type ClienteViewModel struct {
	ID               int64   `json:"id"`
	TipoCliente      Flex    `json:"tipoCliente"`
	NomeCompleto     *string `json:"nomeCompleto"`
	Nome             *string `json:"nome"`
	Documento        string  `json:"documento"`
	DataNascimento   *string `json:"dataNascimento"`
	Email            *string `json:"email"`
	Telefone         string  `json:"telefone"`
	Logradouro       string  `json:"logradouro"`
	Numero           string  `json:"numero"`
	Complemento      *string `json:"complemento"`
	Bairro           string  `json:"bairro"`
	Cidade           string  `json:"cidade"`
	Estado           string  `json:"estado"`
	Cep              string  `json:"cep"`
	AceitarMarketing *bool   `json:"aceitarMarketing"`
	CriadoEm         string  `json:"criadoEm"`
	AtualizadoEm     string  `json:"atualizadoEm"`
}

// DisplayName returns the best available name.
func (c ClienteViewModel) DisplayName() string {
	if c.NomeCompleto != nil {
		return *c.NomeCompleto
	}
	if c.Nome != nil {
		return *c.Nome
	}
	return ""
}
