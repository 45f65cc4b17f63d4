package entity

import "github.com/faciam-dev/atelie/pkg/models"

// Endereco is the address block of the client form.
type Endereco struct {
	Street     string `json:"street" yaml:"street" validate:"required"`
	Number     string `json:"number" yaml:"number" validate:"required"`
	Complement string `json:"complement" yaml:"complement"`
	District   string `json:"district" yaml:"district" validate:"required"`
	City       string `json:"city" yaml:"city" validate:"required"`
	State      string `json:"state" yaml:"state" validate:"required"`
	Zip        string `json:"zip" yaml:"zip" validate:"required"`
}

// ClienteForm is the edit buffer of a client.
type ClienteForm struct {
	ClientType     models.TipoCliente `json:"clientType" yaml:"clientType" validate:"oneof=0 1"`
	FullName       string             `json:"fullName" yaml:"fullName" validate:"required,min=3"`
	Document       string             `json:"document" yaml:"document" validate:"required"`
	BirthDate      string             `json:"birthDate" yaml:"birthDate"`
	Email          string             `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone          string             `json:"phone" yaml:"phone" validate:"required"`
	Address        Endereco           `json:"address" yaml:"address"`
	MarketingOptIn bool               `json:"marketingOptIn" yaml:"marketingOptIn"`
}

func clienteDefaults() ClienteForm {
	return ClienteForm{ClientType: models.PessoaFisica, MarketingOptIn: true}
}

func clienteToForm(c models.ClienteViewModel) ClienteForm {
	marketing := true
	if c.AceitarMarketing != nil {
		marketing = *c.AceitarMarketing
	}
	return ClienteForm{
		ClientType: parseTipoCliente(c.TipoCliente),
		FullName:   c.DisplayName(),
		Document:   c.Documento,
		BirthDate:  deref(c.DataNascimento),
		Email:      deref(c.Email),
		Phone:      c.Telefone,
		Address: Endereco{
			Street:     c.Logradouro,
			Number:     c.Numero,
			Complement: deref(c.Complemento),
			District:   c.Bairro,
			City:       c.Cidade,
			State:      c.Estado,
			Zip:        c.Cep,
		},
		MarketingOptIn: marketing,
	}
}

func clienteToInput(v ClienteForm) models.ClienteInput {
	return models.ClienteInput{
		TipoCliente:      v.ClientType,
		NomeCompleto:     v.FullName,
		Documento:        v.Document,
		DataNascimento:   nullable(v.BirthDate),
		Email:            nullable(v.Email),
		Telefone:         v.Phone,
		Logradouro:       v.Address.Street,
		Numero:           v.Address.Number,
		Complemento:      nullable(v.Address.Complement),
		Bairro:           v.Address.District,
		Cidade:           v.Address.City,
		Estado:           stateCode(v.Address.State),
		Cep:              v.Address.Zip,
		AceitarMarketing: v.MarketingOptIn,
	}
}

// Clientes describes the client registry.
func Clientes() Descriptor[models.ClienteViewModel, ClienteForm, models.ClienteInput] {
	return Descriptor[models.ClienteViewModel, ClienteForm, models.ClienteInput]{
		Meta:     mustLookup("clientes"),
		Defaults: clienteDefaults,
		ToForm:   clienteToForm,
		ToInput:  clienteToInput,
		ID:       func(c models.ClienteViewModel) int64 { return c.ID },
	}
}
