package entity

import (
	"github.com/faciam-dev/atelie/pkg/cfg"
	"github.com/faciam-dev/atelie/pkg/models"
)

// OrcamentoForm is the edit buffer of a quote. ClientName is the text
// stored in the quote's cliente column; the console fills it from the
// selected client.
type OrcamentoForm struct {
	Number      string                 `json:"number" yaml:"number" validate:"required"`
	ClientID    *int64                 `json:"clientId" yaml:"clientId" validate:"required"`
	ClientName  string                 `json:"clientName" yaml:"clientName"`
	ServiceID   *int64                 `json:"serviceId" yaml:"serviceId" validate:"required"`
	ProductID   *int64                 `json:"productId" yaml:"productId"`
	WeightGrams string                 `json:"weightGrams" yaml:"weightGrams"`
	IssueDate   string                 `json:"issueDate" yaml:"issueDate" validate:"required"`
	ValidUntil  string                 `json:"validUntil" yaml:"validUntil"`
	TotalValue  string                 `json:"totalValue" yaml:"totalValue" validate:"required"`
	Status      models.OrcamentoStatus `json:"status" yaml:"status" validate:"oneof=0 1 2 3"`
	Description string                 `json:"description" yaml:"description"`
	Notes       string                 `json:"notes" yaml:"notes"`
}

// CalculoInput derives the cost request of v. It is nil until a positive
// service is chosen.
func (v OrcamentoForm) CalculoInput() *models.CalculoInput {
	servico := positiveID(v.ServiceID)
	if servico == nil {
		return nil
	}
	in := &models.CalculoInput{
		ServicoID:  float64(*servico),
		PesoGramas: cfg.ToNullableNumber(v.WeightGrams),
	}
	if p := positiveID(v.ProductID); p != nil {
		f := float64(*p)
		in.ProdutoID = &f
	}
	return in
}

// Orcamentos describes the quotes.
func Orcamentos() Descriptor[models.OrcamentoViewModel, OrcamentoForm, models.OrcamentoInput] {
	return Descriptor[models.OrcamentoViewModel, OrcamentoForm, models.OrcamentoInput]{
		Meta:     mustLookup("orcamentos"),
		Defaults: func() OrcamentoForm { return OrcamentoForm{Status: models.OrcamentoEmAberto} },
		ToForm: func(o models.OrcamentoViewModel) OrcamentoForm {
			return OrcamentoForm{
				Number:      o.Numero,
				ClientID:    o.ClienteID,
				ClientName:  o.Cliente,
				ServiceID:   o.ServicoID,
				ProductID:   o.ProdutoID,
				WeightGrams: cfg.DisplayNumber(o.PesoGramas),
				IssueDate:   o.DataEmissao,
				ValidUntil:  deref(o.DataValidade),
				TotalValue:  cfg.DisplayNumber(o.ValorTotal),
				Status:      o.Status,
				Description: deref(o.Descricao),
				Notes:       deref(o.Observacoes),
			}
		},
		ToInput: func(v OrcamentoForm) models.OrcamentoInput {
			return models.OrcamentoInput{
				Numero:       v.Number,
				Cliente:      v.ClientName,
				ClienteID:    positiveID(v.ClientID),
				ServicoID:    positiveID(v.ServiceID),
				ProdutoID:    positiveID(v.ProductID),
				PesoGramas:   cfg.ToNullableNumber(v.WeightGrams),
				Descricao:    nullable(v.Description),
				DataEmissao:  v.IssueDate,
				DataValidade: nullable(v.ValidUntil),
				ValorTotal:   cfg.ToNumber(v.TotalValue, 0),
				Status:       v.Status,
				Observacoes:  nullable(v.Notes),
			}
		},
		ID: func(o models.OrcamentoViewModel) int64 { return o.ID },
	}
}
