package entity

import (
	"github.com/faciam-dev/atelie/pkg/cfg"
	"github.com/faciam-dev/atelie/pkg/models"
)

// ProdutoForm is the edit buffer of a piece or model.
type ProdutoForm struct {
	Code           string                 `json:"code" yaml:"code" validate:"required"`
	Name           string                 `json:"name" yaml:"name" validate:"required,min=3"`
	CategoryID     *int64                 `json:"categoryId" yaml:"categoryId" validate:"required"`
	PriceTableID   *int64                 `json:"priceTableId" yaml:"priceTableId" validate:"required"`
	RawMaterialID  *int64                 `json:"rawMaterialId" yaml:"rawMaterialId" validate:"required"`
	Stone          string                 `json:"stone" yaml:"stone"`
	ProductionTime string                 `json:"productionTime" yaml:"productionTime" validate:"required"`
	Stock          models.SituacaoEstoque `json:"stock" yaml:"stock" validate:"oneof=0 1 2"`
	Notes          string                 `json:"notes" yaml:"notes"`
}

// Produtos describes pieces and models.
func Produtos() Descriptor[models.ProdutoViewModel, ProdutoForm, models.ProdutoInput] {
	return Descriptor[models.ProdutoViewModel, ProdutoForm, models.ProdutoInput]{
		Meta:     mustLookup("produtos"),
		Defaults: func() ProdutoForm { return ProdutoForm{Stock: models.EstoqueDisponivel} },
		ToForm: func(p models.ProdutoViewModel) ProdutoForm {
			return ProdutoForm{
				Code:           p.CodigoInterno,
				Name:           p.Nome,
				CategoryID:     p.CategoriaID,
				PriceTableID:   p.TabelaPrecoID,
				RawMaterialID:  p.MateriaPrimaID,
				Stone:          deref(p.PedraPrincipal),
				ProductionTime: cfg.DisplayNumber(p.PrazoProducaoDias),
				Stock:          parseSituacaoEstoque(p.SituacaoEstoque),
				Notes:          deref(p.Observacoes),
			}
		},
		ToInput: func(v ProdutoForm) models.ProdutoInput {
			return models.ProdutoInput{
				CodigoInterno:     v.Code,
				Nome:              v.Name,
				CategoriaID:       derefID(v.CategoryID),
				TabelaPrecoID:     derefID(v.PriceTableID),
				MateriaPrimaID:    derefID(v.RawMaterialID),
				PedraPrincipal:    nullable(v.Stone),
				PrazoProducaoDias: cfg.ToNullableNumber(v.ProductionTime),
				SituacaoEstoque:   v.Stock,
				Observacoes:       nullable(v.Notes),
			}
		},
		ID: func(p models.ProdutoViewModel) int64 { return p.ID },
	}
}

// CategoriaForm is the edit buffer of a category.
type CategoriaForm struct {
	Name        string                 `json:"name" yaml:"name" validate:"required,min=3"`
	Type        string                 `json:"type" yaml:"type" validate:"required"`
	Description string                 `json:"description" yaml:"description"`
	Status      models.CategoriaStatus `json:"status" yaml:"status" validate:"oneof=0 1"`
}

// Categorias describes piece types and categories.
func Categorias() Descriptor[models.CategoriaViewModel, CategoriaForm, models.CategoriaInput] {
	return Descriptor[models.CategoriaViewModel, CategoriaForm, models.CategoriaInput]{
		Meta:     mustLookup("categorias"),
		Defaults: func() CategoriaForm { return CategoriaForm{Type: "alianca", Status: models.CategoriaAtiva} },
		ToForm: func(c models.CategoriaViewModel) CategoriaForm {
			return CategoriaForm{
				Name:        c.Nome,
				Type:        c.Tipo,
				Description: deref(c.Descricao),
				Status:      parseCategoriaStatus(c.Status),
			}
		},
		ToInput: func(v CategoriaForm) models.CategoriaInput {
			return models.CategoriaInput{
				Nome:      v.Name,
				Tipo:      v.Type,
				Descricao: nullable(v.Description),
				Status:    v.Status,
			}
		},
		ID: func(c models.CategoriaViewModel) int64 { return c.ID },
	}
}

// ServicoForm is the edit buffer of a workshop service.
type ServicoForm struct {
	Name        string               `json:"name" yaml:"name" validate:"required,min=3"`
	Description string               `json:"description" yaml:"description"`
	Duration    string               `json:"duration" yaml:"duration" validate:"required,minnum=1"`
	BasePrice   string               `json:"basePrice" yaml:"basePrice" validate:"required"`
	Status      models.ServicoStatus `json:"status" yaml:"status" validate:"oneof=0 1"`
}

// Servicos describes the workshop services.
func Servicos() Descriptor[models.ServicoViewModel, ServicoForm, models.ServicoInput] {
	return Descriptor[models.ServicoViewModel, ServicoForm, models.ServicoInput]{
		Meta:     mustLookup("servicos"),
		Defaults: func() ServicoForm { return ServicoForm{Status: models.ServicoAtivo} },
		ToForm: func(s models.ServicoViewModel) ServicoForm {
			return ServicoForm{
				Name:        s.Nome,
				Description: deref(s.Descricao),
				Duration:    cfg.DisplayNumber(s.DuracaoDias),
				BasePrice:   cfg.DisplayNumber(s.PrecoBase),
				Status:      s.Status,
			}
		},
		ToInput: func(v ServicoForm) models.ServicoInput {
			return models.ServicoInput{
				Nome:        v.Name,
				Descricao:   nullable(v.Description),
				DuracaoDias: cfg.ToNumber(v.Duration, 1),
				PrecoBase:   cfg.ToNumber(v.BasePrice, 0),
				Status:      v.Status,
			}
		},
		ID: func(s models.ServicoViewModel) int64 { return s.ID },
	}
}

// MateriaPrimaForm is the edit buffer of a raw material.
type MateriaPrimaForm struct {
	Name          string                    `json:"name" yaml:"name" validate:"required,min=3"`
	Category      string                    `json:"category" yaml:"category" validate:"required"`
	Supplier      string                    `json:"supplier" yaml:"supplier"`
	Unit          string                    `json:"unit" yaml:"unit" validate:"required"`
	StockQuantity string                    `json:"stockQuantity" yaml:"stockQuantity" validate:"required"`
	MinStock      string                    `json:"minStock" yaml:"minStock" validate:"required"`
	CostPerUnit   string                    `json:"costPerUnit" yaml:"costPerUnit" validate:"required"`
	LeadTime      string                    `json:"leadTime" yaml:"leadTime"`
	Description   string                    `json:"description" yaml:"description"`
	Status        models.MateriaPrimaStatus `json:"status" yaml:"status" validate:"oneof=0 1"`
}

// MateriasPrimas describes the raw materials.
func MateriasPrimas() Descriptor[models.MateriaPrimaViewModel, MateriaPrimaForm, models.MateriaPrimaInput] {
	return Descriptor[models.MateriaPrimaViewModel, MateriaPrimaForm, models.MateriaPrimaInput]{
		Meta: mustLookup("materias-primas"),
		Defaults: func() MateriaPrimaForm {
			return MateriaPrimaForm{Category: "metal", Unit: "g", Status: models.MateriaPrimaDisponivel}
		},
		ToForm: func(m models.MateriaPrimaViewModel) MateriaPrimaForm {
			return MateriaPrimaForm{
				Name:          m.Nome,
				Category:      m.Categoria,
				Supplier:      deref(m.Fornecedor),
				Unit:          m.Unidade,
				StockQuantity: cfg.DisplayNumber(m.EstoqueAtual),
				MinStock:      cfg.DisplayNumber(m.EstoqueMinimo),
				CostPerUnit:   cfg.DisplayNumber(m.CustoPorUnidade),
				LeadTime:      cfg.DisplayNumber(m.LeadTimeDias),
				Description:   deref(m.Descricao),
				Status:        m.Status,
			}
		},
		ToInput: func(v MateriaPrimaForm) models.MateriaPrimaInput {
			return models.MateriaPrimaInput{
				Nome:            v.Name,
				Categoria:       v.Category,
				Fornecedor:      nullable(v.Supplier),
				Unidade:         v.Unit,
				EstoqueAtual:    cfg.ToNumber(v.StockQuantity, 0),
				EstoqueMinimo:   cfg.ToNumber(v.MinStock, 0),
				CustoPorUnidade: cfg.ToNumber(v.CostPerUnit, 0),
				LeadTimeDias:    cfg.ToNullableNumber(v.LeadTime),
				Descricao:       nullable(v.Description),
				Status:          v.Status,
			}
		},
		ID: func(m models.MateriaPrimaViewModel) int64 { return m.ID },
	}
}

// TabelaPrecoForm is the edit buffer of a price table.
type TabelaPrecoForm struct {
	Name        string                   `json:"name" yaml:"name" validate:"required,min=3"`
	CostPrice   string                   `json:"costPrice" yaml:"costPrice" validate:"required,minnum=0"`
	SalePrice   string                   `json:"salePrice" yaml:"salePrice" validate:"required,minnum=0"`
	Status      models.TabelaPrecoStatus `json:"status" yaml:"status" validate:"oneof=0 1"`
	Description string                   `json:"description" yaml:"description"`
}

// TabelasPreco describes the price tables.
func TabelasPreco() Descriptor[models.TabelaPrecoViewModel, TabelaPrecoForm, models.TabelaPrecoInput] {
	return Descriptor[models.TabelaPrecoViewModel, TabelaPrecoForm, models.TabelaPrecoInput]{
		Meta:     mustLookup("tabelas-preco"),
		Defaults: func() TabelaPrecoForm { return TabelaPrecoForm{Status: models.TabelaPrecoAtiva} },
		ToForm: func(t models.TabelaPrecoViewModel) TabelaPrecoForm {
			return TabelaPrecoForm{
				Name:        t.Nome,
				CostPrice:   cfg.DisplayNumber(t.PrecoCusto),
				SalePrice:   cfg.DisplayNumber(t.PrecoVenda),
				Status:      t.Status,
				Description: deref(t.Descricao),
			}
		},
		ToInput: func(v TabelaPrecoForm) models.TabelaPrecoInput {
			return models.TabelaPrecoInput{
				Nome:       v.Name,
				PrecoCusto: cfg.ToNumber(v.CostPrice, 0),
				PrecoVenda: cfg.ToNumber(v.SalePrice, 0),
				Status:     v.Status,
				Descricao:  nullable(v.Description),
			}
		},
		ID: func(t models.TabelaPrecoViewModel) int64 { return t.ID },
	}
}
