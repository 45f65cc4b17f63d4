package sdk

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/faciam-dev/atelie/internal/entity"
	"github.com/faciam-dev/atelie/internal/lookup"
	"github.com/faciam-dev/atelie/internal/quote"
	"github.com/faciam-dev/atelie/internal/screen"
	"github.com/faciam-dev/atelie/pkg/models"
	"github.com/faciam-dev/atelie/sdk/client"
)

// Option lists served by QuoteOptions.
const (
	OptionsClientes = "clientes"
	OptionsServicos = "servicos"
	OptionsProdutos = "produtos"
)

type (
	ClientesScreen       = screen.Screen[models.ClienteViewModel, entity.ClienteForm, models.ClienteInput]
	ProdutosScreen       = screen.Screen[models.ProdutoViewModel, entity.ProdutoForm, models.ProdutoInput]
	CategoriasScreen     = screen.Screen[models.CategoriaViewModel, entity.CategoriaForm, models.CategoriaInput]
	ServicosScreen       = screen.Screen[models.ServicoViewModel, entity.ServicoForm, models.ServicoInput]
	MateriasPrimasScreen = screen.Screen[models.MateriaPrimaViewModel, entity.MateriaPrimaForm, models.MateriaPrimaInput]
	TabelasPrecoScreen   = screen.Screen[models.TabelaPrecoViewModel, entity.TabelaPrecoForm, models.TabelaPrecoInput]
	OrcamentosScreen     = screen.Screen[models.OrcamentoViewModel, entity.OrcamentoForm, models.OrcamentoInput]
)

// Console is the workshop console: one screen per entity sharing a
// backend client.
type Console struct {
	Client *client.Client

	Clientes       *ClientesScreen
	Produtos       *ProdutosScreen
	Categorias     *CategoriasScreen
	Servicos       *ServicosScreen
	MateriasPrimas *MateriasPrimasScreen
	TabelasPreco   *TabelasPrecoScreen
	Orcamentos     *OrcamentosScreen

	logger   *zap.SugaredLogger
	debounce time.Duration
}

// New returns a Console for cfg.
func New(cfg Config) *Console {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	opts := []client.Option{
		client.WithLogger(logger),
		client.WithTimeout(cfg.Timeout),
		client.WithInsecure(cfg.Insecure),
	}
	if cfg.Transport != nil {
		opts = append(opts, client.WithTransport(cfg.Transport))
	}
	c := client.New(cfg.APIURL, opts...)
	con := &Console{Client: c, logger: logger, debounce: cfg.QuoteDebounce}

	con.Clientes = newScreen(con, cfg.PageSize, entity.Clientes())
	con.Produtos = newScreen(con, cfg.PageSize, entity.Produtos())
	con.Categorias = newScreen(con, cfg.PageSize, entity.Categorias())
	con.Servicos = newScreen(con, cfg.PageSize, entity.Servicos())
	con.MateriasPrimas = newScreen(con, cfg.PageSize, entity.MateriasPrimas())
	con.TabelasPreco = newScreen(con, cfg.PageSize, entity.TabelasPreco())
	con.Orcamentos = newScreen(con, cfg.PageSize, entity.Orcamentos())
	return con
}

func newScreen[VM, FV, In any](con *Console, pageSize int, d entity.Descriptor[VM, FV, In]) *screen.Screen[VM, FV, In] {
	if pageSize > 0 {
		d.Meta.PageSize = pageSize
	}
	res := client.NewResource[In, VM](con.Client, d.Meta.Resource)
	return screen.New(d, con.Client, res, screen.WithLogger(con.logger))
}

// StartQuotePricing keeps the quote dialog's total in sync with the
// backend's suggestion until ctx ends or the calculator is stopped.
func (c *Console) StartQuotePricing(ctx context.Context) *quote.Calculator {
	opts := []quote.Option{quote.WithLogger(c.logger)}
	if c.debounce > 0 {
		opts = append(opts, quote.WithDebounce(c.debounce))
	}
	return quote.Start(ctx, c.Orcamentos.Form(), c.Client, opts...)
}

// QuoteOptions loads the selection lists of the quote form. With a
// positive refresh they are reloaded in the background until ctx ends.
func (c *Console) QuoteOptions(ctx context.Context, refresh time.Duration) (*lookup.Cache, error) {
	clientes := client.NewResource[models.ClienteInput, models.ClienteViewModel](c.Client, entity.Clientes().Meta.Resource)
	servicos := client.NewResource[models.ServicoInput, models.ServicoViewModel](c.Client, entity.Servicos().Meta.Resource)
	produtos := client.NewResource[models.ProdutoInput, models.ProdutoViewModel](c.Client, entity.Produtos().Meta.Resource)

	sources := map[string]lookup.Source{
		OptionsClientes: func(ctx context.Context) ([]lookup.Option, error) {
			items, err := clientes.List(ctx)
			return options(items, err, func(v models.ClienteViewModel) lookup.Option {
				return lookup.Option{ID: v.ID, Label: v.DisplayName()}
			})
		},
		OptionsServicos: func(ctx context.Context) ([]lookup.Option, error) {
			items, err := servicos.List(ctx)
			return options(items, err, func(v models.ServicoViewModel) lookup.Option {
				return lookup.Option{ID: v.ID, Label: v.Nome}
			})
		},
		OptionsProdutos: func(ctx context.Context) ([]lookup.Option, error) {
			items, err := produtos.List(ctx)
			return options(items, err, func(v models.ProdutoViewModel) lookup.Option {
				label := v.Nome
				if v.CodigoInterno != "" {
					label = v.CodigoInterno + " - " + v.Nome
				}
				return lookup.Option{ID: v.ID, Label: label}
			})
		},
	}
	return lookup.New(ctx, sources, refresh, c.logger)
}

func options[T any](items []T, err error, fn func(T) lookup.Option) ([]lookup.Option, error) {
	if err != nil {
		return nil, err
	}
	out := make([]lookup.Option, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out, nil
}

// SubmitQuote saves the quote dialog. An empty client name is filled from
// opts using the chosen client id.
func (c *Console) SubmitQuote(ctx context.Context, opts *lookup.Cache) error {
	f := c.Orcamentos.Form()
	v := f.Value()
	if v.ClientName == "" && v.ClientID != nil && opts != nil {
		name, ok := opts.Label(OptionsClientes, *v.ClientID)
		if !ok {
			return fmt.Errorf("client %d not found", *v.ClientID)
		}
		f.PatchSilent(func(fv *entity.OrcamentoForm) { fv.ClientName = name })
	}
	return c.Orcamentos.SubmitForm(ctx)
}
