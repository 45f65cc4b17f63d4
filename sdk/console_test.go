package sdk_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/faciam-dev/atelie/internal/entity"
	"github.com/faciam-dev/atelie/internal/fakeapi"
	"github.com/faciam-dev/atelie/internal/lookup"
	"github.com/faciam-dev/atelie/pkg/cfg"
	"github.com/faciam-dev/atelie/pkg/models"
	"github.com/faciam-dev/atelie/sdk"
)

func ptr[T any](v T) *T { return &v }

func seed(api *fakeapi.Server) {
	api.Put("clientes", 1, map[string]any{"nomeCompleto": "Ana Lima", "tipoCliente": 0})
	api.Put("clientes", 2, map[string]any{"nome": "Bruno", "tipoCliente": "pj"})
	api.Put("servicos", 3, map[string]any{"nome": "Polimento", "status": 0})
	api.Put("produtos", 4, map[string]any{"codigoInterno": "AN-01", "nome": "Anel solitário", "situacaoEstoque": "Sob demanda"})
	api.SetGrid("OrcamentoGrid", cfg.Response{
		Data:       `[{"orcamento.id":12,"numero":"Q-12"}]`,
		PrimaryKey: ptr("orcamento.id"),
		Fields:     []cfg.Field{{FieldKey: "numero", Label: "Número", IsVisible: true}},
	})
}

func TestConsolePageSize(t *testing.T) {
	api := fakeapi.New()
	seed(api)
	con := sdk.New(sdk.Config{APIURL: api.Start(t), PageSize: 10})
	if err := con.Orcamentos.Load(context.Background(), 3); err != nil {
		t.Fatalf("load: %v", err)
	}
	rows := con.Orcamentos.State().Rows
	if len(rows) != 1 || rows[0].ID != "12" {
		t.Fatalf("rows = %#v", rows)
	}
	reqs := api.Requests()
	if len(reqs) != 1 || reqs[0].Path != "/cfg/OrcamentoGrid/query" {
		t.Fatalf("requests = %#v", reqs)
	}
	if got := string(reqs[0].Body); !strings.Contains(got, `"page":3`) || !strings.Contains(got, `"pageSize":10`) {
		t.Fatalf("body = %s", got)
	}
}

func TestQuoteOptions(t *testing.T) {
	api := fakeapi.New()
	seed(api)
	con := sdk.New(sdk.Config{APIURL: api.Start(t)})
	opts, err := con.QuoteOptions(context.Background(), 0)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	want := []lookup.Option{{ID: 1, Label: "Ana Lima"}, {ID: 2, Label: "Bruno"}}
	if diff := cmp.Diff(want, opts.Options(sdk.OptionsClientes)); diff != "" {
		t.Fatalf("clientes (-want +got)\n%s", diff)
	}
	if l, _ := opts.Label(sdk.OptionsProdutos, 4); l != "AN-01 - Anel solitário" {
		t.Fatalf("produto label = %q", l)
	}
}

func TestQuoteDialog(t *testing.T) {
	api := fakeapi.New()
	seed(api)
	api.SetCalc(func(in models.CalculoInput) models.CalculoResultado {
		return models.CalculoResultado{ValorTotal: 1234.5}
	})
	con := sdk.New(sdk.Config{APIURL: api.Start(t), QuoteDebounce: 10 * time.Millisecond})
	ctx := context.Background()
	opts, err := con.QuoteOptions(ctx, 0)
	if err != nil {
		t.Fatalf("options: %v", err)
	}

	con.Orcamentos.OpenCreate()
	calc := con.StartQuotePricing(ctx)
	defer calc.Stop()

	f := con.Orcamentos.Form()
	f.Patch(func(v *entity.OrcamentoForm) {
		v.Number = "Q-13"
		v.ClientID = ptr[int64](2)
		v.ServiceID = ptr[int64](3)
		v.ProductID = ptr[int64](4)
		v.WeightGrams = "3,2"
		v.IssueDate = "2024-05-01"
	})
	deadline := time.Now().Add(2 * time.Second)
	for f.Value().TotalValue != "1234.5" {
		if time.Now().After(deadline) {
			t.Fatalf("total = %q", f.Value().TotalValue)
		}
		time.Sleep(2 * time.Millisecond)
	}

	if err := con.SubmitQuote(ctx, opts); err != nil {
		t.Fatalf("submit: %v", err)
	}
	rec, ok := api.Record("orcamentos", 101)
	if !ok {
		t.Fatalf("quote not created: %#v", api.Requests())
	}
	if rec["cliente"] != "Bruno" || rec["valorTotal"] != 1234.5 || rec["pesoGramas"] != 3.2 {
		t.Fatalf("record = %#v", rec)
	}
	if api.Count(http.MethodPost, "/orcamentos/calcular-custo") != 1 {
		t.Fatalf("calc calls = %d", api.Count(http.MethodPost, "/orcamentos/calcular-custo"))
	}
}

func TestSubmitQuoteUnknownClient(t *testing.T) {
	api := fakeapi.New()
	seed(api)
	con := sdk.New(sdk.Config{APIURL: api.Start(t)})
	opts, err := con.QuoteOptions(context.Background(), 0)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	con.Orcamentos.OpenCreate()
	con.Orcamentos.Form().Patch(func(v *entity.OrcamentoForm) { v.ClientID = ptr[int64](99) })
	if err := con.SubmitQuote(context.Background(), opts); err == nil {
		t.Fatal("expected error")
	}

	con.Orcamentos.Form().Patch(func(v *entity.OrcamentoForm) { v.ClientID = ptr[int64](1) })
	if err := con.SubmitQuote(context.Background(), opts); !errors.Is(err, sdk.ErrInvalidForm) {
		t.Fatalf("expected invalid form, got %v", err)
	}
}
