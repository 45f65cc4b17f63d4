package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/faciam-dev/atelie/internal/fakeapi"
	"github.com/faciam-dev/atelie/internal/form"
	"github.com/faciam-dev/atelie/pkg/cfg"
	"github.com/faciam-dev/atelie/pkg/config"
)

func ptr[T any](v T) *T { return &v }

// setup points the CLI at a fresh fake backend with an isolated HOME.
func setup(t *testing.T) *fakeapi.Server {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvPageSize, "")
	chdir(t, t.TempDir())
	api := fakeapi.New()
	t.Setenv(config.EnvAPIURL, api.Start(t))
	api.SetGrid("ClientesGrid", cfg.Response{
		Data:       `[{"cliente.id":1,"nome":"Ana Lima","ativo":true},{"cliente.id":2,"nome":"Bruno","ativo":false}]`,
		PrimaryKey: ptr("cliente.id"),
		Fields: []cfg.Field{
			{FieldKey: "nome", Label: "Nome", IsVisible: true, DisplayOrder: 1},
			{FieldKey: "ativo", Label: "Ativo", IsVisible: true, DisplayOrder: 2},
		},
	})
	api.SetGrid("OrcamentoGrid", cfg.Response{Data: `[]`})
	return api
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "form.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

const validCliente = `
clientType: 1
fullName: Carla Souza
document: 12.345.678/0001-90
phone: "11 99999-0000"
address:
  street: Rua Augusta
  number: "100"
  district: Consolação
  city: São Paulo
  state: " sp"
  zip: 01305-000
`

func TestClientesListJSON(t *testing.T) {
	setup(t)
	out, _, err := run(t, "clientes", "list", "--output", "json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := []map[string]any{
		{"cliente.id": 1.0, "nome": "Ana Lima", "ativo": true},
		{"cliente.id": 2.0, "nome": "Bruno", "ativo": false},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows (-want +got)\n%s", diff)
	}
}

func TestClientesListTable(t *testing.T) {
	api := setup(t)
	out, _, err := run(t, "clientes", "list", "--output", "table", "--page", "2", "--order-by", "nome", "--direction", "desc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, s := range []string{"NOME", "ATIVO", "Ana Lima", "Sim", "Não"} {
		if !strings.Contains(out, s) {
			t.Fatalf("table misses %q:\n%s", s, out)
		}
	}
	reqs := api.Requests()
	body := string(reqs[len(reqs)-1].Body)
	for _, s := range []string{`"page":2`, `"pageSize":50`, `"orderByField":"nome"`, `"orderByDirection":"DESC"`} {
		if !strings.Contains(body, s) {
			t.Fatalf("query body %s misses %s", body, s)
		}
	}
}

func TestCfgQueryFilters(t *testing.T) {
	api := setup(t)
	if _, _, err := run(t, "cfg", "query", "ClientesGrid", "--filter", "nome=Ana", "--page-size", "5", "--output", "json"); err != nil {
		t.Fatalf("query: %v", err)
	}
	body := string(api.Requests()[0].Body)
	for _, s := range []string{`"filters":[{"field":"nome","value":"Ana"}]`, `"pageSize":5`} {
		if !strings.Contains(body, s) {
			t.Fatalf("query body %s misses %s", body, s)
		}
	}
	if _, _, err := run(t, "cfg", "query", "ClientesGrid", "--filter", "nome"); err == nil {
		t.Fatal("expected malformed filter error")
	}
}

func TestCfgList(t *testing.T) {
	setup(t)
	out, _, err := run(t, "cfg", "list", "--output", "table")
	if err != nil {
		t.Fatalf("cfg list: %v", err)
	}
	if !strings.Contains(out, "ClientesGrid") || !strings.Contains(out, "cliente.id") {
		t.Fatalf("cfg list output:\n%s", out)
	}
}

func TestClientesCreate(t *testing.T) {
	api := setup(t)
	out, _, err := run(t, "clientes", "create", "--file", writeFile(t, validCliente))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out, "Created clientes") {
		t.Fatalf("output = %q", out)
	}
	rec, ok := api.Record("clientes", 101)
	if !ok {
		t.Fatalf("not created: %#v", api.Requests())
	}
	if rec["nomeCompleto"] != "Carla Souza" || rec["estado"] != "SP" || rec["tipoCliente"] != 1.0 || rec["aceitarMarketing"] != true || rec["email"] != nil {
		t.Fatalf("record = %#v", rec)
	}
}

func TestClientesCreateInvalid(t *testing.T) {
	api := setup(t)
	_, stderr, err := run(t, "clientes", "create", "--file", writeFile(t, "fullName: Al\n"))
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected invalid form, got %v", err)
	}
	if !strings.Contains(stderr, "fullName: mínimo de 3 caracteres") {
		t.Fatalf("stderr = %q", stderr)
	}
	if n := api.Count(http.MethodPost, "/clientes"); n != 0 {
		t.Fatalf("posted %d times", n)
	}
}

func TestClientesUpdateKeepsOtherFields(t *testing.T) {
	api := setup(t)
	api.Put("clientes", 1, map[string]any{
		"nomeCompleto": "Ana Lima", "tipoCliente": 0, "documento": "123", "telefone": "11",
		"logradouro": "Rua A", "numero": "1", "bairro": "Centro", "cidade": "Santos", "estado": "SP", "cep": "11000-000",
		"aceitarMarketing": false,
	})
	if _, _, err := run(t, "clientes", "update", "1", "--file", writeFile(t, "email: ana@example.com\n")); err != nil {
		t.Fatalf("update: %v", err)
	}
	rec, _ := api.Record("clientes", 1)
	if rec["email"] != "ana@example.com" || rec["nomeCompleto"] != "Ana Lima" || rec["cidade"] != "Santos" || rec["aceitarMarketing"] != false {
		t.Fatalf("record = %#v", rec)
	}
	if _, _, err := run(t, "clientes", "update", "9", "--file", writeFile(t, "email: x@example.com\n")); err == nil {
		t.Fatal("expected missing record error")
	}
}

func TestClientesGetAndDelete(t *testing.T) {
	api := setup(t)
	api.Put("clientes", 1, map[string]any{"nome": "Ana Lima", "tipoCliente": "pf"})
	out, _, err := run(t, "clientes", "get", "1", "--output", "table")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(out, "Ana Lima") {
		t.Fatalf("get output:\n%s", out)
	}
	if _, _, err := run(t, "clientes", "delete", "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := api.Record("clientes", 1); ok {
		t.Fatal("record still present")
	}
	if _, _, err := run(t, "clientes", "get", "x"); err == nil {
		t.Fatal("expected invalid id error")
	}
}

func TestDefaults(t *testing.T) {
	setup(t)
	out, _, err := run(t, "clientes", "defaults")
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if !strings.Contains(out, "marketingOptIn: true") || !strings.Contains(out, "fullName: \"\"") {
		t.Fatalf("defaults:\n%s", out)
	}
}

func TestOrcamentosCreatePricesQuote(t *testing.T) {
	api := setup(t)
	api.Put("clientes", 2, map[string]any{"nome": "Bruno"})
	api.Put("servicos", 3, map[string]any{"nome": "Polimento"})
	file := writeFile(t, `
number: Q-1
clientId: 2
serviceId: 3
weightGrams: "2,5"
issueDate: "2024-05-01"
`)
	if _, _, err := run(t, "orcamentos", "create", "--file", file); err != nil {
		t.Fatalf("create: %v", err)
	}
	rec, ok := api.Record("orcamentos", 101)
	if !ok {
		t.Fatalf("not created: %#v", api.Requests())
	}
	if rec["cliente"] != "Bruno" || rec["valorTotal"] != 75.0 || rec["pesoGramas"] != 2.5 {
		t.Fatalf("record = %#v", rec)
	}
}

func TestQuoteCalc(t *testing.T) {
	api := setup(t)
	out, _, err := run(t, "orcamentos", "calc", "--servico", "3", "--peso", "1,5", "--output", "json")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	var got map[string]float64
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got["valorTotal"] != 65 {
		t.Fatalf("result = %#v", got)
	}
	body := string(api.Requests()[0].Body)
	if !strings.Contains(body, `"pesoGramas":1.5`) || !strings.Contains(body, `"produtoId":null`) {
		t.Fatalf("calc body = %s", body)
	}
	if _, _, err := run(t, "orcamentos", "calc", "--servico", "0"); err == nil {
		t.Fatal("expected error for missing service")
	}
}

func TestQuoteOptions(t *testing.T) {
	api := setup(t)
	api.Put("clientes", 1, map[string]any{"nomeCompleto": "Ana Lima"})
	api.Put("produtos", 4, map[string]any{"codigoInterno": "AN-01", "nome": "Anel"})
	out, _, err := run(t, "orcamentos", "options", "--output", "table")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if !strings.Contains(out, "Ana Lima") || !strings.Contains(out, "AN-01 - Anel") {
		t.Fatalf("options:\n%s", out)
	}
}

func TestFormatBRL(t *testing.T) {
	if got := formatBRL(1234.5); got != "R$ 1.234,50" {
		t.Fatalf("formatBRL = %q", got)
	}
}

func TestConfigureAndConfig(t *testing.T) {
	setup(t)
	url := os.Getenv(config.EnvAPIURL)
	t.Setenv(config.EnvAPIURL, "")
	out, _, err := run(t, "configure", "--api-url", url, "--non-interactive", "--page-size", "10", "--profile", "oficina")
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if !strings.Contains(out, "2 grids available") {
		t.Fatalf("configure output = %q", out)
	}
	f, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := config.Profile{Name: "oficina", APIURL: url, PageSize: 10}
	if diff := cmp.Diff(want, f.Profiles["oficina"]); diff != "" || f.Active != "oficina" {
		t.Fatalf("profile (-want +got)\n%s active=%s", diff, f.Active)
	}

	out, _, err = run(t, "config", "get")
	if err != nil || !strings.Contains(out, `"pageSize": 10`) {
		t.Fatalf("config get = %q, %v", out, err)
	}
	if _, _, err := run(t, "config", "set-url", "http://other.invalid"); err != nil {
		t.Fatalf("set-url: %v", err)
	}
	out, _, _ = run(t, "config", "list")
	if !strings.Contains(out, "* oficina\thttp://other.invalid") {
		t.Fatalf("config list = %q", out)
	}
	if _, _, err := run(t, "config", "use", "missing"); err == nil {
		t.Fatal("expected unknown profile error")
	}
	if _, _, err := run(t, "configure", "--non-interactive"); err == nil {
		t.Fatal("expected missing url error")
	}
}

func TestStats(t *testing.T) {
	setup(t)
	_, stderr, err := run(t, "clientes", "list", "--output", "json", "--stats")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(stderr, "atelie_api_requests_total") {
		t.Fatalf("stats = %q", stderr)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
