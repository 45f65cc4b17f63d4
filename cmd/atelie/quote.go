package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/faciam-dev/atelie/internal/entity"
	"github.com/faciam-dev/atelie/internal/logger"
	"github.com/faciam-dev/atelie/pkg/cfg"
	"github.com/faciam-dev/atelie/sdk"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// formatBRL renders an amount the way the workshop quotes it, e.g.
// R$ 1.234,50.
func formatBRL(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}

func newOrcamentosCmd() *cobra.Command {
	cmd := newEntityCmd("orcamentos", entity.Orcamentos(),
		func(c *sdk.Console) *sdk.OrcamentosScreen { return c.Orcamentos }, submitQuote)
	cmd.AddCommand(newQuoteCalcCmd())
	cmd.AddCommand(newQuoteOptionsCmd())
	return cmd
}

// submitQuote saves the quote dialog the way the console does: a missing
// total is priced by the backend and the client name comes from the
// client list.
func submitQuote(ctx context.Context, con *sdk.Console) error {
	f := con.Orcamentos.Form()
	if v := f.Value(); v.TotalValue == "" {
		if in := v.CalculoInput(); in != nil {
			res, err := con.Client.CalcularCusto(ctx, *in)
			if err != nil {
				return fmt.Errorf("price quote: %w", err)
			}
			logger.L.Debugw("quote priced", "servicoId", in.ServicoID, "total", res.ValorTotal)
			f.PatchSilent(func(fv *entity.OrcamentoForm) { fv.TotalValue = cfg.FormatNumber(res.ValorTotal) })
		}
	}
	opts, err := con.QuoteOptions(ctx, 0)
	if err != nil {
		return fmt.Errorf("load quote options: %w", err)
	}
	return con.SubmitQuote(ctx, opts)
}

func newQuoteCalcCmd() *cobra.Command {
	var (
		servico int64
		produto int64
		peso    string
	)
	cmd := &cobra.Command{
		Use:   "calc --servico N [--produto N] [--peso 1,5]",
		Short: "Ask the backend for a suggested quote total",
		RunE: func(cmd *cobra.Command, args []string) error {
			fv := entity.OrcamentoForm{ServiceID: &servico, WeightGrams: peso}
			if produto > 0 {
				fv.ProductID = &produto
			}
			in := fv.CalculoInput()
			if in == nil {
				return fmt.Errorf("servico must be a positive id")
			}
			con, err := connect(cmd)
			if err != nil {
				return err
			}
			res, err := con.Client.CalcularCusto(cmd.Context(), *in)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			renderTable(cmd.OutOrStdout(), []string{"Componente", "Valor"}, [][]string{
				{"Matéria-prima", formatBRL(res.ValorMateriaPrima)},
				{"Serviço", formatBRL(res.ValorServico)},
				{"Total", formatBRL(res.ValorTotal)},
			})
			return nil
		},
	}
	cmd.Flags().Int64Var(&servico, "servico", 0, "Service id")
	cmd.Flags().Int64Var(&produto, "produto", 0, "Piece id")
	cmd.Flags().StringVar(&peso, "peso", "", "Weight in grams, comma or dot decimals")
	_ = cmd.MarkFlagRequired("servico")
	return cmd
}

func newQuoteOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the client, service and piece choices of the quote form",
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := connect(cmd)
			if err != nil {
				return err
			}
			opts, err := con.QuoteOptions(cmd.Context(), 0)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if format == "json" {
				all := map[string]any{}
				for _, name := range opts.Lists() {
					all[name] = opts.Options(name)
				}
				return writeJSON(cmd.OutOrStdout(), all)
			}
			var rows [][]string
			for _, name := range opts.Lists() {
				for _, o := range opts.Options(name) {
					rows = append(rows, []string{name, fmt.Sprint(o.ID), o.Label})
				}
			}
			renderTable(cmd.OutOrStdout(), []string{"Lista", "ID", "Nome"}, rows)
			return nil
		},
	}
}
