package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/faciam-dev/atelie/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "atelie",
		Short:         "Jewelry workshop console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
			l, err := logger.New(verbose)
			if err != nil {
				return err
			}
			logger.Set(l)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			_ = logger.L.Sync()
			if stats, _ := cmd.Root().PersistentFlags().GetBool("stats"); stats {
				return printStats(cmd.ErrOrStderr())
			}
			return nil
		},
	}
	root.PersistentFlags().String("api-url", "", "Backend API base URL")
	root.PersistentFlags().String("profile", "", "Profile name in config (overrides active)")
	root.PersistentFlags().String("output", "", "Output format (table|json); json when stdout is not a terminal")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log requests and debug details to stderr")
	root.PersistentFlags().Bool("stats", false, "Print request counters to stderr when done")

	root.AddCommand(newConfigCmd())
	root.AddCommand(newConfigureCmd())
	root.AddCommand(newCfgCmd())
	root.AddCommand(newClientesCmd())
	root.AddCommand(newProdutosCmd())
	root.AddCommand(newCategoriasCmd())
	root.AddCommand(newServicosCmd())
	root.AddCommand(newMateriasPrimasCmd())
	root.AddCommand(newTabelasPrecoCmd())
	root.AddCommand(newOrcamentosCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
