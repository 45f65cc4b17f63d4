package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/faciam-dev/atelie/internal/entity"
	"github.com/faciam-dev/atelie/internal/form"
	"github.com/faciam-dev/atelie/internal/screen"
	"github.com/faciam-dev/atelie/sdk"
	"github.com/faciam-dev/atelie/sdk/client"
)

func newClientesCmd() *cobra.Command {
	return newEntityCmd("clientes", entity.Clientes(),
		func(c *sdk.Console) *sdk.ClientesScreen { return c.Clientes }, nil)
}

func newProdutosCmd() *cobra.Command {
	return newEntityCmd("produtos", entity.Produtos(),
		func(c *sdk.Console) *sdk.ProdutosScreen { return c.Produtos }, nil)
}

func newCategoriasCmd() *cobra.Command {
	return newEntityCmd("categorias", entity.Categorias(),
		func(c *sdk.Console) *sdk.CategoriasScreen { return c.Categorias }, nil)
}

func newServicosCmd() *cobra.Command {
	return newEntityCmd("servicos", entity.Servicos(),
		func(c *sdk.Console) *sdk.ServicosScreen { return c.Servicos }, nil)
}

func newMateriasPrimasCmd() *cobra.Command {
	return newEntityCmd("materias-primas", entity.MateriasPrimas(),
		func(c *sdk.Console) *sdk.MateriasPrimasScreen { return c.MateriasPrimas }, nil)
}

func newTabelasPrecoCmd() *cobra.Command {
	return newEntityCmd("tabelas-preco", entity.TabelasPreco(),
		func(c *sdk.Console) *sdk.TabelasPrecoScreen { return c.TabelasPreco }, nil)
}

// submitFunc saves the dialog of an entity screen.
type submitFunc func(ctx context.Context, con *sdk.Console) error

// newEntityCmd builds the list/get/create/update/delete/defaults tree of
// one entity. A nil submit saves through the screen's own form.
func newEntityCmd[VM, FV, In any](use string, d entity.Descriptor[VM, FV, In], pick func(*sdk.Console) *screen.Screen[VM, FV, In], submit submitFunc) *cobra.Command {
	if submit == nil {
		submit = func(ctx context.Context, con *sdk.Console) error { return pick(con).SubmitForm(ctx) }
	}
	cmd := &cobra.Command{Use: use, Short: "Manage " + d.Meta.Label}
	cmd.AddCommand(entityListCmd(pick))
	cmd.AddCommand(entityGetCmd(d))
	cmd.AddCommand(entityCreateCmd(d, pick, submit))
	cmd.AddCommand(entityUpdateCmd(d, pick, submit))
	cmd.AddCommand(entityDeleteCmd(d, pick))
	cmd.AddCommand(entityDefaultsCmd(d))
	return cmd
}

func entityListCmd[VM, FV, In any](pick func(*sdk.Console) *screen.Screen[VM, FV, In]) *cobra.Command {
	var (
		page      int
		orderBy   string
		direction string
		filters   []string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one grid page",
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := queryInput(orderBy, direction, filters)
			if err != nil {
				return err
			}
			con, err := connect(cmd)
			if err != nil {
				return err
			}
			s := pick(con)
			if err := s.LoadQuery(cmd.Context(), page, extra); err != nil {
				return err
			}
			st := s.State()
			return printGrid(cmd, st.Columns, st.Rows)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	addQueryFlags(cmd, &orderBy, &direction, &filters)
	return cmd
}

func entityGetCmd[VM, FV, In any](d entity.Descriptor[VM, FV, In]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one " + d.Meta.Key + " record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			con, err := connect(cmd)
			if err != nil {
				return err
			}
			vm, err := client.NewResource[In, VM](con.Client, d.Meta.Resource).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printRecord(cmd, vm)
		},
	}
}

func entityCreateCmd[VM, FV, In any](d entity.Descriptor[VM, FV, In], pick func(*sdk.Console) *screen.Screen[VM, FV, In], submit submitFunc) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create --file form.yaml",
		Short: "Create a " + d.Meta.Key + " record from form values",
		RunE: func(cmd *cobra.Command, args []string) error {
			fv := d.Defaults()
			if err := readForm(cmd, file, &fv); err != nil {
				return err
			}
			con, err := connect(cmd)
			if err != nil {
				return err
			}
			s := pick(con)
			s.OpenCreate()
			s.Form().Patch(func(v *FV) { *v = fv })
			if err := submit(cmd.Context(), con); err != nil {
				return formError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s record\n", d.Meta.Key)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML form values (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func entityUpdateCmd[VM, FV, In any](d entity.Descriptor[VM, FV, In], pick func(*sdk.Console) *screen.Screen[VM, FV, In], submit submitFunc) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <id> --file form.yaml",
		Short: "Update a " + d.Meta.Key + " record; the file only needs the changed fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := connect(cmd)
			if err != nil {
				return err
			}
			s := pick(con)
			s.SelectRow(cmd.Context(), args[0])
			s.Wait()
			if !s.OpenEdit() {
				return fmt.Errorf("%s %s could not be loaded", d.Meta.Key, args[0])
			}
			fv := s.Form().Value()
			if err := readForm(cmd, file, &fv); err != nil {
				return err
			}
			s.Form().Patch(func(v *FV) { *v = fv })
			if err := submit(cmd.Context(), con); err != nil {
				return formError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", d.Meta.Key, args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML form values (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func entityDeleteCmd[VM, FV, In any](d entity.Descriptor[VM, FV, In], pick func(*sdk.Console) *screen.Screen[VM, FV, In]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + d.Meta.Key + " record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := connect(cmd)
			if err != nil {
				return err
			}
			s := pick(con)
			s.SelectRow(cmd.Context(), args[0])
			s.Wait()
			if err := s.Delete(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", d.Meta.Key, args[0])
			return nil
		},
	}
}

func entityDefaultsCmd[VM, FV, In any](d entity.Descriptor[VM, FV, In]) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the blank " + d.Meta.Key + " form as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := yaml.Marshal(d.Defaults())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

// readForm decodes YAML form values over v, leaving absent fields as they
// are.
func readForm(cmd *cobra.Command, file string, v any) error {
	var (
		b   []byte
		err error
	)
	if file == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(file)
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}
	return nil
}

// formError lists the invalid fields of a rejected form on stderr.
func formError(cmd *cobra.Command, err error) error {
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	keys := make([]string, 0, len(verr.Fields))
	for k := range verr.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", k, verr.Fields[k])
	}
	return form.ErrInvalid
}
