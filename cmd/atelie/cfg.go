package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faciam-dev/atelie/pkg/cfg"
)

func newCfgCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cfg", Short: "Inspect and run backend grid queries"}
	cmd.AddCommand(newCfgListCmd())
	cmd.AddCommand(newCfgQueryCmd())
	return cmd
}

func newCfgListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered grid queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := connect(cmd)
			if err != nil {
				return err
			}
			items, err := con.Client.ListCfg(cmd.Context())
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			rows := make([][]string, len(items))
			for i, it := range items {
				pk := cfg.EmptyCell
				if it.PrimaryKeyColumn != nil {
					pk = *it.PrimaryKeyColumn
				}
				rows[i] = []string{it.Identifier, cfg.FormatCell(it.Description), pk}
			}
			renderTable(cmd.OutOrStdout(), []string{"Identifier", "Description", "Primary key"}, rows)
			return nil
		},
	}
}

func newCfgQueryCmd() *cobra.Command {
	var (
		page      int
		pageSize  int
		orderBy   string
		direction string
		filters   []string
	)
	cmd := &cobra.Command{
		Use:   "query <identifier>",
		Short: "Run a grid query and print one page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := queryInput(orderBy, direction, filters)
			if err != nil {
				return err
			}
			con, err := connect(cmd)
			if err != nil {
				return err
			}
			dir := cfg.Directory{Identifier: args[0], PageSize: cfg.DefaultPageSize, Querier: con.Client}
			res, err := dir.Load(cmd.Context(), page, pageSize, extra)
			if err != nil {
				return err
			}
			return printGrid(cmd, cfg.Columns(res.Fields), res.GridRows())
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page")
	addQueryFlags(cmd, &orderBy, &direction, &filters)
	return cmd
}

func addQueryFlags(cmd *cobra.Command, orderBy, direction *string, filters *[]string) {
	cmd.Flags().StringVar(orderBy, "order-by", "", "Field to order by")
	cmd.Flags().StringVar(direction, "direction", "", "Order direction (asc|desc)")
	cmd.Flags().StringArrayVar(filters, "filter", nil, "Filter as field=value (repeatable)")
}

// queryInput turns the query flags into extra query input, or nil when
// none is set.
func queryInput(orderBy, direction string, filters []string) (*cfg.QueryInput, error) {
	var in cfg.QueryInput
	set := false
	for _, f := range filters {
		field, value, ok := strings.Cut(f, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("filter %q must be field=value", f)
		}
		in.Filters = append(in.Filters, cfg.FilterField{Field: field, Value: value})
		set = true
	}
	if orderBy != "" {
		in.OrderByField = &orderBy
		set = true
	}
	if direction != "" {
		d := cfg.Direction(strings.ToUpper(direction))
		if d != cfg.Asc && d != cfg.Desc {
			return nil, fmt.Errorf("direction must be asc or desc, got %q", direction)
		}
		in.OrderByDirection = &d
		set = true
	}
	if !set {
		return nil, nil
	}
	return &in, nil
}
