package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/faciam-dev/atelie/pkg/cfg"
	"github.com/faciam-dev/atelie/pkg/metrics"
)

// outputFormat reads --output, falling back to a table on terminals and
// JSON when piped.
func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Root().PersistentFlags().GetString("output")
	switch format {
	case "table", "json":
		return format, nil
	case "":
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return "table", nil
		}
		return "json", nil
	default:
		return "", fmt.Errorf("unknown output format %q (table|json)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoWrapText(false)
	for _, r := range rows {
		tw.Append(r)
	}
	tw.Render()
}

// printGrid prints a grid page. Tables lead with the row id used by get,
// update and delete.
func printGrid(cmd *cobra.Command, cols []cfg.Column, rows []cfg.GridRow) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if format == "json" {
		data := make([]cfg.Row, len(rows))
		for i, r := range rows {
			data[i] = r.Data
		}
		return writeJSON(cmd.OutOrStdout(), data)
	}
	header := make([]string, 0, len(cols)+1)
	header = append(header, "ID")
	for _, c := range cols {
		header = append(header, c.Label)
	}
	body := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, 0, len(cols)+1)
		line = append(line, r.ID)
		for _, c := range cols {
			line = append(line, cfg.FormatCell(r.Data[c.Key]))
		}
		body[i] = line
	}
	renderTable(cmd.OutOrStdout(), header, body)
	return nil
}

// printRecord prints one entity, as a field/value table or as JSON.
func printRecord(cmd *cobra.Command, v any) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	fields := map[string]any{}
	flatten("", doc, fields)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	body := make([][]string, len(keys))
	for i, k := range keys {
		body[i] = []string{k, cfg.FormatCell(fields[k])}
	}
	renderTable(cmd.OutOrStdout(), []string{"Campo", "Valor"}, body)
	return nil
}

// flatten spreads nested objects into dotted keys.
func flatten(prefix string, in, out map[string]any) {
	for k, v := range in {
		if prefix != "" {
			k = prefix + "." + k
		}
		if m, ok := v.(map[string]any); ok {
			flatten(k, m, out)
			continue
		}
		out[k] = v
	}
}

func printStats(w io.Writer) error {
	samples, err := metrics.Counters(prometheus.DefaultGatherer)
	if err != nil {
		return err
	}
	body := make([][]string, len(samples))
	for i, s := range samples {
		body[i] = []string{s.Name, s.Labels, cfg.FormatNumber(s.Value)}
	}
	renderTable(w, []string{"Counter", "Labels", "Value"}, body)
	return nil
}
