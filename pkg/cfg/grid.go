package cfg

import (
	"sort"
	"strconv"
	"strings"
)

// Columns derives the grid columns: visible fields only, ordered by
// DisplayOrder. Fields sharing an order keep their input order.
func Columns(fields []Field) []Column {
	visible := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.IsVisible {
			visible = append(visible, f)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].DisplayOrder < visible[j].DisplayOrder
	})
	cols := make([]Column, len(visible))
	for i, f := range visible {
		cols[i] = Column{Key: f.FieldKey, Label: f.Label, Width: f.ColumnWidth}
	}
	return cols
}

// PrimaryKeyCandidates expands a backend primary key hint into the keys
// tried against each row: the trimmed key, its last dot segment and its
// dot-to-underscore form, deduplicated in that order.
func PrimaryKeyCandidates(primaryKey *string) []string {
	if primaryKey == nil || *primaryKey == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*primaryKey)
	last := trimmed
	if i := strings.LastIndex(trimmed, "."); i >= 0 {
		last = trimmed[i+1:]
	}
	underscored := strings.ReplaceAll(trimmed, ".", "_")

	seen := make(map[string]struct{}, 3)
	out := make([]string, 0, 3)
	for _, k := range []string{trimmed, last, underscored} {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// ResolveRowID returns the identity of row. Each candidate is looked up
// exactly and then case-insensitively; the first non-null value wins.
// Rows without a usable key get "row-{index}".
func ResolveRowID(row Row, candidates []string, index int) string {
	return resolveRowID(row, nil, candidates, index)
}

// resolveRowID scans keys, the row's enumeration order, for the
// case-insensitive match. Without an order the keys are sorted so the
// result is stable.
func resolveRowID(row Row, keys, candidates []string, index int) string {
	for _, key := range candidates {
		if key == "" {
			continue
		}
		if v, ok := row[key]; ok && v != nil {
			return Stringify(v)
		}
		if keys == nil {
			keys = sortedKeys(row)
		}
		lower := strings.ToLower(key)
		for _, k := range keys {
			if strings.ToLower(k) != lower {
				continue
			}
			if v := row[k]; v != nil {
				return Stringify(v)
			}
		}
	}
	return "row-" + strconv.Itoa(index)
}

// Rows assigns an identity to every record of a page.
func Rows(data []Row, primaryKey *string) []GridRow {
	return rowsInOrder(data, nil, primaryKey)
}

// GridRows assigns an identity to every record of r, honouring the key
// order the backend sent.
func (r Result) GridRows() []GridRow {
	order := r.KeyOrder
	if len(order) != len(r.Data) {
		order = nil
	}
	return rowsInOrder(r.Data, order, r.PrimaryKey)
}

func rowsInOrder(data []Row, order [][]string, primaryKey *string) []GridRow {
	keys := PrimaryKeyCandidates(primaryKey)
	rows := make([]GridRow, len(data))
	for i, item := range data {
		var ko []string
		if order != nil {
			ko = order[i]
		}
		rows[i] = GridRow{ID: resolveRowID(item, ko, keys, i), Data: item}
	}
	return rows
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
