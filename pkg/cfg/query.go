package cfg

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// Normalize fills the defaults of a query body. A non-positive
// defaultPageSize falls back to DefaultPageSize.
func Normalize(in QueryInput, defaultPageSize int) QueryRequest {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	req := QueryRequest{
		Filters:          in.Filters,
		CodeFilters:      in.CodeFilters,
		CustomWhere:      in.CustomWhere,
		Page:             in.Page,
		PageSize:         in.PageSize,
		OrderByField:     in.OrderByField,
		OrderByDirection: in.OrderByDirection,
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = defaultPageSize
	}
	return req
}

// Decode turns a raw response into a Result. The data payload never
// makes Decode fail: see ParseData.
func Decode(resp Response, log *zap.SugaredLogger) Result {
	fields := resp.Fields
	if fields == nil {
		fields = []Field{}
	}
	data, order := ParseDataOrdered(resp.Data, log)
	return Result{
		Data:                    data,
		KeyOrder:                order,
		Fields:                  fields,
		PrimaryKey:              resp.PrimaryKey,
		SearchIdentifierColumn:  resp.SearchIdentifierColumn,
		SearchDescriptionColumn: resp.SearchDescriptionColumn,
		AlternateCodeColumn:     resp.AlternateCodeColumn,
	}
}

// ParseData decodes the JSON array carried in a query response. Empty
// input, invalid JSON and non-array JSON all yield an empty slice.
// Array elements that are not objects are dropped.
func ParseData(raw string, log *zap.SugaredLogger) []Row {
	if raw == "" {
		return []Row{}
	}
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		if log != nil {
			log.Warnw("cfg data is not valid json", "error", err)
		}
		return []Row{}
	}
	items, ok := parsed.([]any)
	if !ok {
		return []Row{}
	}
	out := make([]Row, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// ParseDataOrdered is ParseData plus the keys of every row in the order
// a browser enumerates them: array-index keys ascending, then the rest as
// written. order is nil when it cannot be recovered.
func ParseDataOrdered(raw string, log *zap.SugaredLogger) (rows []Row, order [][]string) {
	rows = ParseData(raw, log)
	if len(rows) == 0 {
		return rows, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return rows, nil
	}
	order = make([][]string, 0, len(rows))
	for _, e := range elems {
		if !bytes.HasPrefix(bytes.TrimSpace(e), []byte("{")) {
			continue
		}
		keys, err := objectKeys(e)
		if err != nil {
			return rows, nil
		}
		order = append(order, keys)
	}
	if len(order) != len(rows) {
		return rows, nil
	}
	return rows, order
}

// objectKeys walks the tokens of a JSON object and returns its distinct
// keys in enumeration order.
func objectKeys(obj []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(obj))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var (
		index []string
		named []string
		seen  = map[string]bool{}
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		if isArrayIndex(key) {
			index = append(index, key)
		} else {
			named = append(named, key)
		}
	}
	sort.Slice(index, func(i, j int) bool {
		a, _ := strconv.ParseUint(index[i], 10, 32)
		b, _ := strconv.ParseUint(index[j], 10, 32)
		return a < b
	})
	return append(index, named...), nil
}

// isArrayIndex reports whether k is a canonical integer below 2^32-1.
func isArrayIndex(k string) bool {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(k, 10, 32)
	return err == nil && n < 1<<32-1
}

// Malformed reports whether raw would be discarded by ParseData for being
// unparsable or not an array.
func Malformed(raw string) bool {
	if raw == "" {
		return false
	}
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return true
	}
	_, ok := parsed.([]any)
	return !ok
}
