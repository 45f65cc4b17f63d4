package cfg

import (
	"context"
	"testing"
)

type recordingQuerier struct {
	identifier string
	in         QueryInput
	def        int
}

func (q *recordingQuerier) QueryCfg(_ context.Context, identifier string, in QueryInput, def int) (Result, error) {
	q.identifier, q.in, q.def = identifier, in, def
	return Result{}, nil
}

func TestDirectoryLoad(t *testing.T) {
	q := &recordingQuerier{}
	d := Directory{Identifier: "ClientesGrid", PageSize: 50, Querier: q}

	if _, err := d.Load(context.Background(), 0, 0, nil); err != nil {
		t.Fatalf("load: %v", err)
	}
	if q.identifier != "ClientesGrid" || q.in.Page != 1 || q.in.PageSize != 50 || q.def != 50 {
		t.Fatalf("query = %q %#v %d", q.identifier, q.in, q.def)
	}

	order := "Nome"
	if _, err := d.Load(context.Background(), 2, 10, &QueryInput{OrderByField: &order}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if q.in.Page != 2 || q.in.PageSize != 10 || q.in.OrderByField == nil {
		t.Fatalf("query = %#v", q.in)
	}

	if _, err := d.Load(context.Background(), 2, 10, &QueryInput{Page: 5}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if q.in.Page != 5 {
		t.Fatalf("extra page should win, got %d", q.in.Page)
	}
}
