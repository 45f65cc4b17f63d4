package cfg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColumns(t *testing.T) {
	fields := []Field{
		{FieldKey: "Nome", Label: "Nome", IsVisible: true, DisplayOrder: 2, ColumnWidth: 200},
		{FieldKey: "Id", Label: "Id", IsVisible: false, DisplayOrder: 1},
		{FieldKey: "Cidade", Label: "Cidade", IsVisible: true, DisplayOrder: 1, ColumnWidth: 120},
	}
	want := []Column{
		{Key: "Cidade", Label: "Cidade", Width: 120},
		{Key: "Nome", Label: "Nome", Width: 200},
	}
	if diff := cmp.Diff(want, Columns(fields)); diff != "" {
		t.Fatalf("columns (-want +got)\n%s", diff)
	}
}

func TestColumnsStableOnTies(t *testing.T) {
	fields := []Field{
		{FieldKey: "b", IsVisible: true, DisplayOrder: 1},
		{FieldKey: "a", IsVisible: true, DisplayOrder: 1},
		{FieldKey: "c", IsVisible: true, DisplayOrder: 0},
		{FieldKey: "d", IsVisible: true, DisplayOrder: 1},
	}
	var keys []string
	for _, c := range Columns(fields) {
		keys = append(keys, c.Key)
	}
	if diff := cmp.Diff([]string{"c", "b", "a", "d"}, keys); diff != "" {
		t.Fatalf("order (-want +got)\n%s", diff)
	}
}

func TestPrimaryKeyCandidates(t *testing.T) {
	tests := []struct {
		in   *string
		want []string
	}{
		{nil, nil},
		{strPtr(""), nil},
		{strPtr(" t.ClienteId "), []string{"t.ClienteId", "ClienteId", "t_ClienteId"}},
		{strPtr("Id"), []string{"Id"}},
		{strPtr("a.b.Codigo"), []string{"a.b.Codigo", "Codigo", "a_b_Codigo"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, PrimaryKeyCandidates(tt.in)); diff != "" {
			t.Errorf("candidates (-want +got)\n%s", diff)
		}
	}
}

func TestResolveRowID(t *testing.T) {
	pk := PrimaryKeyCandidates(strPtr("t.ClienteId"))
	tests := []struct {
		name  string
		row   Row
		keys  []string
		index int
		want  string
	}{
		{"last segment", Row{"ClienteId": float64(42)}, pk, 0, "42"},
		{"case insensitive", Row{"clienteid": float64(7)}, pk, 0, "7"},
		{"underscored", Row{"t_ClienteId": "abc"}, pk, 0, "abc"},
		{"exact wins", Row{"t.ClienteId": "x", "ClienteId": "y"}, pk, 0, "x"},
		{"null skipped", Row{"ClienteId": nil, "T_CLIENTEID": float64(5)}, pk, 0, "5"},
		{"no key", Row{"Nome": "Ana"}, nil, 3, "row-3"},
		{"no match", Row{"Nome": "Ana"}, pk, 8, "row-8"},
		{"bool id", Row{"ClienteId": true}, pk, 0, "true"},
		{"fractional", Row{"ClienteId": 1.5}, pk, 0, "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRowID(tt.row, tt.keys, tt.index); got != tt.want {
				t.Fatalf("id = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRows(t *testing.T) {
	data := []Row{{"Id": "9", "Nome": "Ana"}, {"Nome": "Bia"}}
	rows := Rows(data, strPtr("Id"))
	if len(rows) != 2 || rows[0].ID != "9" || rows[1].ID != "row-1" {
		t.Fatalf("rows = %#v", rows)
	}
	if rows[0].Data["Nome"] != "Ana" {
		t.Fatalf("data not kept: %#v", rows[0].Data)
	}
}

func TestGridRowsKeepKeyOrder(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"first variant wins", `[{"clienteId":1,"ClienteID":2}]`, []string{"1"}},
		{"written order, not sorted", `[{"ClienteID":2,"clienteId":1}]`, []string{"2"}},
		{"null skipped", `[{"clienteId":null,"ClienteID":3},{"x":1}]`, []string{"3", "row-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Decode(Response{Data: tt.data, PrimaryKey: strPtr("CLIENTEID")}, nil)
			var got []string
			for _, r := range res.GridRows() {
				got = append(got, r.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("ids (-want +got)\n%s", diff)
			}
		})
	}
}

func TestGridRowsWithoutOrder(t *testing.T) {
	res := Result{Data: []Row{{"clienteId": 1.0, "ClienteID": 2.0}}, PrimaryKey: strPtr("CLIENTEID")}
	if got := res.GridRows()[0].ID; got != "2" {
		t.Fatalf("id = %q, want sorted-key fallback 2", got)
	}
}
