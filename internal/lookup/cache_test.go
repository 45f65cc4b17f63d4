package lookup

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewLoadsAndSorts(t *testing.T) {
	src := map[string]Source{
		"servicos": func(context.Context) ([]Option, error) {
			return []Option{{ID: 2, Label: "Solda"}, {ID: 1, Label: "Polimento"}}, nil
		},
	}
	c, err := New(context.Background(), src, 0, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := []Option{{ID: 1, Label: "Polimento"}, {ID: 2, Label: "Solda"}}
	if diff := cmp.Diff(want, c.Options("servicos")); diff != "" {
		t.Fatalf("options (-want +got)\n%s", diff)
	}
	if l, ok := c.Label("servicos", 2); !ok || l != "Solda" {
		t.Fatalf("label = %q, %v", l, ok)
	}
	if _, ok := c.Label("clientes", 2); ok {
		t.Fatal("unknown list must miss")
	}
	if diff := cmp.Diff([]string{"servicos"}, c.Lists()); diff != "" {
		t.Fatalf("lists (-want +got)\n%s", diff)
	}
}

func TestNewFails(t *testing.T) {
	src := map[string]Source{
		"clientes": func(context.Context) ([]Option, error) { return nil, errors.New("down") },
	}
	if _, err := New(context.Background(), src, 0, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRefresh(t *testing.T) {
	var n atomic.Int32
	src := map[string]Source{
		"clientes": func(context.Context) ([]Option, error) {
			switch n.Add(1) {
			case 1:
				return []Option{{ID: 1, Label: "Ana"}}, nil
			case 2:
				return nil, errors.New("flaky")
			default:
				return []Option{{ID: 1, Label: "Ana"}, {ID: 2, Label: "Bia"}}, nil
			}
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c, err := New(ctx, src, 5*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for len(c.Options("clientes")) != 2 {
		if time.Now().After(deadline) {
			t.Fatal("list never refreshed")
		}
		if len(c.Options("clientes")) == 0 {
			t.Fatal("failed refresh must keep the previous list")
		}
		time.Sleep(time.Millisecond)
	}
}
