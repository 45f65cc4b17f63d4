package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := &File{
		Active: "oficina",
		Profiles: map[string]Profile{
			"oficina": {Name: "oficina", APIURL: "http://api", Insecure: true, PageSize: 40, TimeoutSeconds: 5},
		},
		Version: 1,
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	p, err := Path()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("perm = %v", info.Mode().Perm())
	}
	loaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("cfg diff (-want +got)\n%s", diff)
	}
}

func TestCurrentAndPut(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	f, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Profile{Name: "default"}, f.Current()); diff != "" {
		t.Fatalf("current (-want +got)\n%s", diff)
	}
	f.Put(Profile{Name: "default", APIURL: "http://loja"})
	if f.Current().APIURL != "http://loja" {
		t.Fatalf("current = %+v", f.Current())
	}
}
