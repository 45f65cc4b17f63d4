package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func newRoot() *cobra.Command {
	cmd := &cobra.Command{Use: "root"}
	cmd.PersistentFlags().String("api-url", "", "")
	cmd.PersistentFlags().String("profile", "", "")
	return cmd
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	chdir(t, dir)
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvPageSize, "")

	cfg := &File{Active: "default", Profiles: map[string]Profile{
		"default": {Name: "default", APIURL: "cfg", PageSize: 30, TimeoutSeconds: 3},
	}, Version: 1}
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Run("config", func(t *testing.T) {
		r, err := Resolve(newRoot())
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if r.APIURL != "cfg" || r.PageSize != 30 || r.Timeout != 3*time.Second {
			t.Fatalf("unexpected %+v", r)
		}
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "env")
		t.Setenv(EnvPageSize, "10")
		r, err := Resolve(newRoot())
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if r.APIURL != "env" || r.PageSize != 10 {
			t.Fatalf("unexpected %+v", r)
		}
	})

	t.Run("bad page size", func(t *testing.T) {
		t.Setenv(EnvPageSize, "zero")
		if _, err := Resolve(newRoot()); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("flag", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "env")
		root := newRoot()
		if err := root.PersistentFlags().Set("api-url", "flag"); err != nil {
			t.Fatalf("set api-url: %v", err)
		}
		r, err := Resolve(root)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if r.APIURL != "flag" {
			t.Fatalf("unexpected %+v", r)
		}
	})

	t.Run("profile flag", func(t *testing.T) {
		cfg.Profiles["p2"] = Profile{Name: "p2", APIURL: "p2", Insecure: true}
		if err := Save(cfg); err != nil {
			t.Fatalf("save: %v", err)
		}
		root := newRoot()
		if err := root.PersistentFlags().Set("profile", "p2"); err != nil {
			t.Fatalf("set profile: %v", err)
		}
		r, err := Resolve(root)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if r.APIURL != "p2" || r.Profile != "p2" || !r.Insecure {
			t.Fatalf("unexpected %+v", r)
		}
	})

	t.Run("dotenv", func(t *testing.T) {
		if err := os.Unsetenv(EnvAPIURL); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvAPIURL+"=http://dotenv\n"), 0o600); err != nil {
			t.Fatalf("write .env: %v", err)
		}
		defer os.Unsetenv(EnvAPIURL)
		r, err := Resolve(newRoot())
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if r.APIURL != "http://dotenv" {
			t.Fatalf("unexpected %+v", r)
		}
	})

	t.Run("missing url", func(t *testing.T) {
		if err := os.Remove(filepath.Join(dir, ".env")); err != nil {
			t.Fatal(err)
		}
		if err := Save(&File{Active: "empty", Version: 1}); err != nil {
			t.Fatalf("save: %v", err)
		}
		t.Setenv(EnvAPIURL, "")
		if _, err := Resolve(newRoot()); err == nil {
			t.Fatal("expected error")
		}
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
