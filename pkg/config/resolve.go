package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	EnvAPIURL   = "ATELIE_API_URL"
	EnvPageSize = "ATELIE_PAGE_SIZE"
)

// Resolved is the effective connection setup of a command.
type Resolved struct {
	APIURL   string
	Profile  string
	Insecure bool
	PageSize int
	Timeout  time.Duration
}

// Resolve merges flags, environment and the active profile, in that
// order of precedence. A .env file in the working directory is read first
// and never overrides variables already set.
func Resolve(cmd *cobra.Command) (Resolved, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Resolved{}, fmt.Errorf("read .env: %w", err)
	}

	flagURL, _ := cmd.Root().PersistentFlags().GetString("api-url")
	envURL := os.Getenv(EnvAPIURL)

	cfg, err := Load()
	if err != nil {
		return Resolved{}, fmt.Errorf("load config: %w", err)
	}
	prof := cfg.Active
	if p, _ := cmd.Root().PersistentFlags().GetString("profile"); p != "" {
		prof = p
	}
	cp := cfg.Profiles[prof]

	url := firstNonEmpty(flagURL, envURL, cp.APIURL)
	if url == "" {
		return Resolved{}, fmt.Errorf("API URL not set (flag/env/config)")
	}

	pageSize := cp.PageSize
	if v := strings.TrimSpace(os.Getenv(EnvPageSize)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Resolved{}, fmt.Errorf("%s must be a positive integer, got %q", EnvPageSize, v)
		}
		pageSize = n
	}

	return Resolved{
		APIURL:   url,
		Profile:  prof,
		Insecure: cp.Insecure,
		PageSize: pageSize,
		Timeout:  time.Duration(cp.TimeoutSeconds) * time.Second,
	}, nil
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
