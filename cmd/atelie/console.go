package main

import (
	"github.com/spf13/cobra"

	"github.com/faciam-dev/atelie/internal/logger"
	"github.com/faciam-dev/atelie/pkg/config"
	"github.com/faciam-dev/atelie/sdk"
)

// connect builds a Console for the resolved profile.
func connect(cmd *cobra.Command) (*sdk.Console, error) {
	r, err := config.Resolve(cmd)
	if err != nil {
		return nil, err
	}
	logger.L.Debugw("connecting", "profile", r.Profile, "url", r.APIURL, "pageSize", r.PageSize)
	return sdk.New(sdk.Config{
		APIURL:   r.APIURL,
		Logger:   logger.L,
		Timeout:  r.Timeout,
		Insecure: r.Insecure,
		PageSize: r.PageSize,
	}), nil
}
