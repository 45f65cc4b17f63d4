package sdk

import (
	"github.com/faciam-dev/atelie/internal/form"
	"github.com/faciam-dev/atelie/internal/screen"
	"github.com/faciam-dev/atelie/sdk/client"
)

// Error kinds surfaced by Console operations. Backend failures are
// *client.HTTPError values.
var (
	ErrTransport   = client.ErrTransport
	ErrNotFound    = client.ErrNotFound
	ErrInvalidForm = form.ErrInvalid
	ErrNoSelection = screen.ErrNoSelection
	ErrInvalidID   = screen.ErrInvalidID
)
