package cfg

import "context"

// Querier runs a named query. sdk/client.Client implements it.
type Querier interface {
	QueryCfg(ctx context.Context, identifier string, in QueryInput, defaultPageSize int) (Result, error)
}

// Directory binds a query identifier and a default page size.
type Directory struct {
	Identifier string
	PageSize   int
	Querier    Querier
}

// Load fetches one page. A non-positive pageSize uses the directory
// default. extra may carry filters and ordering; a Page or PageSize set
// in extra takes precedence over the arguments.
func (d Directory) Load(ctx context.Context, page, pageSize int, extra *QueryInput) (Result, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = d.PageSize
	}
	var in QueryInput
	if extra != nil {
		in = *extra
	}
	if in.Page == 0 {
		in.Page = page
	}
	if in.PageSize == 0 {
		in.PageSize = pageSize
	}
	return d.Querier.QueryCfg(ctx, d.Identifier, in, d.PageSize)
}
