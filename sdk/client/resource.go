package client

import (
	"context"
	"net/http"
	"strconv"
)

// Resource is the typed CRUD endpoint of one entity, e.g. /clientes.
type Resource[In, VM any] struct {
	c    *Client
	name string
}

// NewResource binds the resource path name (without slashes) to c.
func NewResource[In, VM any](c *Client, name string) *Resource[In, VM] {
	return &Resource[In, VM]{c: c, name: name}
}

// Name returns the resource path name.
func (r *Resource[In, VM]) Name() string { return r.name }

func (r *Resource[In, VM]) item(id int64) string {
	return "/" + r.name + "/" + strconv.FormatInt(id, 10)
}

func (r *Resource[In, VM]) List(ctx context.Context) ([]VM, error) {
	var out []VM
	if err := r.c.do(ctx, http.MethodGet, r.name, "/"+r.name, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[In, VM]) Get(ctx context.Context, id int64) (VM, error) {
	var out VM
	err := r.c.do(ctx, http.MethodGet, r.name, r.item(id), nil, &out)
	return out, err
}

func (r *Resource[In, VM]) Create(ctx context.Context, in In) (VM, error) {
	var out VM
	err := r.c.do(ctx, http.MethodPost, r.name, "/"+r.name, in, &out)
	return out, err
}

// Update replaces the entity. The backend answers without a body.
func (r *Resource[In, VM]) Update(ctx context.Context, id int64, in In) error {
	return r.c.do(ctx, http.MethodPut, r.name, r.item(id), in, nil)
}

// Delete removes the entity. The backend answers without a body.
func (r *Resource[In, VM]) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, r.name, r.item(id), nil, nil)
}
