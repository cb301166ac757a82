package platform

import (
	"context"

	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/notebook"
	"github.com/aretw0/quire/pkg/typed"
)

// New opens the notebook at uri.
//
//	nb, err := quire.New(ctx, "./notes", quire.WithAdapter("sqlite"))
func New(ctx context.Context, uri string, opts ...Option) (*notebook.Service, core.Store, error) {
	store, err := Init(ctx, uri, opts...)
	if err != nil {
		return nil, nil, err
	}

	o := applyOptions(opts)
	codec, err := typed.CodecFor(o.format)
	if err != nil {
		return nil, nil, err
	}

	nbOpts := []notebook.Option{
		notebook.WithLogger(o.logger),
		notebook.WithCodec(codec),
		notebook.WithIDGenerator(o.newID),
	}
	svc, err := notebook.Open(ctx, store, nbOpts...)
	if err != nil {
		return nil, nil, err
	}
	return svc, store, nil
}
