package platform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/adapters/memory"
	"github.com/aretw0/quire/pkg/adapters/s3"
	"github.com/aretw0/quire/pkg/adapters/sqlite"
	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/typed"
)

// Adapters lists the store adapters Init understands.
var Adapters = []string{"fs", "sqlite", "s3", "memory"}

// Init builds and initializes the store selected by the options.
// The uri argument is adapter-specific: the notebook directory for "fs" and
// "sqlite", an optional s3://bucket/prefix for "s3", ignored for "memory".
func Init(ctx context.Context, uri string, opts ...Option) (core.Store, error) {
	o := applyOptions(opts)
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if o.store != nil {
		return initialize(ctx, o.store)
	}

	codec, err := typed.CodecFor(o.format)
	if err != nil {
		return nil, err
	}

	var store core.Store
	switch o.adapter {
	case "fs", "":
		store = fs.NewStore(fs.Config{
			Path:         filepath.Join(resolvePath(uri, o), o.systemDir),
			Ext:          codec.Ext(),
			MustExist:    o.mustExist,
			ReadOnly:     o.readOnly,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
		})
	case "sqlite":
		store = sqlite.NewStore(sqlite.Config{
			Path:     filepath.Join(resolvePath(uri, o), o.systemDir, sqlite.DefaultFile),
			ReadOnly: o.readOnly,
			Logger:   o.logger,
		})
	case "s3":
		store, err = initS3(ctx, uri, codec, o)
		if err != nil {
			return nil, err
		}
	case "memory":
		store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown adapter: %s (want one of %s)", o.adapter, strings.Join(Adapters, ", "))
	}

	return initialize(ctx, store)
}

func initialize(ctx context.Context, store core.Store) (core.Store, error) {
	if initer, ok := store.(core.Initializer); ok {
		if err := initer.Initialize(ctx); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// resolvePath applies the dev sandbox unless read-only or explicitly disabled.
func resolvePath(uri string, o *options) string {
	dev := IsDevRun()
	bypass := o.readOnly || !o.devSafety
	sandbox := o.forceTemp || (dev && !bypass)
	resolved := ResolvePath(uri, sandbox)

	if dev {
		switch {
		case !bypass:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		case o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		default:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}
	return resolved
}

func initS3(ctx context.Context, uri string, codec typed.Codec, o *options) (core.Store, error) {
	cfg := o.s3
	if strings.HasPrefix(uri, "s3://") {
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid s3 uri %q: %w", uri, err)
		}
		cfg.Bucket = u.Host
		if prefix := strings.TrimPrefix(u.Path, "/"); prefix != "" {
			cfg.Prefix = strings.TrimSuffix(prefix, "/") + "/"
		}
	}

	return s3.New(ctx, s3.Config{
		Endpoint:        cfg.Endpoint,
		Region:          cfg.Region,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Bucket:          cfg.Bucket,
		Prefix:          cfg.Prefix,
		Ext:             codec.Ext(),
		UsePathStyle:    cfg.UsePathStyle,
		ReadOnly:        o.readOnly,
		Logger:          o.logger,
	})
}
