package reconcile

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// Resolver looks up existing remote resources by natural key.
type Resolver struct {
	client API
	log    *zap.Logger
}

// NewResolver creates a Resolver on top of the given API client.
func NewResolver(client API, log *zap.Logger) *Resolver {
	return &Resolver{client: client, log: log}
}

// Find issues exactly one filtered list query for the given kind and returns
// a handle for the first match. Zero matches is not an error: it returns
// (nil, nil) and the caller proceeds to creation. More than one match is
// surfaced as a warning; the first entry wins, consistently, because the
// remote list order is stable for identical queries.
func (r *Resolver) Find(ctx context.Context, kind Kind, query url.Values) (*RemoteHandle, error) {
	spec, ok := kindSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}

	objects, err := r.client.List(ctx, spec.path, query)
	if err != nil {
		return nil, err
	}

	if len(objects) == 0 {
		return nil, nil
	}

	if len(objects) > 1 {
		r.log.Warn("Ambiguous natural key match, first entry wins",
			zap.String("kind", string(kind)),
			zap.String("query", query.Encode()),
			zap.Int("matches", len(objects)),
		)
	}

	return &RemoteHandle{Kind: kind, ID: objects[0].ID}, nil
}
