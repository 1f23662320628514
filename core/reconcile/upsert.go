package reconcile

import (
	"context"

	"go.uber.org/zap"
)

// Upserter composes the resolver and the creation call into find-or-create.
type Upserter struct {
	client   API
	resolver *Resolver
	log      *zap.Logger
}

// NewUpserter creates an Upserter on top of the given API client.
func NewUpserter(client API, log *zap.Logger) *Upserter {
	return &Upserter{
		client:   client,
		resolver: NewResolver(client, log),
		log:      log,
	}
}

// Upsert ensures one resource exists remotely. An existing match is reused
// as-is; no update is issued even when the declared attributes differ from
// the remote record. Every failure is local to this resource: it is returned
// as a failed Result, never as an error that would stop sibling upserts.
func (u *Upserter) Upsert(ctx context.Context, res DesiredResource, deps map[Kind]RemoteHandle) Result {
	result := Result{Kind: res.Kind, Key: res.Key}

	if res.Attrs == nil {
		result.Status = StatusFailed
		result.Reason = "no attributes declared"
		return result
	}

	if err := res.Attrs.Validate(); err != nil {
		result.Status = StatusFailed
		result.Reason = err.Error()
		return result
	}

	handle, err := u.resolver.Find(ctx, res.Kind, res.Attrs.FilterQuery(deps))
	if err != nil {
		result.Status = StatusFailed
		result.Reason = "lookup failed: " + err.Error()
		return result
	}

	if handle != nil {
		u.log.Debug("Reusing existing resource",
			zap.String("kind", string(res.Kind)),
			zap.String("key", string(res.Key)),
			zap.Int("id", handle.ID),
		)
		result.Status = StatusReused
		result.Handle = *handle
		return result
	}

	payload, err := res.Attrs.CreateBody(deps)
	if err != nil {
		result.Status = StatusFailed
		result.Reason = err.Error()
		return result
	}

	spec := kindSpecs[res.Kind]
	obj, err := u.client.Create(ctx, spec.path, payload)
	if err != nil {
		result.Status = StatusFailed
		result.Reason = "create failed: " + err.Error()
		return result
	}

	if obj == nil || obj.ID == 0 {
		result.Status = StatusFailed
		result.Reason = "create response carried no id"
		return result
	}

	u.log.Info("Created resource",
		zap.String("kind", string(res.Kind)),
		zap.String("key", string(res.Key)),
		zap.Int("id", obj.ID),
	)
	result.Status = StatusCreated
	result.Handle = RemoteHandle{Kind: res.Kind, ID: obj.ID}
	return result
}
