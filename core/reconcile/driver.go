package reconcile

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// cacheKey identifies one resource within a run.
type cacheKey struct {
	kind Kind
	key  NaturalKey
}

// Driver iterates a desired-state inventory in dependency order, invokes the
// Upserter per resource, and aggregates per-item outcomes. One item's failure
// never stops processing of independent items.
type Driver struct {
	upserter *Upserter
	resolver *Resolver
	log      *zap.Logger
}

// NewDriver creates a Driver on top of the given API client.
func NewDriver(client API, log *zap.Logger) *Driver {
	return &Driver{
		upserter: NewUpserter(client, log),
		resolver: NewResolver(client, log),
		log:      log,
	}
}

// Run reconciles the desired resources against the remote system and returns
// one Result per input, in input order. Kinds are processed in the fixed
// topological order regardless of how the input interleaves them. Execution
// is strictly sequential; the run always proceeds to the end of the input,
// even if every item fails.
func (d *Driver) Run(ctx context.Context, resources []DesiredResource) []Result {
	results := make([]Result, len(resources))

	// Input positions grouped by kind so results can stay in input order
	// while processing honors the dependency order.
	byKind := make(map[Kind][]int)
	for i, res := range resources {
		byKind[res.Kind] = append(byKind[res.Kind], i)
	}

	state := &runState{
		handles: make(map[cacheKey]RemoteHandle),
		failed:  make(map[cacheKey]string),
		seen:    make(map[cacheKey]bool),
	}

	for _, kind := range kindOrder {
		for _, i := range byKind[kind] {
			results[i] = d.process(ctx, resources[i], state)
		}
		delete(byKind, kind)
	}

	// Anything left references a kind the engine does not know.
	for kind, positions := range byKind {
		for _, i := range positions {
			results[i] = Result{
				Kind:   kind,
				Key:    resources[i].Key,
				Status: StatusFailed,
				Reason: "unknown resource kind",
			}
		}
	}

	return results
}

// runState is the run-scoped dependency cache. It is owned by exactly one
// Run invocation and discarded when the run ends.
type runState struct {
	// handles maps resolved resources to their remote identifiers.
	handles map[cacheKey]RemoteHandle

	// failed records resources whose upsert or lookup-only resolution
	// failed, so dependents short-circuit without a remote call.
	failed map[cacheKey]string

	// seen tracks declared natural keys to reject duplicates within a run.
	seen map[cacheKey]bool
}

func (d *Driver) process(ctx context.Context, res DesiredResource, state *runState) Result {
	ck := cacheKey{res.Kind, res.Key}

	if state.seen[ck] {
		return Result{
			Kind:   res.Kind,
			Key:    res.Key,
			Status: StatusFailed,
			Reason: "duplicate natural key within run",
		}
	}
	state.seen[ck] = true

	deps, missing := d.resolveDeps(ctx, res, state)
	if missing != "" {
		state.failed[ck] = missing
		return Result{Kind: res.Kind, Key: res.Key, Status: StatusFailed, Reason: missing}
	}

	result := d.upserter.Upsert(ctx, res, deps)
	if result.Status == StatusFailed {
		state.failed[ck] = result.Reason
	} else {
		state.handles[ck] = result.Handle
	}
	return result
}

// resolveDeps gathers the dependency handles a resource needs. Declared
// dependencies come from the run cache; a dependency referenced but never
// declared (a pre-existing site or role) is resolved with a single
// lookup-only query, and the outcome, hit or miss, is cached for the rest of
// the run. A missing dependency returns a non-empty failure reason and the
// resource is skipped without any creation call.
func (d *Driver) resolveDeps(ctx context.Context, res DesiredResource, state *runState) (map[Kind]RemoteHandle, string) {
	deps := make(map[Kind]RemoteHandle, len(res.Deps))

	for _, depKind := range sortedDepKinds(res.Deps) {
		depKey := res.Deps[depKind]
		dk := cacheKey{depKind, depKey}

		if h, ok := state.handles[dk]; ok {
			deps[depKind] = h
			continue
		}
		if _, ok := state.failed[dk]; ok {
			return nil, missingPrereq(depKind)
		}

		handle, ok := d.lookupUndeclared(ctx, depKind, depKey)
		if !ok {
			state.failed[dk] = "unresolved"
			return nil, missingPrereq(depKind)
		}
		state.handles[dk] = handle
		deps[depKind] = handle
	}

	// A declared dependency map can be incomplete; the kind table knows
	// which handles creation cannot proceed without.
	for _, required := range kindSpecs[res.Kind].requires {
		if _, ok := deps[required]; !ok {
			return nil, missingPrereq(required)
		}
	}

	return deps, ""
}

// lookupUndeclared resolves a dependency that is not part of the desired
// state. Such resources are expected to pre-exist remotely; they are looked
// up once and never created.
func (d *Driver) lookupUndeclared(ctx context.Context, kind Kind, key NaturalKey) (RemoteHandle, bool) {
	spec, ok := kindSpecs[kind]
	if !ok || spec.keyFilter == nil {
		d.log.Warn("Dependency kind cannot be resolved from its key alone; declare it in the inventory",
			zap.String("kind", string(kind)),
			zap.String("key", string(key)),
		)
		return RemoteHandle{}, false
	}

	query, ok := spec.keyFilter(key)
	if !ok {
		return RemoteHandle{}, false
	}

	handle, err := d.resolver.Find(ctx, kind, query)
	if err != nil || handle == nil {
		d.log.Warn("Pre-existing dependency not found remotely",
			zap.String("kind", string(kind)),
			zap.String("key", string(key)),
			zap.Error(err),
		)
		return RemoteHandle{}, false
	}

	return *handle, true
}

// sortedDepKinds returns the dependency kinds in processing order so runs
// are deterministic regardless of map iteration.
func sortedDepKinds(deps map[Kind]NaturalKey) []Kind {
	kinds := make([]Kind, 0, len(deps))
	for kind := range deps {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		ri, _ := kindRank(kinds[i])
		rj, _ := kindRank(kinds[j])
		return ri < rj
	})
	return kinds
}
