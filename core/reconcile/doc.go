// Package reconcile implements the idempotent, dependency-ordered engine
// that makes a NetBox instance contain a locally declared inventory.
//
// Given an ordered sequence of DesiredResource records, the Driver ensures
// each one exists remotely exactly once: an existing resource matching the
// natural key is reused, a missing one is created, and a resource that can
// neither be found nor created is reported as failed without stopping the
// rest of the run. Existing resources are never updated or deleted, so
// re-running the same inventory is safe and produces only "reused" outcomes.
//
// # Dependency Handling
//
// Kinds are processed in a fixed topological order (sites and manufacturers
// before device types, device types and roles and sites before devices,
// devices before interfaces, interfaces before IP addresses). Handles
// resolved during a run are cached per (kind, natural key) so a shared
// dependency is looked up only once. A dependency that is referenced but not
// declared in the run (typically a pre-existing site or device role) is
// resolved with a single lookup-only query and never created; if it is
// absent, everything that transitively depends on it fails with a
// "missing prerequisite" reason and no creation call is issued for it.
//
// # Failure Semantics
//
// Transport errors, remote rejections and unresolved prerequisites are all
// captured at the Upserter/Resolver boundary and turned into per-resource
// failed Results. Nothing escapes Run as an error under normal operation;
// presentation of the outcomes is the caller's concern.
package reconcile
