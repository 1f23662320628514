package reconcile

import (
	"context"
	"net/url"

	"netbox-sync/core/netbox"
)

// Kind identifies a NetBox resource kind handled by the engine.
type Kind string

const (
	KindSite         Kind = "site"
	KindManufacturer Kind = "manufacturer"
	KindDeviceType   Kind = "device_type"
	KindDeviceRole   Kind = "device_role"
	KindDevice       Kind = "device"
	KindInterface    Kind = "interface"
	KindIPAddress    Kind = "ip_address"
	KindVLAN         Kind = "vlan"
	KindPrefix       Kind = "prefix"
)

// NaturalKey is the canonical string form of the attribute set that
// identifies a resource within its kind (a name, a vlan id, or a
// "manufacturer/model" pair). It must be unique per kind within one run.
type NaturalKey string

// DesiredResource is one declarative record of the target inventory.
type DesiredResource struct {
	// Kind is the resource kind.
	Kind Kind

	// Key is the natural key used for the existence lookup.
	Key NaturalKey

	// Attrs holds the kind-specific attributes set on creation.
	Attrs Attributes

	// Deps references the resources this one depends on, by kind and
	// natural key. A referenced dependency that is not itself declared in
	// the run is resolved with a lookup-only query and never created.
	Deps map[Kind]NaturalKey
}

// RemoteHandle is the identifier NetBox assigned to a created or discovered
// resource. It is never mutated after it is produced.
type RemoteHandle struct {
	Kind Kind
	ID   int
}

// Attributes is the per-kind attribute schema. Each kind provides a concrete
// implementation with explicit payload structs, so a key-name typo fails at
// compile time instead of producing a malformed request.
type Attributes interface {
	// Validate checks that the attributes are complete enough to identify
	// and create the resource.
	Validate() error

	// FilterQuery returns the list-endpoint query matching this resource's
	// natural key. Dependency handles are included where the natural key
	// spans a foreign key (e.g. device type: manufacturer_id + model).
	FilterQuery(deps map[Kind]RemoteHandle) url.Values

	// CreateBody returns the creation payload with dependency handles
	// merged in as the foreign-key fields the NetBox schema requires.
	CreateBody(deps map[Kind]RemoteHandle) (any, error)
}

// API is the slice of the NetBox client the engine depends on.
type API interface {
	List(ctx context.Context, path string, query url.Values) ([]netbox.Object, error)
	Create(ctx context.Context, path string, payload any) (*netbox.Object, error)
}

// Status is the outcome class of a single upsert.
type Status string

const (
	// StatusReused means an existing remote resource matched the natural key.
	StatusReused Status = "reused"
	// StatusCreated means the resource was created during this run.
	StatusCreated Status = "created"
	// StatusFailed means the resource could not be resolved or created.
	StatusFailed Status = "failed"
)

// Result is the per-resource outcome of a run. Exactly one Result is
// produced per DesiredResource, in input order.
type Result struct {
	Kind   Kind
	Key    NaturalKey
	Status Status

	// Handle is set for reused and created resources.
	Handle RemoteHandle

	// Reason explains a failure; empty otherwise.
	Reason string
}

const missingPrereqPrefix = "missing prerequisite: "

// missingPrereq builds the failure reason for an unresolved dependency.
func missingPrereq(kind Kind) string {
	return missingPrereqPrefix + string(kind)
}

// MissingPrerequisite reports whether the result failed because a required
// dependency was never resolved.
func (r Result) MissingPrerequisite() bool {
	return r.Status == StatusFailed && len(r.Reason) > len(missingPrereqPrefix) &&
		r.Reason[:len(missingPrereqPrefix)] == missingPrereqPrefix
}

// Summary aggregates per-resource outcomes for reporting.
type Summary struct {
	Reused  int
	Created int
	Failed  int

	// MissingPrereq counts the subset of failures caused by an unresolved
	// prerequisite. The CLI exits non-zero when this is non-zero.
	MissingPrereq int
}

// Summarize tallies a result sequence.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusReused:
			s.Reused++
		case StatusCreated:
			s.Created++
		case StatusFailed:
			s.Failed++
			if r.MissingPrerequisite() {
				s.MissingPrereq++
			}
		}
	}
	return s
}
