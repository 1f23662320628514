package reconcile

import (
	"net/url"
	"strconv"

	"netbox-sync/core/slug"
)

// kindOrder is the fixed topological processing order. A kind never appears
// before every kind it can depend on.
var kindOrder = []Kind{
	KindSite,
	KindManufacturer,
	KindDeviceRole,
	KindDeviceType,
	KindVLAN,
	KindPrefix,
	KindDevice,
	KindInterface,
	KindIPAddress,
}

// kindSpec describes the remote surface of one resource kind.
type kindSpec struct {
	// path is the API path relative to /api/, with trailing slash.
	path string

	// requires lists the dependency kinds that must resolve before this
	// kind can be created.
	requires []Kind

	// keyFilter derives a lookup query from a bare natural key, for kinds
	// that can be resolved without being declared in the run (a
	// pre-existing site or role referenced by a device). Nil when the
	// natural key spans fields that cannot be recovered from the key
	// string alone.
	keyFilter func(key NaturalKey) (url.Values, bool)
}

var kindSpecs = map[Kind]kindSpec{
	KindSite: {
		path: "dcim/sites/",
		// Sites are matched on their slug; NetBox derives it from the
		// name, so a site declared by display name resolves the same way.
		keyFilter: func(key NaturalKey) (url.Values, bool) {
			return url.Values{"slug": []string{slug.Make(string(key))}}, true
		},
	},
	KindManufacturer: {
		path: "dcim/manufacturers/",
		keyFilter: func(key NaturalKey) (url.Values, bool) {
			return url.Values{"name": []string{string(key)}}, true
		},
	},
	KindDeviceRole: {
		path: "dcim/device-roles/",
		keyFilter: func(key NaturalKey) (url.Values, bool) {
			return url.Values{"name": []string{string(key)}}, true
		},
	},
	KindDeviceType: {
		path:     "dcim/device-types/",
		requires: []Kind{KindManufacturer},
		// The natural key is manufacturer+model; it cannot be resolved
		// from the key string alone, so device types must be declared.
	},
	KindDevice: {
		path:     "dcim/devices/",
		requires: []Kind{KindDeviceType, KindDeviceRole, KindSite},
	},
	KindInterface: {
		path:     "dcim/interfaces/",
		requires: []Kind{KindDevice},
	},
	KindIPAddress: {
		path:     "ipam/ip-addresses/",
		requires: []Kind{KindInterface},
	},
	KindVLAN: {
		path: "ipam/vlans/",
		keyFilter: func(key NaturalKey) (url.Values, bool) {
			if _, err := strconv.Atoi(string(key)); err != nil {
				return nil, false
			}
			return url.Values{"vid": []string{string(key)}}, true
		},
	},
	KindPrefix: {
		path: "ipam/prefixes/",
	},
}

// kindRank returns the processing rank of a kind, or false for an unknown kind.
func kindRank(kind Kind) (int, bool) {
	for i, k := range kindOrder {
		if k == kind {
			return i, true
		}
	}
	return 0, false
}
