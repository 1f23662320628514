package reconcile

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"netbox-sync/core/netbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fullInventory returns one device with its complete prerequisite chain, in
// deliberately scrambled input order.
func fullInventory() []DesiredResource {
	return []DesiredResource{
		{
			Kind:  KindIPAddress,
			Key:   "192.168.88.1/24",
			Attrs: IPAddressAttrs{Address: "192.168.88.1"},
			Deps:  map[Kind]NaturalKey{KindInterface: "core-switch/eth0"},
		},
		{
			Kind:  KindInterface,
			Key:   "core-switch/eth0",
			Attrs: InterfaceAttrs{Name: "eth0", MAC: "dc:2c:6e:0f:12:34"},
			Deps:  map[Kind]NaturalKey{KindDevice: "core-switch"},
		},
		{
			Kind:  KindDevice,
			Key:   "core-switch",
			Attrs: DeviceAttrs{Name: "core-switch"},
			Deps: map[Kind]NaturalKey{
				KindDeviceType: "MikroTik/CRS309",
				KindDeviceRole: "Switch",
				KindSite:       "Main Office",
			},
		},
		{
			Kind:  KindDeviceType,
			Key:   "MikroTik/CRS309",
			Attrs: DeviceTypeAttrs{Manufacturer: "MikroTik", Model: "CRS309"},
			Deps:  map[Kind]NaturalKey{KindManufacturer: "MikroTik"},
		},
		{Kind: KindDeviceRole, Key: "Switch", Attrs: DeviceRoleAttrs{Name: "Switch"}},
		{Kind: KindManufacturer, Key: "MikroTik", Attrs: ManufacturerAttrs{Name: "MikroTik"}},
		{Kind: KindSite, Key: "Main Office", Attrs: SiteAttrs{Name: "Main Office"}},
	}
}

func TestDriver_CreatesFullChain(t *testing.T) {
	api := newFakeAPI()
	driver := NewDriver(api, zap.NewNop())

	resources := fullInventory()
	results := driver.Run(context.Background(), resources)
	require.Len(t, results, len(resources))

	// Results stay in input order even though processing is reordered.
	for i, r := range results {
		assert.Equal(t, resources[i].Kind, r.Kind, "result %d kind", i)
		assert.Equal(t, resources[i].Key, r.Key, "result %d key", i)
		assert.Equal(t, StatusCreated, r.Status, "result %d status (%s)", i, r.Reason)
		assert.NotZero(t, r.Handle.ID, "result %d handle", i)
	}

	// Creation calls honor the dependency order.
	assert.Equal(t, []string{
		"dcim/sites/",
		"dcim/manufacturers/",
		"dcim/device-roles/",
		"dcim/device-types/",
		"dcim/devices/",
		"dcim/interfaces/",
		"ipam/ip-addresses/",
	}, api.creates)

	// Foreign keys point at the handles created earlier in the run.
	device := api.payloads[4].(devicePayload)
	assert.NotZero(t, device.DeviceType)
	assert.NotZero(t, device.Role)
	assert.NotZero(t, device.Site)

	summary := Summarize(results)
	assert.Equal(t, len(resources), summary.Created)
	assert.Zero(t, summary.Failed)
}

func TestDriver_SecondRunReusesEverything(t *testing.T) {
	api := newFakeAPI()

	api.stub("dcim/sites/", url.Values{"slug": {"main-office"}}, netbox.Object{ID: 10})
	api.stub("dcim/manufacturers/", url.Values{"name": {"MikroTik"}}, netbox.Object{ID: 11})
	api.stub("dcim/device-roles/", url.Values{"name": {"Switch"}}, netbox.Object{ID: 12})
	api.stub("dcim/device-types/", url.Values{"model": {"CRS309"}, "manufacturer_id": {"11"}}, netbox.Object{ID: 13})
	api.stub("dcim/devices/", url.Values{"name": {"core-switch"}, "site_id": {"10"}}, netbox.Object{ID: 14})
	api.stub("dcim/interfaces/", url.Values{"name": {"eth0"}, "device_id": {"14"}}, netbox.Object{ID: 15})
	api.stub("ipam/ip-addresses/", url.Values{"address": {"192.168.88.1/24"}}, netbox.Object{ID: 16})

	driver := NewDriver(api, zap.NewNop())
	results := driver.Run(context.Background(), fullInventory())

	for i, r := range results {
		assert.Equal(t, StatusReused, r.Status, "result %d (%s: %s)", i, r.Key, r.Reason)
	}
	assert.Empty(t, api.creates, "an idempotent rerun must not create anything")
}

func TestDriver_PartialFailureIsolation(t *testing.T) {
	api := newFakeAPI()
	api.failCreate = func(path string, payload any) error {
		if p, ok := payload.(devicePayload); ok && p.Name == "bad-device" {
			return errors.New("simulated rejection")
		}
		return nil
	}

	resources := fullInventory()
	resources = append(resources,
		DesiredResource{
			Kind:  KindDevice,
			Key:   "bad-device",
			Attrs: DeviceAttrs{Name: "bad-device"},
			Deps: map[Kind]NaturalKey{
				KindDeviceType: "MikroTik/CRS309",
				KindDeviceRole: "Switch",
				KindSite:       "Main Office",
			},
		},
		DesiredResource{
			Kind:  KindInterface,
			Key:   "bad-device/eth0",
			Attrs: InterfaceAttrs{Name: "eth0"},
			Deps:  map[Kind]NaturalKey{KindDevice: "bad-device"},
		},
		DesiredResource{
			Kind:  KindIPAddress,
			Key:   "192.168.88.2/24",
			Attrs: IPAddressAttrs{Address: "192.168.88.2"},
			Deps:  map[Kind]NaturalKey{KindInterface: "bad-device/eth0"},
		},
	)

	driver := NewDriver(api, zap.NewNop())
	results := driver.Run(context.Background(), resources)

	byKey := make(map[NaturalKey]Result)
	for _, r := range results {
		byKey[r.Key] = r
	}

	assert.Equal(t, StatusFailed, byKey["bad-device"].Status)
	assert.Contains(t, byKey["bad-device"].Reason, "create failed")

	assert.Equal(t, StatusFailed, byKey["bad-device/eth0"].Status)
	assert.Equal(t, "missing prerequisite: device", byKey["bad-device/eth0"].Reason)
	assert.True(t, byKey["bad-device/eth0"].MissingPrerequisite())

	assert.Equal(t, StatusFailed, byKey["192.168.88.2/24"].Status)
	assert.Equal(t, "missing prerequisite: interface", byKey["192.168.88.2/24"].Reason)

	// The healthy chain is unaffected.
	assert.Equal(t, StatusCreated, byKey["core-switch"].Status)
	assert.Equal(t, StatusCreated, byKey["core-switch/eth0"].Status)
	assert.Equal(t, StatusCreated, byKey["192.168.88.1/24"].Status)
}

func TestDriver_UndeclaredSiteResolvedRemotely(t *testing.T) {
	api := newFakeAPI()
	api.stub("dcim/sites/", url.Values{"slug": {"legacy-lab"}}, netbox.Object{ID: 77})

	resources := []DesiredResource{
		{Kind: KindManufacturer, Key: "MikroTik", Attrs: ManufacturerAttrs{Name: "MikroTik"}},
		{Kind: KindDeviceRole, Key: "Switch", Attrs: DeviceRoleAttrs{Name: "Switch"}},
		{
			Kind:  KindDeviceType,
			Key:   "MikroTik/CRS309",
			Attrs: DeviceTypeAttrs{Manufacturer: "MikroTik", Model: "CRS309"},
			Deps:  map[Kind]NaturalKey{KindManufacturer: "MikroTik"},
		},
		{
			Kind:  KindDevice,
			Key:   "lab-switch",
			Attrs: DeviceAttrs{Name: "lab-switch"},
			Deps: map[Kind]NaturalKey{
				KindDeviceType: "MikroTik/CRS309",
				KindDeviceRole: "Switch",
				KindSite:       "Legacy Lab",
			},
		},
	}

	driver := NewDriver(api, zap.NewNop())
	results := driver.Run(context.Background(), resources)

	require.Equal(t, StatusCreated, results[3].Status, results[3].Reason)
	device := api.payloads[len(api.payloads)-1].(devicePayload)
	assert.Equal(t, 77, device.Site)
}

func TestDriver_MissingUndeclaredPrerequisite(t *testing.T) {
	api := newFakeAPI()

	deps := func() map[Kind]NaturalKey {
		return map[Kind]NaturalKey{
			KindDeviceType: "MikroTik/CRS309",
			KindDeviceRole: "Switch",
			KindSite:       "Ghost Site",
		}
	}

	resources := []DesiredResource{
		{Kind: KindManufacturer, Key: "MikroTik", Attrs: ManufacturerAttrs{Name: "MikroTik"}},
		{Kind: KindDeviceRole, Key: "Switch", Attrs: DeviceRoleAttrs{Name: "Switch"}},
		{
			Kind:  KindDeviceType,
			Key:   "MikroTik/CRS309",
			Attrs: DeviceTypeAttrs{Manufacturer: "MikroTik", Model: "CRS309"},
			Deps:  map[Kind]NaturalKey{KindManufacturer: "MikroTik"},
		},
		{Kind: KindDevice, Key: "switch-a", Attrs: DeviceAttrs{Name: "switch-a"}, Deps: deps()},
		{Kind: KindDevice, Key: "switch-b", Attrs: DeviceAttrs{Name: "switch-b"}, Deps: deps()},
	}

	driver := NewDriver(api, zap.NewNop())
	results := driver.Run(context.Background(), resources)

	assert.Equal(t, StatusFailed, results[3].Status)
	assert.Equal(t, "missing prerequisite: site", results[3].Reason)
	assert.Equal(t, StatusFailed, results[4].Status)
	assert.Equal(t, "missing prerequisite: site", results[4].Reason)

	// The failed lookup is cached; the second device must not re-query.
	assert.Equal(t, 1, api.countLists("dcim/sites/", url.Values{"slug": {"ghost-site"}}))

	summary := Summarize(results)
	assert.Equal(t, 2, summary.MissingPrereq)
}

func TestDriver_DeviceTypeMustBeDeclared(t *testing.T) {
	api := newFakeAPI()
	api.stub("dcim/sites/", url.Values{"slug": {"main-office"}}, netbox.Object{ID: 10})
	api.stub("dcim/device-roles/", url.Values{"name": {"Switch"}}, netbox.Object{ID: 12})

	resources := []DesiredResource{
		{
			Kind:  KindDevice,
			Key:   "core-switch",
			Attrs: DeviceAttrs{Name: "core-switch"},
			Deps: map[Kind]NaturalKey{
				KindDeviceType: "MikroTik/CRS309",
				KindDeviceRole: "Switch",
				KindSite:       "Main Office",
			},
		},
	}

	driver := NewDriver(api, zap.NewNop())
	results := driver.Run(context.Background(), resources)

	// Device types carry a compound natural key and cannot be resolved
	// from the key string, so an undeclared one is a missing prerequisite.
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.Equal(t, "missing prerequisite: device_type", results[0].Reason)
}

func TestDriver_DuplicateNaturalKey(t *testing.T) {
	api := newFakeAPI()
	driver := NewDriver(api, zap.NewNop())

	results := driver.Run(context.Background(), []DesiredResource{
		{Kind: KindSite, Key: "Main Office", Attrs: SiteAttrs{Name: "Main Office"}},
		{Kind: KindSite, Key: "Main Office", Attrs: SiteAttrs{Name: "Main Office"}},
	})

	assert.Equal(t, StatusCreated, results[0].Status)
	assert.Equal(t, StatusFailed, results[1].Status)
	assert.Equal(t, "duplicate natural key within run", results[1].Reason)
	assert.Len(t, api.creates, 1)
}

func TestDriver_UnknownKind(t *testing.T) {
	api := newFakeAPI()
	driver := NewDriver(api, zap.NewNop())

	results := driver.Run(context.Background(), []DesiredResource{
		{Kind: Kind("rack"), Key: "rack-1"},
	})

	require.Len(t, results, 1)
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.Equal(t, "unknown resource kind", results[0].Reason)
}
