package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeDefaults(t *testing.T) {
	t.Run("Role Color", func(t *testing.T) {
		body, err := DeviceRoleAttrs{Name: "Switch"}.CreateBody(nil)
		require.NoError(t, err)
		assert.Equal(t, "0000ff", body.(deviceRolePayload).Color)
	})

	t.Run("Interface Type And MAC Casing", func(t *testing.T) {
		deps := map[Kind]RemoteHandle{KindDevice: {Kind: KindDevice, ID: 3}}
		body, err := InterfaceAttrs{Name: "eth0", MAC: "dc:2c:6e:0f:12:34"}.CreateBody(deps)
		require.NoError(t, err)

		payload := body.(interfacePayload)
		assert.Equal(t, "other", payload.Type)
		assert.Equal(t, "DC:2C:6E:0F:12:34", payload.MACAddress)
		assert.Equal(t, 3, payload.Device)
	})

	t.Run("Bare Address Gets Mask", func(t *testing.T) {
		attrs := IPAddressAttrs{Address: "192.168.10.5"}
		assert.Equal(t, "192.168.10.5/24", attrs.FilterQuery(nil).Get("address"))

		explicit := IPAddressAttrs{Address: "10.0.0.1/31"}
		assert.Equal(t, "10.0.0.1/31", explicit.FilterQuery(nil).Get("address"))
	})

	t.Run("VLAN Site Is Optional", func(t *testing.T) {
		body, err := VLANAttrs{VID: 10, Name: "Management"}.CreateBody(nil)
		require.NoError(t, err)
		assert.Zero(t, body.(vlanPayload).Site)

		deps := map[Kind]RemoteHandle{KindSite: {Kind: KindSite, ID: 8}}
		body, err = VLANAttrs{VID: 10, Name: "Management"}.CreateBody(deps)
		require.NoError(t, err)
		assert.Equal(t, 8, body.(vlanPayload).Site)
	})

	t.Run("Device Type Slug Spans Manufacturer", func(t *testing.T) {
		deps := map[Kind]RemoteHandle{KindManufacturer: {Kind: KindManufacturer, ID: 2}}
		body, err := DeviceTypeAttrs{Manufacturer: "MikroTik", Model: "CRS309"}.CreateBody(deps)
		require.NoError(t, err)
		assert.Equal(t, "mikrotik-crs309", body.(deviceTypePayload).Slug)
	})
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Status: StatusCreated},
		{Status: StatusReused},
		{Status: StatusReused},
		{Status: StatusFailed, Reason: "create failed: duplicate"},
		{Status: StatusFailed, Reason: missingPrereq(KindSite)},
	}

	s := Summarize(results)
	assert.Equal(t, 1, s.Created)
	assert.Equal(t, 2, s.Reused)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 1, s.MissingPrereq)
}
