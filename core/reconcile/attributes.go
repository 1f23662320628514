package reconcile

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"netbox-sync/core/slug"
)

// The payload structs below mirror the NetBox creation schemas field by
// field. Dependency handles are merged in as foreign-key ids.

// SiteAttrs describes a site. Natural key: the site slug.
type SiteAttrs struct {
	Name        string
	Description string
}

type sitePayload struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

func (a SiteAttrs) Validate() error {
	if a.Name == "" {
		return errors.New("site name is required")
	}
	return nil
}

func (a SiteAttrs) FilterQuery(map[Kind]RemoteHandle) url.Values {
	return url.Values{"slug": []string{slug.Make(a.Name)}}
}

func (a SiteAttrs) CreateBody(map[Kind]RemoteHandle) (any, error) {
	return sitePayload{
		Name:        a.Name,
		Slug:        slug.Make(a.Name),
		Status:      "active",
		Description: a.Description,
	}, nil
}

// ManufacturerAttrs describes a manufacturer. Natural key: the name.
type ManufacturerAttrs struct {
	Name string
}

type manufacturerPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (a ManufacturerAttrs) Validate() error {
	if a.Name == "" {
		return errors.New("manufacturer name is required")
	}
	return nil
}

func (a ManufacturerAttrs) FilterQuery(map[Kind]RemoteHandle) url.Values {
	return url.Values{"name": []string{a.Name}}
}

func (a ManufacturerAttrs) CreateBody(map[Kind]RemoteHandle) (any, error) {
	return manufacturerPayload{Name: a.Name, Slug: slug.Make(a.Name)}, nil
}

// DeviceTypeAttrs describes a device type. Natural key: manufacturer+model,
// so the lookup filter needs the resolved manufacturer id.
type DeviceTypeAttrs struct {
	Manufacturer string
	Model        string
}

type deviceTypePayload struct {
	Manufacturer int    `json:"manufacturer"`
	Model        string `json:"model"`
	Slug         string `json:"slug"`
}

func (a DeviceTypeAttrs) Validate() error {
	if a.Manufacturer == "" || a.Model == "" {
		return errors.New("device type requires manufacturer and model")
	}
	return nil
}

func (a DeviceTypeAttrs) FilterQuery(deps map[Kind]RemoteHandle) url.Values {
	q := url.Values{"model": []string{a.Model}}
	if h, ok := deps[KindManufacturer]; ok {
		q.Set("manufacturer_id", strconv.Itoa(h.ID))
	}
	return q
}

func (a DeviceTypeAttrs) CreateBody(deps map[Kind]RemoteHandle) (any, error) {
	mfr, ok := deps[KindManufacturer]
	if !ok {
		return nil, fmt.Errorf("device type %q is missing its manufacturer handle", a.Model)
	}
	return deviceTypePayload{
		Manufacturer: mfr.ID,
		Model:        a.Model,
		Slug:         slug.Make(a.Manufacturer + " " + a.Model),
	}, nil
}

// DeviceRoleAttrs describes a device role. Natural key: the name.
type DeviceRoleAttrs struct {
	Name  string
	Color string
}

type deviceRolePayload struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

func (a DeviceRoleAttrs) Validate() error {
	if a.Name == "" {
		return errors.New("device role name is required")
	}
	return nil
}

func (a DeviceRoleAttrs) FilterQuery(map[Kind]RemoteHandle) url.Values {
	return url.Values{"name": []string{a.Name}}
}

func (a DeviceRoleAttrs) CreateBody(map[Kind]RemoteHandle) (any, error) {
	color := a.Color
	if color == "" {
		color = "0000ff"
	}
	return deviceRolePayload{Name: a.Name, Slug: slug.Make(a.Name), Color: color}, nil
}

// DeviceAttrs describes a device. Natural key: name within a site.
type DeviceAttrs struct {
	Name string
}

type devicePayload struct {
	Name       string `json:"name"`
	DeviceType int    `json:"device_type"`
	Role       int    `json:"role"`
	Site       int    `json:"site"`
	Status     string `json:"status"`
}

func (a DeviceAttrs) Validate() error {
	if a.Name == "" {
		return errors.New("device name is required")
	}
	return nil
}

func (a DeviceAttrs) FilterQuery(deps map[Kind]RemoteHandle) url.Values {
	q := url.Values{"name": []string{a.Name}}
	if h, ok := deps[KindSite]; ok {
		q.Set("site_id", strconv.Itoa(h.ID))
	}
	return q
}

func (a DeviceAttrs) CreateBody(deps map[Kind]RemoteHandle) (any, error) {
	dt, ok := deps[KindDeviceType]
	if !ok {
		return nil, fmt.Errorf("device %q is missing its device type handle", a.Name)
	}
	role, ok := deps[KindDeviceRole]
	if !ok {
		return nil, fmt.Errorf("device %q is missing its role handle", a.Name)
	}
	site, ok := deps[KindSite]
	if !ok {
		return nil, fmt.Errorf("device %q is missing its site handle", a.Name)
	}
	return devicePayload{
		Name:       a.Name,
		DeviceType: dt.ID,
		Role:       role.ID,
		Site:       site.ID,
		Status:     "active",
	}, nil
}

// InterfaceAttrs describes a device interface. Natural key: device+name.
type InterfaceAttrs struct {
	Name string
	MAC  string
	// Type is the NetBox interface type; defaults to "other".
	Type string
}

type interfacePayload struct {
	Device     int    `json:"device"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	MACAddress string `json:"mac_address,omitempty"`
}

func (a InterfaceAttrs) Validate() error {
	if a.Name == "" {
		return errors.New("interface name is required")
	}
	return nil
}

func (a InterfaceAttrs) FilterQuery(deps map[Kind]RemoteHandle) url.Values {
	q := url.Values{"name": []string{a.Name}}
	if h, ok := deps[KindDevice]; ok {
		q.Set("device_id", strconv.Itoa(h.ID))
	}
	return q
}

func (a InterfaceAttrs) CreateBody(deps map[Kind]RemoteHandle) (any, error) {
	dev, ok := deps[KindDevice]
	if !ok {
		return nil, fmt.Errorf("interface %q is missing its device handle", a.Name)
	}
	ifType := a.Type
	if ifType == "" {
		ifType = "other"
	}
	return interfacePayload{
		Device:     dev.ID,
		Name:       a.Name,
		Type:       ifType,
		MACAddress: strings.ToUpper(a.MAC),
	}, nil
}

// IPAddressAttrs describes an IP address assigned to an interface.
// Natural key: the address in CIDR form.
type IPAddressAttrs struct {
	// Address is the IP address; a bare address is given a /24 mask, the
	// flat-network default of the source inventory.
	Address string
}

type ipAddressPayload struct {
	Address            string `json:"address"`
	AssignedObjectType string `json:"assigned_object_type"`
	AssignedObjectID   int    `json:"assigned_object_id"`
	Status             string `json:"status"`
}

func (a IPAddressAttrs) Validate() error {
	if a.Address == "" {
		return errors.New("ip address is required")
	}
	return nil
}

// cidr returns the address with an explicit prefix length.
func (a IPAddressAttrs) cidr() string {
	if strings.Contains(a.Address, "/") {
		return a.Address
	}
	return a.Address + "/24"
}

func (a IPAddressAttrs) FilterQuery(map[Kind]RemoteHandle) url.Values {
	return url.Values{"address": []string{a.cidr()}}
}

func (a IPAddressAttrs) CreateBody(deps map[Kind]RemoteHandle) (any, error) {
	iface, ok := deps[KindInterface]
	if !ok {
		return nil, fmt.Errorf("ip address %q is missing its interface handle", a.Address)
	}
	return ipAddressPayload{
		Address:            a.cidr(),
		AssignedObjectType: "dcim.interface",
		AssignedObjectID:   iface.ID,
		Status:             "active",
	}, nil
}

// VLANAttrs describes a VLAN. Natural key: the vlan id.
type VLANAttrs struct {
	VID  int
	Name string
}

type vlanPayload struct {
	VID    int    `json:"vid"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Site   int    `json:"site,omitempty"`
}

func (a VLANAttrs) Validate() error {
	if a.VID <= 0 {
		return errors.New("vlan id must be positive")
	}
	if a.Name == "" {
		return errors.New("vlan name is required")
	}
	return nil
}

func (a VLANAttrs) FilterQuery(map[Kind]RemoteHandle) url.Values {
	return url.Values{"vid": []string{strconv.Itoa(a.VID)}}
}

func (a VLANAttrs) CreateBody(deps map[Kind]RemoteHandle) (any, error) {
	payload := vlanPayload{VID: a.VID, Name: a.Name, Status: "active"}
	if h, ok := deps[KindSite]; ok {
		payload.Site = h.ID
	}
	return payload, nil
}

// PrefixAttrs describes an IP prefix. Natural key: the prefix itself.
type PrefixAttrs struct {
	Prefix      string
	Description string
}

type prefixPayload struct {
	Prefix      string `json:"prefix"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	VLAN        int    `json:"vlan,omitempty"`
}

func (a PrefixAttrs) Validate() error {
	if a.Prefix == "" {
		return errors.New("prefix is required")
	}
	return nil
}

func (a PrefixAttrs) FilterQuery(map[Kind]RemoteHandle) url.Values {
	return url.Values{"prefix": []string{a.Prefix}}
}

func (a PrefixAttrs) CreateBody(deps map[Kind]RemoteHandle) (any, error) {
	payload := prefixPayload{Prefix: a.Prefix, Status: "active", Description: a.Description}
	if h, ok := deps[KindVLAN]; ok {
		payload.VLAN = h.ID
	}
	return payload, nil
}
