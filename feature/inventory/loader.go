package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"netbox-sync/core/reconcile"
)

// Load reads and parses an inventory document from a JSON file.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	var inv Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse inventory file %s: %w", path, err)
	}

	return &inv, nil
}

// defaultSite resolves the site name used when an entry names none.
func (inv *Inventory) defaultSite() string {
	if inv.DefaultSite != "" {
		return inv.DefaultSite
	}
	if len(inv.Sites) > 0 {
		return inv.Sites[0].Name
	}
	return ""
}

// DesiredResources expands the inventory into the flat, ordered resource
// sequence the reconciliation engine consumes. Manufacturers and device
// types are derived from the device list and de-duplicated; each device
// expands into the device itself, one interface and one IP address.
func (inv *Inventory) DesiredResources() []reconcile.DesiredResource {
	var resources []reconcile.DesiredResource

	for _, site := range inv.Sites {
		resources = append(resources, reconcile.DesiredResource{
			Kind:  reconcile.KindSite,
			Key:   reconcile.NaturalKey(site.Name),
			Attrs: reconcile.SiteAttrs{Name: site.Name, Description: site.Description},
		})
	}

	for _, role := range inv.DeviceRoles {
		resources = append(resources, reconcile.DesiredResource{
			Kind:  reconcile.KindDeviceRole,
			Key:   reconcile.NaturalKey(role.Name),
			Attrs: reconcile.DeviceRoleAttrs{Name: role.Name, Color: role.Color},
		})
	}

	// Manufacturers are implied by the devices that reference them.
	seenManufacturers := make(map[string]bool)
	for _, dev := range inv.Devices {
		if dev.Manufacturer == "" || seenManufacturers[dev.Manufacturer] {
			continue
		}
		seenManufacturers[dev.Manufacturer] = true
		resources = append(resources, reconcile.DesiredResource{
			Kind:  reconcile.KindManufacturer,
			Key:   reconcile.NaturalKey(dev.Manufacturer),
			Attrs: reconcile.ManufacturerAttrs{Name: dev.Manufacturer},
		})
	}

	for _, vlan := range inv.VLANs {
		deps := map[reconcile.Kind]reconcile.NaturalKey{}
		if site := firstNonEmpty(vlan.Site, inv.defaultSite()); site != "" {
			deps[reconcile.KindSite] = reconcile.NaturalKey(site)
		}
		resources = append(resources, reconcile.DesiredResource{
			Kind:  reconcile.KindVLAN,
			Key:   reconcile.NaturalKey(strconv.Itoa(vlan.ID)),
			Attrs: reconcile.VLANAttrs{VID: vlan.ID, Name: vlan.Name},
			Deps:  deps,
		})
	}

	for _, prefix := range inv.IPPrefixes {
		deps := map[reconcile.Kind]reconcile.NaturalKey{}
		if prefix.VLAN != 0 {
			deps[reconcile.KindVLAN] = reconcile.NaturalKey(strconv.Itoa(prefix.VLAN))
		}
		resources = append(resources, reconcile.DesiredResource{
			Kind:  reconcile.KindPrefix,
			Key:   reconcile.NaturalKey(prefix.Prefix),
			Attrs: reconcile.PrefixAttrs{Prefix: prefix.Prefix, Description: prefix.Description},
			Deps:  deps,
		})
	}

	// Device types, also implied by the device list.
	seenTypes := make(map[string]bool)
	for _, dev := range inv.Devices {
		if dev.Manufacturer == "" || dev.Model == "" {
			continue
		}
		key := deviceTypeKey(dev.Manufacturer, dev.Model)
		if seenTypes[key] {
			continue
		}
		seenTypes[key] = true
		resources = append(resources, reconcile.DesiredResource{
			Kind:  reconcile.KindDeviceType,
			Key:   reconcile.NaturalKey(key),
			Attrs: reconcile.DeviceTypeAttrs{Manufacturer: dev.Manufacturer, Model: dev.Model},
			Deps: map[reconcile.Kind]reconcile.NaturalKey{
				reconcile.KindManufacturer: reconcile.NaturalKey(dev.Manufacturer),
			},
		})
	}

	for _, dev := range inv.Devices {
		site := firstNonEmpty(dev.Site, inv.defaultSite())
		ifName := firstNonEmpty(dev.Interface, "eth0")
		ifKey := dev.Name + "/" + ifName

		resources = append(resources, reconcile.DesiredResource{
			Kind:  reconcile.KindDevice,
			Key:   reconcile.NaturalKey(dev.Name),
			Attrs: reconcile.DeviceAttrs{Name: dev.Name},
			Deps: map[reconcile.Kind]reconcile.NaturalKey{
				reconcile.KindDeviceType: reconcile.NaturalKey(deviceTypeKey(dev.Manufacturer, dev.Model)),
				reconcile.KindDeviceRole: reconcile.NaturalKey(dev.Role),
				reconcile.KindSite:       reconcile.NaturalKey(site),
			},
		})

		resources = append(resources, reconcile.DesiredResource{
			Kind:  reconcile.KindInterface,
			Key:   reconcile.NaturalKey(ifKey),
			Attrs: reconcile.InterfaceAttrs{Name: ifName, MAC: dev.MAC},
			Deps: map[reconcile.Kind]reconcile.NaturalKey{
				reconcile.KindDevice: reconcile.NaturalKey(dev.Name),
			},
		})

		if dev.IP != "" {
			resources = append(resources, reconcile.DesiredResource{
				Kind:  reconcile.KindIPAddress,
				Key:   reconcile.NaturalKey(cidr(dev.IP)),
				Attrs: reconcile.IPAddressAttrs{Address: dev.IP},
				Deps: map[reconcile.Kind]reconcile.NaturalKey{
					reconcile.KindInterface: reconcile.NaturalKey(ifKey),
				},
			})
		}
	}

	return resources
}

// deviceTypeKey builds the compound natural key of a device type.
func deviceTypeKey(manufacturer, model string) string {
	return manufacturer + "/" + model
}

// cidr mirrors the engine's default mask so the declared key matches the
// address the payload will carry.
func cidr(ip string) string {
	if strings.Contains(ip, "/") {
		return ip
	}
	return ip + "/24"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
