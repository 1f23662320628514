package inventory

// Inventory is the desired-state document: the sites, VLANs, prefixes and
// devices the network should contain. It is usually loaded from an
// inventory.json file maintained next to the network's documentation.
type Inventory struct {
	// DefaultSite names the site devices and VLANs belong to when they do
	// not name one themselves. Falls back to the first declared site.
	DefaultSite string `json:"default_site"`

	Sites       []Site     `json:"sites"`
	DeviceRoles []Role     `json:"device_roles"`
	VLANs       []VLAN     `json:"vlans"`
	IPPrefixes  []IPPrefix `json:"ip_prefixes"`
	Devices     []Device   `json:"devices"`
}

// Site declares a site to create or reuse.
type Site struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Role declares a device role. Roles referenced by devices but not declared
// here are expected to pre-exist in NetBox.
type Role struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// VLAN declares a VLAN by its 802.1Q id.
type VLAN struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Site string `json:"site"`
}

// IPPrefix declares an IP prefix, optionally bound to a VLAN by id.
type IPPrefix struct {
	Prefix      string `json:"prefix"`
	VLAN        int    `json:"vlan"`
	Description string `json:"description"`
}

// Device declares a device together with its primary interface and address.
type Device struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Role         string `json:"role"`
	IP           string `json:"ip"`
	MAC          string `json:"mac"`
	Site         string `json:"site"`
	// Interface is the interface name the MAC and IP attach to;
	// defaults to eth0.
	Interface string `json:"interface"`
}
