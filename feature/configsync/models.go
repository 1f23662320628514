package configsync

import (
	"encoding/json"
	"fmt"
	"os"
)

// Device is one managed network device.
type Device struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Type is the device platform; only "mikrotik" is supported.
	Type string `json:"type"`
	// Port is the management API port; defaults to 8728.
	Port int `json:"port"`
}

// LoadDevices reads the managed device inventory from a JSON file.
func LoadDevices(path string) ([]Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read devices file: %w", err)
	}

	var devices []Device
	if err := json.Unmarshal(data, &devices); err != nil {
		return nil, fmt.Errorf("failed to parse devices file %s: %w", path, err)
	}

	return devices, nil
}

// DeviceConfig is the structured configuration pulled from a device.
type DeviceConfig struct {
	Identity       string         `json:"identity"`
	Interfaces     []Interface    `json:"interfaces"`
	VLANs          []VLAN         `json:"vlans"`
	BridgePorts    []BridgePort   `json:"bridge_ports"`
	IPAddresses    []IPAddress    `json:"ip_addresses"`
	FirewallFilter []FirewallRule `json:"firewall_filter"`
	SNMP           []SNMPSettings `json:"snmp"`
}

// Interface is one physical or virtual interface.
type Interface struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	MAC      string `json:"mac"`
	MTU      string `json:"mtu"`
	Running  bool   `json:"running"`
	Disabled bool   `json:"disabled"`
}

// VLAN is one VLAN interface.
type VLAN struct {
	Name      string `json:"name"`
	VLANID    string `json:"vlan_id"`
	Interface string `json:"interface"`
	Disabled  bool   `json:"disabled"`
}

// BridgePort is one bridge port membership.
type BridgePort struct {
	Interface  string `json:"interface"`
	Bridge     string `json:"bridge"`
	PVID       string `json:"pvid"`
	FrameTypes string `json:"frame_types"`
}

// IPAddress is one address assignment.
type IPAddress struct {
	Address   string `json:"address"`
	Interface string `json:"interface"`
	Network   string `json:"network"`
	Disabled  bool   `json:"disabled"`
}

// FirewallRule is one firewall filter rule.
type FirewallRule struct {
	Chain      string `json:"chain"`
	Action     string `json:"action"`
	SrcAddress string `json:"src_address"`
	DstAddress string `json:"dst_address"`
	Protocol   string `json:"protocol"`
	DstPort    string `json:"dst_port"`
	Comment    string `json:"comment"`
	Disabled   bool   `json:"disabled"`
}

// SNMPSettings is the SNMP service configuration.
type SNMPSettings struct {
	Enabled  bool   `json:"enabled"`
	Contact  string `json:"contact"`
	Location string `json:"location"`
}
