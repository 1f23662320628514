package configsync

import (
	"fmt"
	"time"

	"github.com/go-routeros/routeros/v3"
)

// apiConn abstracts the RouterOS API connection so tests can substitute a
// scripted one.
type apiConn interface {
	Run(sentence ...string) (*routeros.Reply, error)
	Close() error
}

// dialFunc opens a management API connection to a device.
type dialFunc func(d Device, timeout time.Duration) (apiConn, error)

// dialMikrotik connects to a MikroTik device's API port.
func dialMikrotik(d Device, timeout time.Duration) (apiConn, error) {
	port := d.Port
	if port == 0 {
		port = 8728
	}

	address := fmt.Sprintf("%s:%d", d.Host, port)
	client, err := routeros.DialTimeout(address, d.Username, d.Password, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	return client, nil
}

// pullMikrotik retrieves the configuration sections tracked for MikroTik
// devices.
func pullMikrotik(conn apiConn) (*DeviceConfig, error) {
	cfg := &DeviceConfig{}

	identity, err := conn.Run("/system/identity/print")
	if err != nil {
		return nil, fmt.Errorf("failed to read identity: %w", err)
	}
	for _, re := range identity.Re {
		cfg.Identity = re.Map["name"]
	}

	interfaces, err := conn.Run("/interface/print")
	if err != nil {
		return nil, fmt.Errorf("failed to read interfaces: %w", err)
	}
	for _, re := range interfaces.Re {
		cfg.Interfaces = append(cfg.Interfaces, Interface{
			Name:     re.Map["name"],
			Type:     re.Map["type"],
			MAC:      re.Map["mac-address"],
			MTU:      re.Map["mtu"],
			Running:  re.Map["running"] == "true",
			Disabled: re.Map["disabled"] == "true",
		})
	}

	vlans, err := conn.Run("/interface/vlan/print")
	if err != nil {
		return nil, fmt.Errorf("failed to read vlans: %w", err)
	}
	for _, re := range vlans.Re {
		cfg.VLANs = append(cfg.VLANs, VLAN{
			Name:      re.Map["name"],
			VLANID:    re.Map["vlan-id"],
			Interface: re.Map["interface"],
			Disabled:  re.Map["disabled"] == "true",
		})
	}

	bridgePorts, err := conn.Run("/interface/bridge/port/print")
	if err != nil {
		return nil, fmt.Errorf("failed to read bridge ports: %w", err)
	}
	for _, re := range bridgePorts.Re {
		cfg.BridgePorts = append(cfg.BridgePorts, BridgePort{
			Interface:  re.Map["interface"],
			Bridge:     re.Map["bridge"],
			PVID:       re.Map["pvid"],
			FrameTypes: re.Map["frame-types"],
		})
	}

	addresses, err := conn.Run("/ip/address/print")
	if err != nil {
		return nil, fmt.Errorf("failed to read ip addresses: %w", err)
	}
	for _, re := range addresses.Re {
		cfg.IPAddresses = append(cfg.IPAddresses, IPAddress{
			Address:   re.Map["address"],
			Interface: re.Map["interface"],
			Network:   re.Map["network"],
			Disabled:  re.Map["disabled"] == "true",
		})
	}

	filter, err := conn.Run("/ip/firewall/filter/print")
	if err != nil {
		return nil, fmt.Errorf("failed to read firewall filter: %w", err)
	}
	for _, re := range filter.Re {
		cfg.FirewallFilter = append(cfg.FirewallFilter, FirewallRule{
			Chain:      re.Map["chain"],
			Action:     re.Map["action"],
			SrcAddress: re.Map["src-address"],
			DstAddress: re.Map["dst-address"],
			Protocol:   re.Map["protocol"],
			DstPort:    re.Map["dst-port"],
			Comment:    re.Map["comment"],
			Disabled:   re.Map["disabled"] == "true",
		})
	}

	snmp, err := conn.Run("/snmp/print")
	if err != nil {
		return nil, fmt.Errorf("failed to read snmp settings: %w", err)
	}
	for _, re := range snmp.Re {
		cfg.SNMP = append(cfg.SNMP, SNMPSettings{
			Enabled:  re.Map["enabled"] == "true",
			Contact:  re.Map["contact"],
			Location: re.Map["location"],
		})
	}

	return cfg, nil
}
