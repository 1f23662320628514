package diagram

import (
	"encoding/json"
	"fmt"
	"os"
)

// Topology describes the network layout diagrams are rendered from.
type Topology struct {
	Core       CoreDevice  `json:"core"`
	Servers    []ServerDef `json:"servers"`
	VLANs      []VLANDef   `json:"vlans"`
	Monitoring Monitoring  `json:"monitoring"`
}

// CoreDevice is the central switch or router.
type CoreDevice struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	IP    string `json:"ip"`
	Ports int    `json:"ports"`
	VLANs []int  `json:"vlans"`
}

// ServerDef is one server attached to the core.
type ServerDef struct {
	Name     string   `json:"name"`
	IP       string   `json:"ip"`
	Services []string `json:"services"`
}

// VLANDef is one VLAN segment.
type VLANDef struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Subnet string `json:"subnet"`
}

// Monitoring lists the endpoints of the monitoring stack.
type Monitoring struct {
	Prometheus   string `json:"prometheus"`
	Grafana      string `json:"grafana"`
	Alertmanager string `json:"alertmanager"`
}

// DefaultTopology returns the built-in topology used when no file is given.
func DefaultTopology() Topology {
	return Topology{
		Core: CoreDevice{
			Name:  "MikroTik CRS309",
			Type:  "switch",
			IP:    "192.168.88.1",
			Ports: 10,
			VLANs: []int{10, 20, 30, 100},
		},
		Servers: []ServerDef{
			{Name: "Docker Host", IP: "192.168.10.194", Services: []string{"Prometheus", "Grafana", "Netbox"}},
		},
		VLANs: []VLANDef{
			{ID: 10, Name: "Management", Subnet: "192.168.10.0/24"},
			{ID: 20, Name: "Servers", Subnet: "192.168.20.0/24"},
			{ID: 30, Name: "IoT", Subnet: "192.168.30.0/24"},
			{ID: 100, Name: "Guest", Subnet: "192.168.100.0/24"},
		},
		Monitoring: Monitoring{
			Prometheus:   "http://localhost:9090",
			Grafana:      "http://localhost:3000",
			Alertmanager: "http://localhost:9093",
		},
	}
}

// LoadTopology reads a topology definition from a JSON file.
func LoadTopology(path string) (Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Topology{}, fmt.Errorf("failed to read topology file: %w", err)
	}

	var t Topology
	if err := json.Unmarshal(data, &t); err != nil {
		return Topology{}, fmt.Errorf("failed to parse topology file %s: %w", path, err)
	}
	return t, nil
}
